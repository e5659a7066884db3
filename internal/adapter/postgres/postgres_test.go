package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"axisconv/internal/domain"

	"github.com/lib/pq"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, domain.ErrConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErr(tc.in); !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("mapErr(%v) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMapErr_PassesThroughOtherErrors(t *testing.T) {
	fk := &pq.Error{Code: "23503"}
	if got := mapErr(fk); got != fk {
		t.Fatalf("expected foreign-key error unchanged, got %v", got)
	}
}
