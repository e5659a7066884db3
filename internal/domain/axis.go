package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a record with the same unique key already exists.
	ErrConflict = errors.New("already exists")
)

// Kind names a converter variant.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindScaling Kind = "scaling"
	KindReflect Kind = "reflect"
)

const maxAxisNameLen = 64

// Axis is a named, persisted converter definition owned by a user.
type Axis struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Factor    float64   `json:"factor"`
	Constant  float64   `json:"constant"`
	Unit      *string   `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that the axis describes a buildable converter.
func (a Axis) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > maxAxisNameLen {
		return fmt.Errorf("name must be at most %d characters", maxAxisNameLen)
	}
	if !finite(a.Factor) || !finite(a.Constant) {
		return errors.New("factor and constant must be finite")
	}
	switch a.Kind {
	case KindLinear:
		if a.Unit != nil {
			return errors.New("linear axes carry no unit")
		}
	case KindScaling:
		if a.Constant != 0 {
			return errors.New("scaling axes take no constant")
		}
	case KindReflect:
		if a.Factor != 0 || a.Constant != 0 || a.Unit != nil {
			return errors.New("reflect axes take no parameters")
		}
	default:
		return fmt.Errorf("kind must be one of %q, %q or %q", KindLinear, KindScaling, KindReflect)
	}
	return nil
}

// Converter builds the converter the axis describes.
func (a Axis) Converter() (Converter, error) {
	switch a.Kind {
	case KindLinear:
		return NewLinear(a.Factor, a.Constant), nil
	case KindScaling:
		return NewScaling(a.Factor, a.Unit), nil
	case KindReflect:
		return NewReflect(), nil
	}
	return nil, fmt.Errorf("kind %q: %w", a.Kind, ErrUnsupported)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AxisRepository is the port for axis persistence.
type AxisRepository interface {
	CreateAxis(ctx context.Context, axis Axis) (int64, error)
	GetAxis(ctx context.Context, userID, id int64) (*Axis, error)
	ListAxes(ctx context.Context, userID int64, limit int) ([]Axis, error)
	DeleteAxis(ctx context.Context, userID, id int64) error
}
