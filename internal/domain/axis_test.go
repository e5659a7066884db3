package domain_test

import (
	"math"
	"strings"
	"testing"

	"axisconv/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAxisValidate(t *testing.T) {
	tests := []struct {
		name    string
		axis    domain.Axis
		wantErr bool
	}{
		{"linear", domain.Axis{Name: "temp", Kind: domain.KindLinear, Factor: 1.8, Constant: 32}, false},
		{"scaling with unit", domain.Axis{Name: "mas", Kind: domain.KindScaling, Factor: 2, Unit: strPtr("mas")}, false},
		{"scaling zero factor", domain.Axis{Name: "zero", Kind: domain.KindScaling}, false},
		{"reflect", domain.Axis{Name: "flip", Kind: domain.KindReflect}, false},
		{"missing name", domain.Axis{Kind: domain.KindReflect}, true},
		{"blank name", domain.Axis{Name: "   ", Kind: domain.KindReflect}, true},
		{"long name", domain.Axis{Name: strings.Repeat("x", 65), Kind: domain.KindReflect}, true},
		{"unknown kind", domain.Axis{Name: "log", Kind: "log"}, true},
		{"nan factor", domain.Axis{Name: "n", Kind: domain.KindScaling, Factor: math.NaN()}, true},
		{"inf constant", domain.Axis{Name: "n", Kind: domain.KindLinear, Factor: 1, Constant: math.Inf(1)}, true},
		{"linear with unit", domain.Axis{Name: "l", Kind: domain.KindLinear, Factor: 1, Unit: strPtr("x")}, true},
		{"scaling with constant", domain.Axis{Name: "s", Kind: domain.KindScaling, Factor: 1, Constant: 2}, true},
		{"reflect with factor", domain.Axis{Name: "r", Kind: domain.KindReflect, Factor: 2}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.axis.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAxisConverter(t *testing.T) {
	c, err := domain.Axis{Kind: domain.KindLinear, Factor: 2, Constant: 3}.Converter()
	require.NoError(t, err)
	assert.Equal(t, 13.0, c.Evaluate(5))

	c, err = domain.Axis{Kind: domain.KindScaling, Factor: 2, Unit: strPtr("mas")}.Converter()
	require.NoError(t, err)
	assert.Equal(t, 8.0, c.Evaluate(4))
	assert.Equal(t, "mas", *domain.UnitPtr(c))

	c, err = domain.Axis{Kind: domain.KindReflect}.Converter()
	require.NoError(t, err)
	assert.Equal(t, -7.0, c.Evaluate(7))

	_, err = domain.Axis{Kind: "log"}.Converter()
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestLookupPreset(t *testing.T) {
	axis, ok := domain.LookupPreset("kg->lb")
	require.True(t, ok)
	assert.Equal(t, "kg->lb", axis.Name)
	require.NoError(t, axis.Validate())

	c, err := axis.Converter()
	require.NoError(t, err)
	assert.InDelta(t, 220.46226218, c.Evaluate(100), 0.001)
	assert.Equal(t, "lb", *domain.UnitPtr(c))

	_, ok = domain.LookupPreset("st->kg")
	assert.False(t, ok)
}

func TestLookupPreset_ReturnsCopies(t *testing.T) {
	a, _ := domain.LookupPreset("mm->pt")
	*a.Unit = "changed"

	b, _ := domain.LookupPreset("mm->pt")
	assert.Equal(t, "pt", *b.Unit)
}

func TestPresets_AllValid(t *testing.T) {
	names := domain.PresetNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)

	for _, name := range names {
		axis, ok := domain.LookupPreset(name)
		require.True(t, ok, name)
		assert.NoError(t, axis.Validate(), name)
	}
}

func TestPreset_CelsiusToFahrenheit(t *testing.T) {
	axis, _ := domain.LookupPreset("c->f")
	c, err := axis.Converter()
	require.NoError(t, err)
	assert.InDelta(t, 212.0, c.Evaluate(100), 1e-9)

	back, err := c.Invert(32)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, back, 1e-9)
}
