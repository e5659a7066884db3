package domain_test

import (
	"math"
	"sync"
	"testing"

	"axisconv/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleInputs = []float64{0, 1, -1, 5, -7.25, 0.001, 1e9, -3.5e-6, math.Pi}

func TestLinearEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, x float64
		want    float64
	}{
		{"slope and offset", 2, 3, 5, 13},
		{"identity", 1, 0, 42, 42},
		{"zero slope", 0, 4, 99, 4},
		{"negative slope", -0.5, 1, 4, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.NewLinear(tc.a, tc.b).Evaluate(tc.x)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLinearInvert(t *testing.T) {
	l := domain.NewLinear(2, 3)
	got, err := l.Invert(13)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	for _, x := range sampleInputs {
		y := l.Evaluate(x)
		back, err := l.Invert(y)
		require.NoError(t, err)
		assert.InDelta(t, x, back, 1e-9*math.Max(1, math.Abs(x)))
	}
}

func TestLinearInvert_ZeroFactor(t *testing.T) {
	_, err := domain.NewLinear(0, 1).Invert(1)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestLinearUnit(t *testing.T) {
	_, ok := domain.NewLinear(1, 2).Unit()
	assert.False(t, ok)
}

func TestScaling(t *testing.T) {
	s := domain.NewScalingUnit(2, "mas")
	assert.Equal(t, 8.0, s.Evaluate(4))

	got, err := s.Invert(8)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	unit, ok := s.Unit()
	assert.True(t, ok)
	assert.Equal(t, "mas", unit)
}

func TestScalingRoundTrip(t *testing.T) {
	for _, a := range []float64{2, -3, 0.001, 1e6, 2.2046226218} {
		s := domain.NewScaling(a, nil)
		for _, x := range sampleInputs {
			back, err := s.Invert(s.Evaluate(x))
			require.NoError(t, err)
			assert.InDelta(t, x, back, 1e-9*math.Max(1, math.Abs(x)), "a=%v x=%v", a, x)
		}
	}
}

func TestScalingUnit_Absent(t *testing.T) {
	_, ok := domain.NewScaling(2, nil).Unit()
	assert.False(t, ok)
	assert.Nil(t, domain.UnitPtr(domain.NewScaling(2, nil)))
}

func TestScalingUnit_EmptyLabelIsPresent(t *testing.T) {
	empty := ""
	u, ok := domain.NewScaling(1, &empty).Unit()
	assert.True(t, ok)
	assert.Equal(t, "", u)
}

func TestScalingUnit_CopiedAtConstruction(t *testing.T) {
	label := "mm"
	s := domain.NewScaling(25.4, &label)
	label = "in"

	u, _ := s.Unit()
	assert.Equal(t, "mm", u)
}

func TestScalingInvert_ZeroFactor(t *testing.T) {
	for _, y := range []float64{1, 0, -1, math.Inf(1)} {
		_, err := domain.NewScaling(0, nil).Invert(y)
		assert.ErrorIs(t, err, domain.ErrDivisionByZero, "y=%v", y)
	}
}

func TestReflect(t *testing.T) {
	r := domain.NewReflect()
	assert.Equal(t, -7.0, r.Evaluate(7))

	got, err := r.Invert(-7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	for _, x := range sampleInputs {
		back, err := r.Invert(r.Evaluate(x))
		require.NoError(t, err)
		assert.Equal(t, x, back)
	}

	_, ok := r.Unit()
	assert.False(t, ok)
}

func TestNonFiniteInputsPassThrough(t *testing.T) {
	assert.True(t, math.IsNaN(domain.NewLinear(2, 1).Evaluate(math.NaN())))
	assert.True(t, math.IsInf(domain.NewScaling(2, nil).Evaluate(math.Inf(1)), 1))
	assert.True(t, math.IsInf(domain.Reflect{}.Evaluate(math.Inf(1)), -1))
}

func TestConverters_ConcurrentUse(t *testing.T) {
	converters := []domain.Converter{
		domain.NewLinear(1.8, 32),
		domain.NewScalingUnit(2, "mas"),
		domain.NewReflect(),
	}

	var wg sync.WaitGroup
	for _, c := range converters {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(c domain.Converter, x float64) {
				defer wg.Done()
				back, err := c.Invert(c.Evaluate(x))
				assert.NoError(t, err)
				assert.InDelta(t, x, back, 1e-9)
			}(c, float64(i))
		}
	}
	wg.Wait()
}
