package domain

import "errors"

var (
	// ErrDivisionByZero is returned by Invert when the converter's factor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupported indicates an operation the converter kind does not define.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrOverflow reports a finite input whose result is not representable.
	ErrOverflow = errors.New("result out of range")
)

// Converter maps a data value to a display value and back.
//
// Implementations are immutable and safe for concurrent use.
type Converter interface {
	// Evaluate applies the forward transform.
	Evaluate(x float64) float64
	// Invert applies the inverse transform.
	Invert(y float64) (float64, error)
	// Unit returns the display-unit label, if one is configured.
	Unit() (string, bool)
}

var (
	_ Converter = Linear{}
	_ Converter = Scaling{}
	_ Converter = Reflect{}
)

// Linear is the affine map y = a*x + b.
type Linear struct {
	factor   float64
	constant float64
}

// NewLinear returns the converter y = factor*x + constant.
func NewLinear(factor, constant float64) Linear {
	return Linear{factor: factor, constant: constant}
}

// Factor returns the slope a.
func (l Linear) Factor() float64 { return l.factor }

// Constant returns the offset b.
func (l Linear) Constant() float64 { return l.constant }

// Evaluate returns a*x + b.
func (l Linear) Evaluate(x float64) float64 {
	return l.factor*x + l.constant
}

// Invert returns (y - b) / a.
func (l Linear) Invert(y float64) (float64, error) {
	if l.factor == 0 {
		return 0, ErrDivisionByZero
	}
	return (y - l.constant) / l.factor, nil
}

// Unit always reports no unit.
func (l Linear) Unit() (string, bool) { return "", false }

// Scaling multiplies by a fixed factor and carries an optional unit label.
type Scaling struct {
	factor float64
	unit   *string
}

// NewScaling returns a scaling converter. A nil unit means no label.
func NewScaling(factor float64, unit *string) Scaling {
	s := Scaling{factor: factor}
	if unit != nil {
		u := *unit
		s.unit = &u
	}
	return s
}

// NewScalingUnit is NewScaling with a label that is always present.
func NewScalingUnit(factor float64, unit string) Scaling {
	return NewScaling(factor, &unit)
}

// Factor returns the scale factor.
func (s Scaling) Factor() float64 { return s.factor }

// Evaluate returns factor*x.
func (s Scaling) Evaluate(x float64) float64 {
	return s.factor * x
}

// Invert returns y / factor.
func (s Scaling) Invert(y float64) (float64, error) {
	if s.factor == 0 {
		return 0, ErrDivisionByZero
	}
	return y / s.factor, nil
}

// Unit returns the configured label, if any.
func (s Scaling) Unit() (string, bool) {
	if s.unit == nil {
		return "", false
	}
	return *s.unit, true
}

// Reflect flips the sign of its input.
type Reflect struct{}

// NewReflect returns a sign-flipping converter.
func NewReflect() Reflect { return Reflect{} }

func (Reflect) Evaluate(x float64) float64 { return -x }

func (Reflect) Invert(y float64) (float64, error) { return -y, nil }

func (Reflect) Unit() (string, bool) { return "", false }

// UnitPtr returns the converter's unit as an optional string, for
// serialisation.
func UnitPtr(c Converter) *string {
	u, ok := c.Unit()
	if !ok {
		return nil
	}
	return &u
}
