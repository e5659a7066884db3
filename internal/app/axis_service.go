package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"axisconv/internal/domain"
)

// MaxBatch bounds the number of values converted in one call.
const MaxBatch = 10000

const maxListLimit = 500

// Direction selects which half of a converter is applied.
type Direction string

const (
	Forward Direction = "forward"
	Inverse Direction = "inverse"
)

var (
	// ErrUnknownPreset indicates the named preset does not exist.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrBatchTooLarge indicates a conversion request exceeded MaxBatch values.
	ErrBatchTooLarge = fmt.Errorf("at most %d values per request", MaxBatch)
)

// ValidationError wraps an input problem the caller can fix.
type ValidationError struct{ Err error }

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error { return &ValidationError{Err: err} }

// Conversion is the result of converting a batch of values.
type Conversion struct {
	Direction Direction `json:"direction"`
	Values    []float64 `json:"values"`
	Unit      *string   `json:"unit"`
}

// AxisService encapsulates axis management and value conversion use cases.
type AxisService struct {
	repo domain.AxisRepository
	now  func() time.Time
}

// NewAxisService creates an AxisService backed by the given repository.
func NewAxisService(repo domain.AxisRepository) *AxisService {
	return &AxisService{repo: repo, now: time.Now}
}

// CreateAxis validates and stores a new axis for the user.
func (s *AxisService) CreateAxis(ctx context.Context, userID int64, axis domain.Axis) (*domain.Axis, error) {
	axis.Name = strings.TrimSpace(axis.Name)
	if err := axis.Validate(); err != nil {
		return nil, invalid(err)
	}
	axis.UserID = userID
	axis.CreatedAt = s.now().UTC()

	id, err := s.repo.CreateAxis(ctx, axis)
	if err != nil {
		return nil, err
	}
	axis.ID = id
	return &axis, nil
}

// CreateFromPreset stores a built-in preset under name. An empty name
// defaults to the preset's own name.
func (s *AxisService) CreateFromPreset(ctx context.Context, userID int64, preset, name string) (*domain.Axis, error) {
	axis, ok := domain.LookupPreset(preset)
	if !ok {
		return nil, invalid(fmt.Errorf("%w %q", ErrUnknownPreset, preset))
	}
	if strings.TrimSpace(name) != "" {
		axis.Name = name
	}
	return s.CreateAxis(ctx, userID, axis)
}

// GetAxis returns one of the user's axes.
func (s *AxisService) GetAxis(ctx context.Context, userID, id int64) (*domain.Axis, error) {
	return s.repo.GetAxis(ctx, userID, id)
}

// ListAxes returns the user's most recent axes up to limit.
func (s *AxisService) ListAxes(ctx context.Context, userID int64, limit int) ([]domain.Axis, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListAxes(ctx, userID, limit)
}

// DeleteAxis removes one of the user's axes.
func (s *AxisService) DeleteAxis(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteAxis(ctx, userID, id)
}

// Convert runs values through a stored axis.
func (s *AxisService) Convert(ctx context.Context, userID, axisID int64, dir Direction, values []float64) (*Conversion, error) {
	axis, err := s.repo.GetAxis(ctx, userID, axisID)
	if err != nil {
		return nil, err
	}
	return ConvertAdHoc(*axis, dir, values)
}

// ConvertAdHoc runs values through an axis that need not be stored.
// The first failing value aborts the batch.
func ConvertAdHoc(axis domain.Axis, dir Direction, values []float64) (*Conversion, error) {
	if len(values) > MaxBatch {
		return nil, invalid(ErrBatchTooLarge)
	}
	if dir == "" {
		dir = Forward
	}
	if dir != Forward && dir != Inverse {
		return nil, invalid(fmt.Errorf("direction must be %q or %q", Forward, Inverse))
	}
	if axis.Name == "" {
		axis.Name = "ad-hoc"
	}
	if err := axis.Validate(); err != nil {
		return nil, invalid(err)
	}
	c, err := axis.Converter()
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		y, err := apply(c, dir, v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = y
	}
	return &Conversion{Direction: dir, Values: out, Unit: domain.UnitPtr(c)}, nil
}

// apply converts one value. Non-finite inputs pass through, but a finite
// input must not produce ±Inf or NaN.
func apply(c domain.Converter, dir Direction, v float64) (float64, error) {
	var y float64
	if dir == Forward {
		y = c.Evaluate(v)
	} else {
		var err error
		if y, err = c.Invert(v); err != nil {
			return 0, err
		}
	}
	if isFinite(v) && !isFinite(y) {
		return 0, domain.ErrOverflow
	}
	return y, nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
