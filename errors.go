package placematch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/distance"
	"github.com/hupe1980/placematch/lcd"
)

var (
	// ErrInvalidDescriptor is returned for a nil or malformed descriptor.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrInvalidConfig is returned for an out-of-range match configuration.
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrDimensionMismatch indicates that a query and a cached dense descriptor
// have different dimensions.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.A, Actual: dm.B, cause: err}
	}

	var lm *descriptor.ErrLengthMismatch
	if errors.As(err, &lm) {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	var dw *descriptor.ErrDuplicateWord
	if errors.As(err, &dw) {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	var nf *descriptor.ErrNonFiniteValue
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	if errors.Is(err, lcd.ErrConfig) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}
