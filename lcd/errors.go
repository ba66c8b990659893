package lcd

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel wrapped by every *ErrInvalidConfig.
var ErrConfig = errors.New("invalid match config")

// ErrInvalidConfig describes an out-of-range MatchConfig field.
type ErrInvalidConfig struct {
	Field  string
	Reason string
	cause  error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid match config: %s %s", e.Field, e.Reason)
}

func (e *ErrInvalidConfig) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrConfig, e.cause}
	}
	return []error{ErrConfig}
}
