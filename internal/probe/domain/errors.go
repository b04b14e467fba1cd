package domain

import (
	"errors"
	"fmt"
)

// ErrConfig is the only error RunProbe ever returns; everything that goes
// wrong during an attempt becomes a Result instead.
var ErrConfig = errors.New("invalid probe configuration")

var (
	ErrNoTargets        = fmt.Errorf("%w: target list is empty", ErrConfig)
	ErrInvalidAttempts  = fmt.Errorf("%w: attempts per target must be at least 1", ErrConfig)
	ErrInvalidBaseURL   = fmt.Errorf("%w: base URL must be an absolute http(s) URL", ErrConfig)
	ErrInvalidTarget    = fmt.Errorf("%w: invalid target", ErrConfig)
	ErrUnknownPredicate = fmt.Errorf("%w: unknown success predicate", ErrConfig)
)

var ErrCoffeeContract = errors.New("response does not match the coffee-status contract")
