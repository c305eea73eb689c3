package sim

import (
	"errors"
	"fmt"
)

var (
	ErrPreconditionUnmet  = errors.New("precondition unmet")
	ErrWalletRequired     = fmt.Errorf("%w: wallet connection required", ErrPreconditionUnmet)
	ErrUnknownMachineType = errors.New("unknown machine type")
	ErrMachineNotFound    = errors.New("machine not found")
)
