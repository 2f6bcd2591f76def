package challengegen

import (
	"errors"
	"fmt"
)

// ErrTimeout means the model did not answer within Config.Timeout.
var ErrTimeout = errors.New("challenge provisioning timed out")

// Provisioning stages, recorded on ProvisionError for logs.
const (
	StageModel   = "model"
	StageTimeout = "timeout"
	StageExtract = "extract"
	StageShape   = "shape"
)

// ProvisionError is the single failure type a Generator returns. Callers
// treat every stage alike; Stage and Err are there for logging.
type ProvisionError struct {
	Stage string
	Err   error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("challenge provisioning failed at %s: %v", e.Stage, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }
