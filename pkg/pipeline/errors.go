package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyDecided    = errors.New("stage already decided")
	ErrStageNotReachable = errors.New("stage not reachable")
)

// PreconditionError lists why a decision cannot be accepted yet. Nothing is
// persisted when it is returned.
type PreconditionError struct {
	Stage    Stage
	Problems []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s cannot be submitted: %s", e.Stage.Label(), strings.Join(e.Problems, "; "))
}
