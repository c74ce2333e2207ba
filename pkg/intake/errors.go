package intake

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSlot     = errors.New("unknown document slot")
	ErrInvalidDocument = errors.New("invalid document")
	ErrUnknownSection  = errors.New("unknown section")
)

// ValidationError lists the requirements a section still misses.
type ValidationError struct {
	Section SectionID
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("section %d (%s) is incomplete: %s", int(e.Section), e.Section.Title(), strings.Join(e.Missing, ", "))
}
