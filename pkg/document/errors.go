package document

import (
	"errors"
	"fmt"
)

// ErrInputFormat matches every InputFormatError via errors.Is.
var ErrInputFormat = errors.New("invalid input document")

// NoIndex marks an InputFormatError about the stream as a whole rather than
// one of its documents.
const NoIndex = -1

// InputFormatError is returned when a stream is not valid YAML or one of its
// documents is not a mapping.
type InputFormatError struct {
	// Index is the zero-based position of the offending document, or
	// NoIndex.
	Index int
	Err   error
}

func (e *InputFormatError) Error() string {
	if e.Index == NoIndex {
		return e.Err.Error()
	}
	return fmt.Sprintf("document %d: %v", e.Index, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

func (e *InputFormatError) Is(target error) bool {
	return target == ErrInputFormat
}
