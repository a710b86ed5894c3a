package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks. Use errors.As with the typed errors
// below for details.
var (
	// ErrInvocation indicates the style tool could not be run, exited
	// abnormally or timed out.
	ErrInvocation = errors.New("style tool invocation failed")
	// ErrFormat indicates the style tool produced output that could not be
	// interpreted.
	ErrFormat = errors.New("unexpected style tool output")
)

// InvocationError describes a failed run of the style tool.
type InvocationError struct {
	Executable string
	Args       []string
	Stderr     string
	Err        error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("running %s %s: %v", e.Executable, strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\nOutput: " + stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}

// FormatError describes output of the style tool that does not have the
// expected shape.
type FormatError struct {
	// Source names what was being read, e.g. "--help output" or a style name.
	Source string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
