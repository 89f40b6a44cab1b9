// internal/threshold/errors.go
package threshold

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a failed selection.
type Kind uint16

// Kind values double as the error codes published to the host.
const (
	KindNone         Kind = 0
	KindFileNotFound Kind = 1
	KindInvalidLines Kind = 2
	KindNoMatch      Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindFileNotFound:
		return "FileNotFound"
	case KindInvalidLines:
		return "FileContainsInvalidLines"
	case KindNoMatch:
		return "NoMatchingThreshold"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is the failure outcome of a selection.
type Error struct {
	Kind Kind
	Path string

	// Lines holds 1-based numbers of rejected lines (KindInvalidLines only).
	Lines []int

	// Setpoint is set for KindNoMatch.
	Setpoint float64

	Err error
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrFileNotFound = &Error{Kind: KindFileNotFound}
	ErrInvalidLines = &Error{Kind: KindInvalidLines}
	ErrNoMatch      = &Error{Kind: KindNoMatch}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("threshold: ")
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%s", e.Path)
	}
	switch e.Kind {
	case KindInvalidLines:
		if len(e.Lines) > 0 {
			fmt.Fprintf(&b, " lines=%v", e.Lines)
		}
	case KindNoMatch:
		fmt.Fprintf(&b, " setpoint=%g", e.Setpoint)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Code exposes the classification as a register value.
func (e *Error) Code() uint16 { return uint16(e.Kind) }
