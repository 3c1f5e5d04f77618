package otcompose

import (
	"errors"
	"fmt"

	"github.com/fontist/fontisan/ot"
)

// ErrorKind classifies composer errors.
type ErrorKind int

const (
	// KindInputInvalid flags unusable input: fewer than two fonts, an unknown
	// target format, a missing required table. The caller can recover by
	// fixing the inputs.
	KindInputInvalid ErrorKind = iota
	// KindFormatIncompatible flags a flavor clash between the requested
	// collection format and a member font, e.g. a CFF-flavored font in a TTC.
	KindFormatIncompatible
	// KindInvariantViolation flags an internal inconsistency between planner
	// and emitter. It indicates a bug, not an input problem.
	KindInvariantViolation
	// KindOutputTooLarge flags a computed offset that would overflow the
	// 32-bit on-disk offset field. The caller can recover by splitting the
	// collection.
	KindOutputTooLarge
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInputInvalid:
		return "InputInvalid"
	case KindFormatIncompatible:
		return "FormatIncompatible"
	case KindInvariantViolation:
		return "InvariantViolation"
	case KindOutputTooLarge:
		return "OutputTooLarge"
	default:
		return "UNKNOWN"
	}
}

// ComposeError is the error type returned from Compose and the pipeline
// stages. FontIndex and Table narrow the error down where known; a FontIndex
// of -1 means the error is not tied to a single member font.
type ComposeError struct {
	Kind      ErrorKind
	FontIndex int    // index of the offending font, or -1
	Table     ot.Tag // offending table tag, or 0
	Issue     string // human-readable description
}

// Error implements the error interface.
func (e *ComposeError) Error() string {
	switch {
	case e.FontIndex >= 0 && e.Table != 0:
		return fmt.Sprintf("[%s] font #%d, table %s: %s", e.Kind, e.FontIndex, e.Table, e.Issue)
	case e.FontIndex >= 0:
		return fmt.Sprintf("[%s] font #%d: %s", e.Kind, e.FontIndex, e.Issue)
	case e.Table != 0:
		return fmt.Sprintf("[%s] table %s: %s", e.Kind, e.Table, e.Issue)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Issue)
}

// IsKind reports whether err is (or wraps) a ComposeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cerr *ComposeError
	if errors.As(err, &cerr) {
		return cerr.Kind == kind
	}
	return false
}

func errInputInvalid(fontIndex int, tag ot.Tag, format string, args ...interface{}) error {
	return &ComposeError{
		Kind:      KindInputInvalid,
		FontIndex: fontIndex,
		Table:     tag,
		Issue:     fmt.Sprintf(format, args...),
	}
}

func errFormatIncompatible(fontIndex int, format string, args ...interface{}) error {
	return &ComposeError{
		Kind:      KindFormatIncompatible,
		FontIndex: fontIndex,
		Table:     0,
		Issue:     fmt.Sprintf(format, args...),
	}
}

func errInvariant(fontIndex int, tag ot.Tag, format string, args ...interface{}) error {
	return &ComposeError{
		Kind:      KindInvariantViolation,
		FontIndex: fontIndex,
		Table:     tag,
		Issue:     fmt.Sprintf(format, args...),
	}
}

func errOutputTooLarge(tag ot.Tag, format string, args ...interface{}) error {
	return &ComposeError{
		Kind:      KindOutputTooLarge,
		FontIndex: -1,
		Table:     tag,
		Issue:     fmt.Sprintf(format, args...),
	}
}
