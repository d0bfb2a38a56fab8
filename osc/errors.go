package osc

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// test for them with errors.Is.
var (
	ErrUnexpectedEOF        = errors.New("unexpected end of data")
	ErrMalformedPadding     = errors.New("malformed padding")
	ErrInvalidTypeTagString = errors.New("invalid type tag string")
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrInvalidBundleMarker  = errors.New("invalid bundle marker")
	ErrMaxDepthExceeded     = errors.New("maximum bundle depth exceeded")
	ErrFieldArityMismatch   = errors.New("field count mismatch")
	ErrFieldTypeMismatch    = errors.New("field type mismatch")
	ErrTrailingData         = errors.New("trailing data after message")
	ErrInvalidString        = errors.New("invalid string")
	ErrTooLarge             = errors.New("value too large")
)

// Error describes where a failure happened. Offset is the absolute byte offset
// in the top-level buffer, Path holds the element index at each bundle level
// leading to the failing packet and Argument is the index of the failing
// argument. Offset and Argument are -1 when they don't apply.
type Error struct {
	Op       string
	Offset   int
	Path     []int
	Argument int
	Detail   string
	Err      error
}

func newError(op string, offset int, kind error, detail string) *Error {
	return &Error{Op: op, Offset: offset, Argument: -1, Detail: detail, Err: kind}
}

// Depth returns the bundle nesting depth at which the error occurred.
func (e *Error) Depth() int {
	return len(e.Path)
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("osc: ")
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())
	if e.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Detail)
		sb.WriteByte(')')
	}
	if e.Offset >= 0 {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.Offset))
	}
	if len(e.Path) > 0 {
		sb.WriteString(" in element ")
		for i, p := range e.Path {
			if i > 0 {
				sb.WriteByte('/')
			}
			sb.WriteString(strconv.Itoa(p))
		}
	}
	if e.Argument >= 0 {
		sb.WriteString(" argument ")
		sb.WriteString(strconv.Itoa(e.Argument))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// withArgument annotates err with an argument index if it is an *Error.
func withArgument(err error, idx int) error {
	var e *Error
	if errors.As(err, &e) && e.Argument < 0 {
		e.Argument = idx
	}
	return err
}

// withElement prepends an element index to the path of err.
func withElement(err error, idx int) error {
	var e *Error
	if errors.As(err, &e) {
		e.Path = append([]int{idx}, e.Path...)
	}
	return err
}
