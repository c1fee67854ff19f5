package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedProfile               = errors.New("malformed profile")
	ErrDuplicateName                  = errors.New("duplicate system ability name")
	ErrNotSupportedBootphase          = errors.New("bootphase not supported")
	ErrPriorityInversion              = errors.New("boot priority inversion")
	ErrCreationOrder                  = errors.New("run-on-create order mismatch")
	ErrCircularDependency             = errors.New("circular dependency")
	ErrCrossProcessCircularDependency = errors.New("cross-process circular dependency")
)

// Error reports a failed merge. Kind is one of the Err* sentinels above.
type Error struct {
	Kind error
	File string
	Msg  string
	// Path is the offending dependency chain for cycle errors.
	Path []string
	// Err is the underlying failure, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.File != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.File)
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the wrapped error to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Malformedf returns an ErrMalformedProfile error for file.
func Malformedf(file, format string, args ...any) error {
	return &Error{Kind: ErrMalformedProfile, File: file, Msg: fmt.Sprintf(format, args...)}
}

// Errorf returns an error of the given kind for file.
func Errorf(kind error, file, format string, args ...any) error {
	return &Error{Kind: kind, File: file, Msg: fmt.Sprintf(format, args...)}
}

// CycleError returns an ErrCircularDependency error carrying path.
func CycleError(file string, path []string) error {
	return &Error{
		Kind: ErrCircularDependency,
		File: file,
		Msg:  FormatPath(path),
		Path: append([]string(nil), path...),
	}
}

// CrossProcessError wraps a cycle found only across process boundaries.
func CrossProcessError(inner error) error {
	e := &Error{Kind: ErrCrossProcessCircularDependency, Err: inner}
	var ce *Error
	if errors.As(inner, &ce) {
		e.Path = ce.Path
	}
	return e
}

// FormatPath renders a dependency chain as "a->b->c".
func FormatPath(path []string) string {
	return strings.Join(path, "->")
}
