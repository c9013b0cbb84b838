package regime

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateInput  = errors.New("degenerate input")
)

// Kind classifies a detection failure.
type Kind int

const (
	KindInvalidParameter Kind = iota + 1
	KindInsufficientData
	KindDegenerateInput
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindInsufficientData:
		return ErrInsufficientData
	case KindDegenerateInput:
		return ErrDegenerateInput
	}
	return nil
}

// String returns the kind's short name.
func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown"
}

// Error is returned by Detect. Use errors.Is with the sentinels above to
// branch on the kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
