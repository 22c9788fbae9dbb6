package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by every extension. Codes below 100 are reserved for
// this package, extensions register their own ranges.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrExpired            = Register(15, "expired")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrCurrency           = Register(17, "invalid currency code")
	ErrDatabase           = Register(18, "database")
	ErrIteratorDone       = Register(19, "iterator done")

	// ErrPanic marks a recovered panic. Its message is never returned to
	// a client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 stands for
// errors that carry no code at all.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, description: internalABCILog},
}

// Register declares a new root error. Call it from package level variable
// declarations only. A code can be registered once, a second registration
// panics.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already taken by %q", code, prev.description))
	}
	e := &Error{code: code, description: description}
	registry[code] = e
	return e
}

// Error is a root error. Runtime errors wrap a root error, which gives them
// their ABCI code and lets callers test the failure kind with Is.
type Error struct {
	code        uint32
	description string
}

func (e Error) Error() string       { return e.description }
func (e Error) ABCICode() uint32    { return e.code }
func (e *Error) New(d string) error { return Wrap(e, d) }

// Newf is New with a format string.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is this root error or wraps it. A nil kind matches
// both nil and typed nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return false
}

// IsAny reports whether err is of one of the given kinds.
func IsAny(err error, kinds ...*Error) bool {
	for _, kind := range kinds {
		if kind.Is(err) {
			return true
		}
	}
	return false
}

// Wrap adds a description in front of err. A stack trace is recorded at the
// first wrap only. Wrapping nil returns nil so that a function can end with
// "return errors.Wrap(err, ...)".
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if findStack(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the Go type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *wrapped) Cause() error  { return w.cause }

// Format prints the message chain. The %+v verb adds the recorded stack.
func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.cause)
		return
	}
	fmt.Fprint(s, w.Error())
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func findStack(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}
