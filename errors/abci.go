package errors

import (
	"errors"
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a successful ABCI response.
const SuccessABCICode = 0

const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// Errors that wrap a registered root error keep their code and message.
// Anything else is internal: it gets code 1 and, unless debug is set, its
// message is replaced by a generic one. Debug mode prints with %+v so the
// log carries the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := codeOf(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// Redact replaces internal errors and recovered panics with a generic
// error. Debug mode returns err untouched.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || codeOf(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

type coder interface {
	ABCICode() uint32
}

// codeOf walks the cause chain of err and returns the first ABCI code
// found, or the internal code.
func codeOf(err error) uint32 {
	for !isNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
	return SuccessABCICode
}

// isNil also catches a nil pointer stored in the error interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
