package gl

import "fmt"

// Error is a GL error code with a diagnostic message.
//
// Errors compare equal under errors.Is when their codes match, so callers
// can test for a class of failure with the package sentinels:
//
//	if errors.Is(err, gl.ErrOutOfMemory) {
//	    // surface GL_OUT_OF_MEMORY
//	}
type Error struct {
	Code Enum
	Msg  string
}

// Sentinels for errors.Is.
var (
	ErrInvalidOperation = &Error{Code: INVALID_OPERATION}
	ErrOutOfMemory      = &Error{Code: OUT_OF_MEMORY}
)

// Errorf builds an Error with a formatted message.
func Errorf(code Enum, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// OutOfMemory builds an OUT_OF_MEMORY error.
func OutOfMemory(format string, args ...any) *Error {
	return Errorf(OUT_OF_MEMORY, format, args...)
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("gl: error %#x", uint32(e.Code))
	}
	return e.Msg
}

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
