package helpers

import (
	"strings"

	"github.com/ztrue/tracerr"
)

// Error carries zero or more stack-traced errors. The zero value is NilError.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func (e *Error) IsNil() bool {
	return IsNil(e)
}

func (e Error) HasError() bool {
	return !IsNil(e)
}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) Error() string {
	lines := []string{}
	for _, err := range e.errs {
		lines = append(lines, indent(tracerr.Sprint(err), ".  "))
	}
	return strings.Join(lines, "\n")
}

// String includes source snippets around each frame of every trace.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += strings.Repeat("-", 79) + "\n"
		result += tracerr.SprintSourceColor(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

func (e Error) NumErrors() int {
	if IsNil(e) {
		return 0
	}
	num := 0
	for _, err := range e.errs {
		if err != nil {
			num++
		}
	}
	return num
}

// Unwrap exposes the first underlying error to errors.Is and errors.As.
func (e Error) Unwrap() error {
	if first := e.First(); first != nil {
		return first.Unwrap()
	}
	return nil
}

func Wrap(err error) Error {
	if IsNil(err) {
		return NilError
	}
	if traceableErr, ok := err.(Error); ok {
		return traceableErr
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}

	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func indent(s string, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
