package webtopay

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/mstgnz/checkout/provider"
)

// PanicError carries a value the library panicked with
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("library panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// guard runs fn and turns any error it returns, or panic it raises, into a
// *provider.ProviderError. Errors without a location of their own are
// reported at the guarded call site.
func guard[T any](fn func() (T, error)) (result T, err error) {
	_, file, line, _ := runtime.Caller(1)

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		var zero T
		result = zero

		if cause, ok := r.(error); ok {
			if lfile, lline, ok := provider.LocationOf(cause); ok {
				err = provider.NewProviderErrorAt(cause, lfile, lline)
				return
			}
		}

		pfile, pline := panicLocation()
		if pfile == "" {
			pfile, pline = file, line
		}
		err = provider.NewProviderErrorAt(&PanicError{Value: r}, pfile, pline)
	}()

	result, err = fn()
	if err != nil {
		var zero T
		result = zero
		if lfile, lline, ok := provider.LocationOf(err); ok {
			err = provider.NewProviderErrorAt(err, lfile, lline)
		} else {
			err = provider.NewProviderErrorAt(err, file, line)
		}
	}
	return result, err
}

// panicLocation returns the frame that called panic. It must be called from
// the deferred function that recovered.
func panicLocation() (string, int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File, frame.Line
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			return "", 0
		}
	}
}
