// Package panicerr turns an abnormal goroutine exit -- a panic, or a
// runtime.Goexit call -- into a plain error, so a bug deep in the compiler
// or VM surfaces as a reported crash (CLI exit 4) instead of taking the
// whole process down with a raw stack trace.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f on a new goroutine, named by name for diagnostics, and
// waits for it to finish. A normal return (nil or otherwise) passes
// through unchanged; a panic or runtime.Goexit comes back as a non-nil
// error instead of escaping to the caller.
func Recover(name string, f func() error) error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		defer recoverExit(name, result)
		defer recoverPanic(name, result)
		result <- f()
	}()
	return <-result
}

func recoverExit(name string, result chan<- error) {
	select {
	case result <- crashExit(name):
	default:
		// the happy path already sent a (maybe nil) result
	}
}

// crashExit records that the wrapped goroutine called runtime.Goexit
// instead of returning.
type crashExit string

func (name crashExit) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit reports whether err was produced by a recovered runtime.Goexit.
func IsExit(err error) bool {
	var ce crashExit
	return errors.As(err, &ce)
}

func recoverPanic(name string, result chan<- error) {
	var cp crashPanic
	if cp.value = recover(); cp.value != nil {
		cp.name = name
		cp.stack = debug.Stack()
		select {
		case result <- cp:
		default:
		}
	}
}

// crashPanic records a recovered panic value alongside the stack it
// panicked on, so the caller's trace can point at the frame that died
// the same way the VM pins a crash class to the branch it happened on.
type crashPanic struct {
	name  string
	value interface{}
	stack []byte
}

func (cp crashPanic) Error() string {
	return fmt.Sprint(cp)
}

func (cp crashPanic) Format(f fmt.State, c rune) {
	if cp.name == "" {
		fmt.Fprintf(f, "paniced: %v", cp.value)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", cp.name, cp.value)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nstack:\n%s", cp.stack)
	}
}

func (cp crashPanic) Unwrap() error {
	err, _ := cp.value.(error)
	return err
}

// IsPanic reports whether err was produced by a recovered panic.
func IsPanic(err error) bool {
	var cp crashPanic
	return errors.As(err, &cp)
}

// PanicStack returns the stack trace captured at the point of a recovered
// panic, or "" if err is not one.
func PanicStack(err error) string {
	var cp crashPanic
	if errors.As(err, &cp) {
		return string(cp.stack)
	}
	return ""
}
