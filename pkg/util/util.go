package util

import "fmt"

// InternalError reports a violated translator invariant: an operand used in a
// position its tag forbids, a backpatch aimed at a label that was never
// generated, and so on. It never describes a problem with the user's program;
// by the time intermediate code is generated the type checker has accepted
// the input, so anything raised here is a bug in the compiler itself.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

// Bug aborts the compilation run by panicking with an *InternalError carrying
// the formatted context. It must never be swallowed or retried; drivers and
// test harnesses may recover it at the top of a run to report the bug.
func Bug(format string, args ...interface{}) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}
