package interpreter

import (
	"errors"
	"fmt"
)

// The evaluator never recovers from any of these internally: every failure
// aborts the current top-level evaluation and propagates to the caller. The
// REPL treats only TypeError as recoverable; see Recoverable.

// UndeclaredVariableError reports a name absent through the whole scope chain
// and, where applicable, the containing struct.
type UndeclaredVariableError struct {
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable %q", e.Name)
}

// UnknownMemberError reports a member absent through the whole struct parent
// chain.
type UnknownMemberError struct {
	Name string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("unknown member %q", e.Name)
}

// TypeError covers operand kind mismatches, arity mismatches, and invoking a
// non-callable value.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func typeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// IndexError reports an array or sequence index beyond bounds.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d", e.Index, e.Length)
}

// Recoverable reports whether an interactive session may report the error
// and continue. Only type, arity and not-callable failures qualify;
// everything else terminates the process in REPL mode and any failure
// aborts a file-mode run.
func Recoverable(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}
