package assembler

import (
	"fmt"
	"strings"
)

// Kind classifies assembly diagnostics.
type Kind int

const (
	// Syntax errors are malformed source text.
	Syntax Kind = iota
	// Semantic errors are well-formed text with an invalid meaning,
	// such as an undefined label or a bad operand type.
	Semantic
	// Linking errors come from composing fragments into the memory
	// layout.
	Linking
	// Runtime errors are internal failures of the assembler itself.
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Linking:
		return "linking"
	case Runtime:
		return "runtime"
	}
	return "unknown"
}

// Error is a single diagnostic with its source position. Line is
// 1-based; zero means the diagnostic has no line, as with linking
// errors about whole fragments.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Source  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s error at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Errorf builds a diagnostic the way fmt.Errorf builds an error.
func Errorf(kind Kind, line int, source, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Source:  source,
	}
}

// ErrorList collects diagnostics so a single run can report every
// problem in the source instead of stopping at the first.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap exposes the collected diagnostics to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

func (l *ErrorList) add(e *Error) {
	*l = append(*l, e)
}

func (l *ErrorList) addf(kind Kind, line int, source, format string, args ...any) {
	l.add(Errorf(kind, line, source, format, args...))
}

// addErr files an arbitrary error, keeping its kind when it already is
// a diagnostic.
func (l *ErrorList) addErr(err error, line int, source string) {
	if e, ok := err.(*Error); ok {
		if e.Line == 0 {
			e.Line = line
		}
		if e.Source == "" {
			e.Source = source
		}
		l.add(e)
		return
	}
	l.addf(Syntax, line, source, "%s", err)
}
