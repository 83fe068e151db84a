package rpmmacro

import (
	"fmt"

	"github.com/juju/errors"
)

// Error describes a failure during macro expansion, definition parsing, or
// one of the external collaborator calls (shell runner, scripting host,
// macro-file loading). Fill in as much as you have; Sender should always be
// set so the message can be traced back to the component that raised it.
type Error struct {
	// Sender identifies the component that raised the error, e.g.
	// "expand", "define", "shell", "lua".
	Sender string

	// Offset is the byte position within the source text being expanded
	// where the error was detected, or -1 if not applicable.
	Offset int

	// Near is a short snippet of the offending source text, for context.
	Near string

	// OrigError is the underlying error, if any.
	OrigError error
}

func (e *Error) Error() string {
	s := "[rpmmacro"
	if e.Sender != "" {
		s += " (where: " + e.Sender + ")"
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" | offset %d", e.Offset)
		if e.Near != "" {
			s += fmt.Sprintf(" near '%s'", e.Near)
		}
	}
	s += "] "
	if e.OrigError != nil {
		s += e.OrigError.Error()
	}
	return s
}

// Unwrap allows errors.Is/errors.As to reach the underlying cause.
func (e *Error) Unwrap() error {
	return e.OrigError
}

func newError(sender string, offset int, near string, cause error) *Error {
	return &Error{
		Sender:    sender,
		Offset:    offset,
		Near:      near,
		OrigError: cause,
	}
}

// wrap annotates an external-collaborator failure (file I/O, shell runner,
// scripting host) with the component name via juju/errors; the returned
// error keeps err as its underlying cause.
func wrap(sender string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Annotatef(err, "rpmmacro: %s", sender)
}
