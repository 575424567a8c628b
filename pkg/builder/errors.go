package builder

import "fmt"

// The builder distinguishes three failure classes so callers can report
// them differently. All are fatal to the current file; none carries a
// partial schema.

// StructuralError reports a file whose top-level declarations violate the
// one-component-per-file layout: zero or multiple component declarations,
// multiple command declarations, or multiple NativeState types.
type StructuralError struct {
	msg string
}

func (e *StructuralError) Error() string { return e.msg }

func structuralErrorf(format string, args ...any) error {
	return &StructuralError{msg: fmt.Sprintf(format, args...)}
}

// ShapeMismatchError reports a declaration that was found but has the wrong
// shape: a command type that is not an interface, command options without
// supportedCommands, or supported commands that do not match the interface.
// The message carries the actual and expected shapes.
type ShapeMismatchError struct {
	msg string
}

func (e *ShapeMismatchError) Error() string { return e.msg }

func shapeMismatchErrorf(format string, args ...any) error {
	return &ShapeMismatchError{msg: fmt.Sprintf(format, args...)}
}

// MalformedInputError reports input the resolver cannot make sense of, such
// as a command type name that never resolves. The message hints that the
// file may not be valid codegen input at all.
type MalformedInputError struct {
	msg string
}

func (e *MalformedInputError) Error() string { return e.msg }

func malformedInputErrorf(format string, args ...any) error {
	return &MalformedInputError{msg: fmt.Sprintf(format, args...)}
}
