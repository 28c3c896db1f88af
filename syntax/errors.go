package syntax

import "wisp/logging"

// SyntaxError is an error produced while scanning or parsing source text.  It
// carries the position of the offending text so it can be displayed with a
// code selection.
type SyntaxError struct {
	Message string

	// Kind is the message kind this error should be logged with (`LMKToken`
	// for lexical errors, `LMKSyntax` for structural ones)
	Kind int

	Pos *logging.TextPosition
}

func (se *SyntaxError) Error() string {
	return se.Message
}

// MessageKind returns the logging message kind of this error
func (se *SyntaxError) MessageKind() int {
	return se.Kind
}

// Position returns the text position of this error
func (se *SyntaxError) Position() *logging.TextPosition {
	return se.Pos
}
