package walk

import (
	"fmt"

	"wisp/logging"
	"wisp/typing"
)

// All walk errors are fatal to the current compilation: the first one
// propagates immediately to the caller of the compile entry point and the
// partially built module is discarded.  Each kind carries the position of the
// offending form so the driver can display a code selection.

// NumberFormatError indicates a literal that parses as neither an integer nor
// a floating-point number
type NumberFormatError struct {
	Literal string
	Pos     *logging.TextPosition
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("`%s` is neither an integer nor a floating-point literal", e.Literal)
}

func (e *NumberFormatError) MessageKind() int                 { return logging.LMKLiteral }
func (e *NumberFormatError) Position() *logging.TextPosition { return e.Pos }

// UnboundSymbolError indicates a symbol reference with no matching entry in
// the enclosing scopes
type UnboundSymbolError struct {
	Name string

	// Suggestion is the closest name in scope, or empty if nothing is close
	Suggestion string

	Pos *logging.TextPosition
}

func (e *UnboundSymbolError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("undefined symbol: `%s` (did you mean `%s`?)", e.Name, e.Suggestion)
	}

	return fmt.Sprintf("undefined symbol: `%s`", e.Name)
}

func (e *UnboundSymbolError) MessageKind() int                 { return logging.LMKName }
func (e *UnboundSymbolError) Position() *logging.TextPosition { return e.Pos }

// UnknownFunctionError indicates a call whose target name is absent from the
// function table at the point of the call.  Because lookup is eager, calling
// a function declared later in the source is this error, not a forward
// reference.
type UnknownFunctionError struct {
	Name       string
	Suggestion string
	Pos        *logging.TextPosition
}

func (e *UnknownFunctionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown function: `%s` (did you mean `%s`?)", e.Name, e.Suggestion)
	}

	return fmt.Sprintf("unknown function: `%s`", e.Name)
}

func (e *UnknownFunctionError) MessageKind() int                 { return logging.LMKName }
func (e *UnknownFunctionError) Position() *logging.TextPosition { return e.Pos }

// ArityError indicates the wrong number of operands to an operator or
// arguments to a call
type ArityError struct {
	// Construct names what was applied: "operator `-`", "call to `f`", etc.
	Construct string

	// Expected describes the accepted count ("exactly 2", "one or two", "3")
	Expected string

	Found int
	Pos   *logging.TextPosition
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %s operand(s), but found %d", e.Construct, e.Expected, e.Found)
}

func (e *ArityError) MessageKind() int                 { return logging.LMKArg }
func (e *ArityError) Position() *logging.TextPosition { return e.Pos }

// TypeMismatchError indicates an operand or argument of an unsupported type
type TypeMismatchError struct {
	Construct string

	// Operand names the offending position: "first operand", "argument 2"
	Operand string

	// Expected describes the accepted type(s): "a numeric type", "`i32`"
	Expected string

	Found typing.DataType
	Pos   *logging.TextPosition
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s expects %s for its %s, but found `%s`", e.Construct, e.Expected, e.Operand, e.Found.Repr())
}

func (e *TypeMismatchError) MessageKind() int                 { return logging.LMKTyping }
func (e *TypeMismatchError) Position() *logging.TextPosition { return e.Pos }

// ReturnTypeMismatchError indicates a function body whose final value type
// disagrees with the declared (non-unit) result type
type ReturnTypeMismatchError struct {
	FuncName string
	Declared typing.DataType
	Found    typing.DataType
	Pos      *logging.TextPosition
}

func (e *ReturnTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"mismatched return type for `%s`: expected `%s`, but found `%s`",
		e.FuncName, e.Declared.Repr(), e.Found.Repr(),
	)
}

func (e *ReturnTypeMismatchError) MessageKind() int                 { return logging.LMKTyping }
func (e *ReturnTypeMismatchError) Position() *logging.TextPosition { return e.Pos }

// MalformedFormError indicates a declaration or application whose structural
// shape does not match the expected grammar
type MalformedFormError struct {
	Message string
	Pos     *logging.TextPosition
}

func (e *MalformedFormError) Error() string {
	return e.Message
}

func (e *MalformedFormError) MessageKind() int                 { return logging.LMKSyntax }
func (e *MalformedFormError) Position() *logging.TextPosition { return e.Pos }

// UnsupportedConstructError indicates a recognized but unimplemented form,
// such as a `let` binding
type UnsupportedConstructError struct {
	Construct string
	Pos       *logging.TextPosition
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("`%s` is not supported yet", e.Construct)
}

func (e *UnsupportedConstructError) MessageKind() int                 { return logging.LMKUsage }
func (e *UnsupportedConstructError) Position() *logging.TextPosition { return e.Pos }
