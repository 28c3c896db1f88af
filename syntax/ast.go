package syntax

import (
	"wisp/logging"
)

// ASTNode represents a piece of the Abstract Syntax Tree (AST)
type ASTNode interface {
	// Position should span the entire ASTNode (meaningfully)
	Position() *logging.TextPosition
}

// TextPositionOfToken takes in a token and returns its text position
func TextPositionOfToken(tok *Token) *logging.TextPosition {
	return &logging.TextPosition{StartLn: tok.Line, StartCol: tok.Col - len(tok.Value) + 1, EndLn: tok.Line, EndCol: tok.Col + 1}
}

// TextPositionOfSpan takes two nodes and returns a text position that spans them
func TextPositionOfSpan(start, end ASTNode) *logging.TextPosition {
	return &logging.TextPosition{
		StartLn:  start.Position().StartLn,
		StartCol: start.Position().StartCol,
		EndLn:    end.Position().EndLn,
		EndCol:   end.Position().EndCol,
	}
}

// -----------------------------------------------------------------------------

// TypeAnnotation is a surface-syntax type label attached to a symbol with `:`.
// It is input-only: the walker resolves it to a semantic type and never
// mutates it.
type TypeAnnotation int

// Enumeration of type annotations
const (
	AnnotUnit = iota // also used when no annotation is written
	AnnotI32
	AnnotF32
	AnnotBool
)

// annotationNames maps annotation spellings to their values
var annotationNames = map[string]TypeAnnotation{
	"unit": AnnotUnit,
	"i32":  AnnotI32,
	"f32":  AnnotF32,
	"bool": AnnotBool,
}

// -----------------------------------------------------------------------------

// ASTModule is the root node: the ordered list of top-level forms in one
// source unit
type ASTModule struct {
	Forms []ASTNode
}

// Position of a module spans all of its forms
func (m *ASTModule) Position() *logging.TextPosition {
	if len(m.Forms) == 0 {
		return &logging.TextPosition{StartLn: 1, StartCol: 1, EndLn: 1, EndCol: 1}
	}

	return TextPositionOfSpan(m.Forms[0], m.Forms[len(m.Forms)-1])
}

// ASTList is a parenthesized form: an operator/operand application
type ASTList struct {
	Elems []ASTNode
	Span  *logging.TextPosition
}

func (l *ASTList) Position() *logging.TextPosition { return l.Span }

// ASTVector is a bracketed sequence, used for function parameter lists
type ASTVector struct {
	Elems []ASTNode
	Span  *logging.TextPosition
}

func (v *ASTVector) Position() *logging.TextPosition { return v.Span }

// ASTOperator is an arithmetic operator appearing at the head of a list.  Its
// kind is the operator's token kind (PLUS, MINUS, STAR, FSLASH).
type ASTOperator struct {
	OpKind int
	Pos    *logging.TextPosition
}

func (o *ASTOperator) Position() *logging.TextPosition { return o.Pos }

// OpName returns the operator's spelling for error messages
func (o *ASTOperator) OpName() string {
	switch o.OpKind {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	default:
		return "/"
	}
}

// ASTSymbol is a name, optionally paired with a type annotation
// (`name : type`)
type ASTSymbol struct {
	Name string

	// Annotated indicates whether an annotation was actually written; when it
	// is false, Annot is AnnotUnit
	Annotated bool
	Annot     TypeAnnotation

	Pos *logging.TextPosition
}

func (s *ASTSymbol) Position() *logging.TextPosition { return s.Pos }

// ASTNumberLiteral is an unparsed numeric literal; the walker decides whether
// it denotes an i32 or an f32
type ASTNumberLiteral struct {
	Value string
	Pos   *logging.TextPosition
}

func (n *ASTNumberLiteral) Position() *logging.TextPosition { return n.Pos }
