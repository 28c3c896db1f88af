package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp/logging"
)

func parseSource(t *testing.T, source string) (*ASTModule, error) {
	t.Helper()

	sc := NewScanner(strings.NewReader(source), &logging.LogContext{FilePath: "(test)"})
	return NewParser(sc).ParseModule()
}

func TestParseFunctionDeclaration(t *testing.T) {
	mod, err := parseSource(t, "(defn calc : f32 [a : f32 b : i32] (* a b))")
	require.NoError(t, err)
	require.Len(t, mod.Forms, 1)

	decl, ok := mod.Forms[0].(*ASTList)
	require.True(t, ok)
	require.Len(t, decl.Elems, 4)

	head, ok := decl.Elems[0].(*ASTSymbol)
	require.True(t, ok)
	assert.Equal(t, "defn", head.Name)
	assert.False(t, head.Annotated)

	name, ok := decl.Elems[1].(*ASTSymbol)
	require.True(t, ok)
	assert.Equal(t, "calc", name.Name)
	assert.True(t, name.Annotated)
	assert.Equal(t, TypeAnnotation(AnnotF32), name.Annot)

	params, ok := decl.Elems[2].(*ASTVector)
	require.True(t, ok)
	require.Len(t, params.Elems, 2)

	first, ok := params.Elems[0].(*ASTSymbol)
	require.True(t, ok)
	assert.Equal(t, "a", first.Name)
	assert.True(t, first.Annotated)
	assert.Equal(t, TypeAnnotation(AnnotF32), first.Annot)

	second, ok := params.Elems[1].(*ASTSymbol)
	require.True(t, ok)
	assert.Equal(t, "b", second.Name)
	assert.Equal(t, TypeAnnotation(AnnotI32), second.Annot)

	body, ok := decl.Elems[3].(*ASTList)
	require.True(t, ok)
	require.Len(t, body.Elems, 3)

	op, ok := body.Elems[0].(*ASTOperator)
	require.True(t, ok)
	assert.Equal(t, STAR, op.OpKind)
	assert.Equal(t, "*", op.OpName())
}

func TestParseNestedForms(t *testing.T) {
	mod, err := parseSource(t, "(+ 1 (- 2.5 x))")
	require.NoError(t, err)
	require.Len(t, mod.Forms, 1)

	outer := mod.Forms[0].(*ASTList)
	require.Len(t, outer.Elems, 3)

	lit, ok := outer.Elems[1].(*ASTNumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "1", lit.Value)

	inner, ok := outer.Elems[2].(*ASTList)
	require.True(t, ok)
	require.Len(t, inner.Elems, 3)

	innerLit, ok := inner.Elems[1].(*ASTNumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "2.5", innerLit.Value)

	sym, ok := inner.Elems[2].(*ASTSymbol)
	require.True(t, ok)
	assert.Equal(t, "x", sym.Name)
	assert.False(t, sym.Annotated)
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	mod, err := parseSource(t, "(defn a []) (defn b [])")
	require.NoError(t, err)
	assert.Len(t, mod.Forms, 2)
}

func TestParseUnclosedList(t *testing.T) {
	_, err := parseSource(t, "(defn f [a : i32]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed")
}

func TestParseMismatchedDelimiters(t *testing.T) {
	_, err := parseSource(t, "(a]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatched")
}

func TestParseStrayCloser(t *testing.T) {
	_, err := parseSource(t, ")")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")
}

func TestParseUnknownAnnotation(t *testing.T) {
	_, err := parseSource(t, "(defn f : i64 [])")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type annotation")

	serr, ok := err.(*SyntaxError)
	require.True(t, ok)
	assert.Equal(t, logging.LMKSyntax, serr.MessageKind())
}

func TestParseDanglingColon(t *testing.T) {
	_, err := parseSource(t, "(defn f : [])")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a type name")
}

func TestParseAnnotationSpansSymbolAndType(t *testing.T) {
	mod, err := parseSource(t, "a : i32")
	require.NoError(t, err)
	require.Len(t, mod.Forms, 1)

	sym := mod.Forms[0].(*ASTSymbol)
	pos := sym.Position()
	assert.Equal(t, 1, pos.StartCol)
	assert.Equal(t, 8, pos.EndCol)
}

func TestParseEmptyModule(t *testing.T) {
	mod, err := parseSource(t, " ; nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, mod.Forms)
}
