package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wisp/syntax"
)

func TestResolveAnnotations(t *testing.T) {
	assert.Equal(t, PrimType(PrimKindI32), Resolve(syntax.AnnotI32))
	assert.Equal(t, PrimType(PrimKindF32), Resolve(syntax.AnnotF32))
	assert.Equal(t, PrimType(PrimKindBool), Resolve(syntax.AnnotBool))
	assert.Equal(t, PrimType(PrimKindUnit), Resolve(syntax.AnnotUnit))
}

func TestDissolvePrimitives(t *testing.T) {
	assert.Equal(t, []SlotType{SlotI32}, Dissolve(PrimType(PrimKindI32)))
	assert.Equal(t, []SlotType{SlotI32}, Dissolve(PrimType(PrimKindBool)))
	assert.Equal(t, []SlotType{SlotF32}, Dissolve(PrimType(PrimKindF32)))
	assert.Empty(t, Dissolve(PrimType(PrimKindUnit)))
}

func TestEquals(t *testing.T) {
	assert.True(t, Equals(PrimType(PrimKindI32), PrimType(PrimKindI32)))
	assert.False(t, Equals(PrimType(PrimKindI32), PrimType(PrimKindF32)))
	assert.False(t, Equals(PrimType(PrimKindBool), PrimType(PrimKindI32)))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(PrimType(PrimKindI32)))
	assert.True(t, IsNumeric(PrimType(PrimKindF32)))
	assert.False(t, IsNumeric(PrimType(PrimKindBool)))
	assert.False(t, IsNumeric(PrimType(PrimKindUnit)))
}

func TestRepr(t *testing.T) {
	assert.Equal(t, "i32", PrimType(PrimKindI32).Repr())
	assert.Equal(t, "f32", PrimType(PrimKindF32).Repr())
	assert.Equal(t, "bool", PrimType(PrimKindBool).Repr())
	assert.Equal(t, "unit", PrimType(PrimKindUnit).Repr())
}
