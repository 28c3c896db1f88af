package typing

import "wisp/syntax"

// SlotType is the physical representation of one WebAssembly stack slot.  The
// values are the type bytes of the binary format.
type SlotType byte

const (
	SlotI32 SlotType = 0x7F
	SlotF32 SlotType = 0x6F
)

// Resolve maps a surface type annotation to its semantic type.  The mapping is
// total: every annotation the parser accepts resolves to exactly one type.
func Resolve(annot syntax.TypeAnnotation) DataType {
	switch annot {
	case syntax.AnnotI32:
		return PrimType(PrimKindI32)
	case syntax.AnnotF32:
		return PrimType(PrimKindF32)
	case syntax.AnnotBool:
		return PrimType(PrimKindBool)
	default:
		return PrimType(PrimKindUnit)
	}
}

// Dissolve maps a semantic type to the sequence of physical stack slots a
// value of that type occupies: `i32` and `bool` dissolve to one i32 slot,
// `f32` to one f32 slot, and `unit` to no slots at all.  It is used both to
// compute a function's physical signature and to count how many stack values
// must be dropped when an expression's value goes unused.
func Dissolve(dt DataType) []SlotType {
	pt, ok := dt.(PrimType)
	if !ok {
		return nil
	}

	switch pt {
	case PrimKindI32, PrimKindBool:
		return []SlotType{SlotI32}
	case PrimKindF32:
		return []SlotType{SlotF32}
	default:
		return nil
	}
}
