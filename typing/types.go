package typing

// DataType is the interface for all data types in Wisp.
type DataType interface {
	// Repr returns a string representing the data type
	Repr() string

	// equals takes in another DataType and returns if the two data types are
	// equal.  It is meant to only be called internally.
	equals(other DataType) bool
}

// Equals computes equality between two data types
func Equals(a, b DataType) bool {
	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive Wisp type.  Its value must be one of the
// enumerated primitive kinds below.  Wisp currently has no compound types, so
// every resolved type is a PrimType.
type PrimType uint

// Enumeration of primitive types.  `unit` is the type of expressions that
// leave no value on the stack; `bool` shares the physical representation of
// `i32`.
const (
	PrimKindI32 = iota
	PrimKindF32
	PrimKindBool
	PrimKindUnit
)

// equals for primitives is an integer comparison
func (pt PrimType) equals(other DataType) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

// Repr of a primitive type is just its corresponding annotation spelling
func (pt PrimType) Repr() string {
	switch pt {
	case PrimKindI32:
		return "i32"
	case PrimKindF32:
		return "f32"
	case PrimKindBool:
		return "bool"
	default:
		return "unit"
	}
}

// IsNumeric indicates whether a data type may be operated on by the
// arithmetic operators
func IsNumeric(dt DataType) bool {
	if pt, ok := dt.(PrimType); ok {
		return pt == PrimKindI32 || pt == PrimKindF32
	}

	return false
}
