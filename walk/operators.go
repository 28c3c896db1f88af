package walk

import (
	"wisp/sem"
	"wisp/syntax"
)

// The binary operator tables map an operator's token kind to the instruction
// implementing it for each numeric operand type.  Overload resolution picks
// the i32 table only when both operands are i32; any i32/f32 mix widens the
// i32 side and uses the f32 table.

var i32BinaryOps = map[int]sem.Op{
	syntax.PLUS:   sem.OpI32Add,
	syntax.MINUS:  sem.OpI32Sub,
	syntax.STAR:   sem.OpI32Mul,
	syntax.FSLASH: sem.OpI32Div,
}

var f32BinaryOps = map[int]sem.Op{
	syntax.PLUS:   sem.OpF32Add,
	syntax.MINUS:  sem.OpF32Sub,
	syntax.STAR:   sem.OpF32Mul,
	syntax.FSLASH: sem.OpF32Div,
}
