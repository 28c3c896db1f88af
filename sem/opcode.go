package sem

// Op enumerates the instruction kinds the emitter can produce.  This is a
// closed set: the section writer matches on it exhaustively when encoding
// function bodies.
type Op int

const (
	OpEnd Op = iota
	OpDrop

	// OpLocalDeclCount is not a real instruction: it records the count of
	// function-level local declarations and is encoded as a bare varint at the
	// start of a function body, before any opcode bytes
	OpLocalDeclCount

	OpLocalGet
	OpCall
	OpI32Const
	OpF32Const

	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32Div

	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Neg

	// OpF32ConvertI32S widens a signed i32 operand to f32; it is the only
	// conversion instruction the emitter inserts
	OpF32ConvertI32S
)

// Instr is one instruction of a function body: an op together with whichever
// immediate operand that op carries.  Instrs are plain comparable values so
// emitted bodies can be compared structurally.
type Instr struct {
	Op Op

	// IntImm is the immediate of OpI32Const
	IntImm int32

	// FloatImm is the immediate of OpF32Const
	FloatImm float32

	// Index is the immediate of OpLocalGet (local slot), OpCall (function
	// index), and OpLocalDeclCount (declaration count)
	Index uint32
}

// Constructors for the instructions that carry immediates; immediate-less
// instructions are written as `sem.Instr{Op: sem.OpEnd}` style literals or
// with Plain.

// Plain returns an instruction with no immediate
func Plain(op Op) Instr {
	return Instr{Op: op}
}

// LocalDeclCount records n function-level local declarations
func LocalDeclCount(n uint32) Instr {
	return Instr{Op: OpLocalDeclCount, Index: n}
}

// LocalGet pushes the value of local slot n
func LocalGet(n uint32) Instr {
	return Instr{Op: OpLocalGet, Index: n}
}

// Call invokes the function at declaration index n
func Call(n uint32) Instr {
	return Instr{Op: OpCall, Index: n}
}

// I32Const pushes a constant i32
func I32Const(v int32) Instr {
	return Instr{Op: OpI32Const, IntImm: v}
}

// F32Const pushes a constant f32
func F32Const(v float32) Instr {
	return Instr{Op: OpF32Const, FloatImm: v}
}
