package generate

import (
	"fmt"

	"wisp/sem"
)

// The fixed 8-byte file header of the binary module format.
var (
	wasmMagic   = []byte{0x00, 0x61, 0x73, 0x6D}
	wasmVersion = []byte{0x01, 0x00, 0x00, 0x00}
)

// Section ids, in the order the sections must be emitted
const (
	sectionIDType     byte = 0x01
	sectionIDFunction byte = 0x03
	sectionIDExport   byte = 0x07
	sectionIDCode     byte = 0x0A
)

// Opcode bytes for instructions without immediates
var plainOpcodeBytes = map[sem.Op]byte{
	sem.OpEnd:            0x0B,
	sem.OpDrop:           0x1A,
	sem.OpI32Add:         0x6A,
	sem.OpI32Sub:         0x6B,
	sem.OpI32Mul:         0x6C,
	sem.OpI32Div:         0x6D,
	sem.OpF32Neg:         0x8C,
	sem.OpF32Add:         0x92,
	sem.OpF32Sub:         0x93,
	sem.OpF32Mul:         0x94,
	sem.OpF32Div:         0x95,
	sem.OpF32ConvertI32S: 0xB2,
}

// Opcode bytes for instructions with immediates
const (
	opcodeLocalGet byte = 0x20
	opcodeCall     byte = 0x10
	opcodeI32Const byte = 0x41
	opcodeF32Const byte = 0x43
)

// Generator serializes a read-only sem.Module into the binary module format:
// the fixed header followed by the type, function, export, and code sections.
type Generator struct {
	mod *sem.Module
}

// NewGenerator creates a generator for the given module
func NewGenerator(mod *sem.Module) *Generator {
	return &Generator{mod: mod}
}

// Generate produces the complete byte stream of the module
func (g *Generator) Generate() ([]byte, error) {
	out := &Buffer{}
	out.writeBytes(wasmMagic)
	out.writeBytes(wasmVersion)

	g.writeTypeSection(out)
	g.writeFunctionSection(out)
	g.writeExportSection(out)

	if err := g.writeCodeSection(out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// writeSection writes a section header (id byte and payload byte length)
// followed by the payload itself
func writeSection(out *Buffer, id byte, payload *Buffer) {
	out.writeByte(id)
	out.writeUint32LEB128(uint32(payload.Len()))
	out.writeBytes(payload.Bytes())
}

// writeTypeSection writes the distinct interned signatures in ascending index
// order.  The interning table guarantees the slice order *is* index order, so
// no sorting over a hashed container ever happens here.
func (g *Generator) writeTypeSection(out *Buffer) {
	payload := &Buffer{}

	signatures := g.mod.Signatures()
	payload.writeUint32LEB128(uint32(len(signatures)))
	for _, sig := range signatures {
		writeSignature(payload, sig)
	}

	writeSection(out, sectionIDType, payload)
}

// writeSignature writes one signature entry: kind byte, params, results
func writeSignature(payload *Buffer, sig sem.Signature) {
	payload.writeByte(sig.Kind)

	payload.writeUint32LEB128(uint32(len(sig.Params)))
	for _, p := range sig.Params {
		payload.writeByte(byte(p))
	}

	payload.writeUint32LEB128(uint32(len(sig.Results)))
	for _, r := range sig.Results {
		payload.writeByte(byte(r))
	}
}

// writeFunctionSection writes each function's signature index in function
// declaration order
func (g *Generator) writeFunctionSection(out *Buffer) {
	payload := &Buffer{}

	functions := g.mod.Functions()
	payload.writeUint32LEB128(uint32(len(functions)))
	for _, fn := range functions {
		payload.writeUint32LEB128(fn.SignatureIndex)
	}

	writeSection(out, sectionIDFunction, payload)
}

// writeExportSection writes each export as a length-prefixed name, a kind
// tag, and the target function index
func (g *Generator) writeExportSection(out *Buffer) {
	payload := &Buffer{}

	exports := g.mod.Exports()
	payload.writeUint32LEB128(uint32(len(exports)))
	for _, exp := range exports {
		payload.writeName(exp.Name)
		payload.writeByte(exp.Kind)
		payload.writeUint32LEB128(exp.FuncIndex)
	}

	writeSection(out, sectionIDExport, payload)
}

// writeCodeSection writes each function body, size-prefixed, in declaration
// order
func (g *Generator) writeCodeSection(out *Buffer) error {
	payload := &Buffer{}

	functions := g.mod.Functions()
	payload.writeUint32LEB128(uint32(len(functions)))
	for _, fn := range functions {
		body := &Buffer{}
		if err := writeFunctionBody(body, fn); err != nil {
			return err
		}

		payload.writeUint32LEB128(uint32(body.Len()))
		payload.writeBytes(body.Bytes())
	}

	writeSection(out, sectionIDCode, payload)
	return nil
}

// writeFunctionBody encodes a function's instruction sequence
func writeFunctionBody(body *Buffer, fn *sem.Function) error {
	for _, instr := range fn.Body {
		switch instr.Op {
		case sem.OpLocalDeclCount:
			// encoded as a bare varint with no opcode byte
			body.writeUint32LEB128(instr.Index)
		case sem.OpLocalGet:
			body.writeByte(opcodeLocalGet)
			body.writeUint32LEB128(instr.Index)
		case sem.OpCall:
			body.writeByte(opcodeCall)
			body.writeUint32LEB128(instr.Index)
		case sem.OpI32Const:
			body.writeByte(opcodeI32Const)
			body.writeInt32LEB128(instr.IntImm)
		case sem.OpF32Const:
			body.writeByte(opcodeF32Const)
			body.writeFloat32(instr.FloatImm)
		default:
			b, ok := plainOpcodeBytes[instr.Op]
			if !ok {
				return fmt.Errorf("cannot encode unknown opcode %d in function `%s`", instr.Op, fn.Name)
			}

			body.writeByte(b)
		}
	}

	return nil
}
