package sem

import (
	"wisp/typing"
)

// FuncSignatureKind is the binary-format tag introducing a function signature
// in the type section
const FuncSignatureKind byte = 0x60

// ExportKindFunc is the binary-format tag for a function export.  Functions
// are currently the only exportable kind.
const ExportKindFunc byte = 0x00

// Signature is the physical type of a function: the stack slots it consumes
// and produces.  Signatures are value types compared structurally; the module
// interns them so structurally equal signatures always share one index.
type Signature struct {
	Kind    byte
	Params  []typing.SlotType
	Results []typing.SlotType
}

// NewFuncSignature computes a function's physical signature by dissolving each
// of its parameter types (concatenated in order) and its result type
func NewFuncSignature(paramTypes []typing.DataType, resultType typing.DataType) Signature {
	sig := Signature{Kind: FuncSignatureKind}

	for _, pt := range paramTypes {
		sig.Params = append(sig.Params, typing.Dissolve(pt)...)
	}

	sig.Results = typing.Dissolve(resultType)
	return sig
}

// key produces the interning key of a signature.  Slot types are single bytes
// so the raw byte string is already unambiguous.
func (sig Signature) key() string {
	k := make([]byte, 0, len(sig.Params)+len(sig.Results)+2)
	k = append(k, sig.Kind)
	for _, p := range sig.Params {
		k = append(k, byte(p))
	}

	k = append(k, 0)
	for _, r := range sig.Results {
		k = append(k, byte(r))
	}

	return string(k)
}

// Function is one compiled function: its interned signature index, its
// semantic argument and result types (used for call-site checking), and its
// emitted body.  The body always ends with an End instruction.  Once emission
// completes, the function belongs to the module and is never mutated again.
type Function struct {
	Name           string
	SignatureIndex uint32
	ArgTypes       []typing.DataType
	ResultType     typing.DataType
	Body           []Instr
}

// Export marks a function as visible to the embedding environment under a
// UTF-8 name
type Export struct {
	Kind      byte
	Name      string
	FuncIndex uint32
}

// -----------------------------------------------------------------------------

// Module is the in-memory representation of one compiled source unit.  It is
// built function-by-function in source order by a single emission pass and
// then handed read-only to the section writer.
type Module struct {
	// signatures is the insertion-ordered table of distinct signatures; a
	// signature's index is its rank in this slice
	signatures []Signature

	// sigIndices maps a signature's interning key to its assigned index; map
	// iteration order is never relied upon -- serialization walks the ordered
	// slice above
	sigIndices map[string]uint32

	// functions is the ordered function table; a function's index is its
	// declaration order in the source unit
	functions []*Function

	// funcIndices maps declared names to declaration indices for call-site
	// lookup.  A function must already be present here to be callable, so
	// forward references and mutual recursion are impossible by construction.
	funcIndices map[string]uint32

	exports []Export
}

// NewModule creates a new, empty module
func NewModule() *Module {
	return &Module{
		sigIndices:  make(map[string]uint32),
		funcIndices: make(map[string]uint32),
	}
}

// InternSignature returns the index assigned to a signature, reusing an
// existing index on structural match or allocating the next one otherwise.
// Assigned indices are stable for the lifetime of the module.
func (m *Module) InternSignature(sig Signature) uint32 {
	key := sig.key()
	if index, ok := m.sigIndices[key]; ok {
		return index
	}

	index := uint32(len(m.signatures))
	m.signatures = append(m.signatures, sig)
	m.sigIndices[key] = index
	return index
}

// Signatures returns the distinct signatures in ascending index order
func (m *Module) Signatures() []Signature {
	return m.signatures
}

// AddFunction appends a function to the function table under its declared
// name and returns its declaration index.  A redeclared name rebinds the name
// to the new function while the old function keeps its index (matching the
// declaration-order rule: the table is positional, the name map is not).
func (m *Module) AddFunction(fn *Function) uint32 {
	index := uint32(len(m.functions))
	m.functions = append(m.functions, fn)
	m.funcIndices[fn.Name] = index
	return index
}

// FunctionByName looks up a previously declared function by name
func (m *Module) FunctionByName(name string) (uint32, *Function, bool) {
	index, ok := m.funcIndices[name]
	if !ok {
		return 0, nil, false
	}

	return index, m.functions[index], true
}

// FunctionNames returns the declared function names (in no particular order);
// used to build "did you mean" suggestions
func (m *Module) FunctionNames() []string {
	names := make([]string, 0, len(m.funcIndices))
	for name := range m.funcIndices {
		names = append(names, name)
	}

	return names
}

// Functions returns the function table in declaration order
func (m *Module) Functions() []*Function {
	return m.functions
}

// AddExport records an export entry
func (m *Module) AddExport(exp Export) {
	m.exports = append(m.exports, exp)
}

// Exports returns the export list in declaration order
func (m *Module) Exports() []Export {
	return m.exports
}
