package walk

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp/logging"
	"wisp/sem"
	"wisp/syntax"
	"wisp/typing"
)

func walkSource(t *testing.T, source string) (*sem.Module, error) {
	t.Helper()

	sc := syntax.NewScanner(strings.NewReader(source), &logging.LogContext{FilePath: "(test)"})
	astMod, err := syntax.NewParser(sc).ParseModule()
	require.NoError(t, err)

	mod := sem.NewModule()
	return mod, NewWalker(mod).WalkModule(astMod)
}

func mustWalk(t *testing.T, source string) *sem.Module {
	t.Helper()

	mod, err := walkSource(t, source)
	require.NoError(t, err)
	return mod
}

func bodyOf(t *testing.T, mod *sem.Module, name string) []sem.Instr {
	t.Helper()

	_, fn, ok := mod.FunctionByName(name)
	require.True(t, ok, "function %s not declared", name)
	return fn.Body
}

func TestWalkArithmeticBody(t *testing.T) {
	mod := mustWalk(t, "(defn calc : f32 (a : f32 b : i32) (* 10 (/ (+ a (- b 1)) 2)))")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.I32Const(10),
		sem.Plain(sem.OpF32ConvertI32S),
		sem.LocalGet(0),
		sem.LocalGet(1),
		sem.I32Const(1),
		sem.Plain(sem.OpI32Sub),
		sem.Plain(sem.OpF32ConvertI32S),
		sem.Plain(sem.OpF32Add),
		sem.I32Const(2),
		sem.Plain(sem.OpF32ConvertI32S),
		sem.Plain(sem.OpF32Div),
		sem.Plain(sem.OpF32Mul),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "calc"))

	require.Len(t, mod.Signatures(), 1)
	sig := mod.Signatures()[0]
	assert.Equal(t, []typing.SlotType{typing.SlotF32, typing.SlotI32}, sig.Params)
	assert.Equal(t, []typing.SlotType{typing.SlotF32}, sig.Results)
}

func TestWalkUnaryMinus(t *testing.T) {
	mod := mustWalk(t,
		"(defn neg_f32 : f32 [n : f32] (- n)) (defn neg_i32 : i32 [n : i32] (- n))")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.LocalGet(0),
		sem.Plain(sem.OpF32Neg),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "neg_f32"))

	// no integer negate instruction exists: 0 - n
	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.I32Const(0),
		sem.LocalGet(0),
		sem.Plain(sem.OpI32Sub),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "neg_i32"))
}

func TestWalkMixedOperandsWidenOnlyTheI32Side(t *testing.T) {
	mod := mustWalk(t,
		"(defn lhs : f32 [a : i32 b : f32] (+ a b)) (defn rhs : f32 [a : f32 b : i32] (+ a b))")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.LocalGet(0),
		sem.Plain(sem.OpF32ConvertI32S),
		sem.LocalGet(1),
		sem.Plain(sem.OpF32Add),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "lhs"))

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.LocalGet(0),
		sem.LocalGet(1),
		sem.Plain(sem.OpF32ConvertI32S),
		sem.Plain(sem.OpF32Add),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "rhs"))
}

func TestWalkIntegerOperatorsStayInteger(t *testing.T) {
	mod := mustWalk(t, "(defn f : i32 [a : i32 b : i32] (/ (* a b) (+ a b)))")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.LocalGet(0),
		sem.LocalGet(1),
		sem.Plain(sem.OpI32Mul),
		sem.LocalGet(0),
		sem.LocalGet(1),
		sem.Plain(sem.OpI32Add),
		sem.Plain(sem.OpI32Div),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "f"))
}

func TestWalkExportedFunction(t *testing.T) {
	mod := mustWalk(t, "(export defn addTwo : i32 [a : i32 b : i32] (+ a b))")

	require.Len(t, mod.Exports(), 1)
	assert.Equal(t, sem.Export{Kind: sem.ExportKindFunc, Name: "addTwo", FuncIndex: 0}, mod.Exports()[0])
}

func TestWalkUnexportedFunctionHasNoExport(t *testing.T) {
	mod := mustWalk(t, "(defn addTwo : i32 [a : i32 b : i32] (+ a b))")
	assert.Empty(t, mod.Exports())
}

func TestWalkFunctionCall(t *testing.T) {
	mod := mustWalk(t,
		"(defn addTwo : i32 [a : i32, b : i32] (+ a b)) (export defn main [] (addTwo 10 20))")

	// main is unit, so the call result gets dropped
	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.I32Const(10),
		sem.I32Const(20),
		sem.Call(0),
		sem.Plain(sem.OpDrop),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "main"))
}

func TestWalkNonFinalFormsAreDropped(t *testing.T) {
	mod := mustWalk(t, "(defn f : i32 [a : i32] (+ a 1) a)")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.LocalGet(0),
		sem.I32Const(1),
		sem.Plain(sem.OpI32Add),
		sem.Plain(sem.OpDrop),
		sem.LocalGet(0),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "f"))
}

func TestWalkEmptyUnitBody(t *testing.T) {
	mod := mustWalk(t, "(defn noop [])")

	assert.Equal(t, []sem.Instr{
		sem.LocalDeclCount(0),
		sem.Plain(sem.OpEnd),
	}, bodyOf(t, mod, "noop"))
}

func TestWalkSharedSignatures(t *testing.T) {
	mod := mustWalk(t,
		"(defn f : i32 [a : i32 b : i32] (+ a b)) (defn g : i32 [x : i32 y : i32] (* x y))")

	assert.Len(t, mod.Signatures(), 1)
	_, f, _ := mod.FunctionByName("f")
	_, g, _ := mod.FunctionByName("g")
	assert.Equal(t, f.SignatureIndex, g.SignatureIndex)
}

func TestWalkForwardReferenceFails(t *testing.T) {
	_, err := walkSource(t,
		"(defn main [] (helper 1)) (defn helper : i32 [n : i32] n)")
	require.Error(t, err)

	var uerr *UnknownFunctionError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "helper", uerr.Name)
}

func TestWalkSelfRecursionFails(t *testing.T) {
	_, err := walkSource(t, "(defn f : i32 [n : i32] (f n))")
	require.Error(t, err)

	var uerr *UnknownFunctionError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "f", uerr.Name)
}

func TestWalkUnknownFunctionSuggestion(t *testing.T) {
	_, err := walkSource(t,
		"(defn addTwo : i32 [a : i32 b : i32] (+ a b)) (defn main [] (adTwo 1 2))")
	require.Error(t, err)

	var uerr *UnknownFunctionError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "adTwo", uerr.Name)
	assert.Equal(t, "addTwo", uerr.Suggestion)
	assert.Contains(t, uerr.Error(), "did you mean `addTwo`?")
}

func TestWalkUnboundSymbol(t *testing.T) {
	_, err := walkSource(t, "(defn f : i32 [abc : i32] abd)")
	require.Error(t, err)

	var uerr *UnboundSymbolError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "abd", uerr.Name)
	assert.Equal(t, "abc", uerr.Suggestion)
}

func TestWalkCallArity(t *testing.T) {
	_, err := walkSource(t,
		"(defn addTwo : i32 [a : i32 b : i32] (+ a b)) (defn main [] (addTwo 1))")
	require.Error(t, err)

	var aerr *ArityError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "2", aerr.Expected)
	assert.Equal(t, 1, aerr.Found)
}

func TestWalkCallArgumentType(t *testing.T) {
	_, err := walkSource(t,
		"(defn addTwo : i32 [a : i32 b : i32] (+ a b)) (defn main [] (addTwo 1 2.5))")
	require.Error(t, err)

	var terr *TypeMismatchError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "argument 2", terr.Operand)
}

func TestWalkOperatorArity(t *testing.T) {
	_, err := walkSource(t, "(defn f : i32 [a : i32 b : i32 c : i32] (- a b c))")
	require.Error(t, err)

	var aerr *ArityError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "one or two", aerr.Expected)
	assert.Equal(t, 3, aerr.Found)

	_, err = walkSource(t, "(defn g : i32 [a : i32] (+ a))")
	require.Error(t, err)
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "exactly 2", aerr.Expected)
}

func TestWalkOperandTypeMismatch(t *testing.T) {
	_, err := walkSource(t, "(defn f [a : bool] (+ a 1))")
	require.Error(t, err)

	var terr *TypeMismatchError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "first operand", terr.Operand)
	assert.Contains(t, terr.Error(), "`bool`")
}

func TestWalkReturnTypeMismatch(t *testing.T) {
	_, err := walkSource(t, "(defn f : f32 [a : i32] a)")
	require.Error(t, err)

	var rerr *ReturnTypeMismatchError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "f", rerr.FuncName)
	assert.Equal(t, "f32", rerr.Declared.Repr())
	assert.Equal(t, "i32", rerr.Found.Repr())
}

func TestWalkEmptyBodyWithDeclaredResult(t *testing.T) {
	_, err := walkSource(t, "(defn f : i32 [])")
	require.Error(t, err)

	var rerr *ReturnTypeMismatchError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "unit", rerr.Found.Repr())
}

func TestWalkNumberFormatError(t *testing.T) {
	_, err := walkSource(t, "(defn f : f32 [] 1.2.3)")
	require.Error(t, err)

	var nerr *NumberFormatError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "1.2.3", nerr.Literal)
}

func TestWalkLetUnsupported(t *testing.T) {
	_, err := walkSource(t, "(defn f [] (let [x 1] x))")
	require.Error(t, err)

	var uerr *UnsupportedConstructError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "let", uerr.Construct)
}

func TestWalkNestedDeclarationRejected(t *testing.T) {
	_, err := walkSource(t, "(defn f [] (defn g []))")
	require.Error(t, err)

	var merr *MalformedFormError
	require.True(t, errors.As(err, &merr))
	assert.Contains(t, merr.Error(), "top level")
}

func TestWalkTopLevelMustBeDeclaration(t *testing.T) {
	_, err := walkSource(t, "42")
	require.Error(t, err)

	var merr *MalformedFormError
	require.True(t, errors.As(err, &merr))

	_, err = walkSource(t, "(frobnicate 1 2)")
	require.Error(t, err)
	require.True(t, errors.As(err, &merr))
}

func TestWalkAnnotatedSymbolInExpression(t *testing.T) {
	_, err := walkSource(t, "(defn f : i32 [a : i32] a : i32)")
	require.Error(t, err)

	var merr *MalformedFormError
	require.True(t, errors.As(err, &merr))
	assert.Contains(t, merr.Error(), "annotation")
}

func TestSuggestName(t *testing.T) {
	assert.Equal(t, "addTwo", suggestName("adTwo", []string{"main", "addTwo"}))
	assert.Equal(t, "", suggestName("zzz", []string{"main", "addTwo"}))
	assert.Equal(t, "", suggestName("x", nil))
}
