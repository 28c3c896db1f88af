package walk

import (
	"fmt"
	"strconv"

	"wisp/sem"
	"wisp/syntax"
	"wisp/typing"
)

// walkExpr lowers an expression node into instructions appended to `code` and
// returns the semantic type of the value the expression leaves on the stack
func (w *Walker) walkExpr(node syntax.ASTNode, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	switch v := node.(type) {
	case *syntax.ASTList:
		return w.walkList(v, scope, code)
	case *syntax.ASTNumberLiteral:
		return w.walkNumberLiteral(v, code)
	case *syntax.ASTSymbol:
		return w.walkSymbol(v, scope, code)
	case *syntax.ASTOperator:
		return nil, &MalformedFormError{
			Message: fmt.Sprintf("operator `%s` may only appear at the head of a form", v.OpName()),
			Pos:     v.Position(),
		}
	default:
		// only remaining node kind is a parameter vector
		return nil, &MalformedFormError{
			Message: "unexpected vector in expression position",
			Pos:     node.Position(),
		}
	}
}

// walkNumberLiteral emits a constant: an i32 if the literal parses as an
// integer, otherwise an f32 if it parses as floating-point
func (w *Walker) walkNumberLiteral(lit *syntax.ASTNumberLiteral, code *[]sem.Instr) (typing.DataType, error) {
	if i32Val, err := strconv.ParseInt(lit.Value, 10, 32); err == nil {
		*code = append(*code, sem.I32Const(int32(i32Val)))
		return typing.PrimType(typing.PrimKindI32), nil
	}

	if f32Val, err := strconv.ParseFloat(lit.Value, 32); err == nil {
		*code = append(*code, sem.F32Const(float32(f32Val)))
		return typing.PrimType(typing.PrimKindF32), nil
	}

	return nil, &NumberFormatError{Literal: lit.Value, Pos: lit.Position()}
}

// walkSymbol emits a local read for a bound symbol
func (w *Walker) walkSymbol(sym *syntax.ASTSymbol, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	if sym.Annotated {
		return nil, &MalformedFormError{
			Message: fmt.Sprintf("unexpected type annotation on `%s` in expression position", sym.Name),
			Pos:     sym.Position(),
		}
	}

	v, ok := scope.Lookup(sym.Name)
	if !ok {
		return nil, &UnboundSymbolError{
			Name:       sym.Name,
			Suggestion: suggestName(sym.Name, scope.names()),
			Pos:        sym.Position(),
		}
	}

	*code = append(*code, sem.LocalGet(v.Slot))
	return v.Type, nil
}

// walkList dispatches on the head of a parenthesized form: an arithmetic
// operator application or a function call
func (w *Walker) walkList(list *syntax.ASTList, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	if len(list.Elems) == 0 {
		return nil, &MalformedFormError{Message: "empty form", Pos: list.Position()}
	}

	operands := list.Elems[1:]

	switch head := list.Elems[0].(type) {
	case *syntax.ASTOperator:
		if head.OpKind == syntax.MINUS {
			// `-` is the one overloaded-arity operator: unary negation or
			// binary subtraction
			switch len(operands) {
			case 1:
				return w.walkUnaryExpr(head, operands[0], scope, code)
			case 2:
				return w.walkBinaryExpr(head, operands[0], operands[1], scope, code)
			default:
				return nil, &ArityError{
					Construct: "operator `-`",
					Expected:  "one or two",
					Found:     len(operands),
					Pos:       list.Position(),
				}
			}
		}

		if len(operands) != 2 {
			return nil, &ArityError{
				Construct: fmt.Sprintf("operator `%s`", head.OpName()),
				Expected:  "exactly 2",
				Found:     len(operands),
				Pos:       list.Position(),
			}
		}

		return w.walkBinaryExpr(head, operands[0], operands[1], scope, code)
	case *syntax.ASTSymbol:
		switch head.Name {
		case "let":
			return nil, &UnsupportedConstructError{Construct: "let", Pos: list.Position()}
		case "defn", "export":
			return nil, &MalformedFormError{
				Message: "function declarations may only appear at the top level",
				Pos:     list.Position(),
			}
		default:
			return w.walkCall(head, operands, scope, code)
		}
	default:
		return nil, &MalformedFormError{
			Message: "form head must be an operator or a function name",
			Pos:     list.Position(),
		}
	}
}

// walkUnaryExpr lowers unary minus.  An f32 operand negates directly; an i32
// operand subtracts from a zero constant since the instruction set has no
// dedicated integer negate.
func (w *Walker) walkUnaryExpr(op *syntax.ASTOperator, operand syntax.ASTNode, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	var operandCode []sem.Instr
	t, err := w.walkExpr(operand, scope, &operandCode)
	if err != nil {
		return nil, err
	}

	switch {
	case typing.Equals(t, typing.PrimType(typing.PrimKindF32)):
		*code = append(*code, operandCode...)
		*code = append(*code, sem.Plain(sem.OpF32Neg))
		return typing.PrimType(typing.PrimKindF32), nil
	case typing.Equals(t, typing.PrimType(typing.PrimKindI32)):
		*code = append(*code, sem.I32Const(0))
		*code = append(*code, operandCode...)
		*code = append(*code, sem.Plain(sem.OpI32Sub))
		return typing.PrimType(typing.PrimKindI32), nil
	default:
		return nil, &TypeMismatchError{
			Construct: "operator `-`",
			Operand:   "operand",
			Expected:  "a numeric type",
			Found:     t,
			Pos:       operand.Position(),
		}
	}
}

// walkBinaryExpr lowers a binary arithmetic application.  Both operands are
// emitted into temporary buffers first so each operand's own coercions are in
// place before either is appended to the output; the operand order is always
// lhs-then-rhs.  If the operand types are mixed i32/f32, a widening
// conversion is inserted immediately after the i32 operand's code and the f32
// form of the operator is used; the f32 side is never converted.
func (w *Walker) walkBinaryExpr(op *syntax.ASTOperator, lhs, rhs syntax.ASTNode, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	var lhsCode, rhsCode []sem.Instr

	lhsType, err := w.walkExpr(lhs, scope, &lhsCode)
	if err != nil {
		return nil, err
	}

	rhsType, err := w.walkExpr(rhs, scope, &rhsCode)
	if err != nil {
		return nil, err
	}

	construct := fmt.Sprintf("operator `%s`", op.OpName())
	if !typing.IsNumeric(lhsType) {
		return nil, &TypeMismatchError{
			Construct: construct,
			Operand:   "first operand",
			Expected:  "a numeric type",
			Found:     lhsType,
			Pos:       lhs.Position(),
		}
	}

	if !typing.IsNumeric(rhsType) {
		return nil, &TypeMismatchError{
			Construct: construct,
			Operand:   "second operand",
			Expected:  "a numeric type",
			Found:     rhsType,
			Pos:       rhs.Position(),
		}
	}

	lhsIsF32 := typing.Equals(lhsType, typing.PrimType(typing.PrimKindF32))
	rhsIsF32 := typing.Equals(rhsType, typing.PrimType(typing.PrimKindF32))

	var opcode sem.Op
	var resultType typing.DataType
	switch {
	case !lhsIsF32 && !rhsIsF32:
		opcode = i32BinaryOps[op.OpKind]
		resultType = typing.PrimType(typing.PrimKindI32)
	case lhsIsF32 && rhsIsF32:
		opcode = f32BinaryOps[op.OpKind]
		resultType = typing.PrimType(typing.PrimKindF32)
	case !lhsIsF32:
		// widen the i32 lhs
		lhsCode = append(lhsCode, sem.Plain(sem.OpF32ConvertI32S))
		opcode = f32BinaryOps[op.OpKind]
		resultType = typing.PrimType(typing.PrimKindF32)
	default:
		// widen the i32 rhs
		rhsCode = append(rhsCode, sem.Plain(sem.OpF32ConvertI32S))
		opcode = f32BinaryOps[op.OpKind]
		resultType = typing.PrimType(typing.PrimKindF32)
	}

	*code = append(*code, lhsCode...)
	*code = append(*code, rhsCode...)
	*code = append(*code, sem.Plain(opcode))
	return resultType, nil
}

// walkCall lowers a function application.  The callee must already be present
// in the module's function table: lookup is name-based and immediate, so a
// call to a function declared later in the source (or to the enclosing
// function itself) is an error by language rule.
func (w *Walker) walkCall(head *syntax.ASTSymbol, args []syntax.ASTNode, scope *Scope, code *[]sem.Instr) (typing.DataType, error) {
	index, fn, ok := w.mod.FunctionByName(head.Name)
	if !ok {
		return nil, &UnknownFunctionError{
			Name:       head.Name,
			Suggestion: suggestName(head.Name, w.mod.FunctionNames()),
			Pos:        head.Position(),
		}
	}

	construct := fmt.Sprintf("call to `%s`", head.Name)
	if len(args) != len(fn.ArgTypes) {
		return nil, &ArityError{
			Construct: construct,
			Expected:  strconv.Itoa(len(fn.ArgTypes)),
			Found:     len(args),
			Pos:       head.Position(),
		}
	}

	for i, arg := range args {
		argType, err := w.walkExpr(arg, scope, code)
		if err != nil {
			return nil, err
		}

		if !typing.Equals(argType, fn.ArgTypes[i]) {
			return nil, &TypeMismatchError{
				Construct: construct,
				Operand:   fmt.Sprintf("argument %d", i+1),
				Expected:  fmt.Sprintf("`%s`", fn.ArgTypes[i].Repr()),
				Found:     argType,
				Pos:       arg.Position(),
			}
		}
	}

	*code = append(*code, sem.Call(index))
	return fn.ResultType, nil
}
