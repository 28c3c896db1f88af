package walk

import (
	"fmt"

	"wisp/sem"
	"wisp/syntax"
	"wisp/typing"
)

// walkDef walks a top-level function declaration:
//
//	(defn name : type [param : type ...] form ...)
//	(export defn name : type [param : type ...] form ...)
//
// A missing result annotation means `unit`.  The function is appended to the
// module's table only after its whole body has been emitted, which is what
// makes self-recursion and forward references impossible: a callee must be
// fully declared earlier in the source.  This is a language rule, not an
// emission accident.
func (w *Walker) walkDef(list *syntax.ASTList) error {
	isExport, slice, err := w.parseDefHeader(list)
	if err != nil {
		return err
	}

	// declared name with its optional result annotation
	nameSym, ok := slice[0].(*syntax.ASTSymbol)
	if !ok {
		return &MalformedFormError{
			Message: "a function name (optionally annotated with `:`) is expected after `defn`",
			Pos:     slice[0].Position(),
		}
	}

	resultType := typing.Resolve(nameSym.Annot)

	// parameter sequence; both `[a : i32]` and `(a : i32)` are accepted
	var params []syntax.ASTNode
	switch v := slice[1].(type) {
	case *syntax.ASTVector:
		params = v.Elems
	case *syntax.ASTList:
		params = v.Elems
	default:
		return &MalformedFormError{
			Message: fmt.Sprintf("a parameter vector is expected after the name of `%s`", nameSym.Name),
			Pos:     slice[1].Position(),
		}
	}

	// bind each parameter to a local slot, in declaration order starting at 0
	scope := NewScope(w.topScope)
	argTypes := make([]typing.DataType, len(params))
	for i, param := range params {
		paramSym, ok := param.(*syntax.ASTSymbol)
		if !ok || !paramSym.Annotated {
			return &MalformedFormError{
				Message: "function parameter should be a symbol annotated with `:`",
				Pos:     param.Position(),
			}
		}

		argTypes[i] = typing.Resolve(paramSym.Annot)
		scope.Define(paramSym.Name, &Variable{Slot: uint32(i), Type: argTypes[i]})
	}

	body, err := w.walkFuncBody(nameSym, resultType, slice[2:], scope)
	if err != nil {
		return err
	}

	sigIndex := w.mod.InternSignature(sem.NewFuncSignature(argTypes, resultType))
	funcIndex := w.mod.AddFunction(&sem.Function{
		Name:           nameSym.Name,
		SignatureIndex: sigIndex,
		ArgTypes:       argTypes,
		ResultType:     resultType,
		Body:           body,
	})

	if isExport {
		w.mod.AddExport(sem.Export{
			Kind:      sem.ExportKindFunc,
			Name:      nameSym.Name,
			FuncIndex: funcIndex,
		})
	}

	return nil
}

// parseDefHeader consumes the optional `export` marker and the `defn` keyword,
// returning the remaining declaration elements (name, parameter vector, body
// forms)
func (w *Walker) parseDefHeader(list *syntax.ASTList) (bool, []syntax.ASTNode, error) {
	slice := list.Elems

	head, ok := slice[0].(*syntax.ASTSymbol)
	if !ok {
		return false, nil, &MalformedFormError{
			Message: "top-level form must be a function declaration",
			Pos:     list.Position(),
		}
	}

	isExport := false
	if head.Name == "export" {
		if len(slice) < 2 {
			return false, nil, &MalformedFormError{
				Message: "`defn` is expected after `export`",
				Pos:     list.Position(),
			}
		}

		defnSym, ok := slice[1].(*syntax.ASTSymbol)
		if !ok || defnSym.Name != "defn" {
			return false, nil, &MalformedFormError{
				Message: "`defn` is expected after `export`",
				Pos:     slice[1].Position(),
			}
		}

		isExport = true
		slice = slice[2:]
	} else if head.Name == "defn" {
		slice = slice[1:]
	} else {
		return false, nil, &MalformedFormError{
			Message: "declaration must start with `export` or `defn`",
			Pos:     head.Position(),
		}
	}

	// name and parameter vector must both be present; body forms may be empty
	if len(slice) < 2 {
		return false, nil, &MalformedFormError{
			Message: "function declaration requires a name and a parameter vector",
			Pos:     list.Position(),
		}
	}

	return isExport, slice, nil
}

// walkFuncBody emits the body forms of a function.  Every form except the last
// has its value drained with one Drop per occupied stack slot; the last form
// is likewise drained when the declared result is `unit`, and otherwise must
// leave exactly the declared result type on the stack.
func (w *Walker) walkFuncBody(nameSym *syntax.ASTSymbol, resultType typing.DataType, forms []syntax.ASTNode, scope *Scope) ([]sem.Instr, error) {
	unit := typing.PrimType(typing.PrimKindUnit)

	// no function-level locals beyond parameters yet
	body := []sem.Instr{sem.LocalDeclCount(0)}

	for i, form := range forms {
		formType, err := w.walkExpr(form, scope, &body)
		if err != nil {
			return nil, err
		}

		if i == len(forms)-1 && !typing.Equals(resultType, unit) {
			if !typing.Equals(formType, resultType) {
				return nil, &ReturnTypeMismatchError{
					FuncName: nameSym.Name,
					Declared: resultType,
					Found:    formType,
					Pos:      form.Position(),
				}
			}

			break
		}

		// drop the unused value, slot by slot
		for range typing.Dissolve(formType) {
			body = append(body, sem.Plain(sem.OpDrop))
		}
	}

	// an empty body leaves nothing on the stack, which only satisfies `unit`
	if len(forms) == 0 && !typing.Equals(resultType, unit) {
		return nil, &ReturnTypeMismatchError{
			FuncName: nameSym.Name,
			Declared: resultType,
			Found:    unit,
			Pos:      nameSym.Position(),
		}
	}

	return append(body, sem.Plain(sem.OpEnd)), nil
}
