package walk

import (
	"wisp/sem"
	"wisp/syntax"
)

// Walker lowers the AST of one source unit into a sem.Module: it resolves
// types and symbols, emits instruction sequences for function bodies, and
// populates the module's signature, function, and export tables.  One walker
// processes one unit start-to-finish; the module it builds is read-only
// afterwards.
type Walker struct {
	mod *sem.Module

	// topScope is the empty top-level environment every function scope
	// extends.  The language has no global bindings yet.
	topScope *Scope
}

// NewWalker creates a walker populating the given module
func NewWalker(mod *sem.Module) *Walker {
	return &Walker{
		mod:      mod,
		topScope: NewScope(nil),
	}
}

// WalkModule walks every top-level form of a source unit in source order.
// The first error aborts the walk; the partially populated module must then
// be discarded by the caller.
func (w *Walker) WalkModule(astMod *syntax.ASTModule) error {
	for _, form := range astMod.Forms {
		list, ok := form.(*syntax.ASTList)
		if !ok {
			return &MalformedFormError{
				Message: "top-level form must be a function declaration",
				Pos:     form.Position(),
			}
		}

		if len(list.Elems) == 0 {
			return &MalformedFormError{Message: "empty form", Pos: list.Position()}
		}

		if err := w.walkDef(list); err != nil {
			return err
		}
	}

	return nil
}
