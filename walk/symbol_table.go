package walk

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"wisp/typing"
)

// Variable is a named storage location within one function being emitted.
// The only storage currently supported is a function-local slot.
type Variable struct {
	// Slot is the local index the variable is bound to
	Slot uint32

	Type typing.DataType
}

// Scope is one frame of the chained lexical environment: a mutable name table
// plus a reference to its (immutable) parent frame.  The top-level scope is
// empty; one child scope is created per function and populated with its
// parameters before any expression is emitted.  The language has no block or
// `let` construct yet, so scopes never nest deeper than that.
type Scope struct {
	parent  *Scope
	symbols map[string]*Variable
}

// NewScope creates a scope extending the given parent (which may be nil for
// the top-level scope)
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Variable)}
}

// Define binds a name in this scope, shadowing any binding in parent scopes
func (s *Scope) Define(name string, v *Variable) {
	s.symbols[name] = v
}

// Lookup walks the scope chain child-to-parent for a binding
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.symbols[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// names collects every name visible from this scope
func (s *Scope) names() []string {
	var names []string
	for scope := s; scope != nil; scope = scope.parent {
		for name := range scope.symbols {
			names = append(names, name)
		}
	}

	return names
}

// -----------------------------------------------------------------------------

// suggestName returns the candidate closest to the given name, or an empty
// string when nothing is close enough to be a plausible typo
func suggestName(name string, candidates []string) string {
	nameRunes := []rune(name)
	closest := ""
	closestDistance := len(name)

	for _, candidate := range candidates {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		// skip candidates whose edits would amount to a complete replacement
		if distance < closestDistance && distance < len(candidate) {
			closest = candidate
			closestDistance = distance
		}
	}

	return closest
}
