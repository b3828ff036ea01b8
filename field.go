package gleamql

import (
	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/directive"
)

// Field pairs one selection with the decoder for the value it
// produces. Both sides derive from the same description, so a field
// can never render a selection its decoder does not understand.
//
// Fields are values: every With method returns a modified copy, and a
// field captured by Bind is unaffected by later modifications to the
// original.
type Field[T any] struct {
	name       string
	alias      string
	arguments  []argument.Argument
	directives []directive.Directive
	variant    selectionVariant
	fragments  []string
	decode     decodeFunc[T]
}

// selectionVariant is the closed set of shapes a selection can take.
type selectionVariant interface{ isSelectionVariant() }

// scalarSelection renders as a bare field name.
type scalarSelection struct{}

// objectSelection renders as a field name followed by a braced child
// selection set.
type objectSelection struct{ children []string }

// spreadSelection renders as "...Name".
type spreadSelection struct{ fragment string }

// inlineSelection renders as "... on Type { children }".
type inlineSelection struct {
	typeCondition string
	children      []string
}

// rootSelection renders only its children: the grouping name is
// phantom and never reaches the operation text.
type rootSelection struct{ children []string }

func (scalarSelection) isSelectionVariant() {}
func (objectSelection) isSelectionVariant() {}
func (spreadSelection) isSelectionVariant() {}
func (inlineSelection) isSelectionVariant() {}
func (rootSelection) isSelectionVariant()   {}

// WithAlias returns a copy of the field selected under the given
// response key. The decoder follows the alias: the value is read from
// the aliased key, not the field name.
func (f Field[T]) WithAlias(alias string) Field[T] {
	f.alias = alias
	return f
}

// WithArgument returns a copy of the field with the argument appended.
// Arguments render in attachment order.
func (f Field[T]) WithArgument(name string, value argument.Value) Field[T] {
	args := make([]argument.Argument, len(f.arguments), len(f.arguments)+1)
	copy(args, f.arguments)
	f.arguments = append(args, argument.Argument{Name: name, Value: value})
	return f
}

// WithDirective returns a copy of the field with the directive
// appended after any previously attached ones.
func (f Field[T]) WithDirective(d directive.Directive) Field[T] {
	ds := make([]directive.Directive, len(f.directives), len(f.directives)+1)
	copy(ds, f.directives)
	f.directives = append(ds, d)
	return f
}

// Name returns the field name as it appears in the schema. It is empty
// for inline fragments.
func (f Field[T]) Name() string { return f.name }

// Alias returns the response alias, or "" when the field is selected
// under its own name.
func (f Field[T]) Alias() string { return f.alias }

// Selection returns the text this field contributes to its enclosing
// selection set.
func (f Field[T]) Selection() string { return f.render() }

// responseKey is the key under which the server returns this field's
// value.
func (f Field[T]) responseKey() string {
	if f.alias != "" {
		return f.alias
	}
	return f.name
}
