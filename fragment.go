package gleamql

import (
	"strings"

	"github.com/cobbinma/gleamql/directive"
)

// Fragment is a named fragment definition paired with the decoder for
// the value its fields produce.
type Fragment[T any] struct {
	name          string
	typeCondition string
	directives    []directive.Directive
	children      []string
	fragments     []string
	decode        decodeFunc[T]
}

// NewFragment defines a named fragment on the given type condition.
// Spreading it into a selection carries the definition, and every
// definition it depends on, into the enclosing operation.
func NewFragment[T any](name, typeCondition string, bindings ...Binding[T]) Fragment[T] {
	return Fragment[T]{
		name:          name,
		typeCondition: typeCondition,
		children:      bindingSelections(bindings),
		fragments:     bindingFragments(bindings),
		decode:        decodeBindings(bindings),
	}
}

// WithDirective returns a copy of the fragment with the directive
// rendered on its definition.
func (fr Fragment[T]) WithDirective(d directive.Directive) Fragment[T] {
	ds := make([]directive.Directive, len(fr.directives), len(fr.directives)+1)
	copy(ds, fr.directives)
	fr.directives = append(ds, d)
	return fr
}

// Name returns the fragment name.
func (fr Fragment[T]) Name() string { return fr.name }

// TypeCondition returns the type the fragment applies to.
func (fr Fragment[T]) TypeCondition() string { return fr.typeCondition }

// Definition returns the fragment definition text.
func (fr Fragment[T]) Definition() string {
	var b strings.Builder
	b.WriteString("fragment ")
	b.WriteString(fr.name)
	b.WriteString(" on ")
	b.WriteString(fr.typeCondition)
	writeDirectives(&b, fr.directives)
	writeSelectionSet(&b, fr.children)
	return b.String()
}

// Spread selects the fragment as "...Name". The resulting field
// carries the fragment's definition, so any operation the field ends
// up in renders the definition exactly once no matter how many times
// it is spread.
func Spread[T any](fr Fragment[T]) Field[T] {
	return Field[T]{
		name:      fr.name,
		variant:   spreadSelection{fragment: fr.name},
		fragments: dedupFragments(append([]string{fr.Definition()}, fr.fragments...)),
		decode:    fr.decode,
	}
}

// dedupFragments keeps the first occurrence of each definition,
// preserving attachment order.
func dedupFragments(definitions []string) []string {
	if len(definitions) < 2 {
		return definitions
	}
	seen := make(map[string]struct{}, len(definitions))
	out := make([]string, 0, len(definitions))
	for _, def := range definitions {
		if _, ok := seen[def]; ok {
			continue
		}
		seen[def] = struct{}{}
		out = append(out, def)
	}
	return out
}
