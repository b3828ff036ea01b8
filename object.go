package gleamql

// Binding attaches one child selection to a parent object value. It
// carries the child's rendered selection, the fragment definitions the
// child depends on, and a decode step that reads the child's value out
// of the parent's response object and writes it into the parent value
// under construction.
type Binding[T any] struct {
	selection string
	fragments []string
	decode    func(obj map[string]any, path []string, target *T) []DecodeFailure
}

// Bind couples a child field with the setter that stores its decoded
// value on the parent. The selection text and the decode step come
// from the same child description, which is what keeps an operation's
// text and its decoder structurally in sync.
//
// Fragment spreads, inline fragments and phantom roots have no
// response key of their own: the server merges their fields into the
// enclosing object, so their decode step reads the parent object
// directly.
func Bind[T, C any](child Field[C], assign func(*T, C)) Binding[T] {
	selection := child.render()
	fragments := child.fragments
	decode := child.decode

	switch child.variant.(type) {
	case spreadSelection, inlineSelection, rootSelection:
		return Binding[T]{
			selection: selection,
			fragments: fragments,
			decode: func(obj map[string]any, path []string, target *T) []DecodeFailure {
				value, failures := decode(obj, path)
				if len(failures) > 0 {
					return failures
				}
				assign(target, value)
				return nil
			},
		}
	}

	key := child.responseKey()
	return Binding[T]{
		selection: selection,
		fragments: fragments,
		decode: func(obj map[string]any, path []string, target *T) []DecodeFailure {
			value, failures := decode(obj[key], appendKey(path, key))
			if len(failures) > 0 {
				return failures
			}
			assign(target, value)
			return nil
		},
	}
}

// Object selects a field whose value is assembled from the given
// bindings. Decode failures from every binding are collected, not just
// the first.
func Object[T any](name string, bindings ...Binding[T]) Field[T] {
	return Field[T]{
		name:      name,
		variant:   objectSelection{children: bindingSelections(bindings)},
		fragments: bindingFragments(bindings),
		decode:    decodeBindings(bindings),
	}
}

// Root groups several top-level selections into one value without
// introducing a wrapper field. The name identifies the group in code
// but never renders: as an operation root the children become the
// operation's selection set, and a Root bound inside another selection
// merges its children into the enclosing one.
func Root[T any](name string, bindings ...Binding[T]) Field[T] {
	return Field[T]{
		name:      name,
		variant:   rootSelection{children: bindingSelections(bindings)},
		fragments: bindingFragments(bindings),
		decode:    decodeBindings(bindings),
	}
}

// Inline selects an inline fragment. An empty type condition renders a
// bare "... { }" group. Its fields decode from the enclosing object, so
// bindings on a type the server did not return decode as absent keys.
func Inline[T any](typeCondition string, bindings ...Binding[T]) Field[T] {
	return Field[T]{
		variant:   inlineSelection{typeCondition: typeCondition, children: bindingSelections(bindings)},
		fragments: bindingFragments(bindings),
		decode:    decodeBindings(bindings),
	}
}

func bindingSelections[T any](bindings []Binding[T]) []string {
	selections := make([]string, len(bindings))
	for i, b := range bindings {
		selections[i] = b.selection
	}
	return selections
}

func bindingFragments[T any](bindings []Binding[T]) []string {
	var all []string
	for _, b := range bindings {
		all = append(all, b.fragments...)
	}
	return dedupFragments(all)
}

func decodeBindings[T any](bindings []Binding[T]) decodeFunc[T] {
	return func(v any, path []string) (T, []DecodeFailure) {
		var out T
		obj, ok := v.(map[string]any)
		if !ok {
			return out, []DecodeFailure{newFailure("Object", v, path)}
		}
		var failures []DecodeFailure
		for _, b := range bindings {
			failures = append(failures, b.decode(obj, path, &out)...)
		}
		if len(failures) > 0 {
			var zero T
			return zero, failures
		}
		return out, nil
	}
}
