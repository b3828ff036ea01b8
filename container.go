package gleamql

// Optional wraps a field so JSON null, or an absent key, decodes to
// nil instead of failing. The selection text is unchanged.
func Optional[T any](f Field[T]) Field[*T] {
	inner := f.decode
	return Field[*T]{
		name:       f.name,
		alias:      f.alias,
		arguments:  f.arguments,
		directives: f.directives,
		variant:    f.variant,
		fragments:  f.fragments,
		decode: func(v any, path []string) (*T, []DecodeFailure) {
			if v == nil {
				return nil, nil
			}
			value, failures := inner(v, path)
			if len(failures) > 0 {
				return nil, failures
			}
			return &value, nil
		},
	}
}

// List wraps a field so the response value decodes as a JSON array of
// the wrapped shape. Decoding stops at the first failing element, with
// the element index recorded in the failure path.
func List[T any](f Field[T]) Field[[]T] {
	inner := f.decode
	return Field[[]T]{
		name:       f.name,
		alias:      f.alias,
		arguments:  f.arguments,
		directives: f.directives,
		variant:    f.variant,
		fragments:  f.fragments,
		decode: func(v any, path []string) ([]T, []DecodeFailure) {
			items, ok := v.([]any)
			if !ok {
				return nil, []DecodeFailure{newFailure("List", v, path)}
			}
			out := make([]T, 0, len(items))
			for i, item := range items {
				value, failures := inner(item, appendIndex(path, i))
				if len(failures) > 0 {
					return nil, failures
				}
				out = append(out, value)
			}
			return out, nil
		},
	}
}
