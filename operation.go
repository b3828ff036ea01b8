package gleamql

import "strings"

// OperationKind distinguishes queries from mutations.
type OperationKind string

const (
	OperationQuery    OperationKind = "query"
	OperationMutation OperationKind = "mutation"
)

// VariableDefinition declares one operation variable with its GraphQL
// type, e.g. {Name: "code", Type: "ID!"}.
type VariableDefinition struct {
	Name string
	Type string
}

// Operation is a complete GraphQL document paired with the decoder for
// its response data. Operations are immutable once built and safe to
// send concurrently and repeatedly.
type Operation[T any] struct {
	kind      OperationKind
	name      string
	variables []VariableDefinition
	fragments []string
	text      string
	decode    func(data any) (T, []DecodeFailure)
}

// OperationOption configures an operation at construction time.
type OperationOption func(*operationConfig)

type operationConfig struct {
	variables []VariableDefinition
	fragments []string
}

// WithVariable declares an operation variable. Declarations render in
// the order given.
func WithVariable(name, graphqlType string) OperationOption {
	return func(cfg *operationConfig) {
		cfg.variables = append(cfg.variables, VariableDefinition{Name: name, Type: graphqlType})
	}
}

// WithFragment includes a fragment's definition in the document even
// when no selection spreads it. Definitions reached through spreads
// are collected automatically and never need this.
func WithFragment[T any](fr Fragment[T]) OperationOption {
	return func(cfg *operationConfig) {
		cfg.fragments = append(cfg.fragments, fr.Definition())
		cfg.fragments = append(cfg.fragments, fr.fragments...)
	}
}

// NewQuery builds a query operation around the given root selection.
// The name may be empty for an anonymous operation.
func NewQuery[T any](name string, root Field[T], opts ...OperationOption) *Operation[T] {
	return newOperation(OperationQuery, name, root, opts)
}

// NewMutation builds a mutation operation around the given root
// selection.
func NewMutation[T any](name string, root Field[T], opts ...OperationOption) *Operation[T] {
	return newOperation(OperationMutation, name, root, opts)
}

func newOperation[T any](kind OperationKind, name string, root Field[T], opts []OperationOption) *Operation[T] {
	var cfg operationConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	fragments := dedupFragments(append(append([]string{}, root.fragments...), cfg.fragments...))
	return &Operation[T]{
		kind:      kind,
		name:      name,
		variables: cfg.variables,
		fragments: fragments,
		text:      renderOperation(kind, name, cfg.variables, root, fragments),
		decode:    rootDecoder(root),
	}
}

func renderOperation[T any](kind OperationKind, name string, variables []VariableDefinition, root Field[T], fragments []string) string {
	var b strings.Builder
	b.WriteString(string(kind))
	if name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	if len(variables) > 0 {
		b.WriteByte('(')
		for i, v := range variables {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(v.Name)
			b.WriteString(": ")
			b.WriteString(v.Type)
		}
		b.WriteByte(')')
	}
	b.WriteString(" { ")
	b.WriteString(root.render())
	b.WriteString(" }")
	for _, def := range fragments {
		b.WriteString("\n\n")
		b.WriteString(def)
	}
	return b.String()
}

// rootDecoder adapts the root field's decoder to the response data
// value. Ordinary fields decode from under their response key; spreads,
// inline fragments and phantom roots decode the data object itself.
func rootDecoder[T any](root Field[T]) func(data any) (T, []DecodeFailure) {
	decode := root.decode
	switch root.variant.(type) {
	case rootSelection, spreadSelection, inlineSelection:
		return func(data any) (T, []DecodeFailure) {
			return decode(data, []string{"data"})
		}
	}
	key := root.responseKey()
	return func(data any) (T, []DecodeFailure) {
		obj, ok := data.(map[string]any)
		if !ok {
			var zero T
			return zero, []DecodeFailure{newFailure("Object", data, []string{"data"})}
		}
		return decode(obj[key], []string{"data", key})
	}
}

// Text returns the full GraphQL document: the operation followed by
// every collected fragment definition.
func (op *Operation[T]) Text() string { return op.text }

// Kind reports whether the operation is a query or a mutation.
func (op *Operation[T]) Kind() OperationKind { return op.kind }

// Name returns the operation name, or "" for anonymous operations.
func (op *Operation[T]) Name() string { return op.name }

// Variables returns the declared variable definitions in render order.
func (op *Operation[T]) Variables() []VariableDefinition {
	return append([]VariableDefinition(nil), op.variables...)
}

// FragmentDefinitions returns the deduplicated fragment definitions
// included in the document, in collection order.
func (op *Operation[T]) FragmentDefinitions() []string {
	return append([]string(nil), op.fragments...)
}

// DecodeData decodes an already-parsed response data value into the
// operation's result type. Send uses it internally; it is exposed for
// callers that receive response envelopes through other channels.
func (op *Operation[T]) DecodeData(data any) (T, []DecodeFailure) {
	return op.decode(data)
}
