package introspection

// TypeKind is the __TypeKind enum of the introspection schema.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

// Schema is the decoded result of the standard introspection query.
type Schema struct {
	QueryType        RootType    `json:"queryType"`
	MutationType     *RootType   `json:"mutationType"`
	SubscriptionType *RootType   `json:"subscriptionType"`
	Types            []Type      `json:"types"`
	Directives       []Directive `json:"directives"`
}

// RootType names one of the schema's root operation types.
type RootType struct {
	Name string `json:"name"`
}

// Type is a single member of the schema's type registry. Which of the
// optional fields are set depends on Kind: Fields and Interfaces for
// objects and interfaces, EnumValues for enums, InputFields for input
// objects, PossibleTypes for unions and interfaces.
type Type struct {
	Kind           TypeKind     `json:"kind"`
	Name           *string      `json:"name"`
	Description    *string      `json:"description"`
	SpecifiedByURL *string      `json:"specifiedByURL,omitempty"`
	Fields         []Field      `json:"fields,omitempty"`
	InputFields    []InputValue `json:"inputFields,omitempty"`
	Interfaces     []TypeRef    `json:"interfaces,omitempty"`
	EnumValues     []EnumValue  `json:"enumValues,omitempty"`
	PossibleTypes  []TypeRef    `json:"possibleTypes,omitempty"`
}

// Field is an output field of an object or interface type.
type Field struct {
	Name              string       `json:"name"`
	Description       *string      `json:"description"`
	Args              []InputValue `json:"args"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

// InputValue is a field argument, directive argument or input object
// field. DefaultValue, when present, is already formatted as a GraphQL
// literal.
type InputValue struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Type         TypeRef `json:"type"`
	DefaultValue *string `json:"defaultValue"`
}

// EnumValue is one member of an enum type.
type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

// Directive describes a directive supported by the server.
type Directive struct {
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Locations   []string     `json:"locations"`
	Args        []InputValue `json:"args"`
}

// TypeRef is a potentially wrapped reference to a named type. LIST and
// NON_NULL kinds wrap OfType; every other kind carries Name.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// String renders the reference in type syntax, e.g. "[Country!]!".
func (t TypeRef) String() string {
	switch t.Kind {
	case TypeKindNonNull:
		if t.OfType == nil {
			return ""
		}
		return t.OfType.String() + "!"
	case TypeKindList:
		if t.OfType == nil {
			return ""
		}
		return "[" + t.OfType.String() + "]"
	default:
		if t.Name == nil {
			return ""
		}
		return *t.Name
	}
}

// NamedType returns the name of the innermost named type.
func (t TypeRef) NamedType() string {
	cur := &t
	for cur.OfType != nil {
		cur = cur.OfType
	}
	if cur.Name == nil {
		return ""
	}
	return *cur.Name
}
