// Package introspection builds the standard GraphQL introspection
// query from gleamql selections, decodes its result, and renders the
// decoded schema back into SDL.
package introspection

import (
	"github.com/cobbinma/gleamql"
	"github.com/cobbinma/gleamql/argument"
)

// Operation builds the full introspection query. The document mirrors
// the canonical IntrospectionQuery: __schema selected through the
// FullType, InputValue and TypeRef fragments, with deprecated fields
// and enum values included.
func Operation() *gleamql.Operation[Schema] {
	typeRef := typeRefFragment()
	inputValue := inputValueFragment(typeRef)
	fullType := fullTypeFragment(typeRef, inputValue)

	root := gleamql.Object[Schema]("__schema",
		gleamql.Bind(rootTypeField("queryType"), func(s *Schema, v RootType) { s.QueryType = v }),
		gleamql.Bind(gleamql.Optional(rootTypeField("mutationType")), func(s *Schema, v *RootType) { s.MutationType = v }),
		gleamql.Bind(gleamql.Optional(rootTypeField("subscriptionType")), func(s *Schema, v *RootType) { s.SubscriptionType = v }),
		gleamql.Bind(gleamql.List(spreadField("types", fullType)), func(s *Schema, v []Type) { s.Types = v }),
		gleamql.Bind(gleamql.List(directiveField(inputValue)), func(s *Schema, v []Directive) { s.Directives = v }),
	)
	return gleamql.NewQuery("IntrospectionQuery", root)
}

// spreadField selects "name { ...Fragment }" and decodes the field's
// value through the fragment.
func spreadField[T any](name string, fr gleamql.Fragment[T]) gleamql.Field[T] {
	return gleamql.Object[T](name, gleamql.Bind(gleamql.Spread(fr), func(t *T, v T) { *t = v }))
}

func rootTypeField(name string) gleamql.Field[RootType] {
	return gleamql.Object[RootType](name,
		gleamql.Bind(gleamql.String("name"), func(t *RootType, v string) { t.Name = v }),
	)
}

func fullTypeFragment(typeRef gleamql.Fragment[TypeRef], inputValue gleamql.Fragment[InputValue]) gleamql.Fragment[Type] {
	return gleamql.NewFragment[Type]("FullType", "__Type",
		gleamql.Bind(gleamql.String("kind"), func(t *Type, v string) { t.Kind = TypeKind(v) }),
		gleamql.Bind(gleamql.Optional(gleamql.String("name")), func(t *Type, v *string) { t.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("description")), func(t *Type, v *string) { t.Description = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("specifiedByURL")), func(t *Type, v *string) { t.SpecifiedByURL = v }),
		gleamql.Bind(gleamql.Optional(gleamql.List(fieldsField(typeRef, inputValue))), func(t *Type, v *[]Field) {
			if v != nil {
				t.Fields = *v
			}
		}),
		gleamql.Bind(gleamql.Optional(gleamql.List(spreadField("inputFields", inputValue))), func(t *Type, v *[]InputValue) {
			if v != nil {
				t.InputFields = *v
			}
		}),
		gleamql.Bind(gleamql.Optional(gleamql.List(spreadField("interfaces", typeRef))), func(t *Type, v *[]TypeRef) {
			if v != nil {
				t.Interfaces = *v
			}
		}),
		gleamql.Bind(gleamql.Optional(gleamql.List(enumValuesField())), func(t *Type, v *[]EnumValue) {
			if v != nil {
				t.EnumValues = *v
			}
		}),
		gleamql.Bind(gleamql.Optional(gleamql.List(spreadField("possibleTypes", typeRef))), func(t *Type, v *[]TypeRef) {
			if v != nil {
				t.PossibleTypes = *v
			}
		}),
	)
}

func fieldsField(typeRef gleamql.Fragment[TypeRef], inputValue gleamql.Fragment[InputValue]) gleamql.Field[Field] {
	return gleamql.Object[Field]("fields",
		gleamql.Bind(gleamql.String("name"), func(f *Field, v string) { f.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("description")), func(f *Field, v *string) { f.Description = v }),
		gleamql.Bind(gleamql.List(spreadField("args", inputValue)), func(f *Field, v []InputValue) { f.Args = v }),
		gleamql.Bind(spreadField("type", typeRef), func(f *Field, v TypeRef) { f.Type = v }),
		gleamql.Bind(gleamql.Bool("isDeprecated"), func(f *Field, v bool) { f.IsDeprecated = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("deprecationReason")), func(f *Field, v *string) { f.DeprecationReason = v }),
	).WithArgument("includeDeprecated", argument.Bool(true))
}

func enumValuesField() gleamql.Field[EnumValue] {
	return gleamql.Object[EnumValue]("enumValues",
		gleamql.Bind(gleamql.String("name"), func(ev *EnumValue, v string) { ev.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("description")), func(ev *EnumValue, v *string) { ev.Description = v }),
		gleamql.Bind(gleamql.Bool("isDeprecated"), func(ev *EnumValue, v bool) { ev.IsDeprecated = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("deprecationReason")), func(ev *EnumValue, v *string) { ev.DeprecationReason = v }),
	).WithArgument("includeDeprecated", argument.Bool(true))
}

func inputValueFragment(typeRef gleamql.Fragment[TypeRef]) gleamql.Fragment[InputValue] {
	return gleamql.NewFragment[InputValue]("InputValue", "__InputValue",
		gleamql.Bind(gleamql.String("name"), func(iv *InputValue, v string) { iv.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("description")), func(iv *InputValue, v *string) { iv.Description = v }),
		gleamql.Bind(spreadField("type", typeRef), func(iv *InputValue, v TypeRef) { iv.Type = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("defaultValue")), func(iv *InputValue, v *string) { iv.DefaultValue = v }),
	)
}

// typeRefFragment unwraps seven levels of ofType, the same depth the
// canonical introspection query uses.
func typeRefFragment() gleamql.Fragment[TypeRef] {
	return gleamql.NewFragment[TypeRef]("TypeRef", "__Type", typeRefBindings(7)...)
}

func typeRefBindings(depth int) []gleamql.Binding[TypeRef] {
	bindings := []gleamql.Binding[TypeRef]{
		gleamql.Bind(gleamql.String("kind"), func(t *TypeRef, v string) { t.Kind = TypeKind(v) }),
		gleamql.Bind(gleamql.Optional(gleamql.String("name")), func(t *TypeRef, v *string) { t.Name = v }),
	}
	if depth > 0 {
		ofType := gleamql.Object[TypeRef]("ofType", typeRefBindings(depth-1)...)
		bindings = append(bindings, gleamql.Bind(gleamql.Optional(ofType), func(t *TypeRef, v *TypeRef) { t.OfType = v }))
	}
	return bindings
}

func directiveField(inputValue gleamql.Fragment[InputValue]) gleamql.Field[Directive] {
	return gleamql.Object[Directive]("directives",
		gleamql.Bind(gleamql.String("name"), func(d *Directive, v string) { d.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("description")), func(d *Directive, v *string) { d.Description = v }),
		gleamql.Bind(gleamql.List(gleamql.String("locations")), func(d *Directive, v []string) { d.Locations = v }),
		gleamql.Bind(gleamql.List(spreadField("args", inputValue)), func(d *Directive, v []InputValue) { d.Args = v }),
	)
}
