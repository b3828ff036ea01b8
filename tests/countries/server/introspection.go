package main

// introspectionValue builds the canned __schema response value for the
// countries schema. Every key the standard introspection query selects
// is present, so the full IntrospectionQuery document projects cleanly.
func introspectionValue() map[string]any {
	idRef := namedRef("SCALAR", "ID")
	stringRef := namedRef("SCALAR", "String")
	booleanRef := namedRef("SCALAR", "Boolean")
	countryRef := namedRef("OBJECT", "Country")
	continentRef := namedRef("OBJECT", "Continent")

	queryType := objectTypeDef("Query", "The countries fixture root.",
		fieldDef("country", "Look up one country by its ISO code.", countryRef,
			inputValueDef("code", "", nonNullRef(idRef))),
		fieldDef("countries", "Every country, ordered by code.", nonNullRef(listRef(nonNullRef(countryRef)))),
		fieldDef("continent", "Look up one continent by its code.", continentRef,
			inputValueDef("code", "", nonNullRef(idRef))),
		fieldDef("continents", "Every continent, ordered by code.", nonNullRef(listRef(nonNullRef(continentRef)))),
	)
	countryType := objectTypeDef("Country", "",
		fieldDef("code", "", nonNullRef(idRef)),
		fieldDef("name", "", nonNullRef(stringRef)),
		fieldDef("capital", "", stringRef),
		fieldDef("currency", "", stringRef),
		fieldDef("phone", "", nonNullRef(stringRef)),
		fieldDef("continent", "", nonNullRef(continentRef)),
	)
	continentType := objectTypeDef("Continent", "",
		fieldDef("code", "", nonNullRef(idRef)),
		fieldDef("name", "", nonNullRef(stringRef)),
		fieldDef("countries", "", nonNullRef(listRef(nonNullRef(countryRef)))),
	)

	return map[string]any{
		"queryType":        map[string]any{"name": "Query"},
		"mutationType":     nil,
		"subscriptionType": nil,
		"types": []any{
			queryType,
			countryType,
			continentType,
			scalarTypeDef("Boolean"),
			scalarTypeDef("Float"),
			scalarTypeDef("ID"),
			scalarTypeDef("Int"),
			scalarTypeDef("String"),
		},
		"directives": []any{
			directiveDef("include",
				"Directs the executor to include this field or fragment only when the `if` argument is true.",
				[]string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
				inputValueDef("if", "Included when true.", nonNullRef(booleanRef))),
			directiveDef("skip",
				"Directs the executor to skip this field or fragment when the `if` argument is true.",
				[]string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
				inputValueDef("if", "Skipped when true.", nonNullRef(booleanRef))),
			directiveDef("deprecated",
				"Marks an element of a GraphQL schema as no longer supported.",
				[]string{"FIELD_DEFINITION", "ENUM_VALUE"},
				inputValueDef("reason", "", stringRef)),
		},
	}
}

func namedRef(kind, name string) map[string]any {
	return map[string]any{"kind": kind, "name": name, "ofType": nil}
}

func nonNullRef(of map[string]any) map[string]any {
	return map[string]any{"kind": "NON_NULL", "name": nil, "ofType": of}
}

func listRef(of map[string]any) map[string]any {
	return map[string]any{"kind": "LIST", "name": nil, "ofType": of}
}

func objectTypeDef(name, description string, fields ...map[string]any) map[string]any {
	return map[string]any{
		"kind":           "OBJECT",
		"name":           name,
		"description":    nullable(description),
		"specifiedByURL": nil,
		"fields":         anyValues(fields),
		"inputFields":    nil,
		"interfaces":     []any{},
		"enumValues":     nil,
		"possibleTypes":  nil,
	}
}

func scalarTypeDef(name string) map[string]any {
	return map[string]any{
		"kind":           "SCALAR",
		"name":           name,
		"description":    nil,
		"specifiedByURL": nil,
		"fields":         nil,
		"inputFields":    nil,
		"interfaces":     nil,
		"enumValues":     nil,
		"possibleTypes":  nil,
	}
}

func fieldDef(name, description string, typ map[string]any, args ...map[string]any) map[string]any {
	return map[string]any{
		"name":              name,
		"description":       nullable(description),
		"args":              anyValues(args),
		"type":              typ,
		"isDeprecated":      false,
		"deprecationReason": nil,
	}
}

func inputValueDef(name, description string, typ map[string]any) map[string]any {
	return map[string]any{
		"name":         name,
		"description":  nullable(description),
		"type":         typ,
		"defaultValue": nil,
	}
}

func directiveDef(name, description string, locations []string, args ...map[string]any) map[string]any {
	return map[string]any{
		"name":        name,
		"description": nullable(description),
		"locations":   anyValues(locations),
		"args":        anyValues(args),
	}
}

func anyValues[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
