package introspection

import (
	"sort"
	"strings"
)

// Render produces SDL from an introspected schema.
// Deterministic ordering: type/directive names sorted lexicographically.
// Introspection types, built-in scalars and built-in directives are
// omitted.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	types := make([]Type, 0, len(s.Types))
	for _, typ := range s.Types {
		if typ.Name == nil || isBuiltInType(*typ.Name) {
			continue
		}
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return *types[i].Name < *types[j].Name })

	for _, typ := range types {
		switch typ.Kind {
		case TypeKindScalar:
			renderScalar(&b, typ)
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindInputObject:
			renderInputObject(&b, typ)
		case TypeKindObject:
			renderObject(&b, typ)
		case TypeKindInterface:
			renderInterface(&b, typ)
		case TypeKindUnion:
			renderUnion(&b, typ)
		}
	}

	directives := make([]Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		if isBuiltInDirective(d.Name) {
			continue
		}
		directives = append(directives, d)
	}
	sort.Slice(directives, func(i, j int) bool { return directives[i].Name < directives[j].Name })
	for _, d := range directives {
		renderDirective(&b, d)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func isBuiltInType(name string) bool {
	if strings.HasPrefix(name, "__") {
		return true
	}
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

func isBuiltInDirective(name string) bool {
	switch name {
	case "include", "skip", "deprecated", "specifiedBy", "oneOf":
		return true
	}
	return false
}

// ----- render helpers -----

func renderDescription(b *strings.Builder, desc *string) {
	if desc == nil || *desc == "" {
		return
	}
	b.WriteString("\"\"\"\n")
	b.WriteString(strings.ReplaceAll(*desc, "\"", "\\\""))
	b.WriteString("\n\"\"\"\n")
}

func renderScalar(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("scalar ")
	b.WriteString(*typ.Name)
	if typ.SpecifiedByURL != nil {
		b.WriteString(" @specifiedBy(url: \"")
		b.WriteString(*typ.SpecifiedByURL)
		b.WriteString("\")")
	}
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("enum ")
	b.WriteString(*typ.Name)
	b.WriteString(" {\n")
	for _, val := range typ.EnumValues {
		renderDescription(b, val.Description)
		b.WriteString("  ")
		b.WriteString(val.Name)
		renderDeprecated(b, val.IsDeprecated, val.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("input ")
	b.WriteString(*typ.Name)
	b.WriteString(" {\n")
	for _, field := range typ.InputFields {
		renderDescription(b, field.Description)
		b.WriteString("  ")
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		if field.DefaultValue != nil {
			b.WriteString(" = ")
			b.WriteString(*field.DefaultValue)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderObject(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("type ")
	b.WriteString(*typ.Name)
	renderImplements(b, typ.Interfaces)
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderInterface(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("interface ")
	b.WriteString(*typ.Name)
	renderImplements(b, typ.Interfaces)
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderImplements(b *strings.Builder, interfaces []TypeRef) {
	if len(interfaces) == 0 {
		return
	}
	b.WriteString(" implements ")
	for i, iface := range interfaces {
		if i > 0 {
			b.WriteString(" & ")
		}
		b.WriteString(iface.NamedType())
	}
}

func renderUnion(b *strings.Builder, typ Type) {
	renderDescription(b, typ.Description)
	b.WriteString("union ")
	b.WriteString(*typ.Name)
	b.WriteString(" = ")
	for i, possibleType := range typ.PossibleTypes {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(possibleType.NamedType())
	}
	b.WriteString("\n\n")
}

func renderField(b *strings.Builder, field Field) {
	renderDescription(b, field.Description)
	b.WriteString("  ")
	b.WriteString(field.Name)
	renderArguments(b, field.Args)
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	renderDeprecated(b, field.IsDeprecated, field.DeprecationReason)
	b.WriteString("\n")
}

func renderArguments(b *strings.Builder, args []InputValue) {
	if len(args) == 0 {
		return
	}
	b.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Name)
		b.WriteString(": ")
		b.WriteString(arg.Type.String())
		if arg.DefaultValue != nil {
			b.WriteString(" = ")
			b.WriteString(*arg.DefaultValue)
		}
	}
	b.WriteString(")")
}

func renderDeprecated(b *strings.Builder, isDeprecated bool, reason *string) {
	if !isDeprecated {
		return
	}
	b.WriteString(" @deprecated")
	if reason != nil && *reason != "" {
		b.WriteString("(reason: \"")
		b.WriteString(*reason)
		b.WriteString("\")")
	}
}

func renderDirective(b *strings.Builder, d Directive) {
	renderDescription(b, d.Description)
	b.WriteString("directive @")
	b.WriteString(d.Name)
	renderArguments(b, d.Args)
	b.WriteString(" on ")
	for i, location := range d.Locations {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(location)
	}
	b.WriteString("\n\n")
}
