package gleamql

import (
	"strings"

	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/directive"
)

func (f Field[T]) render() string {
	var b strings.Builder
	switch v := f.variant.(type) {
	case scalarSelection:
		writeFieldHead(&b, f.alias, f.name, f.arguments, f.directives)
	case objectSelection:
		writeFieldHead(&b, f.alias, f.name, f.arguments, f.directives)
		writeSelectionSet(&b, v.children)
	case spreadSelection:
		b.WriteString("...")
		b.WriteString(v.fragment)
		writeDirectives(&b, f.directives)
	case inlineSelection:
		b.WriteString("...")
		if v.typeCondition != "" {
			b.WriteString(" on ")
			b.WriteString(v.typeCondition)
		}
		writeDirectives(&b, f.directives)
		writeSelectionSet(&b, v.children)
	case rootSelection:
		b.WriteString(strings.Join(v.children, " "))
	}
	return b.String()
}

func writeFieldHead(b *strings.Builder, alias, name string, args []argument.Argument, directives []directive.Directive) {
	if alias != "" {
		b.WriteString(alias)
		b.WriteString(": ")
	}
	b.WriteString(name)
	writeArguments(b, args)
	writeDirectives(b, directives)
}

func writeArguments(b *strings.Builder, args []argument.Argument) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Render())
	}
	b.WriteByte(')')
}

func writeDirectives(b *strings.Builder, directives []directive.Directive) {
	for _, d := range directives {
		b.WriteByte(' ')
		b.WriteString(d.Render())
	}
}

func writeSelectionSet(b *strings.Builder, children []string) {
	b.WriteString(" { ")
	b.WriteString(strings.Join(children, " "))
	b.WriteString(" }")
}
