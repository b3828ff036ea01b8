// Package directive models GraphQL directives applied to fields,
// fragment spreads and fragment definitions.
//
// A Directive is an immutable value: WithArg returns a copy, so a
// shared base directive can be specialized without affecting other
// users. The package provides constructors for the built-in executable
// directives and New for custom ones.
package directive

import (
	"strings"

	"github.com/cobbinma/gleamql/argument"
)

// Directive is a named directive with an ordered argument list.
type Directive struct {
	name string
	args []argument.Argument
}

// New builds a directive with the given name and no arguments. The
// name is rendered with a leading "@".
func New(name string) Directive {
	return Directive{name: name}
}

// Skip builds @skip(if: $variable).
func Skip(variable string) Directive {
	return New("skip").WithArg("if", argument.Var(variable))
}

// Include builds @include(if: $variable).
func Include(variable string) Directive {
	return New("include").WithArg("if", argument.Var(variable))
}

// SkipIf builds @skip with an inline boolean condition.
func SkipIf(v bool) Directive {
	return New("skip").WithArg("if", argument.Bool(v))
}

// IncludeIf builds @include with an inline boolean condition.
func IncludeIf(v bool) Directive {
	return New("include").WithArg("if", argument.Bool(v))
}

// Deprecated builds the @deprecated directive. An empty reason renders
// the directive without an argument list.
func Deprecated(reason string) Directive {
	if reason == "" {
		return New("deprecated")
	}
	return New("deprecated").WithArg("reason", argument.String(reason))
}

// SpecifiedBy builds @specifiedBy(url: "...").
func SpecifiedBy(url string) Directive {
	return New("specifiedBy").WithArg("url", argument.String(url))
}

// WithArg returns a copy of the directive with the argument appended.
// Arguments render in the order they were attached.
func (d Directive) WithArg(name string, value argument.Value) Directive {
	args := make([]argument.Argument, len(d.args), len(d.args)+1)
	copy(args, d.args)
	d.args = append(args, argument.Argument{Name: name, Value: value})
	return d
}

// Name returns the directive name without the leading "@".
func (d Directive) Name() string { return d.name }

// Render returns the directive in GraphQL syntax, e.g.
// `@skip(if: $draft)`.
func (d Directive) Render() string {
	if len(d.args) == 0 {
		return "@" + d.name
	}
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(d.name)
	b.WriteByte('(')
	for i, a := range d.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Render())
	}
	b.WriteByte(')')
	return b.String()
}
