// Package argument models GraphQL argument values.
//
// A Value is a renderable GraphQL input literal: a variable reference,
// a scalar, null, a list, or an input object. Values are built with the
// constructor functions in this package and rendered into GraphQL
// syntax with Render. The concrete representations are unexported so
// the set of variants is closed.
package argument

import (
	"strconv"
	"strings"
)

// Value is a GraphQL input literal or variable reference.
type Value interface {
	// Render returns the value in GraphQL syntax.
	Render() string

	isValue()
}

// Argument is a named argument as it appears in a field or directive
// argument list.
type Argument struct {
	Name  string
	Value Value
}

// Render returns the argument in GraphQL syntax, e.g. `code: "GB"`.
func (a Argument) Render() string {
	return a.Name + ": " + a.Value.Render()
}

// ObjectEntry is a single key in an input object.
type ObjectEntry struct {
	Name  string
	Value Value
}

// Entry builds an ObjectEntry for use with Object.
func Entry(name string, value Value) ObjectEntry {
	return ObjectEntry{Name: name, Value: value}
}

// Var references an operation variable by name. The name is rendered
// with a leading "$", so Var("code") renders as "$code".
func Var(name string) Value { return variable{name: name} }

// String builds a string literal. Rendering quotes the value and
// escapes backslash, double quote, newline, carriage return and tab.
func String(v string) Value { return stringValue{v: v} }

// Int builds an integer literal.
func Int(v int) Value { return intValue{v: v} }

// Float builds a float literal.
func Float(v float64) Value { return floatValue{v: v} }

// Bool builds a boolean literal.
func Bool(v bool) Value { return boolValue{v: v} }

// Null builds the null literal.
func Null() Value { return nullValue{} }

// List builds a list literal from the given items in order.
func List(items ...Value) Value {
	return listValue{items: append([]Value(nil), items...)}
}

// Object builds an input object literal. Entries render in the order
// given, and duplicate names are rendered as-is rather than merged.
func Object(entries ...ObjectEntry) Value {
	return objectValue{entries: append([]ObjectEntry(nil), entries...)}
}

type variable struct{ name string }

func (v variable) Render() string { return "$" + v.name }
func (variable) isValue()         {}

type stringValue struct{ v string }

func (s stringValue) Render() string { return quote(s.v) }
func (stringValue) isValue()         {}

type intValue struct{ v int }

func (i intValue) Render() string { return strconv.Itoa(i.v) }
func (intValue) isValue()         {}

type floatValue struct{ v float64 }

func (f floatValue) Render() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }
func (floatValue) isValue()         {}

type boolValue struct{ v bool }

func (b boolValue) Render() string { return strconv.FormatBool(b.v) }
func (boolValue) isValue()         {}

type nullValue struct{}

func (nullValue) Render() string { return "null" }
func (nullValue) isValue()       {}

type listValue struct{ items []Value }

func (l listValue) Render() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.Render())
	}
	b.WriteByte(']')
	return b.String()
}

func (listValue) isValue() {}

type objectValue struct{ entries []ObjectEntry }

func (o objectValue) Render() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(e.Value.Render())
	}
	b.WriteByte('}')
	return b.String()
}

func (objectValue) isValue() {}

// quote renders a GraphQL string literal. The escape set is the one
// GraphQL requires for single-line strings: backslash, quote, newline,
// carriage return and tab.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
