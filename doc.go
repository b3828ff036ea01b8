// Package gleamql builds GraphQL operations and decodes their
// responses from one declarative description, so the text sent to the
// server and the decoder applied to the answer can never drift apart.
//
// # Overview
//
// The package is organized around three layers:
//   - Field: one selection (a scalar, an object with children, a
//     fragment spread, an inline fragment, or a phantom root) paired
//     with the decoder for the value that selection produces.
//   - Operation: a complete query or mutation document assembled from
//     a root field, variable declarations and the fragment definitions
//     collected from the selection tree.
//   - Send: delivery of an operation through a Transport and
//     classification of the outcome into a small error taxonomy.
//
// Both halves of a Field derive from the same description: when a
// child is bound into an object with Bind, the rendered selection and
// the decode step are produced in the same traversal. Whatever the
// operation asks for, the decoder knows how to read, and nothing else.
//
// # Construction
//
// Scalars come from String, Int, Float, Bool and ID. Optional and List
// wrap any field to accept JSON null and JSON arrays. Objects are
// assembled from bindings:
//
//	type Country struct {
//		Name    string
//		Capital *string
//	}
//
//	country := gleamql.Object[Country]("country",
//		gleamql.Bind(gleamql.String("name"), func(c *Country, v string) { c.Name = v }),
//		gleamql.Bind(gleamql.Optional(gleamql.String("capital")), func(c *Country, v *string) { c.Capital = v }),
//	).WithArgument("code", argument.Var("code"))
//
//	op := gleamql.NewQuery("GetCountry", country,
//		gleamql.WithVariable("code", "ID!"))
//
// op.Text() renders the full document; Send decodes responses into
// Country values using the decoder derived from the same bindings.
//
// Fields are immutable values. WithAlias, WithArgument and
// WithDirective return copies, and a field captured by Bind is a
// snapshot: modifying the original afterwards does not change the
// binding. Arguments and directives render in the order they were
// attached.
//
// # Fragments and roots
//
// NewFragment defines a named fragment; Spread selects it and carries
// its definition, along with every definition it transitively depends
// on, into whatever operation the selection ends up in. Each
// definition is rendered exactly once no matter how many times it is
// spread. Inline builds an inline fragment with a type condition.
//
// Root groups several top-level selections into one decoded value
// without adding a wrapper field to the document. Its name exists only
// in code; the rendered operation contains the grouped selections
// directly, and the decoder reads each one from the response data
// object.
//
// # Sending and classification
//
// Send serializes the operation and its variables to the standard
// GraphQL POST body, hands it to a Transport, and classifies the
// result:
//   - *NetworkError: the transport produced no response at all.
//   - GraphQLErrors: the response carried a top-level errors array.
//     This wins over any other interpretation, on any HTTP status.
//   - *HTTPError: a non-2xx status without a usable errors array.
//   - *InvalidJSONError: a 2xx body that is not valid JSON.
//   - *DecodeError: valid JSON whose data does not match the decoder.
//     All mismatches found during the walk are reported with their
//     response paths.
//
// A 2xx response whose data member is JSON null yields (nil, nil):
// the server answered, and the answer was empty.
//
// Transports are plain functions, so any HTTP stack can back them; the
// gleamqlhttp package provides the standard net/http implementation.
//
// # Concurrency
//
// Operations are immutable after construction. The same Operation may
// be sent concurrently from multiple goroutines with different
// variable sets.
package gleamql
