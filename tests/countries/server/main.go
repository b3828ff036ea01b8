// Command server is an in-memory countries GraphQL backend used to
// exercise the client end to end: query execution with aliases,
// fragments, inline fragments and @skip/@include, plus a canned
// introspection schema.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/cobbinma/gleamql/internal/language"
)

type country struct {
	code          string
	name          string
	capital       string // empty means null
	currency      string
	phone         string
	continentCode string
}

type continentInfo struct {
	code string
	name string
}

type store struct {
	countries        []country
	continents       []continentInfo
	continentsByCode map[string]continentInfo
}

func newStore() *store {
	s := &store{
		countries: []country{
			{"BR", "Brazil", "Brasília", "BRL", "55", "SA"},
			{"BV", "Bouvet Island", "", "NOK", "47", "AN"},
			{"DE", "Germany", "Berlin", "EUR", "49", "EU"},
			{"ES", "Spain", "Madrid", "EUR", "34", "EU"},
			{"FR", "France", "Paris", "EUR", "33", "EU"},
			{"GB", "United Kingdom", "London", "GBP", "44", "EU"},
			{"JP", "Japan", "Tokyo", "JPY", "81", "AS"},
			{"KE", "Kenya", "Nairobi", "KES", "254", "AF"},
			{"US", "United States", "Washington D.C.", "USD", "1", "NA"},
		},
		continents: []continentInfo{
			{"AF", "Africa"},
			{"AN", "Antarctica"},
			{"AS", "Asia"},
			{"EU", "Europe"},
			{"NA", "North America"},
			{"SA", "South America"},
		},
		continentsByCode: make(map[string]continentInfo),
	}
	for _, ct := range s.continents {
		s.continentsByCode[ct.code] = ct
	}
	return s
}

// countryValue builds the response value for one country. The continent
// is a thunk so the country/continent cycle only materializes as far as
// the query selects.
func (s *store) countryValue(c country) map[string]any {
	return map[string]any{
		"__typename": "Country",
		"code":       c.code,
		"name":       c.name,
		"capital":    nullable(c.capital),
		"currency":   nullable(c.currency),
		"phone":      c.phone,
		"continent": func() any {
			return s.continentValue(s.continentsByCode[c.continentCode])
		},
	}
}

func (s *store) continentValue(ct continentInfo) map[string]any {
	return map[string]any{
		"__typename": "Continent",
		"code":       ct.code,
		"name":       ct.name,
		"countries": func() any {
			out := []any{}
			for _, c := range s.countries {
				if c.continentCode == ct.code {
					out = append(out, s.countryValue(c))
				}
			}
			return out
		},
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// gqlError is the wire shape of one entry in the response errors array.
type gqlError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

func (s *store) execute(doc *language.QueryDocument, opName string, vars map[string]any) (map[string]any, *gqlError) {
	op, gerr := selectOperation(doc, opName)
	if gerr != nil {
		return nil, gerr
	}
	if op.Operation != language.Query {
		return nil, &gqlError{Message: fmt.Sprintf("schema has no %s operations", op.Operation)}
	}

	w := &walker{
		store:     s,
		fragments: make(map[string]*language.FragmentDefinition),
		variables: vars,
	}
	for _, frag := range doc.Fragments {
		w.fragments[frag.Name] = frag
	}

	out := map[string]any{}
	if err := w.rootInto(out, op.SelectionSet); err != nil {
		return nil, err
	}
	return out, nil
}

func selectOperation(doc *language.QueryDocument, opName string) (*language.OperationDefinition, *gqlError) {
	if opName == "" {
		if len(doc.Operations) != 1 {
			return nil, &gqlError{Message: "operationName is required when the document defines several operations"}
		}
		return doc.Operations[0], nil
	}
	if op := doc.Operations.ForName(opName); op != nil {
		return op, nil
	}
	return nil, &gqlError{Message: fmt.Sprintf("operation %q is not defined in the document", opName)}
}

// walker projects response values through a selection set.
type walker struct {
	store     *store
	fragments map[string]*language.FragmentDefinition
	variables map[string]any
}

func (w *walker) rootInto(out map[string]any, set language.SelectionSet) *gqlError {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *language.Field:
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return gerr
			}
			if !include {
				continue
			}
			key := sel.Alias
			value, gerr := w.resolveRootField(sel)
			if gerr != nil {
				return gerr
			}
			projected, gerr := w.project(value, sel.SelectionSet, []any{key})
			if gerr != nil {
				return gerr
			}
			out[key] = projected
		case *language.FragmentSpread:
			frag, ok := w.fragments[sel.Name]
			if !ok {
				return &gqlError{Message: fmt.Sprintf("unknown fragment %q", sel.Name)}
			}
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return gerr
			}
			if !include {
				continue
			}
			if err := w.rootInto(out, frag.SelectionSet); err != nil {
				return err
			}
		case *language.InlineFragment:
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return gerr
			}
			if !include {
				continue
			}
			if sel.TypeCondition == "" || sel.TypeCondition == "Query" {
				if err := w.rootInto(out, sel.SelectionSet); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *walker) resolveRootField(f *language.Field) (any, *gqlError) {
	switch f.Name {
	case "__typename":
		return "Query", nil
	case "__schema":
		return introspectionValue(), nil
	case "country":
		code, gerr := w.argString(f, "code")
		if gerr != nil {
			return nil, gerr
		}
		code = strings.ToUpper(code)
		for _, c := range w.store.countries {
			if c.code == code {
				return w.store.countryValue(c), nil
			}
		}
		return nil, nil
	case "countries":
		out := []any{}
		for _, c := range w.store.countries {
			out = append(out, w.store.countryValue(c))
		}
		return out, nil
	case "continent":
		code, gerr := w.argString(f, "code")
		if gerr != nil {
			return nil, gerr
		}
		ct, ok := w.store.continentsByCode[strings.ToUpper(code)]
		if !ok {
			return nil, nil
		}
		return w.store.continentValue(ct), nil
	case "continents":
		out := []any{}
		for _, ct := range w.store.continents {
			out = append(out, w.store.continentValue(ct))
		}
		return out, nil
	default:
		return nil, &gqlError{Message: fmt.Sprintf("Cannot query field %q on type \"Query\"", f.Name)}
	}
}

func (w *walker) argString(f *language.Field, name string) (string, *gqlError) {
	arg := f.Arguments.ForName(name)
	if arg == nil {
		return "", &gqlError{Message: fmt.Sprintf("argument %q is required on field %q", name, f.Name)}
	}
	value, err := arg.Value.Value(w.variables)
	if err != nil {
		return "", &gqlError{Message: err.Error()}
	}
	str, ok := value.(string)
	if !ok {
		return "", &gqlError{Message: fmt.Sprintf("argument %q on field %q must be a string", name, f.Name)}
	}
	return str, nil
}

func (w *walker) project(value any, set language.SelectionSet, path []any) (any, *gqlError) {
	if thunk, ok := value.(func() any); ok {
		value = thunk()
	}
	if value == nil {
		return nil, nil
	}
	if len(set) == 0 {
		return value, nil
	}
	switch v := value.(type) {
	case map[string]any:
		return w.projectObject(v, set, path)
	case []any:
		out := make([]any, 0, len(v))
		for i, item := range v {
			projected, gerr := w.project(item, set, appendPath(path, i))
			if gerr != nil {
				return nil, gerr
			}
			out = append(out, projected)
		}
		return out, nil
	default:
		return value, nil
	}
}

func (w *walker) projectObject(obj map[string]any, set language.SelectionSet, path []any) (map[string]any, *gqlError) {
	out := map[string]any{}
	for _, sel := range set {
		switch sel := sel.(type) {
		case *language.Field:
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return nil, gerr
			}
			if !include {
				continue
			}
			key := sel.Alias
			if sel.Name == "__typename" {
				out[key] = obj["__typename"]
				continue
			}
			raw, ok := obj[sel.Name]
			if !ok {
				return nil, &gqlError{
					Message: fmt.Sprintf("Cannot query field %q on type %q", sel.Name, typename(obj)),
					Path:    appendPath(path, key),
				}
			}
			projected, gerr := w.project(raw, sel.SelectionSet, appendPath(path, key))
			if gerr != nil {
				return nil, gerr
			}
			out[key] = projected
		case *language.FragmentSpread:
			frag, ok := w.fragments[sel.Name]
			if !ok {
				return nil, &gqlError{Message: fmt.Sprintf("unknown fragment %q", sel.Name)}
			}
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return nil, gerr
			}
			if !include || !applies(obj, frag.TypeCondition) {
				continue
			}
			merged, gerr := w.projectObject(obj, frag.SelectionSet, path)
			if gerr != nil {
				return nil, gerr
			}
			maps.Copy(out, merged)
		case *language.InlineFragment:
			include, gerr := w.includeSelection(sel.Directives)
			if gerr != nil {
				return nil, gerr
			}
			if !include || !applies(obj, sel.TypeCondition) {
				continue
			}
			merged, gerr := w.projectObject(obj, sel.SelectionSet, path)
			if gerr != nil {
				return nil, gerr
			}
			maps.Copy(out, merged)
		}
	}
	return out, nil
}

// applies reports whether a fragment's type condition matches the
// object. Values without a __typename, such as introspection results,
// match any condition.
func applies(obj map[string]any, typeCondition string) bool {
	if typeCondition == "" {
		return true
	}
	tn, ok := obj["__typename"].(string)
	if !ok {
		return true
	}
	return tn == typeCondition
}

func (w *walker) includeSelection(directives language.DirectiveList) (bool, *gqlError) {
	for _, d := range directives {
		if d.Name != "skip" && d.Name != "include" {
			continue
		}
		arg := d.Arguments.ForName("if")
		if arg == nil {
			return false, &gqlError{Message: fmt.Sprintf("directive @%s requires argument \"if\"", d.Name)}
		}
		value, err := arg.Value.Value(w.variables)
		if err != nil {
			return false, &gqlError{Message: err.Error()}
		}
		cond, ok := value.(bool)
		if !ok {
			return false, &gqlError{Message: fmt.Sprintf("argument \"if\" of @%s must be a boolean", d.Name)}
		}
		if d.Name == "skip" && cond {
			return false, nil
		}
		if d.Name == "include" && !cond {
			return false, nil
		}
	}
	return true, nil
}

func typename(obj map[string]any) string {
	if tn, ok := obj["__typename"].(string); ok {
		return tn
	}
	return "Object"
}

func appendPath(path []any, elem any) []any {
	out := make([]any, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}

type requestPayload struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

func newHandler(s *store, pretty bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorsResponse("read request body"), pretty)
			return
		}
		var req requestPayload
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorsResponse("request body is not valid JSON"), pretty)
			return
		}

		status := http.StatusOK
		var payload map[string]any
		doc, err := language.ParseQuery(req.Query)
		if err != nil {
			status = http.StatusBadRequest
			payload = errorsResponse(err.Error())
		} else if data, gerr := s.execute(doc, req.OperationName, req.Variables); gerr != nil {
			payload = map[string]any{"errors": []any{gerr}}
		} else {
			payload = map[string]any{"data": data}
		}
		writeJSON(w, status, payload, pretty)

		op := req.OperationName
		if op == "" {
			op = "(anonymous)"
		}
		log.Printf("graphql op=%s status=%d req=%dB duration=%s", op, status, len(body), time.Since(start))
	})
	return mux
}

func errorsResponse(message string) map[string]any {
	return map[string]any{"errors": []any{&gqlError{Message: message}}}
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]any, pretty bool) {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(payload, "", "  ")
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

func main() {
	addr := flag.String("addr", ":8090", "the address to listen on")
	pretty := flag.Bool("pretty", false, "pretty-print JSON responses")
	flag.Parse()

	log.Printf("countries GraphQL server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newHandler(newStore(), *pretty)); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
