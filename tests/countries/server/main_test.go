package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cobbinma/gleamql"
	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/directive"
	"github.com/cobbinma/gleamql/gleamqlhttp"
	"github.com/cobbinma/gleamql/internal/language"
	"github.com/cobbinma/gleamql/introspection"
)

type continentResult struct {
	Code string
	Name string
}

type countryResult struct {
	Code      string
	Name      string
	Capital   *string
	Continent continentResult
}

func countryField() gleamql.Field[countryResult] {
	return gleamql.Object[countryResult]("country",
		gleamql.Bind(gleamql.ID("code"), func(c *countryResult, v string) { c.Code = v }),
		gleamql.Bind(gleamql.String("name"), func(c *countryResult, v string) { c.Name = v }),
		gleamql.Bind(gleamql.Optional(gleamql.String("capital")), func(c *countryResult, v *string) { c.Capital = v }),
		gleamql.Bind(gleamql.Object[continentResult]("continent",
			gleamql.Bind(gleamql.ID("code"), func(ct *continentResult, v string) { ct.Code = v }),
			gleamql.Bind(gleamql.String("name"), func(ct *continentResult, v string) { ct.Name = v }),
		), func(c *countryResult, v continentResult) { c.Continent = v }),
	).WithArgument("code", argument.Var("code"))
}

func newTestServer(t *testing.T) (*httptest.Server, gleamql.Transport) {
	t.Helper()
	srv := httptest.NewServer(newHandler(newStore(), false))
	t.Cleanup(srv.Close)
	return srv, gleamqlhttp.New(srv.URL + "/graphql")
}

func TestCountryQuery(t *testing.T) {
	_, transport := newTestServer(t)
	op := gleamql.NewQuery("Country", gleamql.Optional(countryField()),
		gleamql.WithVariable("code", "ID!"))

	result, err := gleamql.Send(context.Background(), op, transport, map[string]any{"code": "GB"})
	require.NoError(t, err)
	require.NotNil(t, result)
	gb := *result
	require.NotNil(t, gb)
	require.Equal(t, "GB", gb.Code)
	require.Equal(t, "United Kingdom", gb.Name)
	require.NotNil(t, gb.Capital)
	require.Equal(t, "London", *gb.Capital)
	require.Equal(t, continentResult{Code: "EU", Name: "Europe"}, gb.Continent)

	t.Run("null capital", func(t *testing.T) {
		result, err := gleamql.Send(context.Background(), op, transport, map[string]any{"code": "BV"})
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Nil(t, (*result).Capital)
	})

	t.Run("unknown code resolves to null", func(t *testing.T) {
		result, err := gleamql.Send(context.Background(), op, transport, map[string]any{"code": "XX"})
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Nil(t, *result)
	})
}

func TestAliasedMultiRoot(t *testing.T) {
	_, transport := newTestServer(t)

	type name struct{ Name string }
	type pair struct {
		DE name
		FR name
	}
	countryName := func(alias, code string) gleamql.Field[name] {
		return gleamql.Object[name]("country",
			gleamql.Bind(gleamql.String("name"), func(n *name, v string) { n.Name = v }),
		).WithAlias(alias).WithArgument("code", argument.String(code))
	}
	root := gleamql.Root[pair]("pair",
		gleamql.Bind(countryName("de", "DE"), func(p *pair, v name) { p.DE = v }),
		gleamql.Bind(countryName("fr", "FR"), func(p *pair, v name) { p.FR = v }),
	)

	result, err := gleamql.Send(context.Background(), gleamql.NewQuery("Pair", root), transport, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "Germany", result.DE.Name)
	require.Equal(t, "France", result.FR.Name)
}

func TestFragmentSpreadOnContinent(t *testing.T) {
	_, transport := newTestServer(t)

	type brief struct {
		Code string
		Name string
	}
	briefFragment := gleamql.NewFragment[brief]("CountryBrief", "Country",
		gleamql.Bind(gleamql.ID("code"), func(b *brief, v string) { b.Code = v }),
		gleamql.Bind(gleamql.String("name"), func(b *brief, v string) { b.Name = v }),
	)
	type antarctica struct {
		Name      string
		Countries []brief
	}
	field := gleamql.Object[antarctica]("continent",
		gleamql.Bind(gleamql.String("name"), func(a *antarctica, v string) { a.Name = v }),
		gleamql.Bind(gleamql.List(gleamql.Object[brief]("countries",
			gleamql.Bind(gleamql.Spread(briefFragment), func(b *brief, v brief) { *b = v }),
		)), func(a *antarctica, v []brief) { a.Countries = v }),
	).WithArgument("code", argument.String("AN"))

	result, err := gleamql.Send(context.Background(), gleamql.NewQuery("Antarctica", field), transport, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "Antarctica", result.Name)
	require.Equal(t, []brief{{Code: "BV", Name: "Bouvet Island"}}, result.Countries)
}

func TestIncludeDirective(t *testing.T) {
	_, transport := newTestServer(t)

	type result struct {
		Code string
		Name *string
	}
	field := gleamql.Object[result]("country",
		gleamql.Bind(gleamql.ID("code"), func(r *result, v string) { r.Code = v }),
		gleamql.Bind(
			gleamql.Optional(gleamql.String("name")).WithDirective(directive.Include("withName")),
			func(r *result, v *string) { r.Name = v },
		),
	).WithArgument("code", argument.String("JP"))
	op := gleamql.NewQuery("CountryNames", field, gleamql.WithVariable("withName", "Boolean!"))

	excluded, err := gleamql.Send(context.Background(), op, transport, map[string]any{"withName": false})
	require.NoError(t, err)
	require.Nil(t, excluded.Name)

	included, err := gleamql.Send(context.Background(), op, transport, map[string]any{"withName": true})
	require.NoError(t, err)
	require.NotNil(t, included.Name)
	require.Equal(t, "Japan", *included.Name)
}

func TestIntrospectionRoundTrip(t *testing.T) {
	_, transport := newTestServer(t)

	sch, err := gleamql.Send(context.Background(), introspection.Operation(), transport, nil)
	require.NoError(t, err)
	require.NotNil(t, sch)
	require.Equal(t, "Query", sch.QueryType.Name)
	require.Nil(t, sch.MutationType)

	sdl := introspection.Render(sch)
	_, perr := language.ParseSchema("countries.graphql", sdl)
	require.NoError(t, perr)
	require.Contains(t, sdl, "type Query {")
	require.Contains(t, sdl, "country(code: ID!): Country")
	require.Contains(t, sdl, "capital: String\n")
	require.Contains(t, sdl, "continent: Continent!")
	require.NotContains(t, sdl, "directive @skip")
}

func TestServerErrors(t *testing.T) {
	srv, transport := newTestServer(t)

	t.Run("unknown field is a GraphQL error", func(t *testing.T) {
		field := gleamql.Object[struct{ X string }]("nope",
			gleamql.Bind(gleamql.String("x"), func(s *struct{ X string }, v string) { s.X = v }),
		)
		_, err := gleamql.Send(context.Background(), gleamql.NewQuery("Nope", field), transport, nil)
		var gqlErrs gleamql.GraphQLErrors
		require.ErrorAs(t, err, &gqlErrs)
		require.Len(t, gqlErrs, 1)
		require.Contains(t, gqlErrs[0].Message, `Cannot query field "nope"`)
	})

	t.Run("parse error returns 400 with errors", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/graphql", "application/json", strings.NewReader(`{"query":"{ country("}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), `"errors"`)
	})

	t.Run("GET is rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/graphql")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
