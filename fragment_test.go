package gleamql

import (
	"strings"
	"testing"

	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/directive"
)

func countryFragment() Fragment[countryModel] {
	return NewFragment[countryModel]("CountryFields", "Country",
		Bind(String("name"), func(c *countryModel, v string) { c.Name = v }),
		Bind(Optional(String("capital")), func(c *countryModel, v *string) { c.Capital = v }),
	)
}

func TestFragmentDefinition(t *testing.T) {
	frag := countryFragment()
	if got, want := frag.Definition(), "fragment CountryFields on Country { name capital }"; got != want {
		t.Fatalf("definition mismatch:\nwant %q\ngot  %q", want, got)
	}
	if frag.Name() != "CountryFields" || frag.TypeCondition() != "Country" {
		t.Fatalf("unexpected metadata: %s on %s", frag.Name(), frag.TypeCondition())
	}
}

func TestFragmentDefinitionWithDirective(t *testing.T) {
	frag := countryFragment().WithDirective(directive.New("cached"))
	want := "fragment CountryFields on Country @cached { name capital }"
	if got := frag.Definition(); got != want {
		t.Fatalf("definition mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestSpreadRendering(t *testing.T) {
	spread := Spread(countryFragment())
	if got, want := spread.Selection(), "...CountryFields"; got != want {
		t.Fatalf("selection mismatch: want %q, got %q", want, got)
	}

	conditional := Spread(countryFragment()).WithDirective(directive.Include("detailed"))
	if got, want := conditional.Selection(), "...CountryFields @include(if: $detailed)"; got != want {
		t.Fatalf("selection mismatch: want %q, got %q", want, got)
	}
}

func TestOperationCollectsFragmentDefinition(t *testing.T) {
	frag := countryFragment()
	op := NewQuery("", Object[countryModel]("country",
		Bind(Spread(frag), func(c *countryModel, v countryModel) { *c = v }),
	).WithArgument("code", argument.String("GB")))

	want := "query { country(code: \"GB\") { ...CountryFields } }" +
		"\n\nfragment CountryFields on Country { name capital }"
	if got := op.Text(); got != want {
		t.Fatalf("text mismatch:\nwant %q\ngot  %q", want, got)
	}

	doc := mustParseOperation(t, op.Text())
	if len(doc.Fragments) != 1 {
		t.Fatalf("expected 1 fragment definition, got %d", len(doc.Fragments))
	}
}

func TestRepeatedSpreadRendersDefinitionOnce(t *testing.T) {
	type two struct {
		GB countryModel
		FR countryModel
	}
	frag := countryFragment()
	spreadInto := func(code, alias string) Field[countryModel] {
		return Object[countryModel]("country",
			Bind(Spread(frag), func(c *countryModel, v countryModel) { *c = v }),
		).WithArgument("code", argument.String(code)).WithAlias(alias)
	}
	op := NewQuery("TwoCountries", Root[two]("two",
		Bind(spreadInto("GB", "gb"), func(p *two, v countryModel) { p.GB = v }),
		Bind(spreadInto("FR", "fr"), func(p *two, v countryModel) { p.FR = v }),
	))

	if got := strings.Count(op.Text(), "fragment CountryFields"); got != 1 {
		t.Fatalf("expected definition to render once, found %d times in:\n%s", got, op.Text())
	}
	doc := mustParseOperation(t, op.Text())
	if len(doc.Fragments) != 1 {
		t.Fatalf("expected 1 fragment definition, got %d", len(doc.Fragments))
	}
}

func TestSpreadCollectsTransitiveDefinitions(t *testing.T) {
	type continentModel struct{ Name string }
	type countryDeep struct {
		Name      string
		Continent continentModel
	}
	continentFrag := NewFragment[continentModel]("ContinentFields", "Continent",
		Bind(String("name"), func(c *continentModel, v string) { c.Name = v }),
	)
	countryFrag := NewFragment[countryDeep]("CountryWithContinent", "Country",
		Bind(String("name"), func(c *countryDeep, v string) { c.Name = v }),
		Bind(Object[continentModel]("continent",
			Bind(Spread(continentFrag), func(c *continentModel, v continentModel) { *c = v }),
		), func(c *countryDeep, v continentModel) { c.Continent = v }),
	)
	op := NewQuery("", Object[countryDeep]("country",
		Bind(Spread(countryFrag), func(c *countryDeep, v countryDeep) { *c = v }),
	))

	want := "query { country { ...CountryWithContinent } }" +
		"\n\nfragment CountryWithContinent on Country { name continent { ...ContinentFields } }" +
		"\n\nfragment ContinentFields on Continent { name }"
	if got := op.Text(); got != want {
		t.Fatalf("text mismatch:\nwant %q\ngot  %q", want, got)
	}
	doc := mustParseOperation(t, op.Text())
	if len(doc.Fragments) != 2 {
		t.Fatalf("expected 2 fragment definitions, got %d", len(doc.Fragments))
	}
}

func TestWithFragmentForcesInclusion(t *testing.T) {
	op := NewQuery("", String("ping"), WithFragment(countryFragment()))
	if !strings.Contains(op.Text(), "fragment CountryFields on Country") {
		t.Fatalf("forced fragment missing from text:\n%s", op.Text())
	}
	mustParseOperation(t, op.Text())

	defs := op.FragmentDefinitions()
	if len(defs) != 1 {
		t.Fatalf("expected 1 fragment definition, got %d", len(defs))
	}
}
