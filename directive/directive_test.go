package directive

import (
	"fmt"
	"testing"

	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/internal/language"
	"github.com/stretchr/testify/require"
)

func TestRenderBuiltins(t *testing.T) {
	tests := []struct {
		name      string
		directive Directive
		want      string
	}{
		{"skip", Skip("draft"), "@skip(if: $draft)"},
		{"include", Include("extended"), "@include(if: $extended)"},
		{"skip if", SkipIf(true), "@skip(if: true)"},
		{"include if", IncludeIf(false), "@include(if: false)"},
		{"deprecated with reason", Deprecated("use newField"), `@deprecated(reason: "use newField")`},
		{"deprecated bare", Deprecated(""), "@deprecated"},
		{"specified by", SpecifiedBy("https://example.com/spec"), `@specifiedBy(url: "https://example.com/spec")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.directive.Render())
		})
	}
}

func TestWithArgKeepsAttachmentOrder(t *testing.T) {
	d := New("paginate").
		WithArg("last", argument.Int(10)).
		WithArg("before", argument.Var("cursor"))
	require.Equal(t, "@paginate(last: 10, before: $cursor)", d.Render())
}

func TestWithArgDoesNotMutateReceiver(t *testing.T) {
	base := New("cache")
	ttl := base.WithArg("ttl", argument.Int(60))
	scope := base.WithArg("scope", argument.String("PRIVATE"))

	require.Equal(t, "@cache", base.Render())
	require.Equal(t, "@cache(ttl: 60)", ttl.Render())
	require.Equal(t, `@cache(scope: "PRIVATE")`, scope.Render())
}

func TestRenderedDirectivesParseAsGraphQL(t *testing.T) {
	directives := []Directive{
		Skip("draft"),
		SkipIf(false),
		Deprecated("old"),
		New("rateLimit").WithArg("max", argument.Int(100)).WithArg("window", argument.String("1m")),
	}
	for _, d := range directives {
		src := fmt.Sprintf("query { field %s }", d.Render())
		_, err := language.ParseQuery(src)
		require.NoError(t, err, "source: %s", src)
	}
}
