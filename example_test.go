package gleamql_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/cobbinma/gleamql"
	"github.com/cobbinma/gleamql/argument"
	"github.com/cobbinma/gleamql/gleamqlhttp"
)

func ExampleSend() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"country":{"name":"United Kingdom","capital":"London"}}}`)
	}))
	defer server.Close()

	type Country struct {
		Name    string
		Capital *string
	}
	op := gleamql.NewQuery("GetCountry",
		gleamql.Object[Country]("country",
			gleamql.Bind(gleamql.String("name"), func(c *Country, v string) { c.Name = v }),
			gleamql.Bind(gleamql.Optional(gleamql.String("capital")), func(c *Country, v *string) { c.Capital = v }),
		).WithArgument("code", argument.Var("code")),
		gleamql.WithVariable("code", "ID!"))

	result, err := gleamql.Send(context.Background(), op, gleamqlhttp.New(server.URL), map[string]any{"code": "GB"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Name)
	fmt.Println(*result.Capital)
	// Output:
	// United Kingdom
	// London
}

func ExampleOperation_Text() {
	type Country struct{ Name string }
	op := gleamql.NewQuery("GetCountry",
		gleamql.Object[Country]("country",
			gleamql.Bind(gleamql.String("name"), func(c *Country, v string) { c.Name = v }),
		).WithArgument("code", argument.String("GB")))
	fmt.Println(op.Text())
	// Output: query GetCountry { country(code: "GB") { name } }
}
