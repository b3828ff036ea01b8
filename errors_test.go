package gleamql

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathUnmarshalJSON(t *testing.T) {
	var p Path
	require.NoError(t, json.Unmarshal([]byte(`["countries",1,"name"]`), &p))
	require.Equal(t, Path{"countries", 1, "name"}, p)

	require.Error(t, json.Unmarshal([]byte(`[true]`), &p))
	require.Error(t, json.Unmarshal([]byte(`"name"`), &p))
	require.Error(t, json.Unmarshal([]byte(`[1.5]`), &p))
	require.Error(t, json.Unmarshal([]byte(`[1e300]`), &p))
}

func TestPathString(t *testing.T) {
	require.Equal(t, "countries.[1].name", Path{"countries", 1, "name"}.String())
	require.Equal(t, "country", Path{"country"}.String())
	require.Equal(t, "", Path{}.String())
}

func TestGraphQLErrorUnmarshal(t *testing.T) {
	var e GraphQLError
	err := json.Unmarshal([]byte(`{"message":"boom","path":["a",0],"extensions":{"code":"X"}}`), &e)
	require.NoError(t, err)
	require.Equal(t, GraphQLError{
		Message:    "boom",
		Path:       Path{"a", 0},
		Extensions: map[string]any{"code": "X"},
	}, e)
	require.Equal(t, "boom", e.Error())
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "gleamql: server returned an error: boom",
		GraphQLErrors{{Message: "boom"}}.Error())
	require.Equal(t, "gleamql: server returned 2 errors, first: a",
		GraphQLErrors{{Message: "a"}, {Message: "b"}}.Error())

	require.Equal(t, "gleamql: server returned HTTP 503",
		(&HTTPError{StatusCode: 503}).Error())

	cause := errors.New("connection refused")
	netErr := &NetworkError{Err: cause}
	require.Equal(t, "gleamql: network error: connection refused", netErr.Error())
	require.ErrorIs(t, netErr, cause)

	decodeErr := &DecodeError{Failures: []DecodeFailure{
		{Expected: "String", Found: "Null", Path: []string{"data", "x"}},
		{Expected: "Int", Found: "Bool", Path: []string{"data", "y"}},
	}}
	require.Equal(t,
		"gleamql: response data did not decode: expected String, found Null at data.x (and 1 more)",
		decodeErr.Error())
}
