package graphql_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lodgegql "github.com/shashiranjanraj/lodge/pkg/graphql"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

func echoSchema(t *testing.T) graphql.Schema {
	t.Helper()
	s, err := lodgegql.NewSchema(graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"echo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{"msg": &graphql.ArgumentConfig{Type: graphql.String}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Args["msg"], nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return s
}

func TestHandlerPostWithVariables(t *testing.T) {
	h := lodgegql.Handler(echoSchema(t))
	body := `{"query":"query($m: String) { echo(msg: $m) }","variables":{"m":"hi"}}`

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	testkit.AssertJSONEqual(t, `{"data":{"echo":"hi"}}`, rec.Body.Bytes())
}

func TestHandlerGet(t *testing.T) {
	h := lodgegql.Handler(echoSchema(t))
	q := url.Values{"query": {`{ echo(msg: "yo") }`}}

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
	testkit.AssertJSONEqual(t, `{"data":{"echo":"yo"}}`, rec.Body.Bytes())
}

func TestHandlerRequiresQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	lodgegql.Handler(echoSchema(t))(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
