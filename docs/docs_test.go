package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	routes := map[string][]string{
		"/login":                        {"post"},
		"/users":                        {"get", "post"},
		"/users/{id}":                   {"get", "put", "delete"},
		"/profile":                      {"put"},
		"/profile/password":             {"put"},
		"/assignments":                  {"post"},
		"/assignments/{id}":             {"get"},
		"/assignments/{id}/attachments": {"get", "post"},
		"/attachments/{id}":             {"delete"},
	}
	for path, methods := range routes {
		for _, method := range methods {
			assert.Contains(t, parsed.Paths[path], method, path)
		}
	}
}
