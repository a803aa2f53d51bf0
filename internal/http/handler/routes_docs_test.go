package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prelaunch/docs"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestRegisteredRoutesMatchAPIDocs(t *testing.T) {
	app, _ := newTestApp(t)

	served := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || !strings.HasPrefix(r.Path, "/api") && r.Path != "/health" && r.Path != "/healthz" {
			continue
		}
		path := routeParam.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		served[strings.ToLower(r.Method)+" "+path] = true
	}

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[method+" "+path] = true
		}
	}

	for route := range served {
		assert.True(t, documented[route], "route %q is served but missing from the API docs", route)
	}
	for route := range documented {
		assert.True(t, served[route], "route %q is documented but not served", route)
	}
	assert.Len(t, documented, len(served))
}
