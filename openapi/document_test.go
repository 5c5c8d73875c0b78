package openapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocumentYAML(t *testing.T) {
	doc := completedDoc(t)

	data, err := doc.YAML()
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "openapi: 3.0.3\n"), text)
	assert.NotContains(t, text, "{\"")

	var out struct {
		OpenAPI string `yaml:"openapi"`
		Info    struct {
			Title string `yaml:"title"`
		} `yaml:"info"`
		Paths map[string]map[string]struct {
			OperationID string                    `yaml:"operationId"`
			Responses   map[string]map[string]any `yaml:"responses"`
		} `yaml:"paths"`
		Components struct {
			Schemas map[string]any `yaml:"schemas"`
		} `yaml:"components"`
	}
	require.NoError(t, yaml.Unmarshal(data, &out))

	assert.Equal(t, "3.0.3", out.OpenAPI)
	assert.Equal(t, "Test API", out.Info.Title)

	op := out.Paths["/users/{id}"]["get"]
	assert.Equal(t, "getUsersId", op.OperationID)
	assert.Equal(t, "#/components/responses/User-Response", op.Responses["200"]["$ref"])
	assert.Contains(t, op.Responses, "404")
	assert.Contains(t, out.Components.Schemas, "User")
}

func TestDocumentJSON(t *testing.T) {
	doc := completedDoc(t)

	data, err := doc.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"openapi\": \"3.0.3\"")
}

func TestDocumentRefs(t *testing.T) {
	doc := completedDoc(t)

	refs, err := doc.Refs()
	require.NoError(t, err)

	assert.Contains(t, refs, "#/components/responses/User-Response")
	assert.Contains(t, refs, "#/components/schemas/ErrorBody")
	assert.Contains(t, refs, "#/components/headers/X-Request-ID")
	for _, ref := range refs {
		assert.True(t, doc.Resolve(ref), ref)
	}
}

func TestDocumentOperationCount(t *testing.T) {
	doc := completedDoc(t)
	assert.Equal(t, 1, doc.OperationCount())

	assert.Equal(t, 0, (&Document{}).OperationCount())
}
