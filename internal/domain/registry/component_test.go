package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParse(t *testing.T) {
	data := []byte(`[
		{
			"name": "Weather Server",
			"description": "A weather component",
			"uri": "oci://ghcr.io/microsoft/get-weather-js:latest"
		}
	]`)

	components, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "Weather Server", components[0].Name)
	assert.Equal(t, "oci://ghcr.io/microsoft/get-weather-js:latest", components[0].URI)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `[{"name": `},
		{"not an array", `{"name": "x"}`},
		{"null", `null`},
		{"missing uri", `[{"name": "x", "description": "y"}]`},
		{"wrong field type", `[{"name": 1, "description": "y", "uri": "z"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, FormatJSON, parseErr.Format)
			assert.Contains(t, err.Error(), "Failed to parse component registry JSON: ")
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	components, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestSearchNoQuery(t *testing.T) {
	components := []Component{
		{Name: "Component A", Description: "Description A", URI: "oci://example.com/a"},
		{Name: "Component B", Description: "Description B", URI: "oci://example.com/b"},
	}

	results := Search(components, nil)
	assert.Equal(t, components, results)

	// Result is a copy
	results[0].Name = "changed"
	assert.Equal(t, "Component A", components[0].Name)
}

func TestSearchWithQuery(t *testing.T) {
	components := []Component{
		{Name: "Weather Server", Description: "A weather component", URI: "oci://example.com/weather"},
		{Name: "Time Server", Description: "A time component", URI: "oci://example.com/time"},
	}

	results := Search(components, strPtr("weather"))
	require.Len(t, results, 1)
	assert.Equal(t, "Weather Server", results[0].Name)
}

func TestSearchCaseInsensitive(t *testing.T) {
	components := []Component{
		{Name: "Weather Server", Description: "A weather component", URI: "oci://example.com/weather"},
	}

	assert.Len(t, Search(components, strPtr("WEATHER")), 1)
}

func TestSearchMultiTermMatchesAny(t *testing.T) {
	components := []Component{
		{Name: "Weather Server", Description: "JavaScript weather component", URI: "oci://example.com/weather-js"},
		{Name: "Time Server", Description: "Rust time component", URI: "oci://example.com/time-rs"},
	}

	results := Search(components, strPtr("weather rust"))
	require.Len(t, results, 2)
	assert.Equal(t, "Weather Server", results[0].Name)
	assert.Equal(t, "Time Server", results[1].Name)
}

func TestSearchMatchesURI(t *testing.T) {
	components := []Component{
		{Name: "Component", Description: "A test component", URI: "oci://ghcr.io/microsoft/weather"},
	}

	assert.Len(t, Search(components, strPtr("microsoft")), 1)
}

func TestSearchBlankQuery(t *testing.T) {
	components := []Component{
		{Name: "Component", Description: "Description", URI: "oci://example.com/comp"},
	}

	assert.Len(t, Search(components, strPtr("   ")), 1)
	assert.Len(t, Search(components, strPtr("")), 1)
}

func TestSearchNoMatches(t *testing.T) {
	components := []Component{
		{Name: "Component", Description: "Description", URI: "oci://example.com/comp"},
	}

	results := Search(components, strPtr("nothing"))
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFindByName(t *testing.T) {
	components := []Component{
		{Name: "Weather Server", Description: "A weather component", URI: "oci://example.com/weather"},
	}

	c, ok := Find(components, "Weather Server")
	require.True(t, ok)
	assert.Equal(t, "Weather Server", c.Name)

	c, ok = Find(components, "weather server")
	require.True(t, ok)
	assert.Equal(t, "Weather Server", c.Name)
}

func TestFindFoldsASCIIOnly(t *testing.T) {
	components := []Component{
		{Name: "kit", Description: "toolkit", URI: "oci://example.com/kit"},
		{Name: "Éclair", Description: "pastry", URI: "oci://example.com/eclair"},
	}

	// KELVIN SIGN folds to k under Unicode rules but is not ASCII
	_, ok := Find(components, "\u212Ait")
	assert.False(t, ok)

	_, ok = Find(components, "éclair")
	assert.False(t, ok)

	c, ok := Find(components, "KIT")
	require.True(t, ok)
	assert.Equal(t, "kit", c.Name)

	c, ok = Find(components, "ÉCLAIR")
	require.True(t, ok)
	assert.Equal(t, "Éclair", c.Name)
}

func TestFindByURI(t *testing.T) {
	components := []Component{
		{Name: "Weather Server", Description: "A weather component", URI: "oci://example.com/weather"},
	}

	c, ok := Find(components, "oci://example.com/weather")
	require.True(t, ok)
	assert.Equal(t, "Weather Server", c.Name)

	// URIs compare exactly
	_, ok = Find(components, "OCI://example.com/weather")
	assert.False(t, ok)
}

func TestFindFirstMatchWins(t *testing.T) {
	components := []Component{
		{Name: "dup", Description: "first", URI: "oci://a"},
		{Name: "DUP", Description: "second", URI: "oci://b"},
	}

	c, ok := Find(components, "Dup")
	require.True(t, ok)
	assert.Equal(t, "first", c.Description)

	_, ok = Find(components, "missing")
	assert.False(t, ok)
}
