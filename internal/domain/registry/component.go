package registry

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Component is one registry entry
type Component struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
	URI         string `json:"uri" yaml:"uri" toml:"uri"`
}

// Format identifies a registry document encoding
type Format string

const (
	FormatJSON Format = "JSON"
	FormatYAML Format = "YAML"
	FormatTOML Format = "TOML"
)

// ParseError reports a malformed registry document
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse component registry %s: %s", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rawComponent detects absent fields, which are rejected
type rawComponent struct {
	Name        *string `json:"name" yaml:"name" toml:"name"`
	Description *string `json:"description" yaml:"description" toml:"description"`
	URI         *string `json:"uri" yaml:"uri" toml:"uri"`
}

// tomlDocument is the TOML shape: an array of [[components]] tables
type tomlDocument struct {
	Components []rawComponent `toml:"components"`
}

// Parse decodes a JSON array of components
func Parse(data []byte) ([]Component, error) {
	return ParseFormat(data, FormatJSON)
}

// ParseFormat decodes a registry document in the given format
func ParseFormat(data []byte, format Format) ([]Component, error) {
	var (
		raw []rawComponent
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		var doc tomlDocument
		err = toml.Unmarshal(data, &doc)
		raw = doc.Components
		if err == nil && raw == nil {
			raw = []rawComponent{}
		}
	default:
		format = FormatJSON
		err = sonic.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Format: format, Err: fmt.Errorf("expected a list of components")}
	}

	components := make([]Component, 0, len(raw))
	for i, rc := range raw {
		c, err := rc.component(i)
		if err != nil {
			return nil, &ParseError{Format: format, Err: err}
		}
		components = append(components, c)
	}
	return components, nil
}

func (rc rawComponent) component(index int) (Component, error) {
	switch {
	case rc.Name == nil:
		return Component{}, fmt.Errorf("missing field `name` in component %d", index)
	case rc.Description == nil:
		return Component{}, fmt.Errorf("missing field `description` in component %d", index)
	case rc.URI == nil:
		return Component{}, fmt.Errorf("missing field `uri` in component %d", index)
	}
	return Component{Name: *rc.Name, Description: *rc.Description, URI: *rc.URI}, nil
}

// Search returns components matching any whitespace-separated term of query
// in their name, description or URI, ignoring case. A nil or blank query
// returns every component. Input order is preserved.
func Search(components []Component, query *string) []Component {
	if query == nil {
		return cloneComponents(components)
	}

	terms := strings.Fields(strings.ToLower(*query))
	if len(terms) == 0 {
		return cloneComponents(components)
	}

	matches := []Component{}
	for _, c := range components {
		if c.matchesAny(terms) {
			matches = append(matches, c)
		}
	}
	return matches
}

// matchesAny expects lower-cased terms
func (c Component) matchesAny(terms []string) bool {
	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)
	uri := strings.ToLower(c.URI)

	for _, term := range terms {
		if strings.Contains(name, term) || strings.Contains(desc, term) || strings.Contains(uri, term) {
			return true
		}
	}
	return false
}

// Find returns the first component whose name equals nameOrURI ignoring
// ASCII case, or whose URI equals it exactly.
func Find(components []Component, nameOrURI string) (Component, bool) {
	for _, c := range components {
		if equalFoldASCII(c.Name, nameOrURI) || c.URI == nameOrURI {
			return c, true
		}
	}
	return Component{}, false
}

// equalFoldASCII compares a and b folding only A-Z; other bytes must match
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func cloneComponents(components []Component) []Component {
	out := make([]Component, len(components))
	copy(out, components)
	return out
}
