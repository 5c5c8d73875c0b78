package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSON serializes the document as indented JSON.
//
// See: https://spec.openapis.org/oas/v3.0.3#format
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return data, nil
}

// YAML serializes the document as YAML. The JSON encoding is the source of
// truth for field names, so the document is encoded to JSON first and
// re-encoded through a yaml.Node tree in block style.
//
// See: https://spec.openapis.org/oas/v3.0.3#format
func (d *Document) YAML() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("openapi: decode json as yaml: %w", err)
	}
	blockStyle(&node)

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return []byte(b.String()), nil
}

// blockStyle clears the flow and quoting styles the JSON input left on the
// tree; the encoder quotes scalars again where YAML needs it.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// OperationCount returns the number of operations across all paths.
func (d *Document) OperationCount() int {
	n := 0
	for _, item := range d.Paths {
		n += len(item.operations())
	}
	return n
}

// Refs returns every $ref found in the serialized document.
func (d *Document) Refs() ([]string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}

	var refs []string
	var walk func(v any)
	walk = func(v any) {
		switch v := v.(type) {
		case map[string]any:
			for k, child := range v {
				if s, ok := child.(string); ok && k == "$ref" {
					refs = append(refs, s)
					continue
				}
				walk(child)
			}
		case []any:
			for _, child := range v {
				walk(child)
			}
		}
	}
	walk(tree)

	return refs, nil
}

// Resolve reports whether ref points at a registered component.
func (d *Document) Resolve(ref string) bool {
	if d.Components == nil {
		return false
	}
	rest, ok := strings.CutPrefix(ref, "#/components/")
	if !ok {
		return false
	}
	kindName, name, ok := strings.Cut(rest, "/")
	if !ok {
		return false
	}
	for _, kind := range Kinds {
		if kind.String() == kindName {
			_, found := d.Components.Lookup(kind, name)
			return found
		}
	}
	return false
}
