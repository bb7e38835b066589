package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/teranos/a2ml/plugin"
)

// A2MLName is the name of the default definition-language parser.
const A2MLName = "a2ml"

// A2MLExtensions are the file extensions read by the a2ml parser.
var A2MLExtensions = []string{"a2ml", "a2m", "yaml", "yml"}

// NewA2ML returns the YAML-based definition-language parser.
func NewA2ML() Parser {
	return New(plugin.Metadata{
		Name:        A2MLName,
		Version:     "1.0.0",
		Description: "A2ML interface definitions (YAML)",
	}, A2MLExtensions, decodeYAML)
}

func decodeYAML(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var tree map[string]any
	if err := doc.Decode(&tree); err != nil {
		return nil, err
	}
	keepScalarText(doc.Content[0], tree, fieldVersion)
	return tree, nil
}

// keepScalarText replaces the decoded values of the given top-level keys with
// their text as written, so "version: 4.10" stays "4.10" instead of a float.
func keepScalarText(root *yaml.Node, tree map[string]any, keys ...string) {
	if root.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		for _, key := range keys {
			if k.Value == key {
				tree[key] = v.Value
			}
		}
	}
}
