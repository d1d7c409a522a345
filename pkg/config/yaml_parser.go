package config

import (
	"fmt"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// yamlParser is a koanf.Parser for YAML documents. Numbers that an int or
// float64 cannot hold exactly are kept as their source digits, so
// arbitrary-precision lookups read what was written rather than a rounded
// float.
type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	v, err := decodeNode(&doc)
	if err != nil {
		return nil, err
	}
	switch out := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return out, nil
	default:
		return nil, fmt.Errorf("configuration document must be a mapping, got %T", v)
	}
}

func (yamlParser) Marshal(m map[string]any) ([]byte, error) {
	return koanfyaml.Parser().Marshal(m)
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

// decodeMapping applies merge keys (<<) first so explicit keys win.
func decodeMapping(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].ShortTag() != "!!merge" {
			continue
		}
		merged, err := decodeNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		sources := []any{merged}
		if list, ok := merged.([]any); ok {
			sources = list
		}
		for _, src := range sources {
			m, ok := src.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("line %d: merge key requires a mapping", n.Content[i].Line)
			}
			for k, v := range m {
				if _, exists := out[k]; !exists {
					out[k] = v
				}
			}
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.ShortTag() == "!!merge" {
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		v, err := decodeNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out[key.Value] = v
	}
	return out, nil
}

func decodeScalar(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		if !numberTextPreserved(n.Value, v) {
			return strings.ReplaceAll(n.Value, "_", ""), nil
		}
	}
	return v, nil
}

// numberTextPreserved reports whether v has the same numeric value as the
// decimal literal text. Non-decimal literals (hex, octal, .inf) are decoded
// exactly and always count as preserved.
func numberTextPreserved(text string, v any) bool {
	want, err := decimal.NewFromString(strings.ReplaceAll(text, "_", ""))
	if err != nil {
		return true
	}
	got, ok := scalarText(v)
	if !ok {
		return false
	}
	gotDec, err := decimal.NewFromString(got)
	if err != nil {
		return false
	}
	return want.Equal(gotDec)
}
