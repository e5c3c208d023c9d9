package yml

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node wraps yaml.Node with navigation helpers
type Node yaml.Node

// Root returns the first document content node, or n itself for non document nodes
func (n *Node) Root() *Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return (*Node)(n.Content[0])
	}
	return n
}

// Lookup returns value node for a mapping key (case-insensitive) or nil
func (n *Node) Lookup(name string) *Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if strings.EqualFold(n.Content[i].Value, name) {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// Items iterates sequence items
func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i, item := range n.Content {
		if err := callback(i, (*Node)(item)); err != nil {
			return err
		}
	}
	return nil
}

// Pairs iterates mapping key/value pairs
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes node into v
func (n *Node) Decode(v interface{}) error {
	return (*yaml.Node)(n).Decode(v)
}

// Interface converts node into plain go values (map[string]interface{},
// []interface{}, string, bool, int, float64, nil) suitable for JSON schema
// validation.
func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return (*Node)(n.Content[0]).Interface()
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil
		}
		return (*Node)(n.Alias).Interface()
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil
		case "!!bool":
			return strings.EqualFold(n.Value, "true")
		case "!!int":
			if v, err := strconv.Atoi(n.Value); err == nil {
				return v
			}
		case "!!float":
			if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return v
			}
		}
		return n.Value
	case yaml.MappingNode:
		aMap := make(map[string]interface{}, len(n.Content)/2)
		_ = n.Pairs(func(key string, node *Node) error {
			aMap[key] = node.Interface()
			return nil
		})
		return aMap
	case yaml.SequenceNode:
		aSlice := make([]interface{}, 0, len(n.Content))
		_ = n.Items(func(_ int, node *Node) error {
			aSlice = append(aSlice, node.Interface())
			return nil
		})
		return aSlice
	}
	return nil
}

// Parse parses YAML (or JSON, which is valid YAML) data
func Parse(data []byte) (*Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return (*Node)(&node), nil
}
