package source

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scalar decodes any YAML or JSON scalar into its textual form. Null and
// non-scalar values decode to the empty string, so a fixture that writes a
// version as 10 or "10" reads the same.
type Scalar string

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(node.Value)
	return nil
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(v)
	case data[0] == '{', data[0] == '[':
		*s = ""
	default:
		*s = Scalar(data)
	}
	return nil
}

func (s Scalar) String() string {
	return strings.TrimSpace(string(s))
}

// Object decodes T only when the document holds a mapping there. Several
// suites write an empty list instead of an empty mapping for absent data.
type Object[T any] struct {
	Value T
	Set   bool
}

func (o *Object[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		*o = Object[T]{}
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Object[T]{Value: v, Set: true}
	return nil
}

func (o *Object[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*o = Object[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Object[T]{Value: v, Set: true}
	return nil
}
