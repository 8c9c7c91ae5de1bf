// Package header holds the ordered header set attached to every fixture
// record and its compact delimited encoding used as a cache key.
package header

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const (
	// RowDelimiter separates a header name from its value.
	RowDelimiter = "::==::"
	// RecordDelimiter separates two header pairs.
	RecordDelimiter = "{{::~~::}}"

	UserAgent = "user-agent"
)

// Field is one header line.
type Field struct {
	Name  string
	Value string
}

// Headers is an insertion ordered header set. Lookups ignore case.
type Headers struct {
	fields []Field
}

// FromUserAgent returns a one-entry set holding ua as user-agent.
func FromUserAgent(ua string) Headers {
	return Headers{fields: []Field{{Name: UserAgent, Value: ua}}}
}

// FromFields builds a set from already ordered pairs. Later duplicates
// replace earlier ones in place.
func FromFields(fields ...Field) Headers {
	var h Headers
	for _, f := range fields {
		h.Set(f.Name, f.Value)
	}
	return h
}

// FromMap builds a set from m. Go maps have no order, so keys are taken in
// the order given by keys; keys missing from m are ignored.
func FromMap(m map[string]string, keys []string) Headers {
	var h Headers
	for _, k := range keys {
		if v, ok := m[k]; ok {
			h.Set(k, v)
		}
	}
	return h
}

// Decode parses the delimited encoding produced by Encode. Pairs without a
// row delimiter are dropped.
func Decode(s string) Headers {
	var h Headers
	if s == "" {
		return h
	}
	for _, record := range strings.Split(s, RecordDelimiter) {
		name, value, ok := strings.Cut(record, RowDelimiter)
		if !ok {
			continue
		}
		h.Set(name, value)
	}
	return h
}

// Encode serializes the set deterministically in insertion order.
func (h Headers) Encode() string {
	var b strings.Builder
	for i, f := range h.fields {
		if i > 0 {
			b.WriteString(RecordDelimiter)
		}
		b.WriteString(f.Name)
		b.WriteString(RowDelimiter)
		b.WriteString(f.Value)
	}
	return b.String()
}

func (h Headers) Len() int {
	return len(h.fields)
}

// Fields returns a copy of the pairs in insertion order.
func (h Headers) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)
	return out
}

func (h Headers) index(name string) int {
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value stored under name, ignoring case.
func (h Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.fields[i].Value, true
	}
	return "", false
}

// UserAgent returns the user-agent value or "" when absent.
func (h Headers) UserAgent() string {
	v, _ := h.Get(UserAgent)
	return v
}

// Set replaces the value of an existing header (keeping its position and
// original spelling) or appends a new one.
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].Value = value
		return
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	return Headers{fields: h.Fields()}
}

// MarshalJSON writes the set as a JSON object keeping insertion order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range h.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping document order.
func (h *Headers) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// FromJSON decodes a JSON object of header name to value, keeping document
// order. Non-string scalars are kept in their raw textual form; nested
// values are dropped.
func FromJSON(data []byte) (Headers, error) {
	var h Headers
	if !gjson.ValidBytes(data) {
		return h, fmt.Errorf("invalid header JSON")
	}
	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		return h, nil
	}
	if !result.IsObject() {
		return h, fmt.Errorf("header JSON must be an object, got %s", result.Type)
	}
	result.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			h.Set(key.String(), value.String())
		case value.Type == gjson.Number, value.Type == gjson.True, value.Type == gjson.False:
			h.Set(key.String(), value.Raw)
		}
		return true
	})
	return h, nil
}

// UnmarshalYAML reads a YAML mapping keeping document order. Scalar values
// are kept in their textual form; nested values are dropped.
func (h *Headers) UnmarshalYAML(node *yaml.Node) error {
	var parsed Headers
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
				parsed.Set(key.Value, value.Value)
			}
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("headers must be a mapping, got %q", node.Value)
		}
	default:
		return fmt.Errorf("headers must be a mapping")
	}
	*h = parsed
	return nil
}
