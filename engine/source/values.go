package source

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/go-viper/mapstructure/v2"
)

// DecodeValue decodes a generic value produced by a ValueProvider into T.
// Input is weakly typed, so "1", 1 and true all fill a bool field.
func DecodeValue[T any](data any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	return out, decoder.Decode(data)
}

// ValueText renders a scalar value as text. Nil and composite values render
// as the empty string.
func ValueText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// ValueString is ValueText with empty text and placeholders mapped to nil.
func ValueString(v any, placeholders ...string) *string {
	return record.Known(ValueText(v), placeholders...)
}

// ValueBool accepts booleans, numbers and their textual forms.
func ValueBool(v any) *bool {
	switch t := v.(type) {
	case bool:
		return record.Bool(t)
	case float64:
		return record.Bool(t != 0)
	case int:
		return record.Bool(t != 0)
	}
	switch strings.ToLower(ValueText(v)) {
	case "true", "1", "yes":
		return record.Bool(true)
	case "false", "0", "no":
		return record.Bool(false)
	}
	return nil
}

// ValueInt accepts whole numbers and numeric text.
func ValueInt(v any) *int {
	switch t := v.(type) {
	case float64:
		return record.Int(int(t))
	case int:
		return record.Int(t)
	}
	n, err := strconv.Atoi(ValueText(v))
	if err != nil {
		return nil
	}
	return &n
}

// Items iterates a decoded collection in a stable order: list elements by
// index, map entries by sorted key. Scalars yield nothing.
func Items(v any, fn func(key string, value any) bool) {
	switch t := v.(type) {
	case []any:
		for i, item := range t {
			if !fn(strconv.Itoa(i), item) {
				return
			}
		}
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(t)) {
			if !fn(key, t[key]) {
				return
			}
		}
	}
}
