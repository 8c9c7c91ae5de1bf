package source

import (
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/tidwall/gjson"
)

// JSONString returns a string for a JSON string or number, nil otherwise.
// Empty strings and the given placeholders map to nil.
func JSONString(r gjson.Result, placeholders ...string) *string {
	switch r.Type {
	case gjson.String:
		return record.Known(r.String(), placeholders...)
	case gjson.Number:
		return record.String(r.Raw)
	default:
		return nil
	}
}

// JSONVersion is JSONString with the unknown version sentinel suppressed.
func JSONVersion(r gjson.Result) *string {
	v := JSONString(r)
	if v == nil {
		return nil
	}
	return record.Version(*v)
}

// JSONBool accepts JSON booleans and the strings "true"/"false".
func JSONBool(r gjson.Result) *bool {
	switch r.Type {
	case gjson.True:
		return record.Bool(true)
	case gjson.False:
		return record.Bool(false)
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(r.String())) {
		case "true", "1", "yes":
			return record.Bool(true)
		case "false", "0", "no":
			return record.Bool(false)
		}
	}
	return nil
}

// JSONInt accepts JSON numbers and numeric strings.
func JSONInt(r gjson.Result) *int {
	switch r.Type {
	case gjson.Number:
		return record.Int(int(r.Int()))
	case gjson.String:
		return record.Bits(r.String())
	}
	return nil
}

// JSONFloat accepts JSON numbers.
func JSONFloat(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	f := r.Float()
	return &f
}

// JSONElements iterates the values of a JSON array or object in document
// order.
func JSONElements(doc gjson.Result, fn func(key string, value gjson.Result) bool) {
	doc.ForEach(func(key, value gjson.Result) bool {
		return fn(key.String(), value)
	})
}
