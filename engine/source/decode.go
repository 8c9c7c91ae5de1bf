package source

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ValueProvider turns an exported array fixture into nested maps and
// slices. Upstream suites ship these as language specific literals; the
// default provider reads them after export to JSON.
type ValueProvider interface {
	Decode(fsys afero.Fs, path string) (any, error)
}

// JSONValues decodes a fixture file as generic JSON.
type JSONValues struct{}

func (JSONValues) Decode(fsys afero.Fs, path string) (any, error) {
	var v any
	if err := ReadJSON(fsys, path, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadJSON decodes path into v. The file must be valid UTF-8.
func ReadJSON(fsys afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("file is not valid UTF-8")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// ReadJSONDocument reads path as an order preserving JSON document. The
// file must be valid UTF-8 and valid JSON.
func ReadJSONDocument(fsys afero.Fs, path string) (gjson.Result, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return gjson.Result{}, fmt.Errorf("file is not valid UTF-8")
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("failed to decode JSON: invalid document")
	}
	return gjson.ParseBytes(data), nil
}

// ReadYAML decodes the first YAML document of path into v.
func ReadYAML(fsys afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}

// ReadYAMLList decodes a YAML list both into typed elements and into
// generic values kept as raw payloads. Both slices have the same length.
func ReadYAMLList[T any](fsys afero.Fs, path string) ([]T, []any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	var typed []T
	if err := yaml.Unmarshal(data, &typed); err != nil {
		return nil, nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	var raws []any
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return typed, raws, nil
}

// ReadJSONList is the JSON counterpart of ReadYAMLList.
func ReadJSONList[T any](fsys afero.Fs, path string) ([]T, []any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, nil, fmt.Errorf("file is not valid UTF-8")
	}
	var typed []T
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	var raws []any
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return typed, raws, nil
}
