package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property describes one field of a resource schema. Nested objects
// and array items carry their own Property trees.
type Property struct {
	Type       string
	Title      string
	Format     string
	Group      string
	Enum       []any
	Default    any
	Items      *Property
	Properties map[string]*Property

	// Order preserves the declaration order of Properties, which the
	// server uses to communicate field layout.
	Order []string
}

func (p *Property) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       string          `json:"type"`
		Title      string          `json:"title"`
		Format     string          `json:"format"`
		Group      string          `json:"group"`
		Enum       []any           `json:"enum"`
		Default    any             `json:"default"`
		Items      *Property       `json:"items"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Type = raw.Type
	p.Title = raw.Title
	p.Format = raw.Format
	p.Group = raw.Group
	p.Enum = raw.Enum
	p.Default = raw.Default
	p.Items = raw.Items

	props, order, err := decodeProperties(raw.Properties)
	if err != nil {
		return err
	}
	p.Properties = props
	p.Order = order
	return nil
}

// EnumStrings returns the enum values rendered as strings, or nil for
// non-enum properties.
func (p *Property) EnumStrings() []string {
	if len(p.Enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.Enum))
	for _, v := range p.Enum {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// ResourceSchema is the form description served by GET /{resource}/schema.
type ResourceSchema struct {
	Title      string
	Type       string
	Properties map[string]*Property
	Required   []string
	Order      []string
}

func (s *ResourceSchema) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title      string          `json:"title"`
		Type       string          `json:"type"`
		Properties json.RawMessage `json:"properties"`
		Required   []string        `json:"required"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Title = raw.Title
	s.Type = raw.Type
	s.Required = raw.Required

	props, order, err := decodeProperties(raw.Properties)
	if err != nil {
		return err
	}
	s.Properties = props
	s.Order = order
	return nil
}

func (s *ResourceSchema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Empty reports whether the schema describes no fields at all. Such a
// schema is valid and yields an empty form.
func (s *ResourceSchema) Empty() bool {
	return s == nil || len(s.Properties) == 0
}

// decodeProperties walks the properties object token by token so the
// key order of the JSON document survives decoding. encoding/json maps
// forget it.
func decodeProperties(raw json.RawMessage) (map[string]*Property, []string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("decode properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("decode properties: expected object, got %v", tok)
	}

	props := make(map[string]*Property)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("decode properties: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("decode properties: expected key, got %v", keyTok)
		}
		var p Property
		if err := dec.Decode(&p); err != nil {
			return nil, nil, fmt.Errorf("decode property %q: %w", key, err)
		}
		props[key] = &p
		order = append(order, key)
	}
	return props, order, nil
}

// GetSchema fetches the form schema for a resource collection.
func (c *Client) GetSchema(resource string) (*ResourceSchema, error) {
	data, err := c.get(fmt.Sprintf("/%s/schema", resource))
	if err != nil {
		return nil, err
	}
	return decodeOne[ResourceSchema](data)
}
