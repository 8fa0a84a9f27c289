package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	keyComplexity = "complexity"
	keyBGGRank    = "bgg_rank"
	keyMechanisms = "mechanisms"
	keyCategories = "categories"
)

// Metadata is the open-shape bag attached to a game. The recognised keys are
// decoded into typed fields; everything else, including recognised keys whose
// value does not fit the typed field, is kept verbatim in Extra.
type Metadata struct {
	Complexity *float64
	BGGRank    *int
	Mechanisms []string
	Categories []string
	Extra      map[string]json.RawMessage

	// raw holds a metadata value that is not a JSON object.
	raw json.RawMessage
}

// ParseMetadata decodes a stored metadata column. Empty input and JSON null
// yield a nil Metadata.
func ParseMetadata(data []byte) (*Metadata, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var meta Metadata
	if err := meta.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.raw != nil {
		return m.raw, nil
	}
	fields := make(map[string]json.RawMessage, len(m.Extra)+4)
	for key, value := range m.Extra {
		fields[key] = value
	}
	if m.Complexity != nil {
		if err := putField(fields, keyComplexity, *m.Complexity); err != nil {
			return nil, err
		}
	}
	if m.BGGRank != nil {
		if err := putField(fields, keyBGGRank, *m.BGGRank); err != nil {
			return nil, err
		}
	}
	if m.Mechanisms != nil {
		if err := putField(fields, keyMechanisms, m.Mechanisms); err != nil {
			return nil, err
		}
	}
	if m.Categories != nil {
		if err := putField(fields, keyCategories, m.Categories); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = Metadata{}
	payload := unwrapEncodedObject(bytes.TrimSpace(data))
	if !json.Valid(payload) {
		return errors.New("metadata: invalid JSON")
	}
	if payload[0] != '{' {
		m.raw = append(json.RawMessage(nil), payload...)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	for key, value := range fields {
		if m.assign(key, value) {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]json.RawMessage)
		}
		m.Extra[key] = value
	}
	return nil
}

func (m *Metadata) assign(key string, value json.RawMessage) bool {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return false
	}
	switch key {
	case keyComplexity:
		var complexity float64
		if json.Unmarshal(value, &complexity) != nil {
			return false
		}
		m.Complexity = &complexity
	case keyBGGRank:
		var rank int
		if json.Unmarshal(value, &rank) != nil {
			return false
		}
		m.BGGRank = &rank
	case keyMechanisms:
		var mechanisms []string
		if json.Unmarshal(value, &mechanisms) != nil {
			return false
		}
		m.Mechanisms = mechanisms
	case keyCategories:
		var categories []string
		if json.Unmarshal(value, &categories) != nil {
			return false
		}
		m.Categories = categories
	default:
		return false
	}
	return true
}

// unwrapEncodedObject turns a JSON string holding an encoded object into the
// object itself. Rows written by json_encode-then-cast seeders look like this.
func unwrapEncodedObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '"' {
		return data
	}
	var inner string
	if err := json.Unmarshal(data, &inner); err != nil {
		return data
	}
	inner = strings.TrimSpace(inner)
	if !strings.HasPrefix(inner, "{") || !json.Valid([]byte(inner)) {
		return data
	}
	return []byte(inner)
}

func putField(fields map[string]json.RawMessage, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("metadata %s: %w", key, err)
	}
	fields[key] = encoded
	return nil
}
