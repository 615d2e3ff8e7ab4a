package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxAttributes     = 20
	MaxAttributeKey   = 64
	MaxAttributeValue = 128
)

// Attributes is a variant's flat attribute mapping, e.g. {"color": "red", "size": "M"}.
// Keys are case-sensitive. It is persisted as JSON text; encoding/json sorts
// map keys, so equal mappings always serialize to identical text.
type Attributes map[string]string

// ParseAttributes decodes persisted attribute text. Anything that is not a
// JSON object degrades to an empty mapping. Scalar values are stringified and
// nested or null values are dropped.
func ParseAttributes(raw string) Attributes {
	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil || generic == nil {
		return Attributes{}
	}

	attrs := make(Attributes, len(generic))
	for k, v := range generic {
		switch val := v.(type) {
		case string:
			attrs[k] = val
		case float64:
			attrs[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			attrs[k] = strconv.FormatBool(val)
		}
	}
	return attrs
}

// Canonical returns the persisted text form.
func (a Attributes) Canonical() string {
	if len(a) == 0 {
		return "{}"
	}
	b, _ := json.Marshal(map[string]string(a))
	return string(b)
}

// Equal reports whether both mappings hold exactly the same pairs.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// With returns a copy of a with key set to value.
func (a Attributes) With(key, value string) Attributes {
	out := make(Attributes, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// Validate rejects empty or padded keys and values and oversized mappings.
func (a Attributes) Validate() error {
	if len(a) > MaxAttributes {
		return fmt.Errorf("at most %d attributes are allowed", MaxAttributes)
	}
	for k, v := range a {
		if k == "" || strings.TrimSpace(k) != k || len(k) > MaxAttributeKey {
			return fmt.Errorf("invalid attribute name %q", k)
		}
		if v == "" || strings.TrimSpace(v) != v || len(v) > MaxAttributeValue {
			return fmt.Errorf("invalid value for attribute %q", k)
		}
	}
	return nil
}

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	return a.Canonical(), nil
}

// Scan implements sql.Scanner. It never fails on malformed content.
func (a *Attributes) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Attributes{}
	case string:
		*a = ParseAttributes(v)
	case []byte:
		*a = ParseAttributes(string(v))
	default:
		return fmt.Errorf("unsupported attributes source %T", src)
	}
	return nil
}

// GormDataType keeps the column as plain text.
func (Attributes) GormDataType() string {
	return "text"
}
