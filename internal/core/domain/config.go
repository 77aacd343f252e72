package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ConfigDocument is the server-provided configuration returned by GET /config.
// The schema is tolerant: entries that are not JSON objects are kept as zero
// values and never match a lookup, lists that are not JSON arrays decode to
// nil, and legacy field names are accepted next to the current ones.
type ConfigDocument struct {
	ConfigItems FlexList[json.RawMessage]   `json:"config_items"`
	Versions    FlexList[CollectionVersion] `json:"versions"`
	Enumerators FlexList[EnumeratorSet]     `json:"enumerators"`
	Token       *ConfigToken                `json:"token,omitempty"`
}

// CollectionVersion maps a collection to its current version string.
// Older servers emit name/version instead of collection_name/current_version.
type CollectionVersion struct {
	CollectionName FlexString `json:"collection_name,omitempty"`
	LegacyName     FlexString `json:"name,omitempty"`
	CurrentVersion FlexString `json:"current_version,omitempty"`
	LegacyVersion  FlexString `json:"version,omitempty"`
}

// Collection returns collection_name, falling back to name.
func (v CollectionVersion) Collection() string {
	if v.CollectionName != "" {
		return string(v.CollectionName)
	}
	return string(v.LegacyName)
}

// VersionString returns current_version, falling back to version.
func (v CollectionVersion) VersionString() string {
	if v.CurrentVersion != "" {
		return string(v.CurrentVersion)
	}
	return string(v.LegacyVersion)
}

func (v *CollectionVersion) UnmarshalJSON(data []byte) error {
	type plain CollectionVersion
	if !isObject(data) {
		*v = CollectionVersion{}
		return nil
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = CollectionVersion(p)
	return nil
}

// EnumeratorSet is one generation of enumerators, selected by the trailing
// digit of a collection version.
type EnumeratorSet struct {
	Version     FlexInt              `json:"version"`
	Enumerators FlexList[Enumerator] `json:"enumerators"`
}

func (s *EnumeratorSet) UnmarshalJSON(data []byte) error {
	type plain EnumeratorSet
	if !isObject(data) {
		*s = EnumeratorSet{}
		return nil
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = EnumeratorSet(p)
	return nil
}

// Enumerator is a named list of allowed values.
type Enumerator struct {
	Name   FlexString                `json:"name"`
	Values FlexList[EnumeratorValue] `json:"values"`
}

func (e *Enumerator) UnmarshalJSON(data []byte) error {
	type plain Enumerator
	if !isObject(data) {
		*e = Enumerator{}
		return nil
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Enumerator(p)
	return nil
}

// EnumeratorValue is a single allowed value with its description.
type EnumeratorValue struct {
	Value       FlexString `json:"value"`
	Description FlexString `json:"description"`
}

func (v *EnumeratorValue) UnmarshalJSON(data []byte) error {
	type plain EnumeratorValue
	if !isObject(data) {
		*v = EnumeratorValue{}
		return nil
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = EnumeratorValue(p)
	return nil
}

// ConfigToken echoes the caller's token as seen by the server.
type ConfigToken struct {
	Claims map[string]any `json:"claims,omitempty"`
	Roles  FlexStrings    `json:"roles,omitempty"`
}

// TokenRoles returns token.claims.roles, falling back to token.roles.
func (d *ConfigDocument) TokenRoles() []string {
	if d == nil || d.Token == nil {
		return nil
	}
	if raw, ok := d.Token.Claims["roles"]; ok {
		if roles := stringsOf(raw); len(roles) > 0 {
			return roles
		}
	}
	if len(d.Token.Roles) > 0 {
		return append([]string(nil), d.Token.Roles...)
	}
	return nil
}

// EnumeratorOption is a resolved enumerator value.
type EnumeratorOption struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// DropdownItem is a UI choice-list entry.
type DropdownItem struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// FlexString decodes any JSON scalar into its string form. null decodes to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		*f = FlexString(data)
	}
	return nil
}

// FlexInt decodes a JSON number or a numeric string. Valid is false for
// anything that does not hold an integer.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		if v == math.Trunc(v) {
			*f = FlexInt{Value: int(v), Valid: true}
		}
	case string:
		if n, ok := ParseLeadingInt(v); ok {
			*f = FlexInt{Value: n, Valid: true}
		}
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// ParseLeadingInt parses the optionally signed decimal prefix of s after
// leading white space, so "7" and "7rc" both yield 7. ok is false when s has
// no digits to parse.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FlexList decodes a JSON array of T. Any other JSON value decodes to nil so a
// malformed list does not fail the enclosing document. An empty array stays
// non-nil.
type FlexList[T any] []T

func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if !isArray(data) {
		*f = nil
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*f = items
	return nil
}

// FlexStrings decodes a JSON array keeping its string elements. Anything else
// decodes to nil.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = nil
		return nil
	}
	*f = stringsOf(raw)
	return nil
}

func stringsOf(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func isArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
