package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestConfigDocument_TolerantDecode(t *testing.T) {
	raw := `{
		"config_items": [{"k": 1}, "x"],
		"versions": [
			{"collection_name": "Grade", "current_version": "Grade.0.1.0.0"},
			{"name": "Tags", "version": 3},
			42
		],
		"enumerators": [
			{"version": "1", "enumerators": [{"name": "status", "values": [{"value": true, "description": null}, "bad"]}]},
			{"version": "one"},
			null
		],
		"token": {"claims": {"sub": "alice"}, "roles": ["a", 1, "b"]}
	}`
	var doc ConfigDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(doc.ConfigItems) != 2 {
		t.Fatalf("expected opaque config items kept, got %d", len(doc.ConfigItems))
	}
	if doc.Versions[0].Collection() != "Grade" || doc.Versions[0].VersionString() != "Grade.0.1.0.0" {
		t.Fatalf("unexpected first version %+v", doc.Versions[0])
	}
	if doc.Versions[1].Collection() != "Tags" || doc.Versions[1].VersionString() != "3" {
		t.Fatalf("expected legacy fields, got %+v", doc.Versions[1])
	}
	if doc.Versions[2].Collection() != "" {
		t.Fatalf("non-object entry must decode to zero value")
	}

	first := doc.Enumerators[0]
	if !first.Version.Valid || first.Version.Value != 1 {
		t.Fatalf("expected numeric-string version, got %+v", first.Version)
	}
	vals := first.Enumerators[0].Values
	if vals[0].Value != "true" || vals[0].Description != "" || vals[1].Value != "" {
		t.Fatalf("unexpected values %+v", vals)
	}
	if doc.Enumerators[1].Version.Valid {
		t.Fatalf("non-numeric version must be invalid")
	}
	if !reflect.DeepEqual(doc.TokenRoles(), []string{"a", "b"}) {
		t.Fatalf("unexpected token roles %v", doc.TokenRoles())
	}
}

func TestConfigDocument_TolerantDecode_MalformedLists(t *testing.T) {
	raw := `{
		"config_items": {"k": 1},
		"versions": [{"collection_name": "Grade", "current_version": "0.1.0.1"}],
		"enumerators": [
			{"version": 2, "enumerators": "n/a"},
			{"version": 1, "enumerators": [
				{"name": "kind", "values": {"a": 1}},
				{"name": "status", "values": [{"value": "active"}]}
			]}
		]
	}`
	var doc ConfigDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ConfigItems != nil {
		t.Fatalf("non-array config_items must decode to nil, got %v", doc.ConfigItems)
	}
	if len(doc.Enumerators) != 2 || doc.Enumerators[0].Enumerators != nil {
		t.Fatalf("non-array enumerators must decode to nil, got %+v", doc.Enumerators)
	}
	items := doc.Enumerators[1].Enumerators
	if len(items) != 2 || items[0].Values != nil {
		t.Fatalf("non-array values must decode to nil, got %+v", items)
	}
	if items[1].Name != "status" || len(items[1].Values) != 1 || items[1].Values[0].Value != "active" {
		t.Fatalf("sibling enumerator must survive, got %+v", items[1])
	}

	var empty ConfigDocument
	if err := json.Unmarshal([]byte(`{"versions": [], "enumerators": null}`), &empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.Versions == nil || len(empty.Versions) != 0 || empty.Enumerators != nil {
		t.Fatalf("empty array must stay non-nil and null must be nil, got %+v", empty)
	}
}

func TestConfigDocument_TokenRolesPrefersClaims(t *testing.T) {
	var doc ConfigDocument
	if err := json.Unmarshal([]byte(`{"token":{"claims":{"roles":["admin","user"]},"roles":["other"]}}`), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(doc.TokenRoles(), []string{"admin", "user"}) {
		t.Fatalf("expected claims roles, got %v", doc.TokenRoles())
	}

	var nilDoc *ConfigDocument
	if nilDoc.TokenRoles() != nil {
		t.Fatalf("nil document has no roles")
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{" 12", 12, true},
		{"7rc1", 7, true},
		{"-3", -3, true},
		{"", 0, false},
		{"x1", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLeadingInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLeadingInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
