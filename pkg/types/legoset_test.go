package types

import (
	"encoding/json"
	"testing"
)

func TestLegoSet_DecodeAbsentFields(t *testing.T) {
	var s LegoSet
	if err := json.Unmarshal([]byte(`{"name":"Tower","theme":null}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Theme.IsSet() {
		t.Errorf("Theme: got set, want absent for null")
	}
	if s.Tags.IsSet() {
		t.Errorf("Tags: got set, want absent for missing key")
	}
	if s.Pieces != 0 {
		t.Errorf("Pieces: got %d, want 0 default", s.Pieces)
	}
}

func TestLegoSet_DecodeEmptyTagsIsPresent(t *testing.T) {
	var s LegoSet
	if err := json.Unmarshal([]byte(`{"tags":[],"theme":"City","pieces":321}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	tags, ok := s.Tags.Get()
	if !ok || len(tags) != 0 {
		t.Errorf("Tags: got %v (set=%v), want present and empty", tags, ok)
	}
	if got := s.Theme.OrElse(""); got != "City" {
		t.Errorf("Theme: got %q, want City", got)
	}
	if s.Pieces != 321 {
		t.Errorf("Pieces: got %d, want 321", s.Pieces)
	}
}

func TestLegoSet_DecodeWrongShape(t *testing.T) {
	var s LegoSet
	if err := json.Unmarshal([]byte(`{"tags":"Microscale"}`), &s); err == nil {
		t.Fatal("expected error for string tags, got nil")
	}
}

func TestLegoSet_HasTag(t *testing.T) {
	s := LegoSet{Tags: Some([]string{"Microscale", "Castle"})}
	if !s.HasTag("Castle") {
		t.Error("HasTag(Castle): got false, want true")
	}
	if s.HasTag("castle") {
		t.Error("HasTag(castle): match must be exact")
	}
	if (LegoSet{}).HasTag("Castle") {
		t.Error("HasTag on absent tags: got true, want false")
	}
}

func TestLegoSet_HasTheme(t *testing.T) {
	tests := []struct {
		name  string
		theme Optional[string]
		query Optional[string]
		want  bool
	}{
		{"equal", Some("Games"), Some("Games"), true},
		{"different", Some("Games"), Some("City"), false},
		{"absent theme", None[string](), Some("Games"), false},
		{"absent query", Some("Games"), None[string](), false},
		{"both absent", None[string](), None[string](), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := LegoSet{Theme: tc.theme}
			if got := s.HasTheme(tc.query); got != tc.want {
				t.Errorf("HasTheme: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOptional_MarshalAbsentAsNull(t *testing.T) {
	b, err := json.Marshal(LegoSet{Pieces: 5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v, ok := raw["theme"]; !ok || v != nil {
		t.Errorf("theme: got %v (present=%v), want null", v, ok)
	}
}
