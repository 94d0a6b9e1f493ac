package types

import "slices"

// LegoSet is one catalog item.
//
// Tags and Theme are Optional: an absent value means "not specified" and is
// excluded from tag and theme aggregations. An empty tag list is present.
// Pieces defaults to 0 when absent; several queries treat 0 as "not given".
type LegoSet struct {
	Number   string             `json:"number,omitempty"`
	Name     string             `json:"name,omitempty"`
	Year     int                `json:"year,omitempty"`
	Theme    Optional[string]   `json:"theme"`
	Subtheme string             `json:"subtheme,omitempty"`
	Tags     Optional[[]string] `json:"tags"`
	Pieces   int                `json:"pieces"`
	Minifigs int                `json:"minifigs,omitempty"`
}

// HasTag reports whether the set's tag list is present and contains tag.
func (s LegoSet) HasTag(tag string) bool {
	tags, ok := s.Tags.Get()
	return ok && slices.Contains(tags, tag)
}

// HasTheme reports whether the set's theme equals name. Two absent values
// compare equal; an absent value never equals a present one.
func (s LegoSet) HasTheme(name Optional[string]) bool {
	theme, ok := s.Theme.Get()
	want, wantOK := name.Get()
	if ok != wantOK {
		return false
	}
	return !ok || theme == want
}
