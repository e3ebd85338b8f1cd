package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned by ParseCategory for unrecognized input.
var ErrUnknownCategory = errors.New("unknown variable category")

// Category identifies one of the six variable lists of a schema.
type Category int

const (
	CategoryBasic Category = iota
	CategoryMore
	CategoryImage
	CategoryURL
	CategoryArray
	CategoryLanguageItem
)

// NumCategories is the size of the closed category set.
const NumCategories = int(CategoryLanguageItem) + 1

// Categories lists every category in wire order.
var Categories = []Category{
	CategoryBasic,
	CategoryMore,
	CategoryImage,
	CategoryURL,
	CategoryArray,
	CategoryLanguageItem,
}

type categoryInfo struct {
	key   string
	label string
	list  func(*Schema) *[]Variable
}

// categoryTable is indexed by Category.
var categoryTable = [...]categoryInfo{
	CategoryBasic:        {key: "basic", label: "Basic Variable", list: func(s *Schema) *[]Variable { return &s.Basic }},
	CategoryMore:         {key: "more", label: "More Variable", list: func(s *Schema) *[]Variable { return &s.More }},
	CategoryImage:        {key: "image", label: "Image Variable", list: func(s *Schema) *[]Variable { return &s.Image }},
	CategoryURL:          {key: "url", label: "URL Variable", list: func(s *Schema) *[]Variable { return &s.URL }},
	CategoryArray:        {key: "array", label: "Array Variable", list: func(s *Schema) *[]Variable { return &s.Array }},
	CategoryLanguageItem: {key: "language_item", label: "Language Item Variable", list: func(s *Schema) *[]Variable { return &s.LanguageItem }},
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	return c >= CategoryBasic && int(c) < len(categoryTable)
}

func (c Category) info() categoryInfo {
	if !c.Valid() {
		panic(fmt.Sprintf("schema: invalid category %d", int(c)))
	}
	return categoryTable[c]
}

// String returns the short key, e.g. "basic" or "language_item".
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryTable[c].key
}

// WireKey returns the document key holding this category's list,
// e.g. "basic_variables".
func (c Category) WireKey() string {
	return c.info().key + "_variables"
}

// Label returns the human-readable name used by editors.
func (c Category) Label() string {
	return c.info().label
}

// ParseCategory accepts a short key ("url"), a wire key ("url_variables")
// or a display label ("URL Variable"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		info := categoryTable[c]
		if norm == info.key || norm == info.key+"_variables" || norm == strings.ToLower(info.label) {
			return c, nil
		}
	}
	// "language" was the enum member name in older exports
	if norm == "language" {
		return CategoryLanguageItem, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
