package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tidwall/jsonc"
)

// Wire keys of the page-level fields.
const (
	KeyPageTitleCN = "page_title_cn"
	KeyPageTitleEN = "page_title_en"
	KeyMatchImg    = "match_img"
	KeyFilterWith  = "filter_with"
)

// Codec errors
var (
	ErrNotObject     = errors.New("document must be a JSON object")
	ErrInvalidString = errors.New("must be a string")
	ErrInvalidList   = errors.New("must be a list")
	ErrInvalidEntry  = errors.New("must be an object")
	ErrInvalidRows   = errors.New("must be a non-negative integer")
)

// SchemaDocument is the wire shape of one schema. Field order matches the
// order written by the original exporter.
type SchemaDocument struct {
	PageTitleCN           string  `json:"page_title_cn"`
	PageTitleEN           string  `json:"page_title_en"`
	MatchImg              string  `json:"match_img"`
	FilterWith            string  `json:"filter_with"`
	BasicVariables        []Entry `json:"basic_variables"`
	MoreVariables         []Entry `json:"more_variables"`
	ImageVariables        []Entry `json:"image_variables"`
	URLVariables          []Entry `json:"url_variables"`
	ArrayVariables        []Entry `json:"array_variables"`
	LanguageItemVariables []Entry `json:"language_item_variables"`
}

// Document is the top-level wire shape: schema name to schema body.
type Document map[string]SchemaDocument

func (d *SchemaDocument) entries(c Category) *[]Entry {
	switch c {
	case CategoryBasic:
		return &d.BasicVariables
	case CategoryMore:
		return &d.MoreVariables
	case CategoryImage:
		return &d.ImageVariables
	case CategoryURL:
		return &d.URLVariables
	case CategoryArray:
		return &d.ArrayVariables
	case CategoryLanguageItem:
		return &d.LanguageItemVariables
	}
	panic(fmt.Sprintf("schema: invalid category %d", int(c)))
}

// Entries returns the wire entries for category c.
func (d SchemaDocument) Entries(c Category) []Entry {
	return *d.entries(c)
}

// Document converts the schema to its wire shape. Empty lists encode as [].
func (s *Schema) Document() SchemaDocument {
	doc := SchemaDocument{
		PageTitleCN: s.PageTitleCN,
		PageTitleEN: s.PageTitleEN,
		MatchImg:    s.MatchImg,
		FilterWith:  s.FilterWith,
	}
	for _, c := range Categories {
		vars := s.Variables(c)
		entries := make([]Entry, 0, len(vars))
		for _, v := range vars {
			entries = append(entries, v.Entry())
		}
		*doc.entries(c) = entries
	}
	return doc
}

// FromDocument builds a schema from a typed wire document. Multi-key
// entries expand to one variable per key in sorted key order. An entry that
// repeats a name already in its list is dropped.
func FromDocument(name string, doc SchemaDocument) (*Schema, error) {
	s := &Schema{
		Name:        name,
		PageTitleCN: doc.PageTitleCN,
		PageTitleEN: doc.PageTitleEN,
		MatchImg:    doc.MatchImg,
		FilterWith:  doc.FilterWith,
	}
	for _, c := range Categories {
		var vars []Variable
		for i, entry := range doc.Entries(c) {
			for _, varName := range sortedKeys(entry) {
				l := entry[varName]
				if l.Rows < 0 {
					return nil, fmt.Errorf("%s[%d].%s.rows: %w", c.WireKey(), i, varName, ErrInvalidRows)
				}
				if indexOf(vars, varName) >= 0 {
					continue
				}
				vars = append(vars, NewVariable(varName, l.En, l.Cn, l.Rows))
			}
		}
		s.SetVariables(c, vars)
	}
	return s, nil
}

// Parse converts a decoded JSON value (as produced by encoding/json into an
// any) into a schema named name.
//
// Absent or null fields take their defaults: "" for titles, "no" for flags,
// an empty list for each variable category, "" for labels and 0 for rows.
// Values of the wrong type make the whole schema invalid. An entry that
// repeats a variable name already in its list is dropped; the first one wins.
func Parse(name string, value any) (*Schema, error) {
	s, _, err := parse(name, value)
	return s, err
}

// parse is Parse that also returns the paths of the dropped entries.
func parse(name string, value any) (*Schema, []string, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("schema %q: %w", name, ErrInvalidEntry)
	}

	s := New(name)
	var err error
	if s.PageTitleCN, err = stringField(m, KeyPageTitleCN, ""); err != nil {
		return nil, nil, err
	}
	if s.PageTitleEN, err = stringField(m, KeyPageTitleEN, ""); err != nil {
		return nil, nil, err
	}
	if s.MatchImg, err = stringField(m, KeyMatchImg, FlagNo); err != nil {
		return nil, nil, err
	}
	if s.FilterWith, err = stringField(m, KeyFilterWith, FlagNo); err != nil {
		return nil, nil, err
	}

	var dropped []string
	for _, c := range Categories {
		vars, repeats, err := parseList(c.WireKey(), m[c.WireKey()])
		if err != nil {
			return nil, nil, err
		}
		s.SetVariables(c, vars)
		dropped = append(dropped, repeats...)
	}
	return s, dropped, nil
}

func stringField(m map[string]any, key, def string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return def, nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrInvalidString)
	}
	return str, nil
}

func parseList(key string, raw any) ([]Variable, []string, error) {
	if raw == nil {
		return nil, nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", key, ErrInvalidList)
	}

	var (
		vars    []Variable
		dropped []string
	)
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("%s[%d]: %w", key, i, ErrInvalidEntry)
		}
		for _, varName := range sortedKeys(entry) {
			path := fmt.Sprintf("%s[%d].%s", key, i, varName)
			v, err := parseVariable(path, varName, entry[varName])
			if err != nil {
				return nil, nil, err
			}
			if indexOf(vars, varName) >= 0 {
				dropped = append(dropped, path)
				continue
			}
			vars = append(vars, v)
		}
	}
	return vars, dropped, nil
}

func parseVariable(path, name string, raw any) (Variable, error) {
	v := Variable{Name: name}
	if raw == nil {
		return v, nil
	}
	body, ok := raw.(map[string]any)
	if !ok {
		return v, fmt.Errorf("%s: %w", path, ErrInvalidEntry)
	}

	var err error
	if v.EnText, err = stringField(body, "en", ""); err != nil {
		return v, fmt.Errorf("%s.%w", path, err)
	}
	if v.CnText, err = stringField(body, "cn", ""); err != nil {
		return v, fmt.Errorf("%s.%w", path, err)
	}
	if v.Rows, err = rowsField(body["rows"]); err != nil {
		return v, fmt.Errorf("%s.rows: %w", path, err)
	}
	return v, nil
}

func rowsField(raw any) (int, error) {
	var f float64
	switch n := raw.(type) {
	case nil:
		return 0, nil
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, ErrInvalidRows
		}
		f = parsed
	default:
		return 0, ErrInvalidRows
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, ErrInvalidRows
	}
	return int(f), nil
}

// Decode parses a JSON document into a generic object. Comments and
// trailing commas are tolerated so hand-edited files import cleanly.
func Decode(data []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}

// Marshal renders v as two-space indented JSON without escaping HTML or
// non-ASCII characters, followed by a newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Format re-renders any JSON value with sorted object keys.
func Format(data []byte) ([]byte, error) {
	var raw any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return Marshal(raw)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
