package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const emptySchemaJSON = `{
  "s": {
    "page_title_cn": "",
    "page_title_en": "",
    "match_img": "no",
    "filter_with": "no",
    "basic_variables": [],
    "more_variables": [],
    "image_variables": [],
    "url_variables": [],
    "array_variables": [],
    "language_item_variables": []
  }
}
`

func TestMarshal_EmptySchema(t *testing.T) {
	r := NewRegistry()
	r.Add(New("s"))

	out, err := Marshal(r.ExportAll())
	require.NoError(t, err)
	require.Equal(t, emptySchemaJSON, string(out))
}

func TestMarshal_KeepsNonASCIIAndHTML(t *testing.T) {
	s := New("p")
	s.PageTitleCN = "产品 <b>"
	s.AddVariable(CategoryBasic, NewVariable("sku", "SKU & code", "库存单位", 1))

	out, err := Marshal(Document{"p": s.Document()})
	require.NoError(t, err)
	require.Contains(t, string(out), `"page_title_cn": "产品 <b>"`)
	require.Contains(t, string(out), `"en": "SKU & code"`)
	require.Contains(t, string(out), `"cn": "库存单位"`)
}

func TestDocument_VariableShape(t *testing.T) {
	s := New("p")
	s.AddVariable(CategoryBasic, NewVariable("sku", "SKU", "库存单位", 1))
	s.AddVariable(CategoryBasic, NewVariable("price", "Price", "价格", 2))

	out, err := Marshal(s.Document())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	require.Equal(t, []any{
		map[string]any{"sku": map[string]any{"en": "SKU", "cn": "库存单位", "rows": float64(1)}},
		map[string]any{"price": map[string]any{"en": "Price", "cn": "价格", "rows": float64(2)}},
	}, got["basic_variables"])
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse("p", map[string]any{
		"page_title_en": nil,
		"url_variables": nil,
		"basic_variables": []any{
			map[string]any{"bare": map[string]any{}},
			map[string]any{"nulled": nil},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "p", s.Name)
	require.Equal(t, "", s.PageTitleEN)
	require.Equal(t, FlagNo, s.MatchImg)
	require.Equal(t, FlagNo, s.FilterWith)
	require.Empty(t, s.URL)
	require.Equal(t, []Variable{{Name: "bare"}, {Name: "nulled"}}, s.Basic)
}

func TestParse_MultiKeyEntry(t *testing.T) {
	s, err := Parse("p", map[string]any{
		"more_variables": []any{
			map[string]any{
				"zeta":  map[string]any{"en": "Z", "rows": 1},
				"alpha": map[string]any{"en": "A", "rows": 2},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, names(s.More))
}

func TestParse_KeepsUnknownFlagValues(t *testing.T) {
	s, err := Parse("p", map[string]any{"match_img": "maybe"})
	require.NoError(t, err)
	require.Equal(t, "maybe", s.MatchImg)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr error
		wantMsg string
	}{
		{
			name:    "not an object",
			value:   "nope",
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "list given as string",
			value:   map[string]any{"array_variables": "oops"},
			wantErr: ErrInvalidList,
			wantMsg: "array_variables: must be a list",
		},
		{
			name:    "non-string title",
			value:   map[string]any{"page_title_cn": 3.0},
			wantErr: ErrInvalidString,
		},
		{
			name:    "entry not an object",
			value:   map[string]any{"basic_variables": []any{"sku"}},
			wantErr: ErrInvalidEntry,
			wantMsg: "basic_variables[0]: must be an object",
		},
		{
			name: "negative rows",
			value: map[string]any{"basic_variables": []any{
				map[string]any{"a": map[string]any{}},
				map[string]any{"b": map[string]any{}},
				map[string]any{"sku": map[string]any{"rows": -1.0}},
			}},
			wantErr: ErrInvalidRows,
			wantMsg: "basic_variables[2].sku.rows: must be a non-negative integer",
		},
		{
			name: "fractional rows",
			value: map[string]any{"image_variables": []any{
				map[string]any{"img": map[string]any{"rows": 1.5}},
			}},
			wantErr: ErrInvalidRows,
		},
		{
			name: "rows as string",
			value: map[string]any{"image_variables": []any{
				map[string]any{"img": map[string]any{"rows": "2"}},
			}},
			wantErr: ErrInvalidRows,
		},
		{
			name: "non-string label",
			value: map[string]any{"url_variables": []any{
				map[string]any{"link": map[string]any{"cn": true}},
			}},
			wantErr: ErrInvalidString,
			wantMsg: "url_variables[0].link.cn: must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("p", tt.value)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				require.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestParse_RepeatedNameKeepsFirst(t *testing.T) {
	value := map[string]any{
		"page_title_en": "Legacy",
		"basic_variables": []any{
			map[string]any{"title": map[string]any{"en": "Title", "rows": 1.0}},
			map[string]any{"title": map[string]any{"en": "Title again", "rows": 3.0}},
			map[string]any{"body": map[string]any{"en": "Body"}},
		},
		"url_variables": []any{
			map[string]any{"link": map[string]any{}, "title": map[string]any{}},
		},
	}

	s, dropped, err := parse("legacy", value)
	require.NoError(t, err)
	require.Equal(t, []string{"basic_variables[1].title"}, dropped)
	require.Equal(t, []Variable{
		{Name: "title", EnText: "Title", Rows: 1},
		{Name: "body", EnText: "Body"},
	}, s.Basic)
	require.Len(t, s.URL, 2, "names repeat only within one list")

	viaParse, err := Parse("legacy", value)
	require.NoError(t, err)
	require.True(t, s.Equal(viaParse))
}

func TestRowsField_NumberKinds(t *testing.T) {
	for _, raw := range []any{3, int64(3), 3.0, json.Number("3")} {
		got, err := rowsField(raw)
		require.NoError(t, err)
		require.Equal(t, 3, got)
	}
	_, err := rowsField(json.Number("x"))
	require.ErrorIs(t, err, ErrInvalidRows)
}

func TestFromDocument(t *testing.T) {
	s := New("p")
	s.PageTitleEN = "Page"
	s.AddVariable(CategoryLanguageItem, NewVariable("language", "Language", "语言", 1))

	back, err := FromDocument("p", s.Document())
	require.NoError(t, err)
	require.True(t, s.Equal(back))

	doc := s.Document()
	doc.LanguageItemVariables = append(doc.LanguageItemVariables, Entry{"language": {En: "Other"}})
	back, err = FromDocument("p", doc)
	require.NoError(t, err)
	require.Equal(t, []Variable{NewVariable("language", "Language", "语言", 1)}, back.LanguageItem)

	doc.URLVariables = []Entry{{"x": {Rows: -2}}}
	_, err = FromDocument("p", doc)
	require.ErrorIs(t, err, ErrInvalidRows)
}

func TestDecode(t *testing.T) {
	m, err := Decode([]byte("/* header */ {\"a\": {},}"))
	require.NoError(t, err)
	require.Contains(t, m, "a")

	_, err = Decode([]byte(`42`))
	require.ErrorIs(t, err, ErrNotObject)
}

func TestFormat_SortsKeys(t *testing.T) {
	out, err := Format([]byte(`{"b": 1, "a": {"d": [1, 2], "c": "中"}}`))
	require.NoError(t, err)
	require.Equal(t, `{
  "a": {
    "c": "中",
    "d": [
      1,
      2
    ]
  },
  "b": 1
}
`, string(out))

	_, err = Format([]byte(`{nope`))
	require.Error(t, err)
}

func genSchema(name string) *rapid.Generator[*Schema] {
	label := rapid.StringMatching(`[A-Za-z 中文标题]{0,8}`)
	flag := rapid.SampledFrom([]string{FlagYes, FlagNo})
	varName := rapid.StringMatching(`[a-z_]{1,6}`)

	return rapid.Custom(func(t *rapid.T) *Schema {
		s := New(name)
		s.PageTitleCN = label.Draw(t, "title_cn")
		s.PageTitleEN = label.Draw(t, "title_en")
		s.MatchImg = flag.Draw(t, "match_img")
		s.FilterWith = flag.Draw(t, "filter_with")
		for _, c := range Categories {
			for _, n := range rapid.SliceOfDistinct(varName, rapid.ID[string]).Draw(t, c.String()) {
				s.AddVariable(c, NewVariable(n,
					label.Draw(t, "en"),
					label.Draw(t, "cn"),
					rapid.IntRange(0, 20).Draw(t, "rows"),
				))
			}
		}
		return s
	})
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genSchema("schema").Draw(rt, "schema")

		out, err := Marshal(Document{s.Name: s.Document()})
		require.NoError(rt, err)

		r := NewRegistry()
		report, err := r.ImportJSON(out)
		require.NoError(rt, err)
		require.Empty(rt, report.Skipped)

		back, ok := r.Get(s.Name)
		require.True(rt, ok)
		require.True(rt, s.Equal(back), "round trip changed the schema")
	})
}
