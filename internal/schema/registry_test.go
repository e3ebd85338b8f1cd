package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistry_AddRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	first := New("p")
	first.PageTitleEN = "first"

	require.True(t, r.Add(first))
	second := New("p")
	second.PageTitleEN = "second"
	require.False(t, r.Add(second))

	got, ok := r.Get("p")
	require.True(t, ok)
	require.Equal(t, "first", got.PageTitleEN)
	require.Equal(t, 1, r.Len())
	require.False(t, r.Add(nil))
}

func TestRegistry_Update(t *testing.T) {
	r := NewRegistry()
	r.Add(New("a"))
	r.Add(New("b"))

	edited := New("a")
	edited.PageTitleCN = "标题"
	require.True(t, r.Update("a", edited), "same name overwrites")
	got, _ := r.Get("a")
	require.Equal(t, "标题", got.PageTitleCN)

	require.False(t, r.Update("a", New("b")), "rename onto existing name")
	require.True(t, r.Has("a"))
	require.True(t, r.Has("b"))

	require.True(t, r.Update("a", New("c")))
	require.Equal(t, []string{"b", "c"}, r.Names())

	require.True(t, r.Update("ghost", New("d")), "missing old name with free new name inserts")
	require.Equal(t, []string{"b", "c", "d"}, r.Names())
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	r.Add(New("a"))

	require.True(t, r.Delete("a"))
	require.False(t, r.Delete("a"))
	_, ok := r.Get("a")
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	src := New("src")
	src.AddVariable(CategoryBasic, NewVariable("title", "Title", "标题", 1))
	r.Add(src)
	r.Add(New("taken"))

	require.False(t, r.Duplicate("missing", "x"))
	require.False(t, r.Duplicate("src", "taken"))
	require.True(t, r.Duplicate("src", "copy"))

	cp, ok := r.Get("copy")
	require.True(t, ok)
	require.Equal(t, "copy", cp.Name)
	require.Equal(t, src.Basic, cp.Basic)

	cp.AddVariable(CategoryBasic, NewVariable("subtitle", "", "", 1))
	require.Len(t, src.Basic, 1, "source list must not see appends to the copy")
	cp.RemoveVariable(CategoryBasic, "title")
	require.Equal(t, "title", src.Basic[0].Name)
}

func TestRegistry_NamesAndFilter(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"Event", "artist", "about_page", "Artwork"} {
		r.Add(New(n))
	}

	require.Equal(t, []string{"Artwork", "Event", "about_page", "artist"}, r.Names())
	require.Equal(t, []string{"Artwork", "artist"}, r.Filter("ART"))
	require.Equal(t, r.Names(), r.Filter(""))
	require.Empty(t, r.Filter("zzz"))
}

func TestRegistry_ExportOne(t *testing.T) {
	r := NewRegistry()
	r.Add(New("a"))
	r.Add(New("b"))

	doc, ok := r.ExportOne("a")
	require.True(t, ok)
	require.Len(t, doc, 1)
	require.Contains(t, doc, "a")

	_, ok = r.ExportOne("zzz")
	require.False(t, ok)
}

func TestRegistry_ImportAllBestEffort(t *testing.T) {
	r := NewRegistry()
	r.Add(New("stale"))

	report := r.ImportAll(map[string]any{
		"good": map[string]any{"page_title_en": "Good"},
		"bad":  map[string]any{"array_variables": "oops"},
	})

	require.Equal(t, []string{"good"}, report.Imported)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, "bad", report.Skipped[0].Name)
	require.ErrorIs(t, report.Skipped[0].Err, ErrInvalidList)

	require.Equal(t, []string{"good"}, r.Names(), "import replaces previous content")
	got, _ := r.Get("good")
	require.Equal(t, "Good", got.PageTitleEN)
	require.Equal(t, FlagNo, got.MatchImg)
}

func TestRegistry_ImportAllReportsDroppedVariables(t *testing.T) {
	r := NewRegistry()

	report := r.ImportAll(map[string]any{
		"legacy": map[string]any{"basic_variables": []any{
			map[string]any{"title": map[string]any{}},
			map[string]any{"title": map[string]any{}},
		}},
		"clean": map[string]any{},
	})

	require.Equal(t, []string{"clean", "legacy"}, report.Imported)
	require.Empty(t, report.Skipped)
	require.Equal(t, []DroppedEntry{{Schema: "legacy", Path: "basic_variables[1].title"}}, report.Dropped)
	require.True(t, report.Lossy())

	legacy, ok := r.Get("legacy")
	require.True(t, ok)
	require.Len(t, legacy.Basic, 1)

	require.False(t, r.ImportAll(map[string]any{"clean": map[string]any{}}).Lossy())
}

func TestRegistry_ImportJSON(t *testing.T) {
	r := NewRegistry()
	r.Add(New("keep"))

	_, err := r.ImportJSON([]byte(`["not", "an", "object"]`))
	require.ErrorIs(t, err, ErrNotObject)
	require.True(t, r.Has("keep"), "registry untouched on top-level error")

	_, err = r.ImportJSON([]byte(`{`))
	require.Error(t, err)
	require.True(t, r.Has("keep"))

	report, err := r.ImportJSON([]byte(`{
		// hand-edited
		"p": {
			"basic_variables": [{"sku": {"en": "SKU", "cn": "库存单位", "rows": 1}},],
		},
	}`))
	require.NoError(t, err)
	require.Equal(t, []string{"p"}, report.Imported)
	require.Empty(t, report.Skipped)
	require.Equal(t, []string{"p"}, r.Names())

	p, _ := r.Get("p")
	require.Equal(t, []Variable{{Name: "sku", EnText: "SKU", CnText: "库存单位", Rows: 1}}, p.Basic)
}

// Random operation sequences checked against a plain set of names.
func TestRegistry_UniqueNamesProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		model := map[string]bool{}
		nameGen := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			op := rapid.IntRange(0, 3).Draw(rt, fmt.Sprintf("op%d", i))
			x := nameGen.Draw(rt, fmt.Sprintf("x%d", i))
			y := nameGen.Draw(rt, fmt.Sprintf("y%d", i))

			switch op {
			case 0:
				ok := r.Add(New(x))
				require.Equal(rt, !model[x], ok)
				model[x] = true
			case 1:
				ok := r.Update(x, New(y))
				wantOK := x == y || !model[y]
				require.Equal(rt, wantOK, ok)
				if ok {
					delete(model, x)
					model[y] = true
				}
			case 2:
				ok := r.Duplicate(x, y)
				require.Equal(rt, model[x] && !model[y], ok)
				if ok {
					model[y] = true
				}
			case 3:
				ok := r.Delete(x)
				require.Equal(rt, model[x], ok)
				delete(model, x)
			}

			require.Equal(rt, len(model), r.Len())
			seen := map[string]bool{}
			for _, n := range r.Names() {
				require.False(rt, seen[n], "name %q listed twice", n)
				seen[n] = true
				s, ok := r.Get(n)
				require.True(rt, ok)
				require.Equal(rt, n, s.Name)
			}
		}
	})
}
