package template

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

func mkTable(t *testing.T, id string, opts func(b *Builder)) *Table {
	t.Helper()
	b := NewBuilder(id)
	if opts != nil {
		opts(b)
	}
	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func TestBuilder_Defaults(t *testing.T) {
	table := mkTable(t, "blank", nil)

	require.Equal(t, "blank", table.ID())
	md := table.Metadata()
	require.Equal(t, "blank", md.Name, "name falls back to id")
	require.Equal(t, DefaultVersion, md.Version)
	require.Equal(t, DefaultAuthor, md.Author)
	require.False(t, md.RequiresImages)
	require.Equal(t, DefaultPageConfig(), table.PageConfig())
	for _, c := range schema.Categories {
		require.Empty(t, table.Variables(c))
	}
}

func TestBuilder_EmptyID(t *testing.T) {
	_, err := NewBuilder("").Build()
	require.ErrorIs(t, err, ErrEmptyID)
}

func TestBuilder_VariableErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		wantErr error
	}{
		{
			name:    "invalid category",
			build:   func(b *Builder) { b.Variable(schema.Category(9), NewVariable("x", "", "", 1)) },
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "empty name",
			build:   func(b *Builder) { b.Variable(schema.CategoryBasic, NewVariable("", "", "", 1)) },
			wantErr: ErrEmptyVariableName,
		},
		{
			name:    "negative rows",
			build:   func(b *Builder) { b.Variable(schema.CategoryBasic, NewVariable("x", "", "", -1)) },
			wantErr: ErrNegativeRows,
		},
		{
			name: "duplicate in category",
			build: func(b *Builder) {
				b.Variable(schema.CategoryMore, NewVariable("x", "", "", 1)).
					Variable(schema.CategoryMore, NewVariable("x", "", "", 2))
			},
			wantErr: ErrDuplicateVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("broken")
			tt.build(b)
			_, err := b.Build()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilder_SameNameAcrossCategories(t *testing.T) {
	table := mkTable(t, "about_page", func(b *Builder) {
		b.Variable(schema.CategoryBasic, NewVariable("cover_img_url", "Cover Image URL", "封面图片链接", 1)).
			Variable(schema.CategoryImage, NewVariable("cover_img_url", "Cover Image", "封面图片", 1))
	})

	require.Len(t, table.Variables(schema.CategoryBasic), 1)
	require.Len(t, table.Variables(schema.CategoryImage), 1)
}

func TestTable_ReturnsCopies(t *testing.T) {
	table := mkTable(t, "t", func(b *Builder) {
		b.Tags("a").
			Page(PageConfig{schema.KeyPageTitleEN: "T"}).
			Variable(schema.CategoryBasic, Variable{
				Name:            "title",
				Rows:            1,
				ValidationRules: map[string]any{"max": 10},
			})
	})

	vars := table.Variables(schema.CategoryBasic)
	vars[0].Name = "mutated"
	vars[0].ValidationRules["max"] = 0
	md := table.Metadata()
	md.Tags[0] = "mutated"
	page := table.PageConfig()
	page[schema.KeyPageTitleEN] = "mutated"

	require.Equal(t, "title", table.Variables(schema.CategoryBasic)[0].Name)
	require.Equal(t, 10, table.Variables(schema.CategoryBasic)[0].ValidationRules["max"])
	require.Equal(t, []string{"a"}, table.Metadata().Tags)
	require.Equal(t, "T", table.PageConfig()[schema.KeyPageTitleEN])
	require.Nil(t, table.Variables(schema.Category(-1)))
}

func TestTable_FactoryProducesIndependentValues(t *testing.T) {
	table := mkTable(t, "t", func(b *Builder) {
		b.Variable(schema.CategoryURL, NewVariable("link", "Link", "链接", 1))
	})
	f := table.Factory()

	a, b := f(), f()
	require.NotSame(t, a, b)
	require.Equal(t, a.Variables(schema.CategoryURL), b.Variables(schema.CategoryURL))
}

func TestNewVariable_Required(t *testing.T) {
	v := NewVariable("name", "Name", "姓名", 1)
	require.True(t, v.Required)
	require.Equal(t, schema.NewVariable("name", "Name", "姓名", 1), v.SchemaVariable())
}
