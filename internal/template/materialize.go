package template

import "github.com/vvwxvv/Data-Schema-Json-App/internal/schema"

// ToSchema materializes def as a schema called name. Absent page keys fall
// back to empty titles and "no" flags.
func ToSchema(def Definition, name string) *schema.Schema {
	page := def.PageConfig()
	s := &schema.Schema{
		Name:        name,
		PageTitleCN: page.Get(schema.KeyPageTitleCN, ""),
		PageTitleEN: page.Get(schema.KeyPageTitleEN, ""),
		MatchImg:    page.Get(schema.KeyMatchImg, schema.FlagNo),
		FilterWith:  page.Get(schema.KeyFilterWith, schema.FlagNo),
	}
	for _, c := range schema.Categories {
		src := def.Variables(c)
		vars := make([]schema.Variable, 0, len(src))
		for _, v := range src {
			vars = append(vars, v.SchemaVariable())
		}
		s.SetVariables(c, vars)
	}
	return s
}

// Preview returns the wire shape of def.
func Preview(def Definition) schema.SchemaDocument {
	return ToSchema(def, "").Document()
}
