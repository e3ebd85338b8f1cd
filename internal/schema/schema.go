package schema

import "slices"

// Values of the MatchImg and FilterWith flags.
const (
	FlagYes = "yes"
	FlagNo  = "no"
)

// Schema is a named record of page metadata and six categorized variable lists.
type Schema struct {
	Name        string
	PageTitleCN string
	PageTitleEN string
	MatchImg    string // FlagYes or FlagNo
	FilterWith  string // FlagYes or FlagNo

	Basic        []Variable
	More         []Variable
	Image        []Variable
	URL          []Variable
	Array        []Variable
	LanguageItem []Variable
}

// New creates an empty schema with both flags set to "no".
func New(name string) *Schema {
	return &Schema{
		Name:       name,
		MatchImg:   FlagNo,
		FilterWith: FlagNo,
	}
}

// Variables returns the list for category c. The returned slice aliases the
// schema's storage.
func (s *Schema) Variables(c Category) []Variable {
	return *c.info().list(s)
}

// SetVariables replaces the list for category c.
func (s *Schema) SetVariables(c Category, vars []Variable) {
	*c.info().list(s) = vars
}

// AddVariable appends v to category c.
// Returns false if the list already holds a variable with the same name.
func (s *Schema) AddVariable(c Category, v Variable) bool {
	list := c.info().list(s)
	if indexOf(*list, v.Name) >= 0 {
		return false
	}
	*list = append(*list, v)
	return true
}

// ReplaceVariable swaps the variable called name in category c for v,
// keeping its position. Returns false if name is absent or if v is renamed
// onto another variable of the same list.
func (s *Schema) ReplaceVariable(c Category, name string, v Variable) bool {
	list := c.info().list(s)
	idx := indexOf(*list, name)
	if idx < 0 {
		return false
	}
	if v.Name != name && indexOf(*list, v.Name) >= 0 {
		return false
	}
	(*list)[idx] = v
	return true
}

// RemoveVariable deletes the variable called name from category c.
func (s *Schema) RemoveVariable(c Category, name string) bool {
	list := c.info().list(s)
	idx := indexOf(*list, name)
	if idx < 0 {
		return false
	}
	*list = slices.Delete(*list, idx, idx+1)
	return true
}

// FindVariable returns the category and index of the first variable called
// name, searching categories in wire order.
func (s *Schema) FindVariable(name string) (Category, int, bool) {
	for _, c := range Categories {
		if idx := indexOf(s.Variables(c), name); idx >= 0 {
			return c, idx, true
		}
	}
	return 0, -1, false
}

// VariableCount returns the number of variables across all categories.
func (s *Schema) VariableCount() int {
	n := 0
	for _, c := range Categories {
		n += len(s.Variables(c))
	}
	return n
}

// Clone copies s under a new name. The variable lists are new containers
// holding the same variable values, so appending to the copy never affects s.
func (s *Schema) Clone(name string) *Schema {
	out := &Schema{
		Name:        name,
		PageTitleCN: s.PageTitleCN,
		PageTitleEN: s.PageTitleEN,
		MatchImg:    s.MatchImg,
		FilterWith:  s.FilterWith,
	}
	for _, c := range Categories {
		out.SetVariables(c, slices.Clone(s.Variables(c)))
	}
	return out
}

// Equal reports whether two schemas hold the same fields and the same
// ordered variables. A nil list and an empty list compare equal.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Name != o.Name ||
		s.PageTitleCN != o.PageTitleCN ||
		s.PageTitleEN != o.PageTitleEN ||
		s.MatchImg != o.MatchImg ||
		s.FilterWith != o.FilterWith {
		return false
	}
	for _, c := range Categories {
		if !slices.Equal(s.Variables(c), o.Variables(c)) {
			return false
		}
	}
	return true
}

func indexOf(vars []Variable, name string) int {
	return slices.IndexFunc(vars, func(v Variable) bool { return v.Name == name })
}
