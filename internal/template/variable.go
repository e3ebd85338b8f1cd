package template

import (
	"maps"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// Variable is a template field. Besides the labels copied into schemas it
// carries template-only hints.
type Variable struct {
	Name            string
	EnText          string
	CnText          string
	Rows            int
	Required        bool
	DefaultValue    string
	ValidationRules map[string]any
}

// NewVariable creates a required variable with the given labels.
func NewVariable(name, en, cn string, rows int) Variable {
	return Variable{Name: name, EnText: en, CnText: cn, Rows: rows, Required: true}
}

// SchemaVariable returns the schema form of v.
func (v Variable) SchemaVariable() schema.Variable {
	return schema.NewVariable(v.Name, v.EnText, v.CnText, v.Rows)
}

func (v Variable) clone() Variable {
	if v.ValidationRules != nil {
		v.ValidationRules = maps.Clone(v.ValidationRules)
	}
	return v
}
