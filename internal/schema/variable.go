package schema

// Variable is a single display field of a schema.
type Variable struct {
	Name   string
	EnText string
	CnText string
	Rows   int // input height hint, never negative
}

// Labels is the wire body of a variable entry.
type Labels struct {
	En   string `json:"en"`
	Cn   string `json:"cn"`
	Rows int    `json:"rows"`
}

// Entry is the wire form of a variable: a single-key object keyed by the
// variable name.
type Entry map[string]Labels

// NewVariable creates a variable with the given labels and row hint.
func NewVariable(name, en, cn string, rows int) Variable {
	return Variable{Name: name, EnText: en, CnText: cn, Rows: rows}
}

// Entry returns the canonical wire representation of the variable.
func (v Variable) Entry() Entry {
	return Entry{v.Name: {En: v.EnText, Cn: v.CnText, Rows: v.Rows}}
}
