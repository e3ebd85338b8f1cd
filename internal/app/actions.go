package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/form"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/markdown"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/picker"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/toaster"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

const (
	templatePickerWidth = 60
	deleteConfirmValue  = "delete"
)

var (
	errInvalidRows = errors.New("rows must be a non-negative integer")
	errInvalidFlag = errors.New("must be yes or no")
)

func nameField(initial string) form.Field {
	return form.Field{Key: "name", Label: "Name", Placeholder: "schema name", Initial: initial}
}

func (m Model) openForm(cfg form.Config) (tea.Model, tea.Cmd) {
	m.form = form.New(cfg, m.theme).SetSize(m.width, m.height)
	m.modal = modalForm
	return m, m.form.Init()
}

func (m Model) openPicker(p picker.Model) (tea.Model, tea.Cmd) {
	m.picker = p.SetSize(m.width, m.height)
	m.modal = modalPicker
	return m, nil
}

// validateSchemaName rejects blank names and names held by a schema other
// than current.
func (m Model) validateSchemaName(current string) func(map[string]string) error {
	reg := m.ws.Registry()
	return func(values map[string]string) error {
		name := strings.TrimSpace(values["name"])
		if err := workspace.ValidateName(name); err != nil {
			return err
		}
		if name != current && reg.Has(name) {
			return fmt.Errorf("schema %q already exists", name)
		}
		return nil
	}
}

func (m Model) openTemplatePicker() (tea.Model, tea.Cmd) {
	if m.templates == nil {
		return m, m.showToast("No template catalog loaded", toaster.StyleError)
	}
	infos, err := m.templates.List(m.ctx)
	if err != nil {
		log.ErrorErr(log.CatTemplate, "listing templates failed", err)
		return m, m.showToast("Templates unavailable: "+err.Error(), toaster.StyleError)
	}

	renderer, err := markdown.New(templatePickerWidth-4, m.theme.Name)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer init failed", err)
	}

	options := make([]picker.Option, 0, len(infos))
	for _, info := range infos {
		md := info.Metadata
		desc := md.Description
		if renderer != nil && desc != "" {
			if out, err := renderer.Render(desc); err == nil {
				desc = out
			}
		}
		options = append(options, picker.Option{
			Label:       fmt.Sprintf("%s (%s)", md.Name, info.ID),
			Value:       info.ID,
			Description: desc,
		})
	}
	if len(options) == 0 {
		return m, m.showToast("The template catalog is empty", toaster.StyleWarn)
	}

	p := picker.New(pickTemplate, "New schema from template", options, m.theme).
		SetBoxWidth(templatePickerWidth)
	return m.openPicker(p)
}

func (m Model) openDuplicateForm() (tea.Model, tea.Cmd) {
	name, ok := m.SelectedName()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	return m.openForm(form.Config{
		ID:       formDuplicate,
		Title:    "Duplicate " + name,
		Fields:   []form.Field{nameField(name + "_copy")},
		Validate: m.validateSchemaName(""),
	})
}

func (m Model) openRenameForm() (tea.Model, tea.Cmd) {
	name, ok := m.SelectedName()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	return m.openForm(form.Config{
		ID:       formRename,
		Title:    "Rename " + name,
		Fields:   []form.Field{nameField(name)},
		Validate: m.validateSchemaName(name),
	})
}

func (m Model) openDeleteConfirm() (tea.Model, tea.Cmd) {
	name, ok := m.SelectedName()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	p := picker.New(pickDelete, "Delete "+name+"?", []picker.Option{
		{Label: "Cancel", Value: "cancel"},
		{Label: "Delete", Value: deleteConfirmValue},
	}, m.theme)
	return m.openPicker(p)
}

func (m Model) openPageForm() (tea.Model, tea.Cmd) {
	s, ok := m.selectedSchema()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	return m.openForm(form.Config{
		ID:    formPage,
		Title: "Page settings of " + s.Name,
		Fields: []form.Field{
			{Key: schema.KeyPageTitleCN, Label: "Chinese page title", Initial: s.PageTitleCN},
			{Key: schema.KeyPageTitleEN, Label: "English page title", Initial: s.PageTitleEN},
			{Key: schema.KeyMatchImg, Label: "Match images (yes/no)", Placeholder: schema.FlagNo, Initial: s.MatchImg},
			{Key: schema.KeyFilterWith, Label: "Filter with (yes/no)", Placeholder: schema.FlagNo, Initial: s.FilterWith},
		},
		Validate: validatePage,
	})
}

func validatePage(values map[string]string) error {
	for _, k := range []string{schema.KeyMatchImg, schema.KeyFilterWith} {
		if _, err := parseFlag(values[k]); err != nil {
			return fmt.Errorf("%s %w", k, err)
		}
	}
	return nil
}

// parseFlag reads a yes/no field, case-insensitively. Blank means no.
func parseFlag(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "":
		return schema.FlagNo, nil
	case schema.FlagYes, schema.FlagNo:
		return v, nil
	}
	return "", errInvalidFlag
}

func (m Model) openCategoryPicker() (tea.Model, tea.Cmd) {
	s, ok := m.selectedSchema()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	options := make([]picker.Option, 0, len(schema.Categories))
	for _, c := range schema.Categories {
		options = append(options, picker.Option{
			Label:       c.Label(),
			Value:       c.String(),
			Description: fmt.Sprintf("%d in %s", len(s.Variables(c)), c.WireKey()),
		})
	}
	p := picker.New(pickCategory, "Add variable to "+s.Name, options, m.theme)
	return m.openPicker(p)
}

func (m Model) openVariableEditor() (tea.Model, tea.Cmd) {
	row, ok := m.selectedVariable()
	if !ok {
		return m, m.showToast("No variable selected", toaster.StyleWarn)
	}
	return m.openVariableForm(row.cat, row.v)
}

// openVariableForm edits existing, or adds a variable when existing has no
// name.
func (m Model) openVariableForm(c schema.Category, existing schema.Variable) (tea.Model, tea.Cmd) {
	name, ok := m.SelectedName()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	m.pendingCategory = c
	m.editingVar = existing.Name

	title := "Add " + c.Label()
	rows := "1"
	if existing.Name != "" {
		title = "Edit " + existing.Name
		rows = strconv.Itoa(existing.Rows)
	}
	return m.openForm(form.Config{
		ID:    formVariable,
		Title: title,
		Fields: []form.Field{
			{Key: "name", Label: "Variable name", Placeholder: "sku", Initial: existing.Name},
			{Key: "en", Label: "English label", Initial: existing.EnText},
			{Key: "cn", Label: "Chinese label", Initial: existing.CnText},
			{Key: "rows", Label: "Rows", Placeholder: "1", Initial: rows, CharLimit: 4},
		},
		Validate: m.validateVariable(name, c, existing.Name),
	})
}

// validateVariable requires a non-blank name that no other variable of
// category c uses, and a valid row count.
func (m Model) validateVariable(schemaName string, c schema.Category, current string) func(map[string]string) error {
	reg := m.ws.Registry()
	return func(values map[string]string) error {
		name := strings.TrimSpace(values["name"])
		if err := workspace.ValidateName(name); err != nil {
			return fmt.Errorf("variable %w", err)
		}
		if _, err := parseRows(values["rows"]); err != nil {
			return err
		}
		if name == current {
			return nil
		}
		if s, ok := reg.Get(schemaName); ok {
			for _, v := range s.Variables(c) {
				if v.Name == name {
					return fmt.Errorf("variable %q already exists in %s", name, c.Label())
				}
			}
		}
		return nil
	}
}

// parseRows reads the rows field. Blank means one row.
func parseRows(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errInvalidRows
	}
	return n, nil
}

func (m Model) removeVariable() (tea.Model, tea.Cmd) {
	name, _ := m.SelectedName()
	row, ok := m.selectedVariable()
	if !ok {
		return m, m.showToast("No variable selected", toaster.StyleWarn)
	}
	if !m.ws.RemoveVariable(name, row.cat, row.v.Name) {
		return m, m.showToast("Could not remove "+row.v.Name, toaster.StyleError)
	}
	m.refresh()
	return m, m.showToast("Removed "+row.v.Name, toaster.StyleSuccess)
}

func (m Model) handlePickerSelect(msg picker.SelectMsg) (tea.Model, tea.Cmd) {
	switch msg.ID {
	case pickTemplate:
		m.pendingTemplate = msg.Option.Value
		return m.openForm(form.Config{
			ID:       formTemplateName,
			Title:    "Name for " + msg.Option.Label,
			Fields:   []form.Field{nameField("")},
			Validate: m.validateSchemaName(""),
		})

	case pickCategory:
		c, err := schema.ParseCategory(msg.Option.Value)
		if err != nil {
			return m, m.showToast(err.Error(), toaster.StyleError)
		}
		return m.openVariableForm(c, schema.Variable{})

	case pickDelete:
		if msg.Option.Value != deleteConfirmValue {
			return m, nil
		}
		name, ok := m.SelectedName()
		if !ok || !m.ws.DeleteSchema(name) {
			return m, m.showToast("Could not delete "+name, toaster.StyleError)
		}
		m.refresh()
		return m, m.showToast("Deleted "+name, toaster.StyleSuccess)
	}
	return m, nil
}

func (m Model) handleFormSubmit(msg form.SubmitMsg) (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(msg.Values["name"])

	switch msg.ID {
	case formNewSchema:
		if !m.ws.AddSchema(schema.New(name)) {
			return m, m.showToast(fmt.Sprintf("Schema %q already exists", name), toaster.StyleError)
		}
		m.selectName(name)
		return m, m.showToast("Created "+name, toaster.StyleSuccess)

	case formTemplateName:
		s, err := m.templates.Instantiate(m.pendingTemplate, name)
		if err != nil {
			return m, m.showToast(err.Error(), toaster.StyleError)
		}
		if !m.ws.AddSchema(s) {
			return m, m.showToast(fmt.Sprintf("Schema %q already exists", name), toaster.StyleError)
		}
		m.selectName(name)
		return m, m.showToast(fmt.Sprintf("Created %s from %s", name, m.pendingTemplate), toaster.StyleSuccess)

	case formDuplicate:
		src, _ := m.SelectedName()
		if !m.ws.DuplicateSchema(src, name) {
			return m, m.showToast("Could not duplicate "+src, toaster.StyleError)
		}
		m.selectName(name)
		return m, m.showToast(fmt.Sprintf("Duplicated %s as %s", src, name), toaster.StyleSuccess)

	case formRename:
		old, _ := m.SelectedName()
		if name == old {
			return m, nil
		}
		if !m.ws.RenameSchema(old, name) {
			return m, m.showToast("Could not rename "+old, toaster.StyleError)
		}
		m.selectName(name)
		return m, m.showToast(fmt.Sprintf("Renamed %s to %s", old, name), toaster.StyleSuccess)

	case formVariable:
		return m.submitVariable(msg.Values)

	case formPage:
		return m.submitPage(msg.Values)
	}
	return m, nil
}

func (m Model) submitPage(values map[string]string) (tea.Model, tea.Cmd) {
	s, ok := m.selectedSchema()
	if !ok {
		return m, nil
	}
	matchImg, err := parseFlag(values[schema.KeyMatchImg])
	if err != nil {
		return m, m.showToast(err.Error(), toaster.StyleError)
	}
	filterWith, err := parseFlag(values[schema.KeyFilterWith])
	if err != nil {
		return m, m.showToast(err.Error(), toaster.StyleError)
	}

	updated := s.Clone(s.Name)
	updated.PageTitleCN = values[schema.KeyPageTitleCN]
	updated.PageTitleEN = values[schema.KeyPageTitleEN]
	updated.MatchImg = matchImg
	updated.FilterWith = filterWith
	if !m.ws.UpdateSchema(s.Name, updated) {
		return m, m.showToast("Could not update "+s.Name, toaster.StyleError)
	}
	m.refresh()
	return m, m.showToast("Updated page settings of "+s.Name, toaster.StyleSuccess)
}

func (m Model) submitVariable(values map[string]string) (tea.Model, tea.Cmd) {
	schemaName, ok := m.SelectedName()
	if !ok {
		return m, nil
	}
	rows, err := parseRows(values["rows"])
	if err != nil {
		return m, m.showToast(err.Error(), toaster.StyleError)
	}
	v := schema.NewVariable(strings.TrimSpace(values["name"]), values["en"], values["cn"], rows)

	var done bool
	if m.editingVar == "" {
		done = m.ws.AddVariable(schemaName, m.pendingCategory, v)
	} else {
		done = m.ws.ReplaceVariable(schemaName, m.pendingCategory, m.editingVar, v)
	}
	if !done {
		return m, m.showToast("Could not save variable "+v.Name, toaster.StyleError)
	}

	m.refresh()
	for i, row := range m.variableRows() {
		if row.cat == m.pendingCategory && row.v.Name == v.Name {
			m.varCursor = i
			break
		}
	}
	m.focus = paneVariables
	return m, m.showToast(fmt.Sprintf("Saved %s in %s", v.Name, m.pendingCategory.Label()), toaster.StyleSuccess)
}
