package app

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/flags"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/form"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/logoverlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/picker"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/toaster"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case autosaveMsg:
		return m.handleAutosave()

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case pubsub.Event[workspace.Change]:
		m.refresh()
		return m, m.wsListener.Next()

	case log.LogEvent:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Next()

	case logoverlay.CloseMsg:
		return m, nil

	case picker.SelectMsg:
		m.modal = modalNone
		return m.handlePickerSelect(msg)

	case picker.CancelMsg:
		m.modal = modalNone
		return m, nil

	case form.SubmitMsg:
		m.modal = modalNone
		return m.handleFormSubmit(msg)

	case form.CancelMsg:
		m.modal = modalNone
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input ticks
	var cmd tea.Cmd
	switch {
	case m.modal == modalForm:
		m.form, cmd = m.form.Update(msg)
	case m.filtering:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	switch m.modal {
	case modalHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.modal = modalNone
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case modalPicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case modalForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(msg)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == paneSchemas {
			m.focus = paneVariables
		} else {
			m.focus = paneSchemas
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refresh()
		}
	case key.Matches(msg, m.keys.PreviewUp):
		m.preview.ScrollUp(max(m.preview.Height/2, 1))
	case key.Matches(msg, m.keys.PreviewDn):
		m.preview.ScrollDown(max(m.preview.Height/2, 1))
	case key.Matches(msg, m.keys.NewSchema):
		return m.openForm(form.Config{
			ID:       formNewSchema,
			Title:    "New schema",
			Fields:   []form.Field{nameField("")},
			Validate: m.validateSchemaName(""),
		})
	case key.Matches(msg, m.keys.FromTemplate):
		return m.openTemplatePicker()
	case key.Matches(msg, m.keys.Duplicate):
		return m.openDuplicateForm()
	case key.Matches(msg, m.keys.Rename):
		return m.openRenameForm()
	case key.Matches(msg, m.keys.DeleteSchema):
		return m.openDeleteConfirm()
	case key.Matches(msg, m.keys.PageSettings):
		return m.openPageForm()
	case key.Matches(msg, m.keys.AddVariable):
		return m.openCategoryPicker()
	case key.Matches(msg, m.keys.EditVariable):
		return m.openVariableEditor()
	case key.Matches(msg, m.keys.RemoveVariable):
		return m.removeVariable()
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.ExportCurrent):
		return m.exportSelected()
	case key.Matches(msg, m.keys.Preview):
		return m.togglePreview()
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.ToggleLog):
		if m.logListener == nil {
			return m, m.showToast("Debug log is off, start with --debug", toaster.StyleInfo)
		}
		m.logOverlay = m.logOverlay.Toggle()
	case key.Matches(msg, m.keys.Help):
		m.help = m.help.SetSize(m.width, m.height)
		m.modal = modalHelp
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refresh()
		return m, nil
	case tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyDown:
		m.move(1)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// quit exits at once on ctrl+c. With unsaved changes q has to be pressed
// twice.
func (m Model) quit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || !m.ws.Dirty() || m.quitArmed {
		return m, tea.Quit
	}
	m.quitArmed = true
	return m, m.showToast("Unsaved changes: press q again to quit, ctrl+s to save", toaster.StyleWarn)
}

func (m *Model) move(delta int) {
	if m.focus == paneVariables {
		n := len(m.variableRows())
		m.varCursor = clamp(m.varCursor+delta, 0, n-1)
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.names)-1)
	m.varCursor = 0
	m.updatePreview()
	m.preview.GotoTop()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone || !m.flags.Enabled(flags.FlagMouse) {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := range m.names {
		if z := zone.Get(schemaZoneID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			m.varCursor = 0
			m.focus = paneSchemas
			m.updatePreview()
			m.preview.GotoTop()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if err := m.ws.Save(); err != nil {
		return m, m.showToast("Save failed: "+err.Error(), toaster.StyleError)
	}
	m.syncWatcher()
	m.quitArmed = false
	return m, m.showToast(fmt.Sprintf("Saved %d schemas", m.ws.Registry().Len()), toaster.StyleSuccess)
}

func (m Model) exportSelected() (tea.Model, tea.Cmd) {
	name, ok := m.SelectedName()
	if !ok {
		return m, m.showToast("No schema selected", toaster.StyleWarn)
	}
	path := filepath.Join(m.exportDir, workspace.SchemaExportFilename(name, m.now()))
	if err := m.ws.ExportSchema(name, path); err != nil {
		log.ErrorErr(log.CatWorkspace, "export failed", err, "schema", name, "path", path)
		return m, m.showToast("Export failed: "+err.Error(), toaster.StyleError)
	}
	return m, m.showToast("Exported "+filepath.Base(path), toaster.StyleSuccess)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	name := styles.Toggle(m.theme.Name)
	m.setTheme(styles.NewTheme(name))
	if m.configPath != "" {
		if err := config.SaveTheme(m.configPath, name); err != nil {
			log.ErrorErr(log.CatConfig, "saving theme failed", err, "path", m.configPath)
			return m, m.showToast("Theme not saved: "+err.Error(), toaster.StyleWarn)
		}
	}
	return m, m.showToast("Theme: "+name, toaster.StyleInfo)
}

func (m Model) togglePreview() (tea.Model, tea.Cmd) {
	m.cfg.UI.ShowPreview = !m.cfg.UI.ShowPreview
	m.layout()
	if m.configPath != "" {
		if err := config.SavePreview(m.configPath, m.cfg.UI.ShowPreview); err != nil {
			log.ErrorErr(log.CatConfig, "saving preview setting failed", err, "path", m.configPath)
			return m, m.showToast("Preview setting not saved: "+err.Error(), toaster.StyleWarn)
		}
	}
	return m, nil
}

// handleAutosave saves pending changes, writes a rotated backup after each
// save and schedules the next tick.
func (m Model) handleAutosave() (tea.Model, tea.Cmd) {
	next := m.autosaveTick()
	saved, err := m.ws.SaveIfDirty()
	if err != nil {
		log.ErrorErr(log.CatWorkspace, "autosave failed", err, "path", m.ws.Path())
		return m, tea.Batch(next, m.showToast("Autosave failed: "+err.Error(), toaster.StyleError))
	}
	if !saved {
		return m, next
	}
	m.syncWatcher()
	if m.cfg.Backup.Enabled {
		if _, err := m.ws.Backup(); err != nil && !errors.Is(err, workspace.ErrBackupDisabled) {
			log.ErrorErr(log.CatWorkspace, "backup failed", err, "dir", m.ws.BackupDir())
			return m, tea.Batch(next, m.showToast("Backup failed: "+err.Error(), toaster.StyleWarn))
		}
	}
	return m, tea.Batch(next, m.showToast("Autosaved", toaster.StyleInfo))
}

// handleFileChanged reloads the workspace after an outside change. Unsaved
// edits are never discarded. A removed file marks the workspace dirty so the
// next save writes it again.
func (m Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForFileChange(m.ctx, m.fileEvents)
	if msg.removed {
		log.Warn(log.CatWatcher, "workspace file removed", "path", m.ws.Path())
		m.ws.MarkDirty("")
		return m, tea.Batch(next, m.showToast("Workspace file removed, save to recreate it", toaster.StyleWarn))
	}
	if m.ws.Dirty() {
		log.Warn(log.CatWatcher, "workspace changed on disk with unsaved edits", "path", m.ws.Path())
		return m, tea.Batch(next, m.showToast("File changed on disk, save to overwrite it", toaster.StyleWarn))
	}

	before, _ := schema.Marshal(m.ws.Registry().ExportAll())
	if _, err := m.ws.Load(); err != nil {
		log.ErrorErr(log.CatWatcher, "reload failed", err, "path", m.ws.Path())
		return m, tea.Batch(next, m.showToast("Reload failed: "+err.Error(), toaster.StyleError))
	}
	after, _ := schema.Marshal(m.ws.Registry().ExportAll())
	m.refresh()

	if bytes.Equal(before, after) {
		return m, next
	}
	return m, tea.Batch(next, m.showToast("Reloaded from disk", toaster.StyleInfo))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
