// Package app contains the root application model of the schema editor.
package app

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/flags"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/keys"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/templateservice"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/form"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/help"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/logoverlay"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/picker"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/styles"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/ui/toaster"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/watcher"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

type pane int

const (
	paneSchemas pane = iota
	paneVariables
)

// modal identifies the dialog that owns keyboard input.
type modal int

const (
	modalNone modal = iota
	modalHelp
	modalPicker
	modalForm
)

// Picker and form identifiers.
const (
	pickTemplate = "template"
	pickCategory = "category"
	pickDelete   = "delete"

	formNewSchema    = "new-schema"
	formTemplateName = "template-name"
	formDuplicate    = "duplicate"
	formRename       = "rename"
	formVariable     = "variable"
	formPage         = "page"
)

type (
	autosaveMsg    struct{}
	fileChangedMsg struct{ removed bool }
)

// Options configures the editor.
type Options struct {
	Workspace  *workspace.Workspace
	Templates  *templateservice.Service
	Config     config.Config
	ConfigPath string // receives theme changes, empty disables persisting them
	ExportDir  string // ctrl+e target, empty uses the workspace file directory
	Debug      bool   // enables the log overlay
	Now        func() time.Time
}

// Model is the root application state.
type Model struct {
	ws         *workspace.Workspace
	templates  *templateservice.Service
	cfg        config.Config
	configPath string
	flags      *flags.Registry
	exportDir  string
	now        func() time.Time

	keys   keys.KeyMap
	theme  styles.Theme
	width  int
	height int

	// Schema list and variable table
	names     []string
	cursor    int
	varCursor int
	focus     pane
	filter    textinput.Model
	filtering bool
	preview   viewport.Model

	// Dialogs
	modal           modal
	help            help.Model
	picker          picker.Model
	form            form.Model
	pendingTemplate string
	pendingCategory schema.Category
	editingVar      string
	quitArmed       bool

	toaster    toaster.Model
	logOverlay logoverlay.Model

	// Background sources, all stopped by Close
	ctx         context.Context
	cancel      context.CancelFunc
	wsListener  *pubsub.Listener[workspace.Change]
	logListener *log.LogListener
	watcher     *watcher.Watcher
	fileEvents  <-chan watcher.Change
}

// New creates the editor for an opened workspace.
func New(opts Options) Model {
	cfg := opts.Config
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = filepath.Dir(opts.Workspace.Path())
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	km := keys.DefaultKeyMap()

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ws:         opts.Workspace,
		templates:  opts.Templates,
		cfg:        cfg,
		configPath: opts.ConfigPath,
		flags:      flags.New(cfg.Flags),
		exportDir:  exportDir,
		now:        now,
		keys:       km,
		theme:      theme,
		filter:     filter,
		preview:    viewport.New(0, 0),
		help:       help.New(km, theme),
		toaster:    toaster.New(theme),
		logOverlay: logoverlay.New(theme),
		ctx:        ctx,
		cancel:     cancel,
		wsListener: pubsub.NewListener(ctx, opts.Workspace.Broker()),
	}

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if m.flags.Enabled(flags.FlagWatchWorkspace) && m.ws.Path() != "" {
		m.startWatcher()
	}

	m.refresh()
	return m
}

func (m *Model) startWatcher() {
	w, err := watcher.Watch(m.ws.Path())
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher start failed", err, "path", m.ws.Path())
		return
	}
	m.watcher = w
	m.fileEvents = w.Changes()
}

// Init starts the workspace listener, the autosave tick, the file watcher
// listener and, in debug mode, the log listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.wsListener.Next()}
	if m.cfg.Autosave.Enabled && m.cfg.Autosave.Interval > 0 {
		cmds = append(cmds, m.autosaveTick())
	}
	if m.fileEvents != nil {
		cmds = append(cmds, waitForFileChange(m.ctx, m.fileEvents))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Next())
	}
	return tea.Batch(cmds...)
}

// Close stops the watcher and the event listeners.
func (m *Model) Close() error {
	m.cancel()
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Workspace returns the edited workspace.
func (m Model) Workspace() *workspace.Workspace {
	return m.ws
}

// Theme returns the active theme.
func (m Model) Theme() styles.Theme {
	return m.theme
}

// Names returns the schema names shown in the list.
func (m Model) Names() []string {
	return m.names
}

// SelectedName returns the highlighted schema.
func (m Model) SelectedName() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return "", false
	}
	return m.names[m.cursor], true
}

func (m Model) selectedSchema() (*schema.Schema, bool) {
	name, ok := m.SelectedName()
	if !ok {
		return nil, false
	}
	return m.ws.Registry().Get(name)
}

func (m Model) autosaveTick() tea.Cmd {
	return tea.Tick(m.cfg.Autosave.Interval, func(time.Time) tea.Msg {
		return autosaveMsg{}
	})
}

func waitForFileChange(ctx context.Context, ch <-chan watcher.Change) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			return fileChangedMsg{removed: c.Removed}
		}
	}
}

// syncWatcher tells the watcher that the file on disk is the editor's own.
func (m Model) syncWatcher() {
	if m.watcher != nil {
		m.watcher.Sync()
	}
}

// refresh re-reads the registry, keeping the selection by name.
func (m *Model) refresh() {
	selected, hadSelection := m.SelectedName()
	m.names = m.ws.Registry().Filter(m.filter.Value())

	m.cursor = min(m.cursor, max(len(m.names)-1, 0))
	if hadSelection {
		if i := slices.Index(m.names, selected); i >= 0 {
			m.cursor = i
		}
	}
	m.varCursor = min(m.varCursor, max(len(m.variableRows())-1, 0))
	m.updatePreview()
}

// selectName highlights name, clearing a filter that hides it.
func (m *Model) selectName(name string) {
	if !m.ws.Registry().Has(name) {
		m.refresh()
		return
	}
	m.names = m.ws.Registry().Filter(m.filter.Value())
	idx := slices.Index(m.names, name)
	if idx < 0 {
		m.filter.SetValue("")
		m.names = m.ws.Registry().Names()
		idx = slices.Index(m.names, name)
	}
	m.cursor = idx
	m.varCursor = 0
	m.updatePreview()
}

func (m *Model) updatePreview() {
	s, ok := m.selectedSchema()
	if !ok {
		m.preview.SetContent(m.theme.Muted.Render("No schema selected"))
		return
	}
	data, err := schema.Marshal(schema.Document{s.Name: s.Document()})
	if err != nil {
		m.preview.SetContent(m.theme.Error.Render(err.Error()))
		return
	}
	m.preview.SetContent(string(data))
}

func (m *Model) setTheme(theme styles.Theme) {
	m.theme = theme
	m.toaster = m.toaster.SetTheme(theme)
	m.help = m.help.SetTheme(theme)
	m.logOverlay = m.logOverlay.SetTheme(theme)
	m.updatePreview()
}

func (m *Model) showToast(message string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style)
	return cmd
}

// varRow is one line of the variable table.
type varRow struct {
	cat schema.Category
	v   schema.Variable
}

// variableRows flattens the selected schema's variables in category order.
func (m Model) variableRows() []varRow {
	s, ok := m.selectedSchema()
	if !ok {
		return nil
	}
	var rows []varRow
	for _, c := range schema.Categories {
		for _, v := range s.Variables(c) {
			rows = append(rows, varRow{cat: c, v: v})
		}
	}
	return rows
}

func (m Model) selectedVariable() (varRow, bool) {
	rows := m.variableRows()
	if m.varCursor < 0 || m.varCursor >= len(rows) {
		return varRow{}, false
	}
	return rows[m.varCursor], true
}
