// Package workspace owns the schema registry of one editing session and its
// backing JSON file.
//
// A Workspace is not safe for concurrent use. The editor funnels every
// mutation, autosave tick and reload through its update loop; only the event
// broker is shared with other goroutines.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/fileutil"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// Workspace errors
var (
	ErrBlankName      = errors.New("name cannot be blank")
	ErrNoPath         = errors.New("workspace has no file path")
	ErrSchemaNotFound = errors.New("schema not found")
)

// DefaultBackupKeep is the rotation size used when Options.BackupKeep is unset.
const DefaultBackupKeep = 10

// Change is the payload of workspace events.
type Change struct {
	Schema string // affected schema, empty for document-level events
	Path   string // file involved in load, save, export and backup events
}

// Options configures a Workspace.
type Options struct {
	Path       string           // workspace JSON file
	BackupDir  string           // backup directory, empty disables Backup
	BackupKeep int              // newest backups kept, zero uses DefaultBackupKeep
	Now        func() time.Time // clock for file names, nil uses time.Now
}

// Workspace pairs a schema registry with its file and tracks unsaved changes.
type Workspace struct {
	path      string
	backupDir string
	keep      int
	now       func() time.Time

	registry *schema.Registry
	dirty    bool
	broker   *pubsub.Broker[Change]

	// original holds the file content read by a Load that left entries out.
	// The next Save writes it aside before overwriting the file.
	original []byte
}

// New creates an empty workspace bound to opts.Path. Nothing is read.
func New(opts Options) *Workspace {
	keep := opts.BackupKeep
	if keep <= 0 {
		keep = DefaultBackupKeep
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Workspace{
		path:      opts.Path,
		backupDir: opts.BackupDir,
		keep:      keep,
		now:       now,
		registry:  schema.NewRegistry(),
		broker:    pubsub.NewBroker[Change](),
	}
}

// Open creates a workspace and loads its file. A missing file yields an
// empty, clean workspace.
func Open(opts Options) (*Workspace, schema.ImportReport, error) {
	w := New(opts)
	report, err := w.Load()
	if err != nil {
		w.Close()
		return nil, report, err
	}
	return w, report, nil
}

// ValidateName rejects blank schema and variable names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	return nil
}

// Path returns the workspace file path.
func (w *Workspace) Path() string {
	return w.path
}

// Registry returns the schema registry. Callers that mutate it directly
// must call MarkDirty.
func (w *Workspace) Registry() *schema.Registry {
	return w.registry
}

// Broker returns the event broker for workspace changes.
func (w *Workspace) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Dirty reports whether there are unsaved changes.
func (w *Workspace) Dirty() bool {
	return w.dirty
}

// MarkDirty records an unsaved change to the named schema.
func (w *Workspace) MarkDirty(name string) {
	w.dirty = true
	w.broker.Publish(pubsub.UpdatedEvent, Change{Schema: name})
}

// Close releases the event broker.
func (w *Workspace) Close() {
	w.broker.Close()
}

// Load replaces the registry with the content of the workspace file.
// Malformed entries are skipped and logged.
func (w *Workspace) Load() (schema.ImportReport, error) {
	if w.path == "" {
		return schema.ImportReport{}, ErrNoPath
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info(log.CatWorkspace, "workspace file not found, starting empty", "path", w.path)
			w.registry.Clear()
			w.dirty = false
			w.original = nil
			return schema.ImportReport{}, nil
		}
		return schema.ImportReport{}, fmt.Errorf("reading workspace: %w", err)
	}

	report, err := w.registry.ImportJSON(data)
	if err != nil {
		return report, fmt.Errorf("loading %s: %w", w.path, err)
	}
	logSkipped(report)
	w.dirty = false
	w.original = nil
	if report.Lossy() {
		w.original = data
	}

	log.Debug(log.CatWorkspace, "workspace loaded", "path", w.path, "schemas", len(report.Imported))
	w.broker.Publish(pubsub.LoadedEvent, Change{Path: w.path})
	return report, nil
}

// Save writes every schema to the workspace file atomically. When the last
// Load left entries out, the file as it was read is first kept next to it
// (see OriginalPath), so nothing is lost by saving.
func (w *Workspace) Save() error {
	if w.path == "" {
		return ErrNoPath
	}
	if w.original != nil {
		kept := w.OriginalPath()
		if err := fileutil.WriteAtomic(kept, w.original, 0o644); err != nil {
			log.ErrorErr(log.CatWorkspace, "keeping original file failed", err, "path", kept)
			return fmt.Errorf("saving workspace: keeping original: %w", err)
		}
		log.Warn(log.CatWorkspace, "kept original workspace file before overwriting", "path", kept)
		w.original = nil
	}
	if err := writeDocument(w.path, w.registry.ExportAll()); err != nil {
		log.ErrorErr(log.CatWorkspace, "save failed", err, "path", w.path)
		return fmt.Errorf("saving workspace: %w", err)
	}
	w.dirty = false

	log.Debug(log.CatWorkspace, "workspace saved", "path", w.path, "schemas", w.registry.Len())
	w.broker.Publish(pubsub.SavedEvent, Change{Path: w.path})
	return nil
}

// OriginalPath returns where Save keeps the previous file content after a
// lossy Load: the workspace path with a timestamp and ".orig" appended.
func (w *Workspace) OriginalPath() string {
	return w.path + "." + w.now().Format(backupStamp) + ".orig"
}

// SaveIfDirty saves only when there are unsaved changes.
func (w *Workspace) SaveIfDirty() (bool, error) {
	if !w.dirty {
		return false, nil
	}
	if err := w.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// Import replaces the registry with a JSON document. The result is unsaved.
func (w *Workspace) Import(data []byte) (schema.ImportReport, error) {
	report, err := w.registry.ImportJSON(data)
	if err != nil {
		return report, err
	}
	logSkipped(report)
	w.MarkDirty("")
	return report, nil
}

// ImportFile reads path and imports it.
func (w *Workspace) ImportFile(path string) (schema.ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.ImportReport{}, fmt.Errorf("reading import file: %w", err)
	}
	report, err := w.Import(data)
	if err != nil {
		return report, fmt.Errorf("importing %s: %w", path, err)
	}
	log.Info(log.CatWorkspace, "imported schemas", "path", path,
		"imported", len(report.Imported), "skipped", len(report.Skipped))
	return report, nil
}

// ExportAll writes every schema to path.
func (w *Workspace) ExportAll(path string) error {
	if err := writeDocument(path, w.registry.ExportAll()); err != nil {
		return fmt.Errorf("exporting schemas: %w", err)
	}
	w.broker.Publish(pubsub.ExportedEvent, Change{Path: path})
	return nil
}

// ExportSchema writes a single schema to path.
func (w *Workspace) ExportSchema(name, path string) error {
	doc, ok := w.registry.ExportOne(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	if err := writeDocument(path, doc); err != nil {
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	w.broker.Publish(pubsub.ExportedEvent, Change{Schema: name, Path: path})
	return nil
}

func writeDocument(path string, doc schema.Document) error {
	data, err := schema.Marshal(doc)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, data, 0o644)
}

func logSkipped(report schema.ImportReport) {
	for _, s := range report.Skipped {
		log.Warn(log.CatWorkspace, "skipped malformed schema", "name", s.Name, "error", s.Err.Error())
	}
	for _, d := range report.Dropped {
		log.Warn(log.CatWorkspace, "dropped repeated variable", "schema", d.Schema, "entry", d.Path)
	}
}
