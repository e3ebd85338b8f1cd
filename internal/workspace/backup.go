package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
)

const (
	backupPrefix = "backup_"
	backupSuffix = ".json"
	backupStamp  = "20060102_150405"
)

// ErrBackupDisabled is returned by Backup when no backup directory is set.
var ErrBackupDisabled = errors.New("backups are disabled")

// BackupDir returns the backup directory, empty when backups are disabled.
func (w *Workspace) BackupDir() string {
	return w.backupDir
}

// Backup writes the current registry to a timestamped file in the backup
// directory and removes the oldest backups beyond the configured limit.
// It returns the path of the new backup.
func (w *Workspace) Backup() (string, error) {
	if w.backupDir == "" {
		return "", ErrBackupDisabled
	}
	if err := os.MkdirAll(w.backupDir, 0o750); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	path := filepath.Join(w.backupDir, backupPrefix+w.now().Format(backupStamp)+backupSuffix)
	if err := writeDocument(path, w.registry.ExportAll()); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	log.Debug(log.CatWorkspace, "backup written", "path", path)

	if err := w.rotate(); err != nil {
		log.ErrorErr(log.CatWorkspace, "backup rotation failed", err, "dir", w.backupDir)
		return path, err
	}
	w.broker.Publish(pubsub.BackupEvent, Change{Path: path})
	return path, nil
}

// Backups lists backup files oldest first.
func (w *Workspace) Backups() ([]string, error) {
	if w.backupDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(w.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, name)
	}
	// The timestamp layout sorts lexically.
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(w.backupDir, name)
	}
	return paths, nil
}

func (w *Workspace) rotate() error {
	paths, err := w.Backups()
	if err != nil {
		return err
	}
	if len(paths) <= w.keep {
		return nil
	}
	var errs []error
	for _, p := range paths[:len(paths)-w.keep] {
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Debug(log.CatWorkspace, "backup removed", "path", p)
	}
	return errors.Join(errs...)
}
