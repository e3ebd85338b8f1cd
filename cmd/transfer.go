package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/presentation"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the workspace schemas to a new JSON file",
	Long: `Write every schema, or a single one, to a JSON file.

Without --out the file is created in the current directory and named
schemas_HH_MM_mm_dd_YYYY.json, or <name>_HH_MM_mm_dd_YYYY.json with --schema.

Examples:
  schemadesigner export
  schemadesigner export --schema artist --out artist.json`,
	Args: cobra.NoArgs,
	RunE: withConfig(runExport),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the workspace content with a JSON file",
	Long: `Replace the workspace content with the schemas of a JSON file and save.

Malformed schemas are skipped and listed in the JSON summary. When backups
are enabled the previous content is backed up first.`,
	Args: cobra.ExactArgs(1),
	RunE: withConfig(runImport),
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a backup of the workspace now",
	Long: `Write a timestamped copy of the workspace to the backup directory
(backup.dir, relative to the workspace file) and drop the oldest copies
beyond backup.keep.`,
	Args: cobra.NoArgs,
	RunE: withConfig(runBackup),
}

var (
	exportSchema string
	exportOut    string

	// now is the export file name clock.
	now = time.Now
)

func init() {
	exportCmd.Flags().StringVarP(&exportSchema, "schema", "s", "", "export only this schema")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: timestamped name)")

	rootCmd.AddCommand(exportCmd, importCmd, backupCmd)
}

func runExport(cmd *cobra.Command, _ []string, c config.Config) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	path := exportOut
	if exportSchema != "" {
		if path == "" {
			path = workspace.SchemaExportFilename(exportSchema, now())
		}
		err = ws.ExportSchema(exportSchema, path)
	} else {
		if path == "" {
			path = workspace.DefaultExportFilename(now())
		}
		err = ws.ExportAll(path)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return err
}

func runImport(cmd *cobra.Command, args []string, c config.Config) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	if ws.Registry().Len() > 0 {
		if path, err := ws.Backup(); err == nil {
			log.Info(log.CatCLI, "backed up workspace before import", "backup", path)
		} else if !errors.Is(err, workspace.ErrBackupDisabled) {
			return err
		}
	}

	report, err := ws.ImportFile(args[0])
	if err != nil {
		return err
	}
	if err := ws.Save(); err != nil {
		return err
	}
	return presentation.NewFormatter(cmd.OutOrStdout()).FormatImportResult(presentation.FromImportReport(args[0], report))
}

func runBackup(cmd *cobra.Command, _ []string, c config.Config) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	path, err := ws.Backup()
	if errors.Is(err, workspace.ErrBackupDisabled) {
		return fmt.Errorf("%w: set backup.enabled in the config", err)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
	return err
}
