package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/app"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/flags"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/templates"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/templateservice"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

func init() {
	// The background query must finish before the program reads input, or
	// the OSC 11 reply ends up in the name field.
	// https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".schemadesigner/config.yaml"
	debugEnv        = "SCHEMADESIGNER_DEBUG"
	logPathEnv      = "SCHEMADESIGNER_LOG"
	logLevelEnv     = "SCHEMADESIGNER_LOG_LEVEL"
)

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	fileFlag   string
	debugFlag  bool
	noAutosave bool
)

var rootCmd = &cobra.Command{
	Use:   "schemadesigner",
	Short: "A terminal editor for bilingual JSON display schemas",
	Long: `A terminal editor for the JSON documents that describe bilingual (English/Chinese)
display schemas. Schemas can be created empty or from the built-in template catalog,
edited variable by variable and saved, exported or imported as JSON.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/schemadesigner/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "",
		"workspace JSON file (default: workspace_file from config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (path from "+logPathEnv+", default debug.log)")
	rootCmd.Flags().BoolVar(&noAutosave, "no-autosave", false,
		"disable the periodic autosave")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("workspace_file", defaults.WorkspaceFile)
	viper.SetDefault("backup.enabled", defaults.Backup.Enabled)
	viper.SetDefault("backup.dir", defaults.Backup.Dir)
	viper.SetDefault("backup.keep", defaults.Backup.Keep)
	viper.SetDefault("autosave.enabled", defaults.Autosave.Enabled)
	viper.SetDefault("autosave.interval", defaults.Autosave.Interval)
	viper.SetDefault("templates.user_dir", defaults.Templates.UserDir)
	viper.SetDefault("templates.disabled", []string{})
	viper.SetDefault("ui.theme", defaults.UI.Theme)
	viper.SetDefault("ui.show_preview", defaults.UI.ShowPreview)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .schemadesigner/config.yaml (current directory)
		// 2. ~/.config/schemadesigner/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "schemadesigner"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .schemadesigner/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

func debugEnabled() bool {
	return debugFlag || os.Getenv(debugEnv) != ""
}

// startLogging opens the debug log when --debug or SCHEMADESIGNER_DEBUG is
// set. The TUI logs through tea.LogToFile. The returned cleanup is never nil.
func startLogging(prefix string, tui bool) (func(), error) {
	if !debugEnabled() {
		return func() {}, nil
	}
	logPath := os.Getenv(logPathEnv)
	if logPath == "" {
		logPath = "debug.log"
	}

	var (
		cleanup func()
		err     error
	)
	if tui {
		cleanup, err = log.InitWithTeaLog(logPath, prefix)
	} else {
		cleanup, err = log.Init(logPath)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if name := os.Getenv(logLevelEnv); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("%s: %w", logLevelEnv, err)
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, prefix+" starting", "debug", true, "logPath", logPath, "version", version)
	return cleanup, nil
}

// validConfig returns the loaded configuration, or why it cannot be used.
func validConfig() (config.Config, error) {
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// workspacePath is --file, or workspace_file from the config.
func workspacePath() string {
	path := fileFlag
	if path == "" {
		path = cfg.WorkspaceFile
	}
	return config.ExpandHome(path)
}

func openWorkspace(c config.Config) (*workspace.Workspace, error) {
	path := workspacePath()
	opts := workspace.Options{Path: path, BackupKeep: c.Backup.Keep}
	if c.Backup.Enabled {
		opts.BackupDir = c.BackupDir(path)
	}

	ws, report, err := workspace.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening workspace: %w", err)
	}
	if report.Lossy() {
		log.Warn(log.CatCLI, "workspace has malformed entries", "path", path,
			"skipped", len(report.Skipped), "dropped", len(report.Dropped), "kept_as", ws.OriginalPath())
	}
	return ws, nil
}

// withConfig wraps a subcommand with debug logging and config validation.
func withConfig(run func(cmd *cobra.Command, args []string, c config.Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		stopLog, err := startLogging("schemadesigner-"+cmd.Name(), false)
		if err != nil {
			return err
		}
		defer stopLog()

		c, err := validConfig()
		if err != nil {
			return err
		}
		log.Debug(log.CatCLI, "running command", "command", cmd.CommandPath(), "args", args)
		return run(cmd, args, c)
	}
}

func newTemplateService(c config.Config) (*templateservice.Service, error) {
	svc, err := templateservice.New(templateservice.Options{
		BuiltinFS: templates.BuiltinFS(),
		UserDir:   config.ExpandHome(c.Templates.UserDir),
		Disabled:  c.Templates.Disabled,
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return svc, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	stopLog, err := startLogging("schemadesigner", true)
	if err != nil {
		return err
	}
	defer stopLog()

	c, err := validConfig()
	if err != nil {
		return err
	}
	// Handle --no-autosave flag (negated logic)
	if noAutosave {
		c.Autosave.Enabled = false
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	svc, err := newTemplateService(c)
	if err != nil {
		return err
	}

	zone.NewGlobal()
	model := app.New(app.Options{
		Workspace:  ws,
		Templates:  svc,
		Config:     c,
		ConfigPath: viper.ConfigFileUsed(),
		Debug:      debugEnabled(),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if flags.New(c.Flags).Enabled(flags.FlagMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records the build information main receives through ldflags.
// Empty parts are left out of the version string.
func SetVersion(v, commit, date string) {
	version = v
	var extra []string
	if commit != "" {
		extra = append(extra, "commit: "+commit)
	}
	if date != "" {
		extra = append(extra, "built: "+date)
	}
	if len(extra) > 0 {
		version += " (" + strings.Join(extra, ", ") + ")"
	}
	rootCmd.Version = version
}
