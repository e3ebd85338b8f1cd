package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/flags"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/presentation"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/template"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

const baseConfig = `workspace_file: schemas.json
backup:
  enabled: true
  dir: backups
  keep: 2
autosave:
  enabled: false
templates:
  user_dir: ""
ui:
  theme: dark
`

// testEnv is a temp directory holding a config file and a workspace path.
type testEnv struct {
	dir       string
	config    string
	workspace string
}

func newTestEnv(t *testing.T, configYAML string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:       dir,
		config:    filepath.Join(dir, "config.yaml"),
		workspace: filepath.Join(dir, "schemas.json"),
	}
	require.NoError(t, os.WriteFile(env.config, []byte(configYAML), 0o644))
	return env
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against env and returns the combined output.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--file", e.workspace}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (e testEnv) readWorkspace(t *testing.T) schema.Document {
	t.Helper()
	data, err := os.ReadFile(e.workspace)
	require.NoError(t, err)
	var doc schema.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func templateIDs(t *testing.T, out string) []string {
	t.Helper()
	var dtos []presentation.TemplateDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dtos))
	ids := make([]string, len(dtos))
	for i, d := range dtos {
		ids[i] = d.ID
	}
	return ids
}

func TestTemplatesList_All(t *testing.T) {
	env := newTestEnv(t, baseConfig)

	ids := templateIDs(t, env.mustRun(t, "templates", "list"))
	require.Equal(t, []string{
		"about_page", "artist", "artwork", "event", "inquiry", "mediacluster",
		"publication", "website_bookmark", "website_service", "writing",
	}, ids)
}

func TestTemplatesList_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"category", []string{"--category", "art"}, []string{"artist", "artwork"}},
		{"no images", []string{"--requires-images=false"}, []string{"inquiry", "writing"}},
		{"any tag", []string{"--tag", "personal", "--tag", "diary"}, []string{"about_page", "writing"}},
		{"combined", []string{"--requires-images=false", "--requires-filtering=false"}, []string{"writing"}},
		{"no match", []string{"--category", "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, baseConfig)
			out := env.mustRun(t, append([]string{"templates", "list"}, tt.args...)...)
			require.ElementsMatch(t, tt.want, templateIDs(t, out))
		})
	}
}

func TestTemplatesList_DisabledInConfig(t *testing.T) {
	env := newTestEnv(t, strings.Replace(baseConfig, `  user_dir: ""`, `  user_dir: ""
  disabled: [artist, event]`, 1))

	ids := templateIDs(t, env.mustRun(t, "templates", "list"))
	require.Len(t, ids, 8)
	require.NotContains(t, ids, "artist")
	require.NotContains(t, ids, "event")
}

func TestTemplatesShow(t *testing.T) {
	env := newTestEnv(t, baseConfig)

	t.Run("json", func(t *testing.T) {
		out := env.mustRun(t, "templates", "show", "artist")
		var doc schema.Document
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		require.Len(t, doc, 1)
		require.Equal(t, "艺术家", doc["artist"].PageTitleCN)
	})

	t.Run("markdown", func(t *testing.T) {
		out := env.mustRun(t, "templates", "show", "artist", "--markdown")
		require.Contains(t, out, "# Artist")
		require.Contains(t, out, "- **ID:** `artist`")
	})

	t.Run("rendered", func(t *testing.T) {
		out := env.mustRun(t, "templates", "show", "artist", "--render")
		require.Contains(t, out, "Artist")
		require.NotContains(t, out, "**ID:**")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := env.run(t, "templates", "show", "nope")
		require.ErrorIs(t, err, template.ErrTemplateNotFound)
	})
}

func TestNew(t *testing.T) {
	env := newTestEnv(t, baseConfig)

	out := env.mustRun(t, "new", "products")
	require.Equal(t, "Created products in "+env.workspace+"\n", out)

	doc := env.readWorkspace(t)
	require.Contains(t, doc, "products")
	require.Equal(t, schema.FlagNo, doc["products"].MatchImg)
	require.Equal(t, schema.FlagNo, doc["products"].FilterWith)

	out = env.mustRun(t, "new", "painters", "--template", "artist")
	require.Contains(t, out, "Created painters from artist")

	doc = env.readWorkspace(t)
	require.Len(t, doc, 2)
	require.Equal(t, "艺术家", doc["painters"].PageTitleCN)
	require.NotEmpty(t, doc["painters"].Entries(schema.CategoryBasic))
}

func TestNew_Errors(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "products")

	_, err := env.run(t, "new", "products")
	require.ErrorIs(t, err, ErrSchemaExists)

	_, err = env.run(t, "new", "   ")
	require.ErrorIs(t, err, workspace.ErrBlankName)

	_, err = env.run(t, "new", "other", "--template", "missing")
	require.ErrorIs(t, err, template.ErrTemplateNotFound)

	// failed runs leave the file alone
	require.Len(t, env.readWorkspace(t), 1)
}

func TestList(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "zeta")
	env.mustRun(t, "new", "alpha", "--template", "writing")

	var summaries []presentation.SchemaSummaryDTO
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "list")), &summaries))
	require.Len(t, summaries, 2)
	require.Equal(t, "alpha", summaries[0].Name)
	require.Positive(t, summaries[0].Variables)
	require.Equal(t, "zeta", summaries[1].Name)
	require.Zero(t, summaries[1].Variables)
}

func TestList_EmptyWorkspace(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	require.Equal(t, "[]\n", env.mustRun(t, "list"))
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "alpha")
	env.mustRun(t, "new", "beta")

	t.Run("one schema", func(t *testing.T) {
		path := filepath.Join(env.dir, "alpha.json")
		out := env.mustRun(t, "export", "--schema", "alpha", "--out", path)
		require.Equal(t, "Exported to "+path+"\n", out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc schema.Document
		require.NoError(t, json.Unmarshal(data, &doc))
		require.Len(t, doc, 1)
		require.Contains(t, doc, "alpha")
	})

	t.Run("default name", func(t *testing.T) {
		fixed := time.Date(2024, 5, 11, 14, 7, 0, 0, time.UTC)
		now = func() time.Time { return fixed }
		t.Cleanup(func() { now = time.Now })
		t.Chdir(env.dir)

		out := env.mustRun(t, "export")
		require.Equal(t, "Exported to schemas_14_07_05_11_2024.json\n", out)
		require.FileExists(t, filepath.Join(env.dir, "schemas_14_07_05_11_2024.json"))

		out = env.mustRun(t, "export", "--schema", "beta")
		require.Equal(t, "Exported to beta_14_07_05_11_2024.json\n", out)
	})

	t.Run("unknown schema", func(t *testing.T) {
		_, err := env.run(t, "export", "--schema", "gamma", "--out", filepath.Join(env.dir, "x.json"))
		require.ErrorIs(t, err, workspace.ErrSchemaNotFound)
	})
}

func TestImport(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "old")

	src := filepath.Join(env.dir, "incoming.json")
	require.NoError(t, os.WriteFile(src, []byte(`{
  // hand-edited
  "good": {"page_title_en": "Good", "basic_variables": [{"sku": {"en": "SKU", "cn": "库存单位", "rows": 1}}]},
  "bad": {"basic_variables": "nope"},
}`), 0o644))

	out := env.mustRun(t, "import", src)
	var result presentation.ImportResultDTO
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, src, result.File)
	require.Equal(t, []string{"good"}, result.Imported)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, "bad", result.Skipped[0].Name)

	doc := env.readWorkspace(t)
	require.Len(t, doc, 1)
	require.Equal(t, "Good", doc["good"].PageTitleEN)

	// previous content was backed up
	backups, err := os.ReadDir(filepath.Join(env.dir, "backups"))
	require.NoError(t, err)
	require.Len(t, backups, 1)
}

func TestImport_NotAnObject(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "keep")

	src := filepath.Join(env.dir, "list.json")
	require.NoError(t, os.WriteFile(src, []byte(`[1, 2]`), 0o644))

	_, err := env.run(t, "import", src)
	require.ErrorIs(t, err, schema.ErrNotObject)
	require.Contains(t, env.readWorkspace(t), "keep")
}

func TestBackup(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	env.mustRun(t, "new", "alpha")

	out := env.mustRun(t, "backup")
	require.True(t, strings.HasPrefix(out, "Backup written to "+filepath.Join(env.dir, "backups")), out)

	path := strings.TrimSpace(strings.TrimPrefix(out, "Backup written to "))
	require.FileExists(t, path)
}

func TestBackup_Disabled(t *testing.T) {
	env := newTestEnv(t, strings.Replace(baseConfig, "  enabled: true", "  enabled: false", 1))
	env.mustRun(t, "new", "alpha")

	_, err := env.run(t, "backup")
	require.ErrorIs(t, err, workspace.ErrBackupDisabled)
}

func TestFmt(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	path := filepath.Join(env.dir, "messy.json")
	messy := "{\"b\": {\"z\": 1, \"a\": \"链接\"}, /* note */ \"a\": [],}"
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o644))

	want := "{\n  \"a\": [],\n  \"b\": {\n    \"a\": \"链接\",\n    \"z\": 1\n  }\n}\n"

	out := env.mustRun(t, "fmt", path)
	require.Equal(t, want, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, messy, string(data), "fmt without --write must not touch the file")

	out = env.mustRun(t, "fmt", "--write", path)
	require.Equal(t, "Formatted "+path+"\n", out)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, string(data))

	// already formatted
	require.Empty(t, env.mustRun(t, "fmt", "--write", path))
}

func TestFmt_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	path := filepath.Join(env.dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": `), 0o644))

	_, err := env.run(t, "fmt", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.json")
}

func TestDiff(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	a := filepath.Join(env.dir, "a.json")
	b := filepath.Join(env.dir, "b.json")
	c := filepath.Join(env.dir, "c.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"x": {"page_title_en": "A", "match_img": "no"}}`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`{"x": {"match_img": "no", "page_title_en": "A"}}`), 0o644))
	require.NoError(t, os.WriteFile(c, []byte(`{"x": {"match_img": "no", "page_title_en": "B"}}`), 0o644))

	require.Equal(t, "Documents are identical\n", env.mustRun(t, "diff", a, b))

	out := env.mustRun(t, "diff", a, c)
	require.Contains(t, out, "-    \"page_title_en\": \"A\"\n")
	require.Contains(t, out, "+    \"page_title_en\": \"B\"\n")
	require.Contains(t, out, "1 added, 1 removed\n")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t, strings.Replace(baseConfig, "theme: dark", "theme: purple", 1))

	_, err := env.run(t, "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigDefaultsApply(t *testing.T) {
	env := newTestEnv(t, "ui:\n  theme: light\n")
	env.mustRun(t, "list")

	require.Equal(t, "light", cfg.UI.Theme)
	require.Equal(t, "schemas.json", cfg.WorkspaceFile)
	require.True(t, cfg.Backup.Enabled)
	require.Equal(t, 10, cfg.Backup.Keep)
	require.Equal(t, 60*time.Second, cfg.Autosave.Interval)
}

func TestDebugLog(t *testing.T) {
	env := newTestEnv(t, baseConfig)
	logPath := filepath.Join(env.dir, "debug.log")
	t.Setenv(debugEnv, "1")
	t.Setenv(logPathEnv, logPath)

	t.Run("info", func(t *testing.T) {
		t.Setenv(logLevelEnv, "info")
		env.mustRun(t, "list")

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(data), "[INFO] [config] schemadesigner-list starting")
		require.NotContains(t, string(data), "[DEBUG] [cli] running command")
	})

	t.Run("unknown level", func(t *testing.T) {
		t.Setenv(logLevelEnv, "loud")
		_, err := env.run(t, "list")
		require.ErrorContains(t, err, logLevelEnv)
	})
}

func TestFlags(t *testing.T) {
	env := newTestEnv(t, baseConfig+"flags:\n  mouse: false\n  wath-workspace: true\n")

	var states []flags.State
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "flags")), &states))

	require.Len(t, states, 3)
	require.Equal(t, flags.FlagMouse, states[0].Name)
	require.False(t, states[0].Enabled)
	require.Equal(t, flags.FlagWatchWorkspace, states[1].Name)
	require.True(t, states[1].Enabled)
	require.Equal(t, "wath-workspace", states[2].Name)
	require.False(t, states[2].Known)
}

func TestSetVersion(t *testing.T) {
	prev, prevCmd := version, rootCmd.Version
	t.Cleanup(func() { version, rootCmd.Version = prev, prevCmd })

	SetVersion("1.2.0", "abc123", "2024-11-05")
	require.Equal(t, "1.2.0 (commit: abc123, built: 2024-11-05)", rootCmd.Version)

	SetVersion("dev", "", "")
	require.Equal(t, "dev", rootCmd.Version)
}
