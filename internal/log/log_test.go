package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 11, 14, 7, 0, 0, time.UTC)

// useBuffer installs a logger writing to a buffer with a fixed clock.
func useBuffer(t *testing.T) (*bytes.Buffer, *Logger) {
	t.Helper()
	var buf bytes.Buffer
	l := newLogger(&buf, nil)
	l.now = func() time.Time { return fixedNow }

	prev := current.Load()
	cleanup := install(l)
	t.Cleanup(func() {
		cleanup()
		current.Store(prev)
	})
	return &buf, l
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
	require.Equal(t, "UNKNOWN", Level(-1).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" Warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	require.ErrorIs(t, err, ErrUnknownLevel)
}

func TestEntryLevel(t *testing.T) {
	require.Equal(t, LevelError, EntryLevel("2024-05-11T14:07:00 [ERROR] [ui] boom"))
	require.Equal(t, LevelWarn, EntryLevel("2024-05-11T14:07:00 [WARN] [cli] careful"))
	require.Equal(t, LevelInfo, EntryLevel("2024-05-11T14:07:00 [INFO] [config] starting"))
	require.Equal(t, LevelDebug, EntryLevel("2024-05-11T14:07:00 [DEBUG] [cache] hit"))
	require.Equal(t, LevelDebug, EntryLevel("plain tea log line"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		fields []any
		want   string
	}{
		{"no fields", nil, "2024-05-11T14:07:00 [INFO] [workspace] saved\n"},
		{"pairs", []any{"path", "/tmp/schemas.json", "schemas", 3},
			"2024-05-11T14:07:00 [INFO] [workspace] saved path=/tmp/schemas.json schemas=3\n"},
		{"orphan key", []any{"path", "a.json", "orphan"},
			"2024-05-11T14:07:00 [INFO] [workspace] saved path=a.json orphan=<missing>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, format(fixedNow, LevelInfo, CatWorkspace, "saved", tt.fields))
		})
	}
}

func TestLog_WritesLines(t *testing.T) {
	buf, _ := useBuffer(t)

	Info(CatWorkspace, "workspace saved", "schemas", 3)
	Warn(CatCLI, "odd", "key")

	require.Equal(t,
		"2024-05-11T14:07:00 [INFO] [workspace] workspace saved schemas=3\n"+
			"2024-05-11T14:07:00 [WARN] [cli] odd key=<missing>\n",
		buf.String())
}

func TestErrorErr(t *testing.T) {
	buf, _ := useBuffer(t)

	ErrorErr(CatConfig, "save failed", errors.New("disk full"), "path", "c.yaml")
	ErrorErr(CatConfig, "nil error", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [config] save failed path=c.yaml error=disk full\n")
	require.Contains(t, out, "nil error error=<nil>\n")
}

func TestSetMinLevel(t *testing.T) {
	buf, _ := useBuffer(t)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Info(CatUI, "hidden too")
	Warn(CatUI, "shown")
	Error(CatUI, "shown too")

	require.Equal(t,
		"2024-05-11T14:07:00 [WARN] [ui] shown\n"+
			"2024-05-11T14:07:00 [ERROR] [ui] shown too\n",
		buf.String())
}

func TestSetEnabled(t *testing.T) {
	buf, _ := useBuffer(t)

	SetEnabled(false)
	Error(CatUI, "dropped")
	require.Empty(t, buf.String())

	SetEnabled(true)
	Error(CatUI, "kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNoLogger(t *testing.T) {
	prev := current.Swap(nil)
	t.Cleanup(func() { current.Store(prev) })

	require.NotPanics(t, func() {
		Info(CatUI, "nowhere")
		SetEnabled(false)
		SetMinLevel(LevelError)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestNewListener_DeliversLines(t *testing.T) {
	useBuffer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Debug(CatCache, "preview cached", "id", "artist")

	msg := l.Next()()
	ev, ok := msg.(LogEvent)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, "2024-05-11T14:07:00 [DEBUG] [cache] preview cached id=artist\n", ev.Payload)
}

func TestNewListener_FilteredLinesAreNotPublished(t *testing.T) {
	_, l := useBuffer(t)
	SetMinLevel(LevelInfo)

	ch := l.broker.Subscribe(context.Background())
	Debug(CatUI, "filtered")
	Info(CatUI, "published")

	select {
	case ev := <-ch:
		require.Contains(t, ev.Payload, "published")
	case <-time.After(time.Second):
		t.Fatal("no log event published")
	}
}

func TestInstallCleanup(t *testing.T) {
	prev := current.Load()
	t.Cleanup(func() { current.Store(prev) })

	var buf bytes.Buffer
	l := newLogger(&buf, nil)
	cleanup := install(l)
	require.Same(t, l, current.Load())

	cleanup()
	require.Nil(t, current.Load())

	// a cleanup of a replaced logger leaves the newer one installed
	first := newLogger(&buf, nil)
	stopFirst := install(first)
	second := newLogger(&buf, nil)
	stopSecond := install(second)
	stopFirst()
	require.Same(t, second, current.Load())
	stopSecond()
}

func TestInit(t *testing.T) {
	prev := current.Load()
	t.Cleanup(func() { current.Store(prev) })

	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatCLI, "first")
	cleanup()

	cleanup, err = Init(path)
	require.NoError(t, err)
	Info(CatCLI, "second")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [cli] first\n")
	require.Contains(t, string(data), "[INFO] [cli] second\n")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "debug.log"))
	require.Error(t, err)
}

func TestInitWithTeaLog(t *testing.T) {
	prev := current.Load()
	t.Cleanup(func() { current.Store(prev) })

	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "schemadesigner")
	require.NoError(t, err)

	Info(CatConfig, "starting", "debug", true)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] starting debug=true")
}
