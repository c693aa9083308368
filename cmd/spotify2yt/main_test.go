package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"spotify2yt/internal/core"
	"spotify2yt/internal/deps"
	"spotify2yt/internal/prompt"
	"spotify2yt/internal/store"
)

func setViper(t *testing.T, key string, value interface{}) {
	t.Helper()
	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, previous) })
}

func TestBuildConfig(t *testing.T) {
	setViper(t, "format", "flac")
	setViper(t, "quality", "fast")
	setViper(t, "output", "/tmp/music")
	setViper(t, "batch-only", true)
	setViper(t, "history-db", "history.db")

	cfg, err := buildConfig([]string{"playlist.csv"})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Input.Path != "playlist.csv" {
		t.Errorf("Input.Path = %q", cfg.Input.Path)
	}
	if cfg.Download.Format != core.FormatFLAC || cfg.Download.Quality != core.QualityFast {
		t.Errorf("Download = %+v", cfg.Download)
	}
	if cfg.Download.OutputDir != "/tmp/music" || !cfg.Output.BatchOnly {
		t.Errorf("config = %+v", cfg)
	}
	if !cfg.History.Enabled() || cfg.History.Size != core.DefaultHistorySize {
		t.Errorf("History = %+v", cfg.History)
	}
}

func TestBuildConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"format", "wav"},
		{"quality", "ultra"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setViper(t, tt.key, tt.value)
			if _, err := buildConfig(nil); err == nil {
				t.Errorf("buildConfig() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}

func TestFlagToEnvVar(t *testing.T) {
	if got := flagToEnvVar("no-deps-check"); got != "SPOTIFY2YT_NO_DEPS_CHECK" {
		t.Errorf("flagToEnvVar() = %q", got)
	}
}

func TestGenerateEnvExampleContent(t *testing.T) {
	content := generateEnvExampleContent(rootCmd)

	for _, want := range []string{
		"SPOTIFY2YT_OUTPUT=./Music",
		"SPOTIFY2YT_FORMAT=mp3",
		"SPOTIFY2YT_QUALITY=best",
		"SPOTIFY2YT_BATCH_FILE=youtube_downloads.txt",
		"SPOTIFY2YT_INSTALL_DEPS=true",
		"SPOTIFY2YT_HISTORY_SIZE=10000",
		"SPOTIFY2YT_LOG_LEVEL=info",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("env example missing %q", want)
		}
	}
}

type fakeEnsurer struct {
	statuses []deps.Status
	err      error
	calls    int
}

func (f *fakeEnsurer) Ensure(context.Context, []deps.Requirement, bool) ([]deps.Status, error) {
	f.calls++
	return f.statuses, f.err
}

type answers []string

func (a *answers) Ask(string) (string, error) {
	if len(*a) == 0 {
		return "", prompt.ErrCancelled
	}
	answer := (*a)[0]
	*a = (*a)[1:]
	return answer, nil
}

func newTestApp(t *testing.T, input string) (*app, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := core.DefaultConfig()
	cfg.Deps.SkipCheck = true
	cfg.Output.BatchFile = filepath.Join(dir, core.DefaultBatchFile)
	cfg.Output.ScriptFile = filepath.Join(dir, core.DefaultScriptFile)
	cfg.Output.SummaryFile = filepath.Join(dir, core.DefaultSummaryFile)

	if input != "" {
		cfg.Input.Path = filepath.Join(dir, "songs.txt")
		if err := os.WriteFile(cfg.Input.Path, []byte(input), 0o600); err != nil {
			t.Fatalf("write input: %v", err)
		}
	}

	var out bytes.Buffer
	return newApp(cfg, zap.NewNop(), &out), &out, dir
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Count(string(data), "\n")
}

func TestApp_RunWritesOutputs(t *testing.T) {
	a, out, _ := newTestApp(t, "The Beatles - Hey Jude\nthe beatles - hey jude\nQueen - Innuendo\n")
	a.cfg.Metrics.TextfilePath = filepath.Join(filepath.Dir(a.cfg.Output.BatchFile), "run.prom")

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v\n%s", err, out.String())
	}

	if got := countLines(t, a.cfg.Output.BatchFile); got != 2 {
		t.Errorf("batch file has %d lines, want 2", got)
	}
	for _, path := range []string{a.cfg.Output.ScriptFile, a.cfg.Output.SummaryFile, a.cfg.Metrics.TextfilePath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	console := out.String()
	for _, want := range []string{"Found 3 songs", "Skipped 1 duplicate songs", "Setup complete", "as MP3 files"} {
		if !strings.Contains(console, want) {
			t.Errorf("console output missing %q:\n%s", want, console)
		}
	}
}

func TestApp_RunBatchOnly(t *testing.T) {
	a, _, _ := newTestApp(t, "Queen - Innuendo\n")
	a.cfg.Output.BatchOnly = true

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(a.cfg.Output.ScriptFile); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("batch-only run should not write the script, stat error = %v", err)
	}
	if _, err := os.Stat(a.cfg.Output.SummaryFile); err != nil {
		t.Errorf("batch-only run should still write the summary: %v", err)
	}
}

func TestApp_RunNoSongs(t *testing.T) {
	a, _, _ := newTestApp(t, "# only a comment\n\n")

	if err := a.run(context.Background()); !errors.Is(err, core.ErrNoSongs) {
		t.Fatalf("run() error = %v, want ErrNoSongs", err)
	}
	if _, err := os.Stat(a.cfg.Output.BatchFile); !errors.Is(err, os.ErrNotExist) {
		t.Error("no batch file should be written without songs")
	}
}

func TestApp_RunWithoutInput(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	if err := a.run(context.Background()); !errors.Is(err, errNoInput) {
		t.Fatalf("run() error = %v, want errNoInput", err)
	}
}

func TestApp_MissingDependencies(t *testing.T) {
	missing := []deps.Status{{Name: "yt-dlp", Detail: `binary "yt-dlp" not found`}}
	missingErr := deps.MissingError(missing)

	t.Run("halts", func(t *testing.T) {
		a, _, _ := newTestApp(t, "Queen - Innuendo\n")
		a.cfg.Deps.SkipCheck = false
		ensurer := &fakeEnsurer{statuses: missing, err: missingErr}
		a.deps = ensurer

		if err := a.run(context.Background()); !errors.Is(err, deps.ErrMissingDependencies) {
			t.Fatalf("run() error = %v, want ErrMissingDependencies", err)
		}
		if _, err := os.Stat(a.cfg.Output.BatchFile); !errors.Is(err, os.ErrNotExist) {
			t.Error("nothing should be written when dependencies are missing")
		}
	})

	t.Run("batch only continues", func(t *testing.T) {
		a, _, _ := newTestApp(t, "Queen - Innuendo\n")
		a.cfg.Deps.SkipCheck = false
		a.cfg.Output.BatchOnly = true
		a.deps = &fakeEnsurer{statuses: missing, err: missingErr}

		if err := a.run(context.Background()); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if countLines(t, a.cfg.Output.BatchFile) != 1 {
			t.Error("batch file should contain the song")
		}
	})
}

func TestApp_ScriptUsesResolvedTools(t *testing.T) {
	a, out, _ := newTestApp(t, "Queen - Innuendo\n")
	a.cfg.Deps.SkipCheck = false
	a.deps = &fakeEnsurer{statuses: []deps.Status{
		{Name: "yt-dlp", Command: "/opt/cache/yt-dlp", Available: true, InstalledVia: deps.MethodManaged},
		{Name: "ffmpeg", Command: "/opt/cache/ffmpeg", Available: true, InstalledVia: deps.MethodManaged},
	}}

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(a.cfg.Output.ScriptFile)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script := string(data)
	for _, want := range []string{"YTDLP='/opt/cache/yt-dlp'", "FFMPEG_LOCATION='/opt/cache/ffmpeg'", "--ffmpeg-location"} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if !strings.Contains(out.String(), "/opt/cache/yt-dlp -x --audio-format mp3") {
		t.Errorf("manual command should use the resolved yt-dlp:\n%s", out.String())
	}
}

func TestApp_SkippedCheckUsesPath(t *testing.T) {
	a, _, _ := newTestApp(t, "Queen - Innuendo\n")

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(a.cfg.Output.ScriptFile)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(data), "YTDLP='yt-dlp'") || strings.Contains(string(data), "--ffmpeg-location") {
		t.Errorf("skipped check should leave yt-dlp on PATH:\n%s", data)
	}
}

func TestApp_Interactive(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	a.cfg.Input.Interactive = true
	a.asker = &answers{"ABBA - Waterloo", "Queen - Innuendo", ""}

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := countLines(t, a.cfg.Output.BatchFile); got != 2 {
		t.Errorf("batch file has %d lines, want 2", got)
	}

	cancelled, _, _ := newTestApp(t, "")
	cancelled.cfg.Input.Interactive = true
	cancelled.asker = &answers{"ABBA - Waterloo"}
	if err := cancelled.run(context.Background()); !errors.Is(err, prompt.ErrCancelled) {
		t.Errorf("run() error = %v, want ErrCancelled", err)
	}
}

func TestApp_HistorySkipsEarlierSongs(t *testing.T) {
	a, out, dir := newTestApp(t, "Queen - Innuendo\nABBA - Waterloo\n")
	a.cfg.History.Path = filepath.Join(dir, "history.db")

	if err := a.run(context.Background()); err != nil {
		t.Fatalf("first run() error = %v", err)
	}

	second, out2, _ := newTestApp(t, "Queen - Innuendo\nDaft Punk - Around the World\n")
	second.cfg.History.Path = a.cfg.History.Path
	if err := second.run(context.Background()); err != nil {
		t.Fatalf("second run() error = %v\n%s", err, out2.String())
	}

	if got := countLines(t, second.cfg.Output.BatchFile); got != 1 {
		t.Errorf("second batch has %d lines, want 1", got)
	}
	if !strings.Contains(out2.String(), "already in download history") {
		t.Errorf("second run should report history skips:\n%s", out2.String())
	}

	history, err := store.OpenHistory(context.Background(), a.cfg.History.Path)
	if err != nil {
		t.Fatalf("OpenHistory() error = %v\n%s", err, out.String())
	}
	defer func() {
		_ = history.Close()
	}()
	if count, err := history.Count(context.Background()); err != nil || count != 3 {
		t.Errorf("history Count() = %d, %v, want 3", count, err)
	}
}

func TestScriptCommand(t *testing.T) {
	if got := scriptCommand("download.sh"); got != "./download.sh" {
		t.Errorf("scriptCommand() = %q", got)
	}
	if got := scriptCommand("/tmp/download.sh"); got != "/tmp/download.sh" {
		t.Errorf("scriptCommand() = %q", got)
	}
}
