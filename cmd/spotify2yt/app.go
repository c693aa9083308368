package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"spotify2yt/internal/core"
	"spotify2yt/internal/deps"
	"spotify2yt/internal/i18n"
	"spotify2yt/internal/metrics"
	"spotify2yt/internal/prompt"
	"spotify2yt/internal/script"
	"spotify2yt/internal/store"
	"spotify2yt/pkg/text"
)

const (
	sourceCSV         = "csv"
	sourceText        = "text"
	sourceInteractive = "interactive"
)

var errNoInput = errors.New("no input file given and interactive mode is off")

type dependencyEnsurer interface {
	Ensure(ctx context.Context, requirements []deps.Requirement, install bool) ([]deps.Status, error)
}

type app struct {
	cfg     *core.Config
	logger  *zap.Logger
	console *console

	asker        prompt.Asker
	deps         dependencyEnsurer
	requirements []deps.Requirement
	tools        []deps.Status
	parser       *text.Parser
	writer       *script.Writer
	metrics      *metrics.Metrics
	now          func() time.Time
}

func newApp(cfg *core.Config, logger *zap.Logger, out io.Writer) *app {
	checker := deps.NewChecker(logger.Named("deps"), time.Duration(cfg.Deps.TimeoutSecs)*time.Second)
	return &app{
		cfg:          cfg,
		logger:       logger,
		console:      newConsole(out, i18n.NewLocalizer(cfg.App.Language)),
		asker:        prompt.SurveyAsker{},
		deps:         deps.NewInstaller(logger.Named("deps"), checker),
		requirements: deps.DefaultRequirements(),
		parser:       text.NewParser(),
		writer:       script.NewWriter(logger.Named("script")),
		metrics:      metrics.New(),
		now:          time.Now,
	}
}

func (a *app) run(ctx context.Context) error {
	started := a.now()
	defer a.writeMetrics(started)

	if a.cfg.Input.Path == "" && !a.cfg.Input.Interactive {
		a.console.Println(a.console.T("input.csv_hint"))
		a.console.Println(a.console.T("input.text_hint"))
		return errNoInput
	}

	if err := a.checkDependencies(ctx); err != nil {
		return err
	}

	songs, err := a.readSongs()
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		a.console.Error("error.no_songs")
		return core.ErrNoSongs
	}
	a.console.Blank()
	a.console.Success("result.found", len(songs))

	seen := store.NewDedupStore(a.cfg.History.Size, a.cfg.History.BloomFalsePositiveRate)
	history := a.openHistory(ctx, seen)
	if history != nil {
		defer func() {
			_ = history.Close()
		}()
	}

	quality := a.cfg.Download.Quality
	a.console.Info("result.queries", quality.String())
	buildStarted := a.now()
	batch, stats := core.NewBatchBuilder(quality, a.logger.Named("batch")).Build(songs, seen)
	a.metrics.RecordProcessingTime("build", a.now().Sub(buildStarted))
	a.reportStats(stats)

	if batch.Len() == 0 {
		a.console.Error("error.no_songs")
		return core.ErrNoSongs
	}
	a.preview(batch)

	if err := a.writeOutputs(batch); err != nil {
		return err
	}

	a.recordHistory(ctx, history, batch)
	return nil
}

func (a *app) checkDependencies(ctx context.Context) error {
	if a.cfg.Deps.SkipCheck {
		a.console.Info("deps.skipped")
		return nil
	}

	started := a.now()
	a.console.Info("deps.checking")
	statuses, err := a.deps.Ensure(ctx, a.requirements, a.cfg.Deps.Install)
	a.metrics.RecordProcessingTime("deps", a.now().Sub(started))
	a.tools = statuses

	a.reportDependencies(statuses)
	if err == nil {
		return nil
	}
	if !errors.Is(err, deps.ErrMissingDependencies) {
		return fmt.Errorf("check dependencies: %w", err)
	}

	if a.cfg.Output.BatchOnly {
		a.console.Warn("deps.batch_only")
		return nil
	}
	a.console.Error("error.deps_missing", missingNames(statuses))
	return err
}

func (a *app) reportDependencies(statuses []deps.Status) {
	hints := make(map[string][]string, len(a.requirements))
	for _, req := range a.requirements {
		hints[req.Name] = req.ManualHint
	}

	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		a.metrics.SetDependency(status.Name, status.Available)

		state := a.console.T("table.ok")
		detail := status.Version
		switch {
		case !status.Available:
			state = a.console.T("table.absent")
			detail = status.Detail
		case status.InstalledVia != "":
			a.console.Success("deps.installed", status.Name, status.InstalledVia)
		}
		rows = append(rows, []string{status.Name, state, detail})
	}

	headers := []string{a.console.T("table.tool"), a.console.T("table.status"), a.console.T("table.detail")}
	a.console.Println(renderTable(headers, rows, nil, a.console.colorize))

	for _, status := range deps.Missing(statuses) {
		if !a.cfg.Deps.Install {
			a.console.Warn("deps.missing", status.Name)
			continue
		}
		a.console.Error("deps.failed", status.Name)
		for _, hint := range hints[status.Name] {
			a.console.Println(a.console.T("deps.manual", hint))
		}
	}
}

func missingNames(statuses []deps.Status) string {
	missing := deps.Missing(statuses)
	names := make([]string, 0, len(missing))
	for _, status := range missing {
		names = append(names, status.Name)
	}
	return strings.Join(names, ", ")
}

func (a *app) readSongs() ([]core.Song, error) {
	started := a.now()
	defer func() {
		a.metrics.RecordProcessingTime("read", a.now().Sub(started))
	}()

	if a.cfg.Input.Interactive {
		a.console.Info("prompt.title")
		a.console.Println(a.console.T("prompt.help"))
		a.console.Println(a.console.T("prompt.finish_hint"))

		songs, err := prompt.NewCollector(a.asker, a.console.localizer).Collect()
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				a.console.Warn("error.cancelled")
			}
			return nil, err
		}
		a.console.Success("prompt.collected", len(songs))
		a.metrics.RecordSongsRead(sourceInteractive, len(songs))
		return songs, nil
	}

	path := a.cfg.Input.Path
	if _, err := os.Stat(path); err != nil {
		a.console.Error("error.input_missing", path)
		return nil, fmt.Errorf("input %s: %w", path, err)
	}

	source := sourceText
	if text.IsCSV(path) {
		source = sourceCSV
		a.console.Info("input.csv", path)
	} else {
		a.console.Info("input.text", path)
	}

	result, err := a.parser.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, row := range result.Skipped {
		a.console.Warn("input.row_skipped", row.Position, row.Reason)
		a.logger.Debug("Skipped input row", zap.Int("row", row.Position), zap.String("reason", row.Reason))
	}
	a.metrics.RecordSongsRead(source, len(result.Songs))
	a.metrics.RecordSkipped("malformed", len(result.Skipped))
	return result.Songs, nil
}

// openHistory loads earlier keys into seen. A history that cannot be used is
// reported and the run continues without it.
func (a *app) openHistory(ctx context.Context, seen *store.DedupStore) *store.History {
	if !a.cfg.History.Enabled() {
		return nil
	}

	history, err := store.OpenHistory(ctx, a.cfg.History.Path)
	if err != nil {
		a.console.Warn("error.history_failed", err)
		a.logger.Warn("Failed to open history", zap.String("path", a.cfg.History.Path), zap.Error(err))
		return nil
	}

	keys, err := history.RecentKeys(ctx, a.cfg.History.Size)
	if err != nil {
		a.console.Warn("error.history_failed", err)
		a.logger.Warn("Failed to load history", zap.Error(err))
		_ = history.Close()
		return nil
	}

	seen.Load(keys)
	fields := []zap.Field{zap.Int("keys", seen.Size())}
	if total, err := history.Count(ctx); err == nil {
		fields = append(fields, zap.Int("recorded", total))
	}
	a.logger.Info("Loaded download history", fields...)
	return history
}

func (a *app) recordHistory(ctx context.Context, history *store.History, batch *core.PlaylistBatch) {
	if history == nil {
		return
	}
	if err := history.Record(ctx, batch.HistoryEntries()); err != nil {
		a.console.Warn("error.history_failed", err)
		a.logger.Warn("Failed to record history", zap.Error(err))
		return
	}
	a.console.Success("output.history", batch.Len())
}

func (a *app) reportStats(stats core.BatchStats) {
	a.metrics.RecordDuplicates(stats.Duplicates)
	a.metrics.RecordSkipped("duplicate", stats.Duplicates)
	a.metrics.RecordSkipped("history", stats.Known)
	a.metrics.RecordSkipped("empty", stats.Empty)

	if stats.Duplicates > 0 {
		a.console.Warn("result.duplicates", stats.Duplicates)
	}
	if stats.Known > 0 {
		a.console.Warn("result.known", stats.Known)
	}
	if stats.Empty > 0 {
		a.console.Warn("result.empty", stats.Empty)
	}
}

func (a *app) preview(batch *core.PlaylistBatch) {
	limit := min(a.cfg.App.PreviewSize, batch.Len())
	if limit == 0 {
		return
	}

	rows := make([][]string, 0, limit)
	for i, entry := range batch.Entries[:limit] {
		rows = append(rows, []string{strconv.Itoa(i + 1), entry.Artist, entry.Title, entry.SearchString})
	}
	headers := []string{
		a.console.T("table.number"),
		a.console.T("table.artist"),
		a.console.T("table.title"),
		a.console.T("table.search"),
	}

	a.console.Blank()
	a.console.Info("result.preview")
	a.console.Println(renderTable(headers, rows, []columnAlignment{alignRight}, a.console.colorize))
	if batch.Len() > limit {
		a.console.Println(a.console.T("result.more", batch.Len()-limit))
	}
}

func (a *app) writeOutputs(batch *core.PlaylistBatch) error {
	out := a.cfg.Output
	download := a.cfg.Download

	a.metrics.SetBatchSize(batch.Len())
	if err := a.writer.WriteBatchFile(out.BatchFile, batch); err != nil {
		return err
	}
	a.console.Blank()
	a.console.Success("output.batch", out.BatchFile, batch.Len())

	if err := a.writer.WriteSummary(out.SummaryFile, batch, download.Format); err != nil {
		a.console.Warn("error.summary_failed", err)
	} else {
		a.console.Success("output.summary", out.SummaryFile)
	}

	if out.BatchOnly {
		a.console.Blank()
		a.console.Info("output.batch_only", out.BatchFile)
		return nil
	}

	params := script.NewScriptParams(out.BatchFile, download,
		deps.ResolvedCommand(a.tools, "yt-dlp"), deps.ResolvedCommand(a.tools, "ffmpeg"))
	if err := a.writer.WriteScript(out.ScriptFile, params); err != nil {
		return err
	}
	a.console.Success("output.script", out.ScriptFile)

	a.console.Blank()
	a.console.Println(strings.Repeat("=", 50))
	a.console.Info("output.setup_done")
	a.console.Println("  " + scriptCommand(out.ScriptFile))
	a.console.Blank()
	a.console.Info("output.manual")
	a.console.Println(fmt.Sprintf("  %s -x --audio-format %s -a %s", params.YtDlp, download.Format, out.BatchFile))
	a.console.Blank()
	a.console.Println(a.console.T("output.download", batch.Len(), strings.ToUpper(download.Format.String())))
	a.console.Println(a.console.T("output.directory", download.OutputDir))
	return nil
}

func scriptCommand(path string) string {
	if strings.ContainsRune(path, os.PathSeparator) {
		return path
	}
	return "./" + path
}

func (a *app) writeMetrics(started time.Time) {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}

	now := a.now()
	a.metrics.RecordProcessingTime("total", now.Sub(started))
	if err := a.metrics.WriteTextfile(path, now); err != nil {
		a.logger.Warn("Failed to write metrics", zap.String("path", path), zap.Error(err))
		return
	}
	a.console.Success("output.metrics", path)
}
