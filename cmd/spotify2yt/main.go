// Package main provides the spotify2yt CLI application entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"spotify2yt/internal/core"
	"spotify2yt/internal/i18n"
	"spotify2yt/internal/prompt"
)

const envPrefix = "SPOTIFY2YT"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "spotify2yt [input_file]",
	Short: "spotify2yt - Spotify playlist export → YouTube audio batch",
	Long: `spotify2yt turns a Spotify playlist export (Exportify CSV) or a plain
"Artist - Title" list into yt-dlp search directives, a download script and a
JSON summary.`,
	Example: `  spotify2yt playlist.csv
  spotify2yt songs.txt --format flac
  spotify2yt --interactive
  spotify2yt playlist.csv --quality fast --output ./Downloads`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runSpotify2YT,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "env file (default is .env)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolP("interactive", "i", false, "Interactive mode - enter songs manually")
	flags.StringP("output", "o", core.DefaultOutputDir, "Output directory for downloaded music")
	flags.StringP("format", "f", core.FormatMP3.String(),
		fmt.Sprintf("Audio format (%s)", strings.Join(core.AudioFormatNames(), ", ")))
	flags.StringP("quality", "q", core.QualityBest.String(),
		fmt.Sprintf("Download quality (%s)", strings.Join(core.QualityNames(), ", ")))
	flags.Bool("no-deps-check", false, "Skip dependency checking")
	flags.Bool("install-deps", true, "Try to install missing dependencies")
	flags.Int("deps-timeout-secs", core.DefaultDepsTimeoutSecs, "Timeout for dependency version checks in seconds")
	flags.Bool("batch-only", false, "Only create the batch file and summary, not the download script")
	flags.String("batch-file", core.DefaultBatchFile, "yt-dlp batch file path")
	flags.String("script-file", core.DefaultScriptFile, "Download script path")
	flags.String("summary-file", core.DefaultSummaryFile, "JSON playlist summary path")
	flags.String("history-db", "", "SQLite download history path (disabled when empty)")
	flags.Int("history-size", core.DefaultHistorySize, "Maximum number of history keys kept in memory")
	flags.String("metrics-file", "", "Prometheus textfile to write run metrics to (disabled when empty)")
	supportedLangs := strings.Join(i18n.GetSupportedLanguages(), ", ")
	flags.String("language", i18n.DefaultLanguage, fmt.Sprintf("Console language (%s)", supportedLangs))
	flags.Int("preview-size", core.DefaultPreviewSize, "Number of songs shown in the preview table")
	flags.Bool("generate-env-example", false, "Generate .env.example file from current configuration and exit")

	if err := viper.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func buildConfig(args []string) (*core.Config, error) {
	cfg := core.DefaultConfig()

	configureInput(cfg, args)
	configureOutput(cfg)
	if err := configureDownload(cfg); err != nil {
		return nil, err
	}
	configureDeps(cfg)
	configureHistory(cfg)
	configureApp(cfg)

	return cfg, nil
}

func configureInput(cfg *core.Config, args []string) {
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}
	cfg.Input.Interactive = viper.GetBool("interactive")
}

func configureOutput(cfg *core.Config) {
	cfg.Output.BatchFile = viper.GetString("batch-file")
	cfg.Output.ScriptFile = viper.GetString("script-file")
	cfg.Output.SummaryFile = viper.GetString("summary-file")
	cfg.Output.BatchOnly = viper.GetBool("batch-only")
}

func configureDownload(cfg *core.Config) error {
	cfg.Download.OutputDir = viper.GetString("output")

	format, err := core.ParseAudioFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	cfg.Download.Format = format

	quality, err := core.ParseQuality(viper.GetString("quality"))
	if err != nil {
		return err
	}
	cfg.Download.Quality = quality
	return nil
}

func configureDeps(cfg *core.Config) {
	cfg.Deps.SkipCheck = viper.GetBool("no-deps-check")
	cfg.Deps.Install = viper.GetBool("install-deps")
	if secs := viper.GetInt("deps-timeout-secs"); secs > 0 {
		cfg.Deps.TimeoutSecs = secs
	}
}

func configureHistory(cfg *core.Config) {
	cfg.History.Path = viper.GetString("history-db")
	if size := viper.GetInt("history-size"); size > 0 {
		cfg.History.Size = size
	}
	cfg.Metrics.TextfilePath = viper.GetString("metrics-file")
}

func configureApp(cfg *core.Config) {
	cfg.Log.Level = viper.GetString("log-level")
	cfg.App.Language = viper.GetString("language")
	if size := viper.GetInt("preview-size"); size >= 0 {
		cfg.App.PreviewSize = size
	}
}

func buildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	// stdout belongs to the console output
	cfg.OutputPaths = []string{"stderr"}

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runSpotify2YT(cmd *cobra.Command, args []string) error {
	if viper.GetBool("generate-env-example") {
		return generateEnvExample(cmd)
	}

	config, err := buildConfig(args)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := buildLogger(config.Log.Level)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp(config, logger, cmd.OutOrStdout())
	logger.Info("Starting spotify2yt",
		zap.String("input", config.Input.Path),
		zap.Bool("interactive", config.Input.Interactive),
		zap.String("quality", config.Download.Quality.String()),
		zap.String("format", config.Download.Format.String()),
		zap.Bool("batch_only", config.Output.BatchOnly),
		zap.Bool("history", config.History.Enabled()),
		zap.String("language", a.console.localizer.Language()))

	err = a.run(ctx)
	if errors.Is(err, errNoInput) {
		_ = cmd.Help()
	}
	return err
}
