package core

import (
	"spotify2yt/internal/i18n"
)

const (
	// DefaultOutputDir is where the generated script downloads music to
	DefaultOutputDir = "./Music"
	// DefaultBatchFile is the yt-dlp batch file name
	DefaultBatchFile = "youtube_downloads.txt"
	// DefaultScriptFile is the generated download script name
	DefaultScriptFile = "download_spotify_music.sh"
	// DefaultSummaryFile is the JSON playlist summary name
	DefaultSummaryFile = "playlist_info.json"
	// DefaultHistorySize bounds the in-memory dedup accumulator
	DefaultHistorySize = 10000
	// DefaultBloomFalsePositiveRate is the dedup store bloom filter error rate
	DefaultBloomFalsePositiveRate = 0.001
	// DefaultDepsTimeoutSecs bounds each dependency version check
	DefaultDepsTimeoutSecs = 10
	// DefaultPreviewSize is how many songs are shown before writing outputs
	DefaultPreviewSize = 5
)

type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Download DownloadConfig
	Deps     DepsConfig
	History  HistoryConfig
	Metrics  MetricsConfig
	Log      LogConfig
	App      AppConfig
}

type InputConfig struct {
	Path        string
	Interactive bool
}

type OutputConfig struct {
	BatchFile   string
	ScriptFile  string
	SummaryFile string
	BatchOnly   bool
}

type DownloadConfig struct {
	OutputDir string
	Format    AudioFormat
	Quality   Quality
}

type DepsConfig struct {
	SkipCheck   bool
	Install     bool
	TimeoutSecs int
}

type HistoryConfig struct {
	Path                   string
	Size                   int
	BloomFalsePositiveRate float64
}

// Enabled reports whether a history database is configured.
func (h HistoryConfig) Enabled() bool {
	return h.Path != ""
}

type MetricsConfig struct {
	TextfilePath string
}

type LogConfig struct {
	Level string
}

type AppConfig struct {
	Language    string
	PreviewSize int
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			BatchFile:   DefaultBatchFile,
			ScriptFile:  DefaultScriptFile,
			SummaryFile: DefaultSummaryFile,
		},
		Download: DownloadConfig{
			OutputDir: DefaultOutputDir,
			Format:    FormatMP3,
			Quality:   QualityBest,
		},
		Deps: DepsConfig{
			Install:     true,
			TimeoutSecs: DefaultDepsTimeoutSecs,
		},
		History: HistoryConfig{
			Size:                   DefaultHistorySize,
			BloomFalsePositiveRate: DefaultBloomFalsePositiveRate,
		},
		Log: LogConfig{
			Level: "info",
		},
		App: AppConfig{
			Language:    i18n.DefaultLanguage,
			PreviewSize: DefaultPreviewSize,
		},
	}
}
