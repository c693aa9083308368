// Package script writes the yt-dlp batch file, the download script and the
// playlist summary for a PlaylistBatch.
package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"spotify2yt/internal/core"
)

const (
	dataFileMode   os.FileMode = 0o644
	scriptFileMode os.FileMode = 0o755
)

var downloadScript = template.Must(template.New("download").Funcs(template.FuncMap{
	"quote": shellQuote,
}).Parse(`#!/bin/bash

# Auto-generated YouTube music download script
# Downloads songs from a Spotify playlist export

OUTPUT_DIR={{quote .OutputDir}}
BATCH_FILE={{quote .BatchFile}}
AUDIO_FORMAT={{quote .Format}}
AUDIO_QUALITY={{.AudioQuality}}
YTDLP={{quote .YtDlp}}
{{- if .FFmpegLocation}}
FFMPEG_LOCATION={{quote .FFmpegLocation}}
{{- end}}

RED='\033[0;31m'
GREEN='\033[0;32m'
YELLOW='\033[1;33m'
BLUE='\033[0;34m'
NC='\033[0m'

echo -e "${GREEN}🎵 Starting batch music download...${NC}"
echo -e "${BLUE}Output directory: $OUTPUT_DIR${NC}"
echo -e "${BLUE}Batch file: $BATCH_FILE${NC}"
echo -e "${BLUE}Audio format: $AUDIO_FORMAT${NC}"
echo -e "${BLUE}Quality: {{.Quality}}${NC}"

if [ ! -f "$BATCH_FILE" ]; then
    echo -e "${RED}❌ Batch file not found: $BATCH_FILE${NC}"
    exit 1
fi

mkdir -p "$OUTPUT_DIR"

TOTAL_SONGS=$(wc -l < "$BATCH_FILE")
echo -e "${YELLOW}Total songs to download: $TOTAL_SONGS${NC}"

"$YTDLP" \
    --extract-audio \
    --audio-format "$AUDIO_FORMAT" \
    --audio-quality "$AUDIO_QUALITY" \
    --output "$OUTPUT_DIR/%(uploader)s - %(title)s.%(ext)s" \
    --embed-metadata \
    --add-metadata \
    --embed-thumbnail \
{{- if .FFmpegLocation}}
    --ffmpeg-location "$FFMPEG_LOCATION" \
{{- end}}
    --batch-file "$BATCH_FILE" \
    --ignore-errors \
    --no-overwrites \
    --continue \
    --retries 3 \
    --fragment-retries 3 \
    --progress \
    --console-title

echo -e "${GREEN}✅ Batch download completed!${NC}"
echo -e "${YELLOW}📁 Check $OUTPUT_DIR for your downloaded music${NC}"

DOWNLOADED=$(find "$OUTPUT_DIR" -name "*.{{.Extension}}" | wc -l)
echo -e "${BLUE}Downloaded: $DOWNLOADED/$TOTAL_SONGS songs${NC}"

if [ "$DOWNLOADED" -lt "$TOTAL_SONGS" ]; then
    echo -e "${YELLOW}⚠ Some songs may have failed to download. Check the log above.${NC}"
fi
`))

// DefaultYtDlp is the command the script runs when no resolved path is known.
const DefaultYtDlp = "yt-dlp"

// ScriptParams are the values recorded in the download script.
type ScriptParams struct {
	OutputDir    string
	BatchFile    string
	Format       string
	Extension    string
	Quality      string
	AudioQuality int
	// YtDlp is the yt-dlp executable the script calls. FFmpegLocation, when
	// set, is passed to yt-dlp as --ffmpeg-location.
	YtDlp          string
	FFmpegLocation string
}

// NewScriptParams derives script values from the download settings. Empty
// tool paths leave yt-dlp to be found on PATH.
func NewScriptParams(batchFile string, download core.DownloadConfig, ytdlp, ffmpeg string) ScriptParams {
	if ytdlp == "" {
		ytdlp = DefaultYtDlp
	}
	return ScriptParams{
		OutputDir:      download.OutputDir,
		BatchFile:      batchFile,
		Format:         download.Format.String(),
		Extension:      download.Format.Extension(),
		Quality:        download.Quality.String(),
		AudioQuality:   download.Quality.Profile().AudioQuality,
		YtDlp:          ytdlp,
		FFmpegLocation: ffmpeg,
	}
}

// Summary is the JSON record of a generated playlist.
type Summary struct {
	TotalSongs int           `json:"total_songs"`
	CreatedAt  time.Time     `json:"created_at"`
	Quality    string        `json:"quality"`
	Format     string        `json:"format"`
	Songs      []SummarySong `json:"songs"`
}

type SummarySong struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Search string `json:"search"`
	Query  string `json:"query"`
}

// Writer creates the output files of a run.
type Writer struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{
		logger: logger,
		now:    time.Now,
	}
}

// WriteBatchFile writes one search directive per line.
func (w *Writer) WriteBatchFile(path string, batch *core.PlaylistBatch) error {
	var buf bytes.Buffer
	for _, line := range batch.Directives() {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := writeFile(path, buf.Bytes(), dataFileMode); err != nil {
		return fmt.Errorf("write batch file: %w", err)
	}

	w.logger.Info("Wrote batch file", zap.String("path", path), zap.Int("songs", batch.Len()))
	return nil
}

// WriteScript renders the download script and marks it executable.
func (w *Writer) WriteScript(path string, params ScriptParams) error {
	var buf bytes.Buffer
	if err := downloadScript.Execute(&buf, params); err != nil {
		return fmt.Errorf("render download script: %w", err)
	}

	if err := writeFile(path, buf.Bytes(), scriptFileMode); err != nil {
		return fmt.Errorf("write download script: %w", err)
	}
	// WriteFile keeps the mode of an existing file and applies umask to new ones.
	if err := os.Chmod(path, scriptFileMode); err != nil {
		return fmt.Errorf("chmod download script: %w", err)
	}

	w.logger.Info("Wrote download script",
		zap.String("path", path),
		zap.String("format", params.Format),
		zap.String("quality", params.Quality),
		zap.String("yt_dlp", params.YtDlp))
	return nil
}

// BuildSummary describes batch for the JSON summary file.
func (w *Writer) BuildSummary(batch *core.PlaylistBatch, format core.AudioFormat) Summary {
	summary := Summary{
		TotalSongs: batch.Len(),
		CreatedAt:  w.now().UTC().Truncate(time.Second),
		Quality:    batch.Quality.String(),
		Format:     format.String(),
		Songs:      make([]SummarySong, 0, batch.Len()),
	}
	for _, entry := range batch.Entries {
		summary.Songs = append(summary.Songs, SummarySong{
			Artist: entry.Artist,
			Title:  entry.Title,
			Search: entry.SearchString,
			Query:  entry.Directive(batch.Quality),
		})
	}
	return summary
}

// WriteSummary writes the JSON summary of batch.
func (w *Writer) WriteSummary(path string, batch *core.PlaylistBatch, format core.AudioFormat) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(w.BuildSummary(batch, format)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	if err := writeFile(path, buf.Bytes(), dataFileMode); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	w.logger.Info("Wrote playlist summary", zap.String("path", path))
	return nil
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, mode)
}

// shellQuote wraps s in single quotes for bash.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
