// Package core holds the run configuration and turns songs into a download batch.
package core

import (
	"fmt"
	"strings"

	"spotify2yt/pkg/fuzzy"
)

// SearchPrefix makes yt-dlp resolve a line to the first YouTube search hit.
const SearchPrefix = "ytsearch1:"

// Song is one raw input row or line.
type Song struct {
	Artist string
	Title  string
	// Position is the 1-based row, line or prompt number in the source.
	Position int
}

// NormalizedQuery is a song resolved to a search string and dedup key.
type NormalizedQuery struct {
	Artist       string
	Title        string
	SearchString string
	DedupKey     string
	Position     int
}

// Directive returns the batch file line for this query under the given quality.
func (q NormalizedQuery) Directive(quality Quality) string {
	return SearchPrefix + q.SearchString + quality.Profile().SearchSuffix
}

// PlaylistBatch is the ordered, deduplicated result of a run.
type PlaylistBatch struct {
	Quality Quality
	Entries []NormalizedQuery
}

// Len returns the number of entries.
func (b *PlaylistBatch) Len() int {
	return len(b.Entries)
}

// Directives returns one batch file line per entry, in order.
func (b *PlaylistBatch) Directives() []string {
	lines := make([]string, 0, len(b.Entries))
	for _, entry := range b.Entries {
		lines = append(lines, entry.Directive(b.Quality))
	}
	return lines
}

// BatchStats counts what happened to each input song.
type BatchStats struct {
	Read       int
	Added      int
	Empty      int
	Duplicates int
	// Known counts songs skipped because an earlier run already recorded them.
	Known int
}

// Quality selects the search and download trade-off.
type Quality int

const (
	// QualityBest searches for official audio and downloads at the highest VBR setting
	QualityBest Quality = iota
	// QualityGood is the balanced setting
	QualityGood
	// QualityFast strips titles aggressively and downloads smaller files
	QualityFast
)

// QualityProfile is the set of concrete effects a Quality has.
type QualityProfile struct {
	Name         string
	StripLevel   fuzzy.Level
	SearchSuffix string
	// AudioQuality is the yt-dlp --audio-quality value, 0 (best) to 10 (worst).
	AudioQuality int
}

var qualityProfiles = map[Quality]QualityProfile{
	QualityBest: {Name: "best", StripLevel: fuzzy.LevelMinimal, SearchSuffix: " official audio", AudioQuality: 0},
	QualityGood: {Name: "good", StripLevel: fuzzy.LevelStandard, SearchSuffix: " official", AudioQuality: 2},
	QualityFast: {Name: "fast", StripLevel: fuzzy.LevelAggressive, SearchSuffix: "", AudioQuality: 5},
}

// Profile returns the effects of q. Unknown values behave like QualityBest.
func (q Quality) Profile() QualityProfile {
	if p, ok := qualityProfiles[q]; ok {
		return p
	}
	return qualityProfiles[QualityBest]
}

func (q Quality) String() string {
	return q.Profile().Name
}

// ParseQuality maps a flag value to a Quality.
func ParseQuality(value string) (Quality, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for q, p := range qualityProfiles {
		if p.Name == value {
			return q, nil
		}
	}
	return QualityBest, fmt.Errorf("unsupported quality %q (supported: %s)", value, strings.Join(QualityNames(), ", "))
}

// QualityNames lists the accepted quality values in order.
func QualityNames() []string {
	return []string{QualityBest.String(), QualityGood.String(), QualityFast.String()}
}

// AudioFormat is the target container/codec passed to yt-dlp.
type AudioFormat int

const (
	// FormatMP3 is MPEG-1 Layer III
	FormatMP3 AudioFormat = iota
	// FormatFLAC is lossless FLAC
	FormatFLAC
	// FormatM4A is AAC in MP4
	FormatM4A
	// FormatOGG is Vorbis in Ogg
	FormatOGG
)

var formatNames = []string{"mp3", "flac", "m4a", "ogg"}

func (f AudioFormat) String() string {
	if int(f) < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatMP3]
	}
	return formatNames[f]
}

// Extension returns the file extension yt-dlp produces for f.
func (f AudioFormat) Extension() string {
	return f.String()
}

// ParseAudioFormat maps a flag value to an AudioFormat.
func ParseAudioFormat(value string) (AudioFormat, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range formatNames {
		if name == value {
			return AudioFormat(i), nil
		}
	}
	return FormatMP3, fmt.Errorf("unsupported audio format %q (supported: %s)", value, strings.Join(formatNames, ", "))
}

// AudioFormatNames lists the accepted format values in order.
func AudioFormatNames() []string {
	names := make([]string, len(formatNames))
	copy(names, formatNames)
	return names
}
