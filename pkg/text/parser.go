// Package text reads songs from playlist exports and free-form text.
package text

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"spotify2yt/internal/core"
)

const (
	// TrackNameColumn is the Exportify column holding the track title
	TrackNameColumn = "Track Name"
	// ArtistNameColumn is the Exportify column holding comma separated artists
	ArtistNameColumn = "Artist Name(s)"
	// CommentPrefix marks ignored lines in text input
	CommentPrefix = "#"
	// ArtistTitleSeparator splits "Artist - Title" lines
	ArtistTitleSeparator = " - "

	byteOrderMark = "\ufeff"

	// maxLineBytes bounds a text line; longer lines are skipped.
	maxLineBytes = 1 << 20
)

// ErrMissingColumns is returned when a CSV header lacks the track name column.
var ErrMissingColumns = errors.New("missing required columns")

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SkippedRow records an input row that produced no song.
type SkippedRow struct {
	Position int
	Reason   string
}

// Result is the outcome of reading one input.
type Result struct {
	Songs   []core.Song
	Skipped []SkippedRow
}

func (r *Result) skip(position int, reason string) {
	r.Skipped = append(r.Skipped, SkippedRow{Position: position, Reason: reason})
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// IsCSV reports whether path should be read as a CSV export.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// ReadFile reads a CSV export or a text list depending on the file extension.
func (p *Parser) ReadFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if IsCSV(path) {
		return p.ReadCSV(file)
	}
	return p.ReadText(file)
}

// ParseLine parses "Artist - Title" or a bare title. Blank and comment lines
// return false.
func (p *Parser) ParseLine(line string) (core.Song, bool) {
	line = p.normalizeText(line)
	if line == "" || strings.HasPrefix(line, CommentPrefix) {
		return core.Song{}, false
	}

	// line is trimmed, so both halves of a found separator are non-empty.
	if artist, title, found := strings.Cut(line, ArtistTitleSeparator); found {
		return core.Song{Artist: strings.TrimSpace(artist), Title: strings.TrimSpace(title)}, true
	}

	return core.Song{Title: line}, true
}

// ReadText reads one song per line.
func (p *Parser) ReadText(r io.Reader) (*Result, error) {
	result := &Result{}
	reader := bufio.NewReader(r)

	lineNum := 0
	for {
		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read text input: %w", err)
		}
		lineNum++
		if tooLong {
			result.skip(lineNum, fmt.Sprintf("line longer than %d bytes", maxLineBytes))
			continue
		}
		if lineNum == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}

		song, ok := p.ParseLine(line)
		if !ok {
			continue
		}
		song.Position = lineNum
		result.Songs = append(result.Songs, song)
	}

	return result, nil
}

// readLine returns the next line without its terminator. A line over
// maxLineBytes is consumed but not kept, and tooLong is set.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, readErr := r.ReadLine()
		if readErr != nil {
			return "", false, readErr
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// ReadCSV reads an Exportify-style CSV. Columns are located by header name.
func (p *Parser) ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV: %w", ErrMissingColumns)
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	trackIdx, artistIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
		switch name {
		case TrackNameColumn:
			trackIdx = i
		case ArtistNameColumn:
			artistIdx = i
		}
	}
	if trackIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumns, TrackNameColumn)
	}

	result := &Result{}
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.skip(rowNum, parseErr.Err.Error())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", rowNum, err)
		}

		if trackIdx >= len(record) {
			result.skip(rowNum, "missing columns")
			continue
		}

		title := p.normalizeText(record[trackIdx])
		if title == "" {
			result.skip(rowNum, "no track name")
			continue
		}

		var artist string
		if artistIdx >= 0 && artistIdx < len(record) {
			artist = p.normalizeText(record[artistIdx])
		}

		result.Songs = append(result.Songs, core.Song{Artist: artist, Title: title, Position: rowNum})
	}

	return result, nil
}

func (p *Parser) normalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
