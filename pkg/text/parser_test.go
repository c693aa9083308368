package text

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spotify2yt/internal/core"
)

func TestParser_ParseLine(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected core.Song
		ok       bool
	}{
		{"Artist and title", "The Beatles - Hey Jude", core.Song{Artist: "The Beatles", Title: "Hey Jude"}, true},
		{"Bare title", "Hey Jude", core.Song{Title: "Hey Jude"}, true},
		{"Only first separator splits", "A - B - C", core.Song{Artist: "A", Title: "B - C"}, true},
		{"Hyphen without spaces", "Ob-La-Di", core.Song{Title: "Ob-La-Di"}, true},
		{"Extra whitespace", "  Queen   -   Bohemian  Rhapsody ", core.Song{Artist: "Queen", Title: "Bohemian Rhapsody"}, true},
		{"Fullwidth characters folded", "Ｑｕｅｅｎ - Ｓｏｍｅｂｏｄｙ", core.Song{Artist: "Queen", Title: "Somebody"}, true},
		{"Comment", "# my playlist", core.Song{}, false},
		{"Blank", "   ", core.Song{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song, ok := parser.ParseLine(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if song != tt.expected {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.input, song, tt.expected)
			}
		})
	}
}

func TestParser_ReadText(t *testing.T) {
	input := "\ufeff# exported list\n" +
		"The Beatles - Hey Jude\n" +
		"\n" +
		"Bohemian Rhapsody\n" +
		"  # indented comment\n" +
		"ABBA - Dancing Queen\n"

	result, err := NewParser().ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}

	want := []core.Song{
		{Artist: "The Beatles", Title: "Hey Jude", Position: 2},
		{Title: "Bohemian Rhapsody", Position: 4},
		{Artist: "ABBA", Title: "Dancing Queen", Position: 6},
	}
	if len(result.Songs) != len(want) {
		t.Fatalf("ReadText() returned %d songs, want %d: %+v", len(result.Songs), len(want), result.Songs)
	}
	for i := range want {
		if result.Songs[i] != want[i] {
			t.Errorf("Songs[%d] = %+v, want %+v", i, result.Songs[i], want[i])
		}
	}
}

func TestParser_ReadTextLongLines(t *testing.T) {
	long := "Artist - " + strings.Repeat("a", 100*1024)
	huge := strings.Repeat("b", maxLineBytes+1)
	input := long + "\r\n" + huge + "\n" + "Queen - Innuendo"

	result, err := NewParser().ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}

	if len(result.Songs) != 2 {
		t.Fatalf("ReadText() returned %d songs, want 2", len(result.Songs))
	}
	if result.Songs[0].Artist != "Artist" || len(result.Songs[0].Title) != 100*1024 {
		t.Errorf("Songs[0] = %q / %d bytes", result.Songs[0].Artist, len(result.Songs[0].Title))
	}
	want := core.Song{Artist: "Queen", Title: "Innuendo", Position: 3}
	if result.Songs[1] != want {
		t.Errorf("Songs[1] = %+v, want %+v", result.Songs[1], want)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Position != 2 {
		t.Errorf("Skipped = %+v, want line 2", result.Skipped)
	}
}

func TestParser_ReadCSV(t *testing.T) {
	input := "\ufeffTrack URI,Track Name,Artist Name(s),Album Name\n" +
		"spotify:track:1,Hey Jude,The Beatles,Hey Jude\n" +
		"spotify:track:2,\"Get Lucky (feat. Pharrell Williams)\",\"Daft Punk, Pharrell Williams\",RAM\n" +
		"spotify:track:3,,Nobody,Nothing\n" +
		"spotify:track:4\n" +
		"spotify:track:5,Instrumental\n"

	result, err := NewParser().ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	want := []core.Song{
		{Artist: "The Beatles", Title: "Hey Jude", Position: 1},
		{Artist: "Daft Punk, Pharrell Williams", Title: "Get Lucky (feat. Pharrell Williams)", Position: 2},
		{Title: "Instrumental", Position: 5},
	}
	if len(result.Songs) != len(want) {
		t.Fatalf("ReadCSV() returned %d songs, want %d: %+v", len(result.Songs), len(want), result.Songs)
	}
	for i := range want {
		if result.Songs[i] != want[i] {
			t.Errorf("Songs[%d] = %+v, want %+v", i, result.Songs[i], want[i])
		}
	}

	if len(result.Skipped) != 2 {
		t.Fatalf("Skipped = %+v, want 2 rows", result.Skipped)
	}
	if result.Skipped[0].Position != 3 || result.Skipped[1].Position != 4 {
		t.Errorf("Skipped positions = %+v, want rows 3 and 4", result.Skipped)
	}
}

func TestParser_ReadCSV_MissingTrackColumn(t *testing.T) {
	_, err := NewParser().ReadCSV(strings.NewReader("Artist Name(s),Album\nA,B\n"))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("ReadCSV() error = %v, want ErrMissingColumns", err)
	}

	_, err = NewParser().ReadCSV(strings.NewReader(""))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("ReadCSV() on empty input error = %v, want ErrMissingColumns", err)
	}
}

func TestParser_ReadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "playlist.CSV")
	txtPath := filepath.Join(dir, "songs.txt")

	if err := os.WriteFile(csvPath, []byte("Track Name,Artist Name(s)\nHey Jude,The Beatles\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := os.WriteFile(txtPath, []byte("Track Name,Artist Name(s)\n"), 0o600); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	parser := NewParser()

	csvResult, err := parser.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("ReadFile(csv) error = %v", err)
	}
	if len(csvResult.Songs) != 1 || csvResult.Songs[0].Artist != "The Beatles" {
		t.Errorf("ReadFile(csv) = %+v", csvResult.Songs)
	}

	txtResult, err := parser.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("ReadFile(txt) error = %v", err)
	}
	if len(txtResult.Songs) != 1 || txtResult.Songs[0].Title != "Track Name,Artist Name(s)" {
		t.Errorf("ReadFile(txt) should treat lines as titles, got %+v", txtResult.Songs)
	}

	if _, err := parser.ReadFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestIsCSV(t *testing.T) {
	tests := map[string]bool{
		"playlist.csv": true,
		"PLAYLIST.CSV": true,
		"songs.txt":    false,
		"songs":        false,
	}
	for path, want := range tests {
		if got := IsCSV(path); got != want {
			t.Errorf("IsCSV(%q) = %v, want %v", path, got, want)
		}
	}
}
