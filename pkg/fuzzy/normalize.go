// Package fuzzy cleans song titles and artists into search strings and dedup keys.
package fuzzy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Level controls how aggressively qualifiers are stripped from titles.
type Level int

const (
	// LevelMinimal strips remix/version/edit/mix qualifiers and square-bracket groups.
	LevelMinimal Level = iota
	// LevelStandard additionally strips remaster/deluxe/mono/... qualifiers and dash suffixes.
	LevelStandard
	// LevelAggressive additionally strips live/acoustic/... qualifiers and any trailing
	// parenthetical or dash suffix.
	LevelAggressive
)

func (l Level) String() string {
	switch l {
	case LevelMinimal:
		return "minimal"
	case LevelStandard:
		return "standard"
	case LevelAggressive:
		return "aggressive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

const (
	// Whole words only; inflected forms are listed explicitly.
	minimalQualifiers    = `remix(?:e[sd])?|version|edit|mix(?:ed)?`
	standardQualifiers   = `remaster(?:ed)?|deluxe|edition|mono|stereo|anniversary|bonus|single|album`
	aggressiveQualifiers = `live|acoustic|demo|instrumental|explicit|clean|radio|session|unplugged`
)

// ErrEmptySong is returned when both artist and title are blank.
var ErrEmptySong = errors.New("song has neither artist nor title")

var (
	featParenRegex = regexp.MustCompile(
		`(?i)\s*[\(\[]\s*(?:feat\.?|ft\.?|featuring|with)\s+[^\)\]]*(?:[\)\]]|$)`)
	featTrailRegex = regexp.MustCompile(
		`(?i)\s+(?:-\s+(?:feat\.?|ft\.?|featuring)|feat\.|ft\.|featuring)\s+.*$`)
	artistFeatRegex  = regexp.MustCompile(`(?i)\s+(?:feat\.|ft\.|featuring)\s+.*$`)
	artistSplitRegex = regexp.MustCompile(`\s*[,;&]\s*.*$`)
	bracketRegex     = regexp.MustCompile(`\s*\[[^\]]*\]`)
	trailingParen    = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]\s*$`)
	trailingDash     = regexp.MustCompile(`\s+[-–]\s+.*$`)
	punctRegex       = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)

	minimalParenRegex = qualifierParen(minimalQualifiers)
	standardParen     = qualifierParen(standardQualifiers)
	aggressiveParen   = qualifierParen(aggressiveQualifiers)
	standardDash      = qualifierDash(minimalQualifiers + "|" + standardQualifiers)
	aggressiveDash    = qualifierDash(aggressiveQualifiers)
)

func qualifierParen(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\s*[\(\[][^\)\]]*\b(?:` + words + `)\b[^\)\]]*[\)\]]`)
}

func qualifierDash(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\s+[-–]\s+.*\b(?:` + words + `)\b.*$`)
}

// Query is the normalized form of one song.
type Query struct {
	// Artist and Title are the whitespace-collapsed originals, kept for display.
	Artist       string
	Title        string
	SearchString string
	DedupKey     string
}

// Normalizer turns raw artist/title pairs into queries. It is stateless and safe
// for concurrent use.
type Normalizer struct {
	level Level
}

// NewNormalizer creates a normalizer that strips qualifiers at the given level.
func NewNormalizer(level Level) *Normalizer {
	return &Normalizer{level: level}
}

// Level returns the configured strip level.
func (n *Normalizer) Level() Level {
	return n.level
}

// Normalize builds the search string and dedup key for an artist/title pair.
func (n *Normalizer) Normalize(artist, title string) (Query, error) {
	displayArtist := collapse(artist)
	displayTitle := collapse(title)
	if displayArtist == "" && displayTitle == "" {
		return Query{}, ErrEmptySong
	}

	cleanArtist := n.CleanArtist(displayArtist)
	cleanTitle := n.CleanTitle(displayTitle)

	var search string
	switch {
	case cleanArtist == "":
		search = cleanTitle
	case cleanTitle == "":
		search = cleanArtist
	default:
		search = cleanArtist + " " + cleanTitle
	}

	return Query{
		Artist:       displayArtist,
		Title:        displayTitle,
		SearchString: search,
		DedupKey:     DedupKey(search),
	}, nil
}

// CleanTitle strips featured-artist markers and qualifiers. A title that would
// become empty is returned whitespace-collapsed but otherwise untouched.
func (n *Normalizer) CleanTitle(title string) string {
	original := collapse(title)
	title = original

	title = featParenRegex.ReplaceAllString(title, "")
	title = featTrailRegex.ReplaceAllString(title, "")

	title = minimalParenRegex.ReplaceAllString(title, "")
	title = bracketRegex.ReplaceAllString(title, "")

	if n.level >= LevelStandard {
		title = standardParen.ReplaceAllString(title, "")
		title = standardDash.ReplaceAllString(title, "")
	}

	if n.level >= LevelAggressive {
		title = aggressiveParen.ReplaceAllString(title, "")
		title = aggressiveDash.ReplaceAllString(title, "")
		for trailingParen.MatchString(title) {
			title = trailingParen.ReplaceAllString(title, "")
		}
		title = trailingDash.ReplaceAllString(title, "")
	}

	title = strings.TrimRight(collapse(title), " -–")
	if title == "" {
		return original
	}
	return title
}

// CleanArtist keeps the primary artist: anything after a comma, semicolon,
// ampersand or a featuring marker is dropped.
func (n *Normalizer) CleanArtist(artist string) string {
	artist = collapse(artist)
	artist = artistSplitRegex.ReplaceAllString(artist, "")
	artist = artistFeatRegex.ReplaceAllString(artist, "")
	return strings.TrimSpace(artist)
}

// DedupKey folds case and diacritics, removes punctuation and collapses whitespace.
// When nothing but punctuation or symbols remains, those are kept.
func DedupKey(text string) string {
	text = norm.NFKD.String(text)

	var result strings.Builder
	for _, r := range text {
		if !unicode.IsMark(r) {
			result.WriteRune(r)
		}
	}
	text = result.String()

	// Casers carry state, so each call gets its own.
	text = cases.Fold().String(text)
	if key := collapse(punctRegex.ReplaceAllString(text, "")); key != "" {
		return key
	}
	return collapse(text)
}

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}
