// Package prompt collects songs typed at the terminal.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"spotify2yt/internal/core"
	"spotify2yt/internal/i18n"
	"spotify2yt/pkg/text"
)

// QuitCommand ends the prompt loop like an empty line does.
const QuitCommand = "q"

// ErrCancelled is returned when the user interrupts the prompt.
var ErrCancelled = errors.New("cancelled by user")

// Asker reads one line of input for a prompt message.
type Asker interface {
	Ask(message string) (string, error)
}

// SurveyAsker asks through a survey input prompt.
type SurveyAsker struct{}

func (SurveyAsker) Ask(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	if errors.Is(err, terminal.InterruptErr) {
		return "", ErrCancelled
	}
	return answer, err
}

// Collector runs the song entry loop.
type Collector struct {
	asker     Asker
	parser    *text.Parser
	localizer *i18n.Localizer
}

func NewCollector(asker Asker, localizer *i18n.Localizer) *Collector {
	return &Collector{
		asker:     asker,
		parser:    text.NewParser(),
		localizer: localizer,
	}
}

// Collect asks for songs until an empty answer or the quit command.
// Answers that parse to nothing, such as comments, do not advance the counter.
func (c *Collector) Collect() ([]core.Song, error) {
	var songs []core.Song

	for {
		position := len(songs) + 1
		answer, err := c.asker.Ask(c.localizer.T("prompt.song", position))
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("read song %d: %w", position, err)
		}

		answer = strings.TrimSpace(answer)
		if answer == "" || strings.EqualFold(answer, QuitCommand) {
			return songs, nil
		}

		song, ok := c.parser.ParseLine(answer)
		if !ok {
			continue
		}
		song.Position = position
		songs = append(songs, song)
	}
}
