package games

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	corsiGridSize  = 3
	corsiInitial   = 3
	corsiRevealPer = 900 * time.Millisecond
)

var (
	corsiBlockStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("13"))
	corsiEmptyStyle = lipgloss.NewStyle().Faint(true)
)

func corsiProfile() trial.Profile {
	return trial.Profile{
		ID:   "corsi",
		Game: Corsi,
		Name: "Corsi Block-Tapping",
		Instructions: []string{
			"A 3x3 grid of blocks is shown. Some blocks light up numbered in a sequence, then the grid goes blank.",
			"Reproduce the sequence by typing the positions in order, using the keypad layout (7 8 9 / 4 5 6 / 1 2 3), then press ENTER.",
			"The sequence grows by one block after each correct recall. Two failures in a row end the test.",
		},
		PracticeTrials:  2,
		TestTrials:      14,
		ResponseTimeout: 20 * time.Second,
		FeedbackDelay:   600 * time.Millisecond,
		ReadyDelay:      800 * time.Millisecond,
		ShowFeedback:    true,
	}
}

// corsiCells maps keypad digits to grid coordinates, top row first.
var corsiCells = []string{"7", "8", "9", "4", "5", "6", "1", "2", "3"}

// corsiSequence draws a sequence of distinct block positions.
func corsiSequence(span int, r *rand.Rand) []string {
	cells := make([]string, len(corsiCells))
	copy(cells, corsiCells)
	shuffle(cells, r)

	if span > len(cells) {
		span = len(cells)
	}

	return cells[:span]
}

// corsiDisplay renders the grid with the sequence order marked inside the
// lit blocks.
func corsiDisplay(seq []string) string {
	order := make(map[string]int, len(seq))
	for i, cell := range seq {
		order[cell] = i + 1
	}

	var b strings.Builder

	for i, cell := range corsiCells {
		if n, ok := order[cell]; ok {
			b.WriteString(corsiBlockStyle.Render(fmt.Sprintf("[%d]", n)))
		} else {
			b.WriteString(corsiEmptyStyle.Render("[ ]"))
		}

		if (i+1)%corsiGridSize == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	return b.String()
}

type corsiSequencer struct {
	cap     int
	initial int
	rng     *rand.Rand
}

func (q *corsiSequencer) Next(history []trial.Trial) (trial.Stimulus, bool) {
	if len(history) >= q.cap {
		return trial.Stimulus{}, false
	}

	var correct, failStreak int

	for _, t := range history {
		if t.Correct() {
			correct++
			failStreak = 0
		} else {
			failStreak++
		}
	}

	if failStreak >= digitSpanMaxFailures {
		return trial.Stimulus{}, false
	}

	span := q.initial + correct
	seq := corsiSequence(span, q.rng)
	expected := strings.Join(seq, "")

	return trial.Stimulus{
		ID:         expected,
		Display:    corsiDisplay(seq),
		Prompt:     "type the positions in order",
		Expected:   expected,
		Type:       strconv.Itoa(span),
		TypedInput: true,
		Reveal:     time.Duration(span) * corsiRevealPer,
	}, true
}

type corsiGame struct {
	prof trial.Profile
}

func newCorsi(p trial.Profile) trial.Game {
	return &corsiGame{prof: p}
}

func (g *corsiGame) Profile() trial.Profile { return g.prof }

func (g *corsiGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return &corsiSequencer{cap: n, initial: corsiInitial, rng: r}
}

func (g *corsiGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, strings.TrimSpace(response))
}

func (g *corsiGame) Summarize(sess *trial.Session) trial.Summary {
	return summarizeSpan(sess, corsiInitial)
}
