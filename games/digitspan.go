package games

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	digitSpanInitial     = 3
	digitSpanRevealPer   = 800 * time.Millisecond
	digitSpanMaxFailures = 2
)

var digitSpanStyle = lipgloss.NewStyle().Bold(true)

func digitSpanProfile() trial.Profile {
	return trial.Profile{
		ID:   "digitspan",
		Game: DigitSpan,
		Name: "Digit Span",
		Instructions: []string{
			"A sequence of digits is shown briefly, then hidden.",
			"Type the digits back in the same order and press ENTER.",
			"The sequence grows by one digit after each correct recall. Two failures in a row end the test.",
		},
		PracticeTrials:  2,
		TestTrials:      14,
		ResponseTimeout: 20 * time.Second,
		FeedbackDelay:   600 * time.Millisecond,
		ReadyDelay:      800 * time.Millisecond,
		ShowFeedback:    true,
	}
}

// spanDigits draws a digit sequence of the given length with no immediate
// repeats.
func spanDigits(span int, r *rand.Rand) string {
	var b strings.Builder

	last := -1

	for i := 0; i < span; i++ {
		d := r.Intn(10)
		for d == last {
			d = r.Intn(10)
		}

		last = d

		b.WriteString(strconv.Itoa(d))
	}

	return b.String()
}

// digitSpanSequencer grows the span by one after every correct recall and
// stops after two consecutive failures or the trial cap.
type digitSpanSequencer struct {
	cap     int
	initial int
	rng     *rand.Rand
}

func (q *digitSpanSequencer) Next(history []trial.Trial) (trial.Stimulus, bool) {
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
	digits := spanDigits(span, q.rng)

	return trial.Stimulus{
		ID:         digits,
		Display:    digitSpanStyle.Render(strings.Join(strings.Split(digits, ""), " ")),
		Prompt:     "type the digits in order",
		Expected:   digits,
		Type:       strconv.Itoa(span),
		TypedInput: true,
		Reveal:     time.Duration(span) * digitSpanRevealPer,
	}, true
}

type digitSpanGame struct {
	prof trial.Profile
}

func newDigitSpan(p trial.Profile) trial.Game {
	return &digitSpanGame{prof: p}
}

func (g *digitSpanGame) Profile() trial.Profile { return g.prof }

func (g *digitSpanGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return &digitSpanSequencer{cap: n, initial: digitSpanInitial, rng: r}
}

func (g *digitSpanGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, strings.TrimSpace(response))
}

func (g *digitSpanGame) Summarize(sess *trial.Session) trial.Summary {
	return summarizeSpan(sess, digitSpanInitial)
}

// summarizeSpan derives the highest span achieved from the per-trial span
// tags. With no correct recalls the span falls below the starting length.
func summarizeSpan(sess *trial.Session, initial int) trial.Summary {
	sum := trial.Summarize(sess)

	highest := initial - 1

	for _, t := range sess.Trials {
		if !t.Correct() {
			continue
		}

		span, err := strconv.Atoi(t.Type)
		if err == nil && span > highest {
			highest = span
		}
	}

	if highest < 0 {
		highest = 0
	}

	sum.Metrics["highest_span"] = float64(highest)

	return sum
}
