package games

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

// ink names and their response keys.
var stroopInks = []struct {
	name  string
	key   string
	style lipgloss.Style
}{
	{"red", "r", lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)},
	{"green", "g", lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)},
	{"blue", "b", lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)},
	{"yellow", "y", lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)},
}

const (
	trialCongruent   = "congruent"
	trialIncongruent = "incongruent"
)

func stroopControls() []trial.Option {
	opts := make([]trial.Option, 0, len(stroopInks))

	for _, ink := range stroopInks {
		opts = append(opts, trial.Option{
			Key:   ink.key,
			Label: ink.name,
			Value: ink.name,
		})
	}

	return opts
}

func stroopProfile() trial.Profile {
	return trial.Profile{
		ID:   "stroop",
		Game: Stroop,
		Name: "Stroop Colour-Word",
		Instructions: []string{
			"A colour word appears on screen, printed in an ink colour that may not match the word itself.",
			"Respond to the INK COLOUR, not the word: press r for red, g for green, b for blue, y for yellow.",
			"Respond as quickly and accurately as you can. A short practice block comes first.",
		},
		Controls:        stroopControls(),
		PracticeTrials:  8,
		TestTrials:      96,
		ResponseTimeout: 3000 * time.Millisecond,
		FeedbackDelay:   500 * time.Millisecond,
		ReadyDelay:      800 * time.Millisecond,
		PracticeTarget:  60,
		ShowFeedback:    true,
	}
}

// stroopBriefProfile is the short variant of the task with its own trial
// count and response window.
func stroopBriefProfile() trial.Profile {
	p := stroopProfile()
	p.ID = "stroop-brief"
	p.Name = "Stroop Colour-Word (brief)"
	p.PracticeTrials = 6
	p.TestTrials = 40
	p.ResponseTimeout = 2500 * time.Millisecond

	return p
}

// StroopSequence generates n trials with an exact half congruent, half
// incongruent split, shuffled. An odd n gets the extra trial on the
// congruent side.
func StroopSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	congruent := (n + 1) / 2

	for i := 0; i < n; i++ {
		word := stroopInks[r.Intn(len(stroopInks))]
		ink := word

		trialType := trialCongruent

		if i >= congruent {
			trialType = trialIncongruent

			for ink.name == word.name {
				ink = stroopInks[r.Intn(len(stroopInks))]
			}
		}

		stimuli = append(stimuli, trial.Stimulus{
			ID:       strings.ToUpper(word.name) + "/" + ink.name,
			Display:  ink.style.Render(strings.ToUpper(word.name)),
			Prompt:   "ink colour?",
			Expected: ink.name,
			Type:     trialType,
		})
	}

	shuffle(stimuli, r)

	return stimuli
}

type stroopGame struct {
	prof trial.Profile
}

func newStroop(p trial.Profile) trial.Game {
	return &stroopGame{prof: p}
}

func (g *stroopGame) Profile() trial.Profile { return g.prof }

func (g *stroopGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(StroopSequence(n, r))
}

func (g *stroopGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *stroopGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	congruentRT := trial.MeanRTByType(sess.Trials, trialCongruent)
	incongruentRT := trial.MeanRTByType(sess.Trials, trialIncongruent)

	sum.Metrics["congruent_rt_ms"] = ms(congruentRT)
	sum.Metrics["incongruent_rt_ms"] = ms(incongruentRT)
	sum.Metrics["interference_ms"] = ms(incongruentRT - congruentRT)

	return sum
}
