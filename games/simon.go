package games

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const simonFieldWidth = 31

var simonWordStyle = lipgloss.NewStyle().Bold(true)

func simonProfile() trial.Profile {
	return trial.Profile{
		ID:   "simon",
		Game: Simon,
		Name: "Simon Task",
		Instructions: []string{
			"The word LEFT or RIGHT appears on either side of the screen.",
			"Respond to the MEANING of the word with the matching arrow key, ignoring where it appears.",
			"The word's position will sometimes conflict with its meaning. Stay with the meaning.",
		},
		Controls: []trial.Option{
			{Key: "left", Label: "left arrow", Value: "left"},
			{Key: "right", Label: "right arrow", Value: "right"},
		},
		PracticeTrials:  8,
		TestTrials:      64,
		ResponseTimeout: 2000 * time.Millisecond,
		FeedbackDelay:   400 * time.Millisecond,
		ReadyDelay:      600 * time.Millisecond,
		PracticeTarget:  60,
		ShowFeedback:    true,
	}
}

// SimonSequence generates n trials evenly split between congruent trials,
// where the word appears on its own side, and incongruent trials, where it
// appears opposite, shuffled.
func SimonSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	congruent := (n + 1) / 2

	for i := 0; i < n; i++ {
		word := "LEFT"
		expected := "left"

		if r.Intn(2) == 1 {
			word = "RIGHT"
			expected = "right"
		}

		side := expected
		trialType := trialCongruent

		if i >= congruent {
			trialType = trialIncongruent

			if side == "left" {
				side = "right"
			} else {
				side = "left"
			}
		}

		rendered := simonWordStyle.Render(word)

		var display string
		if side == "left" {
			display = rendered +
				strings.Repeat(" ", simonFieldWidth-len(word))
		} else {
			display = strings.Repeat(" ", simonFieldWidth-len(word)) +
				rendered
		}

		stimuli = append(stimuli, trial.Stimulus{
			ID:       word + "@" + side,
			Display:  display,
			Prompt:   "word meaning?",
			Expected: expected,
			Type:     trialType,
		})
	}

	shuffle(stimuli, r)

	return stimuli
}

type simonGame struct {
	prof trial.Profile
}

func newSimon(p trial.Profile) trial.Game {
	return &simonGame{prof: p}
}

func (g *simonGame) Profile() trial.Profile { return g.prof }

func (g *simonGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(SimonSequence(n, r))
}

func (g *simonGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *simonGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	congruentRT := trial.MeanRTByType(sess.Trials, trialCongruent)
	incongruentRT := trial.MeanRTByType(sess.Trials, trialIncongruent)

	sum.Metrics["congruent_rt_ms"] = ms(congruentRT)
	sum.Metrics["incongruent_rt_ms"] = ms(incongruentRT)
	sum.Metrics["simon_effect_ms"] = ms(incongruentRT - congruentRT)

	return sum
}
