package games

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

var flankerStyle = lipgloss.NewStyle().Bold(true)

func flankerControls() []trial.Option {
	return []trial.Option{
		{Key: "left", Label: "left arrow", Value: "left"},
		{Key: "right", Label: "right arrow", Value: "right"},
	}
}

func flankerProfile() trial.Profile {
	return trial.Profile{
		ID:   "flanker",
		Game: Flanker,
		Name: "Eriksen Flanker",
		Instructions: []string{
			"Five arrows appear in a row. The four outer arrows may point the same way as the centre arrow, or the opposite way.",
			"Respond to the CENTRE arrow only: press the left or right arrow key to match its direction.",
			"Ignore the flanking arrows. Speed and accuracy both count.",
		},
		Controls:        flankerControls(),
		PracticeTrials:  8,
		TestTrials:      64,
		ResponseTimeout: 2000 * time.Millisecond,
		FeedbackDelay:   400 * time.Millisecond,
		ReadyDelay:      600 * time.Millisecond,
		PracticeTarget:  60,
		ShowFeedback:    true,
	}
}

func flankerBriefProfile() trial.Profile {
	p := flankerProfile()
	p.ID = "flanker-brief"
	p.Name = "Eriksen Flanker (brief)"
	p.PracticeTrials = 6
	p.TestTrials = 32
	p.ResponseTimeout = 1700 * time.Millisecond

	return p
}

// FlankerSequence generates n trials split evenly between congruent and
// incongruent flanker arrays, shuffled.
func FlankerSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	congruent := (n + 1) / 2

	for i := 0; i < n; i++ {
		target := "left"
		glyph, flank := "<", "<"

		if r.Intn(2) == 1 {
			target = "right"
			glyph = ">"
			flank = ">"
		}

		trialType := trialCongruent

		if i >= congruent {
			trialType = trialIncongruent

			if glyph == "<" {
				flank = ">"
			} else {
				flank = "<"
			}
		}

		row := strings.Join(
			[]string{flank, flank, glyph, flank, flank},
			" ",
		)

		stimuli = append(stimuli, trial.Stimulus{
			ID:       row,
			Display:  flankerStyle.Render(row),
			Prompt:   "centre arrow?",
			Expected: target,
			Type:     trialType,
		})
	}

	shuffle(stimuli, r)

	return stimuli
}

type flankerGame struct {
	prof trial.Profile
}

func newFlanker(p trial.Profile) trial.Game {
	return &flankerGame{prof: p}
}

func (g *flankerGame) Profile() trial.Profile { return g.prof }

func (g *flankerGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(FlankerSequence(n, r))
}

func (g *flankerGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *flankerGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	congruentRT := trial.MeanRTByType(sess.Trials, trialCongruent)
	incongruentRT := trial.MeanRTByType(sess.Trials, trialIncongruent)

	sum.Metrics["congruent_rt_ms"] = ms(congruentRT)
	sum.Metrics["incongruent_rt_ms"] = ms(incongruentRT)
	sum.Metrics["flanker_effect_ms"] = ms(incongruentRT - congruentRT)

	return sum
}
