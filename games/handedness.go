package games

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

// The ten activities of the Edinburgh Handedness Inventory.
var handednessItems = []string{
	"Writing",
	"Drawing",
	"Throwing",
	"Using scissors",
	"Using a toothbrush",
	"Using a knife (without a fork)",
	"Using a spoon",
	"Using a broom (upper hand)",
	"Striking a match",
	"Opening a box lid",
}

// Laterality quotient thresholds for classification.
const (
	handednessRightThreshold = 40
	handednessLeftThreshold  = -40
)

var handednessOptions = []trial.Option{
	{Key: "1", Label: "always left", Value: "-2"},
	{Key: "2", Label: "usually left", Value: "-1"},
	{Key: "3", Label: "no preference", Value: "0"},
	{Key: "4", Label: "usually right", Value: "1"},
	{Key: "5", Label: "always right", Value: "2"},
}

var handednessItemStyle = lipgloss.NewStyle().Bold(true)

func handednessProfile() trial.Profile {
	return trial.Profile{
		ID:   "handedness",
		Game: Handedness,
		Name: "Handedness Inventory",
		Instructions: []string{
			"For each everyday activity, indicate which hand you prefer to use.",
			"Answer with the number keys, from 1 (always left) to 5 (always right). There is no time limit.",
		},
		Controls:   handednessOptions,
		TestTrials: len(handednessItems),
		ReadyDelay: 200 * time.Millisecond,
	}
}

// HandednessSequence returns the ten inventory items in their fixed order.
// The random source is unused; questionnaires are not shuffled.
func HandednessSequence(n int, r *rand.Rand) []trial.Stimulus {
	if n > len(handednessItems) {
		n = len(handednessItems)
	}

	stimuli := make([]trial.Stimulus, 0, n)

	for i := 0; i < n; i++ {
		stimuli = append(stimuli, trial.Stimulus{
			ID:      handednessItems[i],
			Display: handednessItemStyle.Render(handednessItems[i]),
			Prompt:  "which hand?",
			Type:    "question",
			Options: handednessOptions,
		})
	}

	return stimuli
}

type handednessGame struct {
	prof trial.Profile
}

func newHandedness(p trial.Profile) trial.Game {
	return &handednessGame{prof: p}
}

func (g *handednessGame) Profile() trial.Profile { return g.prof }

func (g *handednessGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(HandednessSequence(n, r))
}

// Classify accepts any answered item; the inventory has no wrong answers.
func (g *handednessGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	if response == "" {
		return trial.OutcomeTimeout
	}

	return trial.OutcomeCorrect
}

// Summarize computes the laterality quotient: the sum of item scores over
// the maximum possible, scaled to [-100, 100]. Positive values indicate
// right-hand dominance; the conventional cut-offs sit at +40 and -40.
func (g *handednessGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	var total int

	for _, t := range sess.Trials {
		score, err := strconv.Atoi(t.Response)
		if err != nil {
			continue
		}

		total += score
	}

	quotient := float64(total) / float64(2*len(handednessItems)) * 100

	sum.Metrics["laterality_quotient"] = quotient

	switch {
	case quotient >= handednessRightThreshold:
		sum.Metrics["dominance"] = 1
	case quotient <= handednessLeftThreshold:
		sum.Metrics["dominance"] = -1
	default:
		sum.Metrics["dominance"] = 0
	}

	return sum
}
