package games

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	nBackLevel = 2

	trialTarget    = "target"
	trialNonTarget = "non-target"
)

var nbackLetters = []string{"B", "C", "D", "F", "G", "H", "K", "M", "P", "T"}

var nbackLetterStyle = lipgloss.NewStyle().Bold(true)

func nbackProfile() trial.Profile {
	return trial.Profile{
		ID:   "nback",
		Game: NBack,
		Name: "2-Back Letters",
		Instructions: []string{
			"Letters appear one at a time.",
			"Press SPACE whenever the current letter matches the one shown TWO positions earlier.",
			"If it does not match, do nothing and wait for the next letter.",
		},
		Controls: []trial.Option{
			{Key: "space", Label: "match", Value: "match"},
		},
		PracticeTrials:  12,
		TestTrials:      60,
		ResponseTimeout: 2000 * time.Millisecond,
		ReadyDelay:      500 * time.Millisecond,
		PracticeTarget:  50,
	}
}

// NBackSequence generates a letter stream of length n in which roughly a
// third of the eligible positions repeat the letter shown nBackLevel steps
// earlier. Non-target positions are guaranteed not to match.
func NBackSequence(n int, r *rand.Rand) []trial.Stimulus {
	letters := make([]string, n)
	isTarget := make([]bool, n)

	for i := 0; i < n; i++ {
		if i >= nBackLevel && r.Intn(3) == 0 {
			letters[i] = letters[i-nBackLevel]
			isTarget[i] = true

			continue
		}

		letter := nbackLetters[r.Intn(len(nbackLetters))]

		if i >= nBackLevel {
			for letter == letters[i-nBackLevel] {
				letter = nbackLetters[r.Intn(len(nbackLetters))]
			}
		}

		letters[i] = letter
	}

	stimuli := make([]trial.Stimulus, 0, n)

	for i := 0; i < n; i++ {
		expected := ""
		trialType := trialNonTarget

		if isTarget[i] {
			expected = "match"
			trialType = trialTarget
		}

		stimuli = append(stimuli, trial.Stimulus{
			ID:       letters[i],
			Display:  nbackLetterStyle.Render(letters[i]),
			Expected: expected,
			Type:     trialType,
		})
	}

	return stimuli
}

type nbackGame struct {
	prof trial.Profile
}

func newNBack(p trial.Profile) trial.Game {
	return &nbackGame{prof: p}
}

func (g *nbackGame) Profile() trial.Profile { return g.prof }

func (g *nbackGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(NBackSequence(n, r))
}

func (g *nbackGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *nbackGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	var hits, misses, falseAlarms int

	for _, t := range sess.Trials {
		switch t.Type {
		case trialTarget:
			if t.Correct() {
				hits++
			} else {
				misses++
			}
		case trialNonTarget:
			if t.Response != "" {
				falseAlarms++
			}
		}
	}

	sum.Metrics["hits"] = float64(hits)
	sum.Metrics["misses"] = float64(misses)
	sum.Metrics["false_alarms"] = float64(falseAlarms)

	return sum
}
