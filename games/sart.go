package games

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

// The withhold digit of the sustained attention to response task.
const sartNoGoDigit = 3

const (
	trialGo   = "go"
	trialNoGo = "no-go"
)

var sartDigitStyle = lipgloss.NewStyle().Bold(true)

func sartProfile() trial.Profile {
	return trial.Profile{
		ID:   "sart",
		Game: SART,
		Name: "Sustained Attention to Response",
		Instructions: []string{
			"Digits from 1 to 9 appear one at a time.",
			"Press SPACE for every digit EXCEPT 3. When a 3 appears, withhold your response entirely.",
			"The digits come quickly. Keep pace without losing accuracy.",
		},
		Controls: []trial.Option{
			{Key: "space", Label: "respond", Value: "go"},
		},
		PracticeTrials:  9,
		TestTrials:      90,
		ResponseTimeout: 1150 * time.Millisecond,
		ReadyDelay:      400 * time.Millisecond,
		PracticeTarget:  60,
	}
}

// SARTSequence generates n trials drawing each digit 1-9 in equal measure
// before shuffling, so the no-go digit occupies exactly its share of the
// sequence.
func SARTSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	for i := 0; i < n; i++ {
		digit := i%9 + 1

		expected := "go"
		trialType := trialGo

		if digit == sartNoGoDigit {
			expected = ""
			trialType = trialNoGo
		}

		text := strconv.Itoa(digit)

		stimuli = append(stimuli, trial.Stimulus{
			ID:       text,
			Display:  sartDigitStyle.Render(text),
			Expected: expected,
			Type:     trialType,
		})
	}

	shuffle(stimuli, r)

	return stimuli
}

type sartGame struct {
	prof trial.Profile
}

func newSART(p trial.Profile) trial.Game {
	return &sartGame{prof: p}
}

func (g *sartGame) Profile() trial.Profile { return g.prof }

func (g *sartGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(SARTSequence(n, r))
}

func (g *sartGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *sartGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	var goTrials, noGoTrials, commissions, omissions int

	for _, t := range sess.Trials {
		switch t.Type {
		case trialGo:
			goTrials++

			// failing to respond to a go digit
			if t.Outcome == trial.OutcomeTimeout {
				omissions++
			}
		case trialNoGo:
			noGoTrials++

			// responding to the withhold digit
			if t.Response != "" && !t.Correct() {
				commissions++
			}
		}
	}

	sum.Metrics["commission_errors"] = float64(commissions)
	sum.Metrics["omission_errors"] = float64(omissions)

	if noGoTrials > 0 {
		sum.Metrics["commission_rate"] = float64(commissions) /
			float64(noGoTrials)
	}

	if goTrials > 0 {
		sum.Metrics["omission_rate"] = float64(omissions) /
			float64(goTrials)
	}

	return sum
}
