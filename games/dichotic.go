package games

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	trialAttendLeft  = "attend-left"
	trialAttendRight = "attend-right"
)

// Fixed per-ear vocabularies. One word is drawn independently from each
// list per trial.
var (
	dichoticLeftWords  = []string{"boat", "lamp", "tree", "coin", "desk", "bird"}
	dichoticRightWords = []string{"rope", "milk", "sand", "fork", "wall", "ring"}
)

// Tone frequencies substituted per word when speech synthesis is
// unavailable. Each word keeps a distinct pitch so trials remain
// discriminable.
const (
	dichoticLeftBaseFreq  = 320.0
	dichoticRightBaseFreq = 540.0
	dichoticFreqStep      = 45.0
)

var dichoticPromptStyle = lipgloss.NewStyle().Bold(true)

func dichoticProfile() trial.Profile {
	return trial.Profile{
		ID:   "dichotic",
		Game: Dichotic,
		Name: "Dichotic Listening",
		Instructions: []string{
			"Two different words play at the same time, one in each ear. Wear headphones.",
			"Before each trial you are told which ear to attend to. Afterwards, choose the word you heard in THAT ear.",
			"If speech playback is unavailable, paired tones are substituted; pick the side you attended to.",
		},
		Controls: []trial.Option{
			{Key: "1", Label: "first word", Value: "1"},
			{Key: "2", Label: "second word", Value: "2"},
		},
		PracticeTrials:  4,
		TestTrials:      24,
		ResponseTimeout: 4000 * time.Millisecond,
		FeedbackDelay:   500 * time.Millisecond,
		ReadyDelay:      1000 * time.Millisecond,
		AudioCheck:      true,
		ShowFeedback:    true,
	}
}

// DichoticSequence generates n trials, each pairing an independently drawn
// left-ear and right-ear word. The attended ear alternates so both ears
// are probed equally.
func DichoticSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	for i := 0; i < n; i++ {
		li := r.Intn(len(dichoticLeftWords))
		ri := r.Intn(len(dichoticRightWords))

		left := dichoticLeftWords[li]
		right := dichoticRightWords[ri]

		trialType := trialAttendLeft
		expected := left
		ear := "LEFT"

		if i%2 == 1 {
			trialType = trialAttendRight
			expected = right
			ear = "RIGHT"
		}

		options := []trial.Option{
			{Key: "1", Label: left, Value: left},
			{Key: "2", Label: right, Value: right},
		}
		shuffle(options, r)

		for j := range options {
			options[j].Key = fmt.Sprintf("%d", j+1)
		}

		stimuli = append(stimuli, trial.Stimulus{
			ID:       left + "|" + right,
			Display:  dichoticPromptStyle.Render("🎧 attend " + ear),
			Prompt:   "which word did you hear?",
			Expected: expected,
			Type:     trialType,
			Options:  options,
			Audio: &trial.AudioCue{
				Left:      left,
				Right:     right,
				LeftFreq:  dichoticLeftBaseFreq + float64(li)*dichoticFreqStep,
				RightFreq: dichoticRightBaseFreq + float64(ri)*dichoticFreqStep,
			},
		})
	}

	return stimuli
}

type dichoticGame struct {
	prof trial.Profile
}

func newDichotic(p trial.Profile) trial.Game {
	return &dichoticGame{prof: p}
}

func (g *dichoticGame) Profile() trial.Profile { return g.prof }

func (g *dichoticGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(DichoticSequence(n, r))
}

func (g *dichoticGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, response)
}

func (g *dichoticGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	leftAcc := accuracyByType(sess.Trials, trialAttendLeft)
	rightAcc := accuracyByType(sess.Trials, trialAttendRight)

	sum.Metrics["left_ear_accuracy"] = leftAcc
	sum.Metrics["right_ear_accuracy"] = rightAcc
	sum.Metrics["ear_advantage"] = rightAcc - leftAcc

	return sum
}

func accuracyByType(trials []trial.Trial, trialType string) float64 {
	var filtered []trial.Trial

	for _, t := range trials {
		if t.Type == trialType {
			filtered = append(filtered, t)
		}
	}

	return trial.Accuracy(filtered)
}
