package games

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cogbench/cogbench/trial"
)

func TestSARTSequenceDigitDistribution(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	seq := SARTSequence(90, r)
	if len(seq) != 90 {
		t.Fatalf("sequence length = %d, want 90", len(seq))
	}

	counts := make(map[string]int)
	noGo := 0

	for _, s := range seq {
		counts[s.ID]++

		if s.Type == trialNoGo {
			noGo++

			if s.Expected != "" {
				t.Errorf("no-go stimulus %q has expected response %q", s.ID, s.Expected)
			}
		} else if s.Expected != "go" {
			t.Errorf("go stimulus %q has expected response %q", s.ID, s.Expected)
		}
	}

	for d := 1; d <= 9; d++ {
		key := string(rune('0' + d))
		if counts[key] != 10 {
			t.Errorf("digit %s appeared %d times, want 10", key, counts[key])
		}
	}

	if noGo != 10 {
		t.Errorf("no-go trials = %d, want 10", noGo)
	}
}

func TestSARTClassify(t *testing.T) {
	g := newSART(sartProfile())

	goStim := trial.Stimulus{ID: "7", Expected: "go", Type: trialGo}
	noGoStim := trial.Stimulus{ID: "3", Expected: "", Type: trialNoGo}

	cases := []struct {
		name     string
		stim     trial.Stimulus
		response string
		want     trial.Outcome
	}{
		{"press on go digit", goStim, "go", trial.OutcomeCorrect},
		{"miss on go digit", goStim, "", trial.OutcomeTimeout},
		{"withhold on no-go digit", noGoStim, "", trial.OutcomeCorrect},
		{"press on no-go digit", noGoStim, "go", trial.OutcomeIncorrect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Classify(tc.stim, tc.response, 400*time.Millisecond)
			if got != tc.want {
				t.Errorf("Classify() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSARTSummaryErrorRates(t *testing.T) {
	g := newSART(sartProfile())

	sess := &trial.Session{
		Trials: []trial.Trial{
			{Type: trialGo, Response: "go", Outcome: trial.OutcomeCorrect},
			{Type: trialGo, Response: "go", Outcome: trial.OutcomeCorrect},
			{Type: trialGo, Response: "go", Outcome: trial.OutcomeCorrect},
			{Type: trialGo, Outcome: trial.OutcomeTimeout},
			{Type: trialNoGo, Outcome: trial.OutcomeCorrect},
			{Type: trialNoGo, Response: "go", Outcome: trial.OutcomeIncorrect},
		},
	}

	sum := g.Summarize(sess)

	if got := sum.Metrics["commission_errors"]; got != 1 {
		t.Errorf("commission_errors = %v, want 1", got)
	}

	if got := sum.Metrics["omission_errors"]; got != 1 {
		t.Errorf("omission_errors = %v, want 1", got)
	}

	if got := sum.Metrics["commission_rate"]; got != 0.5 {
		t.Errorf("commission_rate = %v, want 0.5", got)
	}

	if got, want := sum.Metrics["omission_rate"], 0.25; got != want {
		t.Errorf("omission_rate = %v, want %v", got, want)
	}
}
