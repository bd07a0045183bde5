package games

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/cogbench/cogbench/trial"
)

func TestSpanDigitsNoImmediateRepeats(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for span := 3; span <= 14; span++ {
		digits := spanDigits(span, r)
		if len(digits) != span {
			t.Fatalf("spanDigits(%d) length = %d", span, len(digits))
		}

		for i := 1; i < len(digits); i++ {
			if digits[i] == digits[i-1] {
				t.Errorf("spanDigits(%d) = %q has adjacent repeat at %d", span, digits, i)
			}
		}
	}
}

func TestDigitSpanSequencerGrowsOnCorrect(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	q := &digitSpanSequencer{cap: 14, initial: digitSpanInitial, rng: r}

	var history []trial.Trial

	for want := digitSpanInitial; want < digitSpanInitial+4; want++ {
		s, ok := q.Next(history)
		if !ok {
			t.Fatalf("sequencer stopped at span %d", want)
		}

		if len(s.Expected) != want {
			t.Fatalf("span = %d, want %d", len(s.Expected), want)
		}

		if s.Type != strconv.Itoa(want) {
			t.Errorf("trial type = %q, want %q", s.Type, strconv.Itoa(want))
		}

		history = append(history, trial.Trial{
			Type:    s.Type,
			Outcome: trial.OutcomeCorrect,
		})
	}
}

func TestDigitSpanSequencerStopsAfterTwoFailures(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	q := &digitSpanSequencer{cap: 14, initial: digitSpanInitial, rng: r}

	history := []trial.Trial{
		{Type: "3", Outcome: trial.OutcomeCorrect},
		{Type: "4", Outcome: trial.OutcomeIncorrect},
		{Type: "4", Outcome: trial.OutcomeTimeout},
	}

	if _, ok := q.Next(history); ok {
		t.Error("sequencer continued after two consecutive failures")
	}

	// a correct recall between failures resets the streak
	history[1].Outcome = trial.OutcomeCorrect

	if _, ok := q.Next(history); !ok {
		t.Error("sequencer stopped after a single failure")
	}
}

func TestSummarizeSpanHighest(t *testing.T) {
	sess := &trial.Session{
		Trials: []trial.Trial{
			{Type: "3", Outcome: trial.OutcomeCorrect},
			{Type: "4", Outcome: trial.OutcomeCorrect},
			{Type: "5", Outcome: trial.OutcomeIncorrect},
			{Type: "5", Outcome: trial.OutcomeIncorrect},
		},
	}

	sum := summarizeSpan(sess, digitSpanInitial)
	if got := sum.Metrics["highest_span"]; got != 4 {
		t.Errorf("highest_span = %v, want 4", got)
	}

	// no correct recalls at all falls below the starting span
	empty := &trial.Session{
		Trials: []trial.Trial{
			{Type: "3", Outcome: trial.OutcomeIncorrect},
			{Type: "3", Outcome: trial.OutcomeTimeout},
		},
	}

	sum = summarizeSpan(empty, digitSpanInitial)
	if got := sum.Metrics["highest_span"]; got != 2 {
		t.Errorf("highest_span with no correct recalls = %v, want 2", got)
	}
}

func TestCorsiSequenceDistinctBlocks(t *testing.T) {
	r := rand.New(rand.NewSource(5))

	seq := corsiSequence(6, r)
	if len(seq) != 6 {
		t.Fatalf("sequence length = %d, want 6", len(seq))
	}

	seen := make(map[string]bool)

	for _, cell := range seq {
		if seen[cell] {
			t.Errorf("block %s repeated in sequence %v", cell, seq)
		}

		seen[cell] = true

		if !strings.Contains("123456789", cell) {
			t.Errorf("block %q is not a keypad position", cell)
		}
	}

	// the span cannot exceed the grid
	if got := len(corsiSequence(12, r)); got != len(corsiCells) {
		t.Errorf("oversized span produced %d blocks, want %d", got, len(corsiCells))
	}
}

func TestCorsiClassifyTrimsInput(t *testing.T) {
	g := newCorsi(corsiProfile())

	s := trial.Stimulus{Expected: "781"}

	if got := g.Classify(s, " 781 ", 0); got != trial.OutcomeCorrect {
		t.Errorf("Classify with surrounding whitespace = %v, want correct", got)
	}

	if got := g.Classify(s, "718", 0); got != trial.OutcomeIncorrect {
		t.Errorf("Classify with reordered blocks = %v, want incorrect", got)
	}
}
