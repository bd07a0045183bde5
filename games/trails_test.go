package games

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/cogbench/cogbench/trial"
)

func TestTrailsTargets(t *testing.T) {
	a := trailsTargets(trailsPartA, 5)
	if got, want := strings.Join(a, " "), "1 2 3 4 5"; got != want {
		t.Errorf("part A targets = %q, want %q", got, want)
	}

	b := trailsTargets(trailsPartB, 7)
	if got, want := strings.Join(b, " "), "1 A 2 B 3 C 4"; got != want {
		t.Errorf("part B targets = %q, want %q", got, want)
	}
}

func TestTrailsSequencerAdvancesOnCorrectOnly(t *testing.T) {
	q := newTrailsSequencer(2*trailsNodesPerPart, rand.New(rand.NewSource(6)))

	s, ok := q.Next(nil)
	if !ok {
		t.Fatal("no opening stimulus")
	}

	if s.Expected != "1" || s.Type != trailsPartA {
		t.Fatalf("opening stimulus = %q in part %q, want 1 in part A", s.Expected, s.Type)
	}

	// an error repeats the same target
	history := []trial.Trial{
		{Type: trailsPartA, Outcome: trial.OutcomeIncorrect},
	}

	s, _ = q.Next(history)
	if s.Expected != "1" {
		t.Errorf("target after error = %q, want 1", s.Expected)
	}

	history = append(history, trial.Trial{Type: trailsPartA, Outcome: trial.OutcomeCorrect})

	s, _ = q.Next(history)
	if s.Expected != "2" {
		t.Errorf("target after correct entry = %q, want 2", s.Expected)
	}
}

func TestTrailsSequencerSwitchesParts(t *testing.T) {
	q := newTrailsSequencer(2*trailsNodesPerPart, rand.New(rand.NewSource(6)))

	var history []trial.Trial

	for i := 0; i < trailsNodesPerPart; i++ {
		s, ok := q.Next(history)
		if !ok {
			t.Fatalf("sequencer stopped during part A at node %d", i+1)
		}

		if s.Type != trailsPartA {
			t.Fatalf("node %d in part %q, want part A", i+1, s.Type)
		}

		history = append(history, trial.Trial{
			Type:    s.Type,
			Outcome: trial.OutcomeCorrect,
		})
	}

	s, ok := q.Next(history)
	if !ok {
		t.Fatal("sequencer stopped before part B")
	}

	if s.Type != trailsPartB || s.Expected != "1" {
		t.Errorf("part B opens with %q in part %q, want 1 in part B", s.Expected, s.Type)
	}

	for i := 0; i < trailsNodesPerPart; i++ {
		s, ok := q.Next(history)
		if !ok {
			t.Fatalf("sequencer stopped during part B at node %d", i+1)
		}

		history = append(history, trial.Trial{
			Type:    s.Type,
			Outcome: trial.OutcomeCorrect,
		})
	}

	if _, ok := q.Next(history); ok {
		t.Error("sequencer continued after both parts were complete")
	}
}

func TestTrailsPracticeRunsShortenedPartA(t *testing.T) {
	q := newTrailsSequencer(5, rand.New(rand.NewSource(6)))

	var history []trial.Trial

	for {
		s, ok := q.Next(history)
		if !ok {
			break
		}

		if s.Type != trailsPartA {
			t.Fatalf("practice stimulus in part %q, want part A", s.Type)
		}

		history = append(history, trial.Trial{
			Type:    s.Type,
			Outcome: trial.OutcomeCorrect,
		})
	}

	if len(history) != 5 {
		t.Errorf("practice ran %d nodes, want 5", len(history))
	}
}

func TestTrailsSummaryMetrics(t *testing.T) {
	g := newTrails(trailsProfile())

	sess := &trial.Session{
		Trials: []trial.Trial{
			{Type: trailsPartA, Outcome: trial.OutcomeCorrect, ReactionTime: time.Second},
			{Type: trailsPartA, Outcome: trial.OutcomeIncorrect, ReactionTime: time.Second},
			{Type: trailsPartA, Outcome: trial.OutcomeCorrect, ReactionTime: time.Second},
			{Type: trailsPartB, Outcome: trial.OutcomeCorrect, ReactionTime: 3 * time.Second},
			{Type: trailsPartB, Outcome: trial.OutcomeCorrect, ReactionTime: 3 * time.Second},
		},
	}

	sum := g.Summarize(sess)

	if got := sum.Metrics["part_a_time_ms"]; got != 3000 {
		t.Errorf("part_a_time_ms = %v, want 3000", got)
	}

	if got := sum.Metrics["part_b_time_ms"]; got != 6000 {
		t.Errorf("part_b_time_ms = %v, want 6000", got)
	}

	if got := sum.Metrics["part_a_errors"]; got != 1 {
		t.Errorf("part_a_errors = %v, want 1", got)
	}

	if got := sum.Metrics["part_b_errors"]; got != 0 {
		t.Errorf("part_b_errors = %v, want 0", got)
	}

	if got := sum.Metrics["b_minus_a_ms"]; got != 3000 {
		t.Errorf("b_minus_a_ms = %v, want 3000", got)
	}

	if got := sum.Metrics["b_to_a_ratio"]; got != 2 {
		t.Errorf("b_to_a_ratio = %v, want 2", got)
	}
}
