package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/cogbench/cogbench/trial"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "cogbench.db"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func sampleResult(game trial.GameID, start time.Time) *Result {
	return &Result{
		Session: trial.Session{
			ID:        uuid.New(),
			GameID:    game,
			Profile:   string(game),
			StartTime: start,
			EndTime:   start.Add(5 * time.Minute),
			Completed: true,
			Trials: []trial.Trial{
				{
					Index:        0,
					Stimulus:     "x",
					Expected:     "x",
					Response:     "x",
					Outcome:      trial.OutcomeCorrect,
					ReactionTime: 450 * time.Millisecond,
				},
			},
		},
		Summary: trial.Summary{
			GameID:      game,
			StartTime:   start,
			TotalTrials: 1,
			Correct:     1,
			Accuracy:    100,
			MeanRT:      450 * time.Millisecond,
			Metrics:     map[string]float64{"interference_ms": 80},
		},
	}
}

func TestSaveAndGetResults(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	games := []trial.GameID{"stroop", "flanker", "stroop"}

	var saved []Result

	for i, g := range games {
		res := sampleResult(g, base.Add(time.Duration(i)*time.Hour))

		if err := c.SaveResult(res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}

		saved = append(saved, *res)
	}

	got, err := c.GetResults(base, base.Add(3*time.Hour), nil)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("GetResults returned %d results, want 3", len(got))
	}

	// results come back in start time order
	for i := 1; i < len(got); i++ {
		if got[i].Session.StartTime.Before(got[i-1].Session.StartTime) {
			t.Error("results not ordered by start time")
		}
	}

	if diff := cmp.Diff(saved[0], got[0]); diff != "" {
		t.Errorf("round trip mismatch (-saved +got):\n%s", diff)
	}
}

func TestGetResultsTimeFilter(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		res := sampleResult("sart", base.AddDate(0, 0, i))

		if err := c.SaveResult(res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	got, err := c.GetResults(base.AddDate(0, 0, 1), base.AddDate(0, 0, 2), nil)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("GetResults returned %d results, want 2", len(got))
	}
}

func TestGetResultsGameFilter(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, g := range []trial.GameID{"stroop", "flanker", "simon", "stroop"} {
		res := sampleResult(g, base.Add(time.Duration(i)*time.Hour))

		if err := c.SaveResult(res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	got, err := c.GetResults(
		base, base.Add(4*time.Hour), []trial.GameID{"stroop", "simon"},
	)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("filtered GetResults returned %d results, want 3", len(got))
	}

	for _, res := range got {
		if res.Session.GameID == "flanker" {
			t.Error("filtered results include an excluded game")
		}
	}
}

func TestDeleteResults(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	var saved []Result

	for i := 0; i < 3; i++ {
		res := sampleResult("corsi", base.Add(time.Duration(i)*time.Hour))

		if err := c.SaveResult(res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}

		saved = append(saved, *res)
	}

	if err := c.DeleteResults(saved[:2]); err != nil {
		t.Fatalf("DeleteResults: %v", err)
	}

	got, err := c.GetResults(base, base.Add(3*time.Hour), nil)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("%d results remain after delete, want 1", len(got))
	}

	if !got[0].Session.StartTime.Equal(saved[2].Session.StartTime) {
		t.Error("wrong result survived the delete")
	}
}
