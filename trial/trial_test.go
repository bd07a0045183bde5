package trial

import (
	"testing"
	"time"
)

func TestClassifyExact(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		response string
		want     Outcome
	}{
		{
			name:     "matching response",
			expected: "left",
			response: "left",
			want:     OutcomeCorrect,
		},
		{
			name:     "wrong response",
			expected: "left",
			response: "right",
			want:     OutcomeIncorrect,
		},
		{
			name:     "missed deadline",
			expected: "left",
			response: "",
			want:     OutcomeTimeout,
		},
		{
			name:     "correct withhold",
			expected: "",
			response: "",
			want:     OutcomeCorrect,
		},
		{
			name:     "response on no-go",
			expected: "",
			response: "go",
			want:     OutcomeIncorrect,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyExact(
				Stimulus{Expected: tc.expected},
				tc.response,
			)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	trials := []Trial{
		{Outcome: OutcomeCorrect},
		{Outcome: OutcomeCorrect},
		{Outcome: OutcomeIncorrect},
		{Outcome: OutcomeTimeout},
	}

	got := Accuracy(trials)
	if got != 50 {
		t.Fatalf("got %.2f, want 50", got)
	}

	if Accuracy(nil) != 0 {
		t.Fatal("empty trial list should report zero accuracy")
	}
}

func TestMeanRTExcludesUnansweredAndIncorrect(t *testing.T) {
	trials := []Trial{
		{
			Outcome:      OutcomeCorrect,
			Response:     "left",
			ReactionTime: 400 * time.Millisecond,
		},
		{
			Outcome:      OutcomeCorrect,
			Response:     "right",
			ReactionTime: 600 * time.Millisecond,
		},
		// a correct withhold has no reaction time to average
		{Outcome: OutcomeCorrect, Response: ""},
		{
			Outcome:      OutcomeIncorrect,
			Response:     "left",
			ReactionTime: 5 * time.Second,
		},
		{
			Outcome:      OutcomeTimeout,
			Response:     "",
			ReactionTime: 2 * time.Second,
		},
	}

	got := MeanRT(trials)
	want := 500 * time.Millisecond

	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMeanRTByType(t *testing.T) {
	trials := []Trial{
		{
			Type:         "congruent",
			Outcome:      OutcomeCorrect,
			Response:     "red",
			ReactionTime: 300 * time.Millisecond,
		},
		{
			Type:         "incongruent",
			Outcome:      OutcomeCorrect,
			Response:     "blue",
			ReactionTime: 700 * time.Millisecond,
		},
		{
			Type:         "incongruent",
			Outcome:      OutcomeCorrect,
			Response:     "red",
			ReactionTime: 500 * time.Millisecond,
		},
	}

	if got := MeanRTByType(trials, "congruent"); got != 300*time.Millisecond {
		t.Fatalf("congruent: got %s, want 300ms", got)
	}

	if got := MeanRTByType(trials, "incongruent"); got != 600*time.Millisecond {
		t.Fatalf("incongruent: got %s, want 600ms", got)
	}

	if got := MeanRTByType(trials, "absent"); got != 0 {
		t.Fatalf("absent type: got %s, want 0", got)
	}
}

func TestSummarizeCounts(t *testing.T) {
	sess := &Session{
		GameID:  "stroop",
		Profile: "stroop",
		Trials: []Trial{
			{
				Outcome:      OutcomeCorrect,
				Response:     "red",
				ReactionTime: 500 * time.Millisecond,
			},
			{Outcome: OutcomeIncorrect, Response: "blue"},
			{Outcome: OutcomeTimeout},
		},
	}

	sum := Summarize(sess)

	if sum.TotalTrials != 3 {
		t.Fatalf("got %d total trials, want 3", sum.TotalTrials)
	}

	if sum.Correct != 1 || sum.Incorrect != 1 || sum.Timeouts != 1 {
		t.Fatalf(
			"got correct=%d incorrect=%d timeouts=%d, want 1 of each",
			sum.Correct, sum.Incorrect, sum.Timeouts,
		)
	}

	if sum.MeanRT != 500*time.Millisecond {
		t.Fatalf("got mean RT %s, want 500ms", sum.MeanRT)
	}
}

func TestFixedSequenceFollowsHistory(t *testing.T) {
	seq := FixedSequence([]Stimulus{
		{ID: "a"},
		{ID: "b"},
	})

	s, ok := seq.Next(nil)
	if !ok || s.ID != "a" {
		t.Fatalf("got %q ok=%v, want a", s.ID, ok)
	}

	s, ok = seq.Next([]Trial{{}})
	if !ok || s.ID != "b" {
		t.Fatalf("got %q ok=%v, want b", s.ID, ok)
	}

	_, ok = seq.Next([]Trial{{}, {}})
	if ok {
		t.Fatal("exhausted sequence should report ok=false")
	}
}
