package trial

import (
	"math/rand"
	"testing"
	"time"
)

// fakeGame is a minimal deterministic game for exercising the runner.
type fakeGame struct {
	prof Profile
}

func (g *fakeGame) Profile() Profile { return g.prof }

func (g *fakeGame) Sequence(n int, r *rand.Rand) Sequencer {
	stimuli := make([]Stimulus, n)

	for i := range stimuli {
		stimuli[i] = Stimulus{
			ID:       "s",
			Expected: "x",
		}
	}

	return FixedSequence(stimuli)
}

func (g *fakeGame) Classify(
	s Stimulus,
	response string,
	rt time.Duration,
) Outcome {
	return ClassifyExact(s, response)
}

func (g *fakeGame) Summarize(sess *Session) Summary {
	return Summarize(sess)
}

func testProfile() Profile {
	return Profile{
		ID:              "fake",
		Game:            "fake",
		Name:            "Fake",
		Instructions:    []string{"page one", "page two"},
		PracticeTrials:  2,
		TestTrials:      3,
		ResponseTimeout: time.Second,
		PracticeTarget:  60,
	}
}

func newTestRunner(prof Profile) *Runner {
	return NewRunner(
		&fakeGame{prof: prof},
		WithRand(rand.New(rand.NewSource(1))),
	)
}

// runBlock resolves every trial of the active phase with the given
// responses, returning the time after the final resolution.
func runBlock(t *testing.T, r *Runner, now time.Time, responses []string) time.Time {
	t.Helper()

	for _, resp := range responses {
		_, ok := r.StartTrial(now)
		if !ok {
			t.Fatalf("phase ended before %d responses", len(responses))
		}

		now = now.Add(300 * time.Millisecond)

		if resp == "" {
			if !r.ExpireTrial(r.Epoch(), now) {
				t.Fatal("expiry was rejected")
			}
		} else if !r.SubmitResponse(resp, now) {
			t.Fatal("response was rejected")
		}
	}

	// the phase ends on the next pull
	if _, ok := r.StartTrial(now); ok {
		t.Fatal("expected the phase to end")
	}

	return now
}

func TestRunnerFullSession(t *testing.T) {
	r := newTestRunner(testProfile())
	now := time.Unix(0, 0)

	if r.Phase() != PhaseInstructions {
		t.Fatalf("got phase %s, want instructions", r.Phase())
	}

	r.NextPage(now)

	if r.Phase() != PhaseInstructions || r.Page() != 1 {
		t.Fatalf("got phase %s page %d, want instructions page 1",
			r.Phase(), r.Page())
	}

	r.NextPage(now)

	if r.Phase() != PhasePractice {
		t.Fatalf("got phase %s, want practice", r.Phase())
	}

	now = runBlock(t, r, now, []string{"x", "x"})

	if r.Phase() != PhaseInterlude {
		t.Fatalf("got phase %s, want interlude", r.Phase())
	}

	if r.PracticeAccuracy() != 100 {
		t.Fatalf("got practice accuracy %.1f, want 100",
			r.PracticeAccuracy())
	}

	if r.PracticeBelowTarget() {
		t.Fatal("perfect practice should not be below target")
	}

	r.BeginTest(now)

	if r.Phase() != PhaseTest {
		t.Fatalf("got phase %s, want test", r.Phase())
	}

	runBlock(t, r, now, []string{"x", "wrong", ""})

	if r.Phase() != PhaseComplete {
		t.Fatalf("got phase %s, want complete", r.Phase())
	}

	sum, ok := r.Summary()
	if !ok {
		t.Fatal("completed session must produce a summary")
	}

	if sum.TotalTrials != 3 || sum.Correct != 1 || sum.Incorrect != 1 ||
		sum.Timeouts != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	if !r.Session().Completed {
		t.Fatal("session should be marked completed")
	}

	// practice trials must not leak into the scored set
	for _, tr := range r.Session().Trials {
		if tr.Practice {
			t.Fatal("scored trials must not be marked as practice")
		}
	}
}

func TestRunnerStaleTimerIgnored(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.PracticeTrials = 0

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)

	_, ok := r.StartTrial(now)
	if !ok {
		t.Fatal("expected a trial to start")
	}

	staleEpoch := r.Epoch()

	if !r.SubmitResponse("x", now.Add(200*time.Millisecond)) {
		t.Fatal("response was rejected")
	}

	// the expiry timer scheduled for the answered trial fires late
	if r.ExpireTrial(staleEpoch, now.Add(time.Second)) {
		t.Fatal("stale expiry must be dropped")
	}

	if got := len(r.Session().Trials); got != 1 {
		t.Fatalf("got %d recorded trials, want 1", got)
	}
}

func TestRunnerDuplicateResponseRejected(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.PracticeTrials = 0

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)

	_, _ = r.StartTrial(now)

	if !r.SubmitResponse("x", now) {
		t.Fatal("first response was rejected")
	}

	if r.SubmitResponse("x", now) {
		t.Fatal("second response must be rejected")
	}
}

func TestRunnerPracticeRetryOnlyOnce(t *testing.T) {
	r := newTestRunner(testProfile())
	now := time.Unix(0, 0)

	r.NextPage(now)
	r.NextPage(now)

	// fail both practice trials
	now = runBlock(t, r, now, []string{"wrong", "wrong"})

	if !r.PracticeBelowTarget() {
		t.Fatal("failed practice should be below target")
	}

	if !r.RetryPractice(now) {
		t.Fatal("first retry should be allowed")
	}

	if r.Phase() != PhasePractice {
		t.Fatalf("got phase %s, want practice", r.Phase())
	}

	now = runBlock(t, r, now, []string{"wrong", "wrong"})

	if r.RetryPractice(now) {
		t.Fatal("second retry must be refused")
	}
}

func TestRunnerAbortProducesNoSummary(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.PracticeTrials = 0

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)
	_, _ = r.StartTrial(now)
	_ = r.SubmitResponse("x", now)

	r.Abort()

	if !r.Aborted() {
		t.Fatal("runner should report aborted")
	}

	if _, ok := r.Summary(); ok {
		t.Fatal("aborted session must not produce a summary")
	}

	if r.Session() != nil {
		t.Fatal("aborted session must be discarded")
	}
}

func TestRunnerUntimedTrialHasNoDeadline(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.PracticeTrials = 0
	prof.ResponseTimeout = 0

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)

	deadline, ok := r.StartTrial(now)
	if !ok {
		t.Fatal("expected a trial to start")
	}

	if !deadline.IsZero() {
		t.Fatalf("untimed trial returned deadline %s", deadline)
	}

	if r.ExpireTrial(r.Epoch(), now.Add(time.Hour)) {
		t.Fatal("untimed trials must not expire")
	}
}

func TestRunnerAudioCheckPhase(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.AudioCheck = true

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)

	if r.Phase() != PhaseAudioCheck {
		t.Fatalf("got phase %s, want audio-check", r.Phase())
	}

	r.ConfirmAudio(now)

	if r.Phase() != PhasePractice {
		t.Fatalf("got phase %s, want practice", r.Phase())
	}
}

func TestRunnerFeedbackStep(t *testing.T) {
	prof := testProfile()
	prof.Instructions = []string{"go"}
	prof.PracticeTrials = 0
	prof.FeedbackDelay = 500 * time.Millisecond

	r := newTestRunner(prof)
	now := time.Unix(0, 0)

	r.NextPage(now)
	_, _ = r.StartTrial(now)
	_ = r.SubmitResponse("x", now)

	if r.Step() != StepFeedback {
		t.Fatalf("got step %s, want feedback", r.Step())
	}

	// input during feedback must not start or resolve anything
	if r.SubmitResponse("x", now) {
		t.Fatal("responses during feedback must be rejected")
	}

	r.AdvanceFeedback(now.Add(500 * time.Millisecond))

	if r.Step() != StepReady {
		t.Fatalf("got step %s, want ready", r.Step())
	}
}
