package trial

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Runner drives one game session through its phases. It owns no timers and
// performs no I/O: callers inject the current time into every transition and
// schedule delays themselves, which keeps the machine deterministic under
// test. Every transition bumps an epoch counter; timer callbacks present the
// epoch they were scheduled against and stale callbacks are dropped, so a
// pending timeout can never fire into a later trial.
type Runner struct {
	game Game
	prof Profile
	rng  *rand.Rand

	phase Phase
	step  Step
	page  int
	epoch int

	seq        Sequencer
	current    Stimulus
	hasCurrent bool
	onset      time.Time

	sess            *Session
	practice        []Trial
	practiceRetried bool
	summary         *Summary
	aborted         bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRand sets the random source used for stimulus generation. Tests pass
// a seeded source for reproducible sequences.
func WithRand(r *rand.Rand) RunnerOption {
	return func(ru *Runner) {
		ru.rng = r
	}
}

// NewRunner initialises a runner in the instructions phase.
func NewRunner(game Game, opts ...RunnerOption) *Runner {
	r := &Runner{
		game:  game,
		prof:  game.Profile(),
		phase: PhaseInstructions,
		step:  StepReady,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return r
}

func (r *Runner) Phase() Phase     { return r.phase }
func (r *Runner) Step() Step       { return r.step }
func (r *Runner) Epoch() int       { return r.epoch }
func (r *Runner) Profile() Profile { return r.prof }
func (r *Runner) Game() Game       { return r.game }

// Session returns the scored session, which exists only once the test
// phase has begun.
func (r *Runner) Session() *Session { return r.sess }

// Current returns the stimulus awaiting a response, if any.
func (r *Runner) Current() (Stimulus, bool) {
	return r.current, r.hasCurrent
}

// Page returns the current instruction page index.
func (r *Runner) Page() int { return r.page }

// bump invalidates any timer scheduled against the previous state.
func (r *Runner) bump() {
	r.epoch++
}

// NextPage advances instruction paging; past the final page it moves the
// session into the first running phase.
func (r *Runner) NextPage(now time.Time) {
	if r.phase != PhaseInstructions {
		return
	}

	if r.page < len(r.prof.Instructions)-1 {
		r.page++
		return
	}

	if r.prof.AudioCheck {
		r.phase = PhaseAudioCheck
		r.bump()

		return
	}

	r.beginPractice(now)
}

// PrevPage pages instructions backwards.
func (r *Runner) PrevPage() {
	if r.phase == PhaseInstructions && r.page > 0 {
		r.page--
	}
}

// ConfirmAudio acknowledges the audio check and starts the session proper.
func (r *Runner) ConfirmAudio(now time.Time) {
	if r.phase != PhaseAudioCheck {
		return
	}

	r.beginPractice(now)
}

func (r *Runner) beginPractice(now time.Time) {
	if r.prof.PracticeTrials <= 0 {
		r.beginTest(now)
		return
	}

	r.phase = PhasePractice
	r.step = StepReady
	r.practice = nil
	r.seq = r.game.Sequence(r.prof.PracticeTrials, r.rng)
	r.hasCurrent = false
	r.bump()
}

func (r *Runner) beginTest(now time.Time) {
	r.phase = PhaseTest
	r.step = StepReady
	r.sess = &Session{
		ID:        uuid.New(),
		GameID:    r.prof.Game,
		Profile:   r.prof.ID,
		StartTime: now,
		Practice:  r.practice,
	}
	r.seq = r.game.Sequence(r.prof.TestTrials, r.rng)
	r.hasCurrent = false
	r.bump()
}

// PracticeAccuracy reports accuracy over the recorded practice trials.
func (r *Runner) PracticeAccuracy() float64 {
	return Accuracy(r.practice)
}

// PracticeBelowTarget reports whether practice performance warrants
// offering a retry.
func (r *Runner) PracticeBelowTarget() bool {
	return r.prof.PracticeTarget > 0 &&
		r.PracticeAccuracy() < r.prof.PracticeTarget
}

// RetryPractice restarts the practice block. Only a single retry is
// allowed per session.
func (r *Runner) RetryPractice(now time.Time) bool {
	if r.phase != PhaseInterlude || r.practiceRetried {
		return false
	}

	r.practiceRetried = true
	r.beginPractice(now)

	return true
}

// BeginTest leaves the interlude and starts the scored block.
func (r *Runner) BeginTest(now time.Time) {
	if r.phase != PhaseInterlude {
		return
	}

	r.beginTest(now)
}

func (r *Runner) history() []Trial {
	if r.phase == PhaseTest {
		return r.sess.Trials
	}

	return r.practice
}

// StartTrial pulls the next stimulus and opens the response window. It
// returns the response deadline, or a zero time for untimed tasks. ok is
// false when the current phase has ended instead of a trial starting.
func (r *Runner) StartTrial(now time.Time) (deadline time.Time, ok bool) {
	if r.step != StepReady ||
		(r.phase != PhasePractice && r.phase != PhaseTest) {
		return time.Time{}, false
	}

	s, more := r.seq.Next(r.history())
	if !more {
		r.endPhase(now)
		return time.Time{}, false
	}

	r.current = s
	r.hasCurrent = true
	r.onset = now
	r.step = StepStimulus
	r.bump()

	if r.prof.Untimed() {
		return time.Time{}, true
	}

	return now.Add(r.prof.ResponseTimeout), true
}

// SubmitResponse resolves the pending stimulus with the given response
// token. It is a no-op outside the awaiting-response step, which guards
// against duplicate and late input.
func (r *Runner) SubmitResponse(response string, now time.Time) bool {
	if r.step != StepStimulus || !r.hasCurrent || response == "" {
		return false
	}

	rt := now.Sub(r.onset)
	outcome := r.game.Classify(r.current, response, rt)

	r.record(response, outcome, rt, now)

	return true
}

// ExpireTrial resolves the pending stimulus as unanswered. The caller
// passes the epoch its timer was scheduled against; timers belonging to an
// earlier state are ignored.
func (r *Runner) ExpireTrial(epoch int, now time.Time) bool {
	if epoch != r.epoch || r.step != StepStimulus || !r.hasCurrent ||
		r.prof.Untimed() {
		return false
	}

	outcome := r.game.Classify(r.current, "", r.prof.ResponseTimeout)

	// A correct withhold carries no reaction time; a true timeout is
	// recorded at the full response window.
	rt := r.prof.ResponseTimeout
	if outcome == OutcomeCorrect {
		rt = 0
	}

	r.record("", outcome, rt, now)

	return true
}

func (r *Runner) record(
	response string,
	outcome Outcome,
	rt time.Duration,
	now time.Time,
) {
	t := Trial{
		Index:        len(r.history()),
		Practice:     r.phase == PhasePractice,
		Stimulus:     r.current.ID,
		Type:         r.current.Type,
		Expected:     r.current.Expected,
		Response:     response,
		Outcome:      outcome,
		ReactionTime: rt,
		PresentedAt:  r.onset,
	}

	if r.phase == PhaseTest {
		r.sess.Trials = append(r.sess.Trials, t)
	} else {
		r.practice = append(r.practice, t)
	}

	r.hasCurrent = false

	if r.prof.FeedbackDelay > 0 {
		r.step = StepFeedback
	} else {
		r.step = StepReady
	}

	r.bump()
}

// Recorded returns the number of trials recorded in the active phase.
func (r *Runner) Recorded() int {
	return len(r.history())
}

// LastTrial returns the most recently recorded trial of the active phase.
func (r *Runner) LastTrial() (Trial, bool) {
	h := r.history()
	if len(h) == 0 {
		return Trial{}, false
	}

	return h[len(h)-1], true
}

// AdvanceFeedback closes the feedback display and readies the next trial.
func (r *Runner) AdvanceFeedback(now time.Time) {
	if r.step != StepFeedback {
		return
	}

	r.step = StepReady
	r.bump()
}

func (r *Runner) endPhase(now time.Time) {
	switch r.phase {
	case PhasePractice:
		r.phase = PhaseInterlude
		r.step = StepReady
		r.bump()
	case PhaseTest:
		r.sess.EndTime = now
		r.sess.Completed = true

		sum := r.game.Summarize(r.sess)
		r.summary = &sum

		r.phase = PhaseComplete
		r.step = StepReady
		r.bump()
	}
}

// Abort discards the session immediately. No summary is produced and
// nothing is persisted.
func (r *Runner) Abort() {
	r.aborted = true
	r.summary = nil
	r.sess = nil
	r.hasCurrent = false
	r.phase = PhaseComplete
	r.bump()
}

// Aborted reports whether the session was abandoned before completion.
func (r *Runner) Aborted() bool { return r.aborted }

// Summary returns the completed session's aggregate. ok is false until the
// final scored trial has been resolved, and permanently false for aborted
// sessions.
func (r *Runner) Summary() (Summary, bool) {
	if r.summary == nil {
		return Summary{}, false
	}

	return *r.summary, true
}
