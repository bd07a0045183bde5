// Package trial implements the state machine that drives a cognitive task
// through its phases and records per-trial performance.
package trial

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GameID identifies a cognitive task.
type GameID string

// Phase represents a stage in a game session. Transitions are forward-only
// except for instruction paging and a single optional practice retry.
type Phase string

const (
	PhaseInstructions Phase = "instructions"
	PhaseAudioCheck   Phase = "audio-check"
	PhasePractice     Phase = "practice"
	PhaseInterlude    Phase = "interlude"
	PhaseTest         Phase = "test"
	PhaseComplete     Phase = "complete"
)

// Step is the position within the per-trial sub-cycle.
type Step string

const (
	StepReady    Step = "ready"
	StepStimulus Step = "stimulus"
	StepFeedback Step = "feedback"
)

// Outcome classifies a resolved trial. A timeout is distinct from an
// incorrect response.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeTimeout   Outcome = "timeout"
)

// Option is a selectable response mapped to a key press.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// AudioCue instructs the player frontend to present one word to each ear
// simultaneously. The tone frequencies are used when speech synthesis is
// unavailable.
type AudioCue struct {
	Left      string  `json:"left"`
	Right     string  `json:"right"`
	LeftFreq  float64 `json:"left_freq"`
	RightFreq float64 `json:"right_freq"`
}

// Stimulus is one generated trial presentation.
type Stimulus struct {
	// ID is a compact descriptor recorded with the trial, e.g. "GREEN/red".
	ID string
	// Display is the rendered stimulus content, possibly multi-line.
	Display string
	// Prompt is a short hint shown alongside the stimulus.
	Prompt string
	// Expected is the correct response token. Empty means the correct
	// response is to withhold input (no-go).
	Expected string
	// Type tags the trial category, e.g. "congruent" or "no-go".
	Type string
	// Options lists the selectable responses, when the task is
	// choice-driven. Empty when responses come from the game's key map.
	Options []Option
	// TypedInput marks stimuli answered with a typed string terminated by
	// enter rather than a single key press.
	TypedInput bool
	// Reveal hides the display after this duration, for recall tasks
	// where the stimulus must not remain visible while responding. Zero
	// keeps the display up for the whole response window.
	Reveal time.Duration
	// Audio is set for dichotic listening trials.
	Audio *AudioCue
}

// Trial is one stimulus presentation and its resolution. Records are
// immutable once appended to a session.
type Trial struct {
	Index        int           `json:"index"`
	Practice     bool          `json:"practice"`
	Stimulus     string        `json:"stimulus"`
	Type         string        `json:"type"`
	Expected     string        `json:"expected"`
	Response     string        `json:"response"`
	Outcome      Outcome       `json:"outcome"`
	ReactionTime time.Duration `json:"reaction_time"`
	PresentedAt  time.Time     `json:"presented_at"`
}

// Correct reports whether the trial was resolved correctly.
func (t Trial) Correct() bool {
	return t.Outcome == OutcomeCorrect
}

// Session is one run of one game. It is discarded without persistence when
// the player exits before completion.
type Session struct {
	ID        uuid.UUID `json:"id"`
	GameID    GameID    `json:"game_id"`
	Profile   string    `json:"profile"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Trials    []Trial   `json:"trials"`
	Practice  []Trial   `json:"practice"`
	Completed bool      `json:"completed"`
}

// Summary is the read-only aggregate computed once at session completion.
type Summary struct {
	SessionID   uuid.UUID          `json:"session_id"`
	GameID      GameID             `json:"game_id"`
	Profile     string             `json:"profile"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	TotalTrials int                `json:"total_trials"`
	Correct     int                `json:"correct"`
	Incorrect   int                `json:"incorrect"`
	Timeouts    int                `json:"timeouts"`
	Accuracy    float64            `json:"accuracy"`
	MeanRT      time.Duration      `json:"mean_rt"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Profile is the static per-game configuration. It is read-only once the
// runner starts.
type Profile struct {
	ID              string        `json:"id"`
	Game            GameID        `json:"game"`
	Name            string        `json:"name"`
	Instructions    []string      `json:"instructions"`
	Controls        []Option      `json:"controls"`
	PracticeTrials  int           `json:"practice_trials"`
	TestTrials      int           `json:"test_trials"`
	ResponseTimeout time.Duration `json:"response_timeout"`
	FeedbackDelay   time.Duration `json:"feedback_delay"`
	ReadyDelay      time.Duration `json:"ready_delay"`
	// PracticeTarget is the minimum practice accuracy (percent) below
	// which the player is offered a practice retry. Zero disables the
	// check.
	PracticeTarget float64 `json:"practice_target"`
	// AudioCheck inserts an audio confirmation phase after the
	// instructions.
	AudioCheck bool `json:"audio_check"`
	// ShowFeedback controls whether per-trial correctness is revealed.
	ShowFeedback bool `json:"show_feedback"`
}

// Untimed reports whether responses have no deadline.
func (p Profile) Untimed() bool {
	return p.ResponseTimeout <= 0
}

// Sequencer yields the stimuli for a run. Adaptive tasks inspect the
// history of recorded trials to produce the next stimulus.
type Sequencer interface {
	Next(history []Trial) (s Stimulus, ok bool)
}

// Game binds a stimulus generator, a response classifier, and a summary
// aggregator to a configuration profile.
type Game interface {
	Profile() Profile
	// Sequence begins a run of up to n trials drawn from the supplied
	// random source.
	Sequence(n int, r *rand.Rand) Sequencer
	// Classify resolves a response against a stimulus. An empty response
	// indicates the deadline elapsed with no input.
	Classify(s Stimulus, response string, rt time.Duration) Outcome
	// Summarize reduces a completed session to its summary.
	Summarize(sess *Session) Summary
}

type fixedSequencer struct {
	stimuli []Stimulus
}

func (f *fixedSequencer) Next(history []Trial) (Stimulus, bool) {
	if len(history) >= len(f.stimuli) {
		return Stimulus{}, false
	}

	return f.stimuli[len(history)], true
}

// FixedSequence wraps a pre-generated stimulus list in a Sequencer.
func FixedSequence(stimuli []Stimulus) Sequencer {
	return &fixedSequencer{stimuli: stimuli}
}

// ClassifyExact resolves a response by direct comparison with the expected
// token. A missing response on a no-go stimulus counts as a correct
// withhold; a missing response otherwise is a timeout.
func ClassifyExact(s Stimulus, response string) Outcome {
	if response == "" {
		if s.Expected == "" {
			return OutcomeCorrect
		}

		return OutcomeTimeout
	}

	if s.Expected == "" {
		return OutcomeIncorrect
	}

	if response == s.Expected {
		return OutcomeCorrect
	}

	return OutcomeIncorrect
}

// Accuracy returns 100·correct/total for the given trials, always within
// [0,100].
func Accuracy(trials []Trial) float64 {
	if len(trials) == 0 {
		return 0
	}

	var correct int

	for _, t := range trials {
		if t.Correct() {
			correct++
		}
	}

	return 100 * float64(correct) / float64(len(trials))
}

// MeanRT returns the mean reaction time over correct trials that carry a
// response.
func MeanRT(trials []Trial) time.Duration {
	var (
		sum   time.Duration
		count int
	)

	for _, t := range trials {
		if t.Correct() && t.Response != "" {
			sum += t.ReactionTime
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / time.Duration(count)
}

// MeanRTByType returns the mean reaction time over correct, responded
// trials of the given category.
func MeanRTByType(trials []Trial, trialType string) time.Duration {
	var filtered []Trial

	for _, t := range trials {
		if t.Type == trialType {
			filtered = append(filtered, t)
		}
	}

	return MeanRT(filtered)
}

// Summarize computes the base summary common to all games. Games layer
// their derived metrics on top of the result.
func Summarize(sess *Session) Summary {
	s := Summary{
		SessionID:   sess.ID,
		GameID:      sess.GameID,
		Profile:     sess.Profile,
		StartTime:   sess.StartTime,
		EndTime:     sess.EndTime,
		TotalTrials: len(sess.Trials),
		Accuracy:    Accuracy(sess.Trials),
		MeanRT:      MeanRT(sess.Trials),
		Metrics:     make(map[string]float64),
	}

	for _, t := range sess.Trials {
		switch t.Outcome {
		case OutcomeCorrect:
			s.Correct++
		case OutcomeIncorrect:
			s.Incorrect++
		case OutcomeTimeout:
			s.Timeouts++
		}
	}

	return s
}
