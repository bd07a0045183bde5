package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/cogbench/cogbench/trial"
)

func baseProfile() trial.Profile {
	return trial.Profile{
		ID:              "stroop",
		Game:            "stroop",
		TestTrials:      96,
		PracticeTrials:  10,
		ResponseTimeout: 2500 * time.Millisecond,
		FeedbackDelay:   400 * time.Millisecond,
		ShowFeedback:    true,
	}
}

func TestProfileWithoutOverrides(t *testing.T) {
	viper.Reset()

	got := Profile(playContext(t, nil), baseProfile())

	if got.TestTrials != 96 || got.PracticeTrials != 10 {
		t.Errorf("untouched profile changed: %d trials, %d practice",
			got.TestTrials, got.PracticeTrials)
	}
}

func TestProfileFileOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("profiles.stroop.test_trials", 48)
	viper.Set("profiles.stroop.response_timeout_ms", 2000)
	viper.Set("profiles.stroop.show_feedback", false)

	got := Profile(playContext(t, nil), baseProfile())

	if got.TestTrials != 48 {
		t.Errorf("test trials = %d, want 48", got.TestTrials)
	}

	if got.ResponseTimeout != 2*time.Second {
		t.Errorf("response timeout = %v, want 2s", got.ResponseTimeout)
	}

	if got.ShowFeedback {
		t.Error("show_feedback override not applied")
	}

	// settings left out of the file keep their built-in values
	if got.PracticeTrials != 10 {
		t.Errorf("practice trials = %d, want 10", got.PracticeTrials)
	}
}

func TestProfileFlagsBeatFile(t *testing.T) {
	viper.Reset()
	viper.Set("profiles.stroop.test_trials", 48)

	ctx := playContext(t, map[string]string{"trials": "24", "practice": "4"})

	got := Profile(ctx, baseProfile())

	if got.TestTrials != 24 {
		t.Errorf("test trials = %d, want the flag value 24", got.TestTrials)
	}

	if got.PracticeTrials != 4 {
		t.Errorf("practice trials = %d, want 4", got.PracticeTrials)
	}
}

func TestProfileSkipPractice(t *testing.T) {
	viper.Reset()

	ctx := playContext(t, map[string]string{"skip-practice": "true"})

	got := Profile(ctx, baseProfile())

	if got.PracticeTrials != 0 {
		t.Errorf("practice trials = %d, want 0", got.PracticeTrials)
	}
}
