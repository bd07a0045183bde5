package player

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogbench/cogbench/trial"
)

// Scheduled ticks carry the epoch they were created against so that input
// arriving in between invalidates them.
type (
	trialStartMsg  struct{ epoch int }
	trialExpireMsg struct{ epoch int }
	revealMsg      struct{ epoch int }
	feedbackMsg    struct{ epoch int }
)

const maxInputLen = 16

// scheduleStart arms the ready-delay tick that will present the next
// stimulus.
func (p *Player) scheduleStart() tea.Cmd {
	d := p.prof.ReadyDelay
	if d <= 0 {
		d = time.Millisecond
	}

	epoch := p.runner.Epoch()

	return tea.Tick(d, func(time.Time) tea.Msg {
		return trialStartMsg{epoch}
	})
}

// startTrial opens the next response window and arms its expiry and
// reveal ticks.
func (p *Player) startTrial(now time.Time) tea.Cmd {
	deadline, ok := p.runner.StartTrial(now)
	if !ok {
		// the phase ended; the interlude and completion views wait
		// for input instead of a tick
		return nil
	}

	p.input = ""
	p.hidden = false

	epoch := p.runner.Epoch()

	var cmds []tea.Cmd

	s, _ := p.runner.Current()

	if s.Audio != nil {
		cue := *s.Audio

		cmds = append(cmds, func() tea.Msg {
			p.audio.playCue(&cue)
			return nil
		})
	}

	if s.Reveal > 0 {
		cmds = append(cmds, tea.Tick(s.Reveal, func(time.Time) tea.Msg {
			return revealMsg{epoch}
		}))
	}

	if !deadline.IsZero() {
		cmds = append(
			cmds,
			tea.Tick(p.prof.ResponseTimeout, func(time.Time) tea.Msg {
				return trialExpireMsg{epoch}
			}),
		)
	}

	return tea.Batch(cmds...)
}

// afterResolve schedules whatever follows a resolved trial: the feedback
// tick when feedback is shown, otherwise the next trial.
func (p *Player) afterResolve() tea.Cmd {
	if p.prof.FeedbackDelay > 0 {
		epoch := p.runner.Epoch()

		return tea.Tick(p.prof.FeedbackDelay, func(time.Time) tea.Msg {
			return feedbackMsg{epoch}
		})
	}

	return p.scheduleStart()
}

func (p *Player) abort() tea.Cmd {
	p.runner.Abort()

	return tea.Batch(tea.ClearScreen, tea.Quit)
}

func (p *Player) playCheck() tea.Cmd {
	return func() tea.Msg {
		p.audio.playCheck()
		return nil
	}
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trialStartMsg:
		if msg.epoch != p.runner.Epoch() {
			return p, nil
		}

		return p, p.startTrial(time.Now())

	case trialExpireMsg:
		if p.runner.ExpireTrial(msg.epoch, time.Now()) {
			return p, p.afterResolve()
		}

		return p, nil

	case revealMsg:
		if msg.epoch == p.runner.Epoch() &&
			p.runner.Step() == trial.StepStimulus {
			p.hidden = true
		}

		return p, nil

	case feedbackMsg:
		if msg.epoch != p.runner.Epoch() {
			return p, nil
		}

		p.runner.AdvanceFeedback(time.Now())

		return p, p.scheduleStart()

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.WindowSizeMsg:
		p.width = msg.Width

		p.progress.Width = msg.Width - padding*2 - 4
		if p.progress.Width > maxWidth {
			p.progress.Width = maxWidth
		}

		return p, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := p.progress.Update(msg)
		p.progress, _ = progressModel.(progress.Model)

		return p, cmd
	}

	return p, nil
}

func (p *Player) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if p.runner.Phase() == trial.PhaseComplete {
			return p, tea.Quit
		}

		return p, p.abort()
	}

	now := time.Now()

	switch p.runner.Phase() {
	case trial.PhaseInstructions:
		switch {
		case key.Matches(msg, p.keymap.quit):
			return p, p.abort()

		case key.Matches(msg, p.keymap.back):
			p.runner.PrevPage()

			return p, nil

		case key.Matches(msg, p.keymap.next):
			p.runner.NextPage(now)

			switch p.runner.Phase() {
			case trial.PhaseAudioCheck:
				return p, p.playCheck()
			case trial.PhasePractice, trial.PhaseTest:
				return p, p.scheduleStart()
			}

			return p, nil
		}

	case trial.PhaseAudioCheck:
		switch {
		case key.Matches(msg, p.keymap.quit):
			return p, p.abort()

		case key.Matches(msg, p.keymap.replay):
			return p, p.playCheck()

		case key.Matches(msg, p.keymap.confirm):
			p.runner.ConfirmAudio(now)

			return p, p.scheduleStart()
		}

	case trial.PhaseInterlude:
		switch {
		case key.Matches(msg, p.keymap.quit):
			return p, p.abort()

		case key.Matches(msg, p.keymap.retry):
			if p.runner.RetryPractice(now) {
				return p, p.scheduleStart()
			}

			return p, nil

		case key.Matches(msg, p.keymap.confirm):
			p.runner.BeginTest(now)

			return p, p.scheduleStart()
		}

	case trial.PhasePractice, trial.PhaseTest:
		return p.handleTrialKey(msg, now)

	case trial.PhaseComplete:
		return p, tea.Quit
	}

	return p, nil
}

// handleTrialKey relays input during an open response window. Input in the
// ready and feedback steps is discarded.
func (p *Player) handleTrialKey(
	msg tea.KeyMsg,
	now time.Time,
) (tea.Model, tea.Cmd) {
	if p.runner.Step() != trial.StepStimulus {
		return p, nil
	}

	s, ok := p.runner.Current()
	if !ok {
		return p, nil
	}

	if s.TypedInput {
		return p.handleTypedKey(msg, now)
	}

	token := msg.String()
	if token == " " {
		token = "space"
	}

	options := s.Options
	if len(options) == 0 {
		options = p.prof.Controls
	}

	for _, opt := range options {
		if token == opt.Key {
			if p.runner.SubmitResponse(opt.Value, now) {
				return p, p.afterResolve()
			}

			return p, nil
		}
	}

	return p, nil
}

func (p *Player) handleTypedKey(
	msg tea.KeyMsg,
	now time.Time,
) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if p.input == "" {
			return p, nil
		}

		if p.runner.SubmitResponse(p.input, now) {
			return p, p.afterResolve()
		}

		return p, nil

	case tea.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}

		return p, nil

	case tea.KeyRunes:
		if len(p.input) < maxInputLen {
			p.input += string(msg.Runes)
		}

		return p, nil
	}

	return p, nil
}
