package player

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

var (
	baseStyle = lipgloss.NewStyle().Padding(1, padding)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	stimulusStyle = lipgloss.NewStyle().
			Padding(1, 0)

	inputStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	correctStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	incorrectStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

func (p *Player) instructionsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(p.prof.Name))
	s.WriteString("\n\n")

	pages := p.prof.Instructions
	page := p.runner.Page()

	if len(pages) > 0 {
		s.WriteString(pages[page])
		s.WriteString("\n")
	}

	if len(pages) > 1 {
		s.WriteString(secondaryStyle.Render(
			fmt.Sprintf("\n(%d/%d)", page+1, len(pages)),
		))
		s.WriteString("\n")
	}

	s.WriteString("\n" + p.help.ShortHelpView([]key.Binding{
		p.keymap.next,
		p.keymap.back,
		p.keymap.quit,
	}))

	return s.String()
}

func (p *Player) audioCheckView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Audio check"))
	s.WriteString("\n\n")
	s.WriteString(
		"You should hear a tone in your left ear, then one in your right.\n",
	)
	s.WriteString("Adjust your headphones until both are clearly audible.\n")

	s.WriteString("\n" + p.help.ShortHelpView([]key.Binding{
		p.keymap.replay,
		p.keymap.confirm,
		p.keymap.quit,
	}))

	return s.String()
}

func (p *Player) interludeView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Practice complete"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf(
		"Practice accuracy: %s\n",
		inputStyle.Render(
			fmt.Sprintf("%.0f%%", p.runner.PracticeAccuracy()),
		),
	))

	if p.runner.PracticeBelowTarget() {
		s.WriteString(secondaryStyle.Render(
			"\nThat was below the recommended level. " +
				"Consider another practice round.\n",
		))
	}

	s.WriteString(
		"\nPress ENTER to begin the scored block. " +
			"Your results will only be saved if you finish it.\n",
	)

	s.WriteString("\n" + p.help.ShortHelpView([]key.Binding{
		p.keymap.confirm,
		p.keymap.retry,
		p.keymap.quit,
	}))

	return s.String()
}

// optionsView lists the selectable responses for the current stimulus.
func (p *Player) optionsView(s trial.Stimulus) string {
	options := s.Options
	if len(options) == 0 {
		options = p.prof.Controls
	}

	if len(options) == 0 {
		return ""
	}

	parts := make([]string, 0, len(options))

	for _, opt := range options {
		parts = append(parts, fmt.Sprintf(
			"%s %s",
			inputStyle.Render("["+opt.Key+"]"),
			opt.Label,
		))
	}

	return strings.Join(parts, "   ")
}

func (p *Player) feedbackView() string {
	if !p.prof.ShowFeedback {
		return secondaryStyle.Render("·")
	}

	last, ok := p.runner.LastTrial()
	if !ok {
		return ""
	}

	if last.Correct() {
		return correctStyle.Render("✓ correct")
	}

	if last.Outcome == trial.OutcomeTimeout {
		return incorrectStyle.Render("✗ too slow")
	}

	return incorrectStyle.Render("✗ incorrect")
}

func (p *Player) trialView() string {
	var s strings.Builder

	label := "Practice"
	if p.runner.Phase() == trial.PhaseTest {
		label = "Test"
	}

	s.WriteString(titleStyle.Render(p.prof.Name))
	s.WriteString(secondaryStyle.Render("  " + label))
	s.WriteString("\n")

	switch p.runner.Step() {
	case trial.StepReady:
		s.WriteString(stimulusStyle.Render("+"))
		s.WriteString("\n")

	case trial.StepStimulus:
		stim, ok := p.runner.Current()
		if !ok {
			break
		}

		display := stim.Display
		if p.hidden {
			display = secondaryStyle.Render("· · ·")
		}

		s.WriteString(stimulusStyle.Render(display))
		s.WriteString("\n")

		if stim.Prompt != "" {
			s.WriteString(secondaryStyle.Render(stim.Prompt))
			s.WriteString("\n")
		}

		if stim.TypedInput {
			s.WriteString(fmt.Sprintf(
				"\n> %s█\n",
				inputStyle.Render(p.input),
			))
			s.WriteString(p.help.ShortHelpView([]key.Binding{
				p.keymap.submit,
			}))
			s.WriteString("\n")
		} else if opts := p.optionsView(stim); opts != "" {
			s.WriteString("\n" + opts + "\n")
		}

	case trial.StepFeedback:
		s.WriteString(stimulusStyle.Render(p.feedbackView()))
		s.WriteString("\n")
	}

	if p.runner.Phase() == trial.PhaseTest && p.prof.TestTrials > 0 {
		done := p.runner.Recorded()
		percent := float64(done) / float64(p.prof.TestTrials)

		s.WriteString("\n")
		s.WriteString(p.progress.ViewAs(percent))
		s.WriteString("\n")
	}

	return s.String()
}

func (p *Player) completeView() string {
	var s strings.Builder

	sum, ok := p.runner.Summary()
	if !ok {
		return ""
	}

	s.WriteString(titleStyle.Render(p.prof.Name + ": complete"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf(
		"Trials: %s   Accuracy: %s",
		inputStyle.Render(fmt.Sprintf("%d", sum.TotalTrials)),
		inputStyle.Render(fmt.Sprintf("%.1f%%", sum.Accuracy)),
	))

	if sum.MeanRT > 0 {
		s.WriteString(fmt.Sprintf(
			"   Mean RT: %s",
			inputStyle.Render(
				fmt.Sprintf("%d ms", sum.MeanRT.Milliseconds()),
			),
		))
	}

	s.WriteString("\n")

	if len(sum.Metrics) > 0 {
		keys := make([]string, 0, len(sum.Metrics))
		for k := range sum.Metrics {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		s.WriteString("\n")

		for _, k := range keys {
			s.WriteString(fmt.Sprintf(
				"%s: %s\n",
				strings.ReplaceAll(k, "_", " "),
				metricStyle.Render(fmt.Sprintf("%.1f", sum.Metrics[k])),
			))
		}
	}

	s.WriteString(
		secondaryStyle.Render("\nPress any key to exit") + "\n",
	)

	return s.String()
}

func (p *Player) View() string {
	var view string

	switch p.runner.Phase() {
	case trial.PhaseInstructions:
		view = p.instructionsView()
	case trial.PhaseAudioCheck:
		view = p.audioCheckView()
	case trial.PhaseInterlude:
		view = p.interludeView()
	case trial.PhasePractice, trial.PhaseTest:
		view = p.trialView()
	case trial.PhaseComplete:
		if p.runner.Aborted() {
			return ""
		}

		view = p.completeView()
	}

	return baseStyle.Render(view)
}
