// Package player renders a game session in the terminal and relays player
// input to the trial state machine.
package player

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogbench/cogbench/config"
	"github.com/cogbench/cogbench/trial"
)

const (
	padding  = 2
	maxWidth = 70
)

// Player is the bubbletea model wrapping a single game run. All timing is
// message-driven: each scheduled tick carries the state-machine epoch it
// was created against, and ticks from superseded states are dropped.
type Player struct {
	runner *trial.Runner
	opts   *config.PlayConfig
	prof   trial.Profile
	audio  *audioPlayer

	keymap   keymap
	help     help.Model
	progress progress.Model

	// input accumulates typed responses for stimuli answered with a
	// string rather than a single key press.
	input string

	// hidden is set once a timed-reveal stimulus has been masked.
	hidden bool

	width int

	err error
}

// New initialises a player for the given game. A zero seed selects a
// time-based one.
func New(game trial.Game, opts *config.PlayConfig) *Player {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))

	p := &Player{
		runner:   trial.NewRunner(game, trial.WithRand(rng)),
		opts:     opts,
		prof:     game.Profile(),
		keymap:   defaultKeymap,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		audio:    newAudioPlayer(opts),
	}

	return p
}

// Runner exposes the underlying state machine, primarily so the caller can
// retrieve the summary after the program exits.
func (p *Player) Runner() *trial.Runner { return p.runner }

// Err returns the first internal error encountered while running.
func (p *Player) Err() error { return p.err }

func (p *Player) Init() tea.Cmd {
	return tea.SetWindowTitle("cogbench: " + p.prof.Name)
}

// Run starts the interactive program and blocks until the session ends.
func (p *Player) Run() error {
	_, err := tea.NewProgram(p).Run()
	if err != nil {
		return err
	}

	return p.err
}
