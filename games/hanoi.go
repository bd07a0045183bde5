package games

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	hanoiPegs      = 3
	hanoiDisks     = 4
	hanoiTargetPeg = 2 // zero-indexed rightmost peg
)

var (
	hanoiDiskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
	hanoiPegStyle = lipgloss.NewStyle().Faint(true)
)

func hanoiProfile() trial.Profile {
	return trial.Profile{
		ID:   "hanoi",
		Game: Hanoi,
		Name: "Tower of Hanoi",
		Instructions: []string{
			"Move the whole tower from the left peg to the right peg.",
			"Enter a move as two digits, source then destination: 13 moves the top disk of peg 1 onto peg 3.",
			"Only one disk moves at a time and a larger disk can never rest on a smaller one. Fewer moves is better.",
		},
		TestTrials:    64,
		FeedbackDelay: 200 * time.Millisecond,
		ReadyDelay:    200 * time.Millisecond,
	}
}

type hanoiBoard struct {
	pegs [hanoiPegs][]int // disk sizes, top of peg last
}

func newHanoiBoard() *hanoiBoard {
	b := &hanoiBoard{}

	for d := hanoiDisks; d >= 1; d-- {
		b.pegs[0] = append(b.pegs[0], d)
	}

	return b
}

func (b *hanoiBoard) top(peg int) (int, bool) {
	stack := b.pegs[peg]
	if len(stack) == 0 {
		return 0, false
	}

	return stack[len(stack)-1], true
}

// legal reports whether the top disk of from may rest on the top of to.
func (b *hanoiBoard) legal(from, to int) bool {
	if from < 0 || from >= hanoiPegs || to < 0 || to >= hanoiPegs ||
		from == to {
		return false
	}

	disk, ok := b.top(from)
	if !ok {
		return false
	}

	dest, occupied := b.top(to)

	return !occupied || dest > disk
}

func (b *hanoiBoard) move(from, to int) {
	disk, _ := b.top(from)
	b.pegs[from] = b.pegs[from][:len(b.pegs[from])-1]
	b.pegs[to] = append(b.pegs[to], disk)
}

func (b *hanoiBoard) solved() bool {
	return len(b.pegs[hanoiTargetPeg]) == hanoiDisks
}

// diskPeg returns the peg the given disk rests on.
func (b *hanoiBoard) diskPeg(disk int) int {
	for p := 0; p < hanoiPegs; p++ {
		for _, d := range b.pegs[p] {
			if d == disk {
				return p
			}
		}
	}

	return -1
}

// optimal returns the next move on the shortest path from the current
// position to the solved position.
func (b *hanoiBoard) optimal() (from, to int) {
	return b.solveFrom(hanoiDisks, hanoiTargetPeg)
}

func (b *hanoiBoard) solveFrom(disk, target int) (int, int) {
	p := b.diskPeg(disk)

	if disk == 1 {
		return p, target
	}

	if p == target {
		return b.solveFrom(disk-1, target)
	}

	// disk must travel p -> target, so every smaller disk must first
	// clear onto the spare peg.
	spare := 3 - p - target

	for d := disk - 1; d >= 1; d-- {
		if b.diskPeg(d) != spare {
			return b.solveFrom(disk-1, spare)
		}
	}

	return p, target
}

// parseHanoiMove reads a two digit source/destination pair into
// zero-indexed pegs.
func parseHanoiMove(response string) (from, to int, ok bool) {
	response = strings.TrimSpace(response)
	if len(response) != 2 {
		return 0, 0, false
	}

	from = int(response[0] - '1')
	to = int(response[1] - '1')

	if from < 0 || from >= hanoiPegs || to < 0 || to >= hanoiPegs {
		return 0, 0, false
	}

	return from, to, true
}

// replay rebuilds the board from the recorded legal moves.
func replayHanoi(history []trial.Trial) *hanoiBoard {
	b := newHanoiBoard()

	for _, t := range history {
		from, to, ok := parseHanoiMove(t.Response)
		if ok && b.legal(from, to) {
			b.move(from, to)
		}
	}

	return b
}

func (b *hanoiBoard) render() string {
	var out strings.Builder

	width := 2*hanoiDisks + 1

	for row := hanoiDisks - 1; row >= 0; row-- {
		for p := 0; p < hanoiPegs; p++ {
			var cell string

			if row < len(b.pegs[p]) {
				disk := b.pegs[p][row]
				cell = hanoiDiskStyle.Render(
					strings.Repeat("=", 2*disk+1),
				)
				cell = pad(cell, 2*disk+1, width)
			} else {
				cell = pad(hanoiPegStyle.Render("|"), 1, width)
			}

			out.WriteString(cell + " ")
		}

		out.WriteString("\n")
	}

	for p := 1; p <= hanoiPegs; p++ {
		out.WriteString(pad(fmt.Sprintf("%d", p), 1, width) + " ")
	}

	return out.String()
}

// pad centres rendered content of the given visible width inside a field.
func pad(s string, visible, width int) string {
	left := (width - visible) / 2
	right := width - visible - left

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

type hanoiSequencer struct {
	cap int
}

func (q *hanoiSequencer) Next(history []trial.Trial) (trial.Stimulus, bool) {
	if len(history) >= q.cap {
		return trial.Stimulus{}, false
	}

	board := replayHanoi(history)
	if board.solved() {
		return trial.Stimulus{}, false
	}

	from, to := board.optimal()

	return trial.Stimulus{
		ID:         fmt.Sprintf("move-%d", len(history)+1),
		Display:    board.render(),
		Prompt:     "your move (source peg, destination peg)?",
		Expected:   fmt.Sprintf("%d%d", from+1, to+1),
		Type:       "move",
		TypedInput: true,
	}, true
}

type hanoiGame struct {
	prof trial.Profile
}

func newHanoi(p trial.Profile) trial.Game {
	return &hanoiGame{prof: p}
}

func (g *hanoiGame) Profile() trial.Profile { return g.prof }

func (g *hanoiGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return &hanoiSequencer{cap: n}
}

// Classify scores a move as correct only when it follows the shortest
// path. Legal but wasteful moves, and illegal moves, are incorrect.
func (g *hanoiGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, strings.TrimSpace(response))
}

func (g *hanoiGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	board := newHanoiBoard()

	var legalMoves, illegalMoves int

	for _, t := range sess.Trials {
		from, to, ok := parseHanoiMove(t.Response)
		if ok && board.legal(from, to) {
			board.move(from, to)

			legalMoves++
		} else {
			illegalMoves++
		}
	}

	optimal := 1<<hanoiDisks - 1

	sum.Metrics["total_moves"] = float64(legalMoves)
	sum.Metrics["optimal_moves"] = float64(optimal)
	sum.Metrics["illegal_moves"] = float64(illegalMoves)

	if legalMoves > 0 {
		sum.Metrics["efficiency"] = float64(optimal) / float64(legalMoves)
	}

	// latency before the opening move reflects planning time
	if len(sess.Trials) > 0 {
		sum.Metrics["first_move_ms"] = ms(sess.Trials[0].ReactionTime)
	}

	return sum
}
