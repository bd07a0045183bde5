package games

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	rotationGridSize    = 4
	rotationOptionCount = 4
)

var rotationLabels = []string{"A", "B", "C", "D"}

var rotationTitleStyle = lipgloss.NewStyle().Bold(true)

func rotationProfile() trial.Profile {
	return trial.Profile{
		ID:   "rotation",
		Game: Rotation,
		Name: "Mental Rotation",
		Instructions: []string{
			"A target figure is shown, followed by four candidate figures labelled A to D.",
			"Exactly two candidates are the target figure rotated. The other two are mirror images.",
			"Type the letters of BOTH rotated candidates, in any order, and press ENTER.",
		},
		PracticeTrials:  2,
		TestTrials:      12,
		ResponseTimeout: 15 * time.Second,
		FeedbackDelay:   800 * time.Millisecond,
		ReadyDelay:      500 * time.Millisecond,
		ShowFeedback:    true,
	}
}

type figure [][]bool

func randomFigure(r *rand.Rand) figure {
	f := make(figure, rotationGridSize)

	for i := range f {
		f[i] = make([]bool, rotationGridSize)
		for j := range f[i] {
			f[i][j] = r.Intn(2) == 1
		}
	}

	return f
}

func (f figure) rotate() figure {
	n := len(f)
	out := make(figure, n)

	for i := range out {
		out[i] = make([]bool, n)
		for j := range out[i] {
			out[i][j] = f[n-1-j][i]
		}
	}

	return out
}

func (f figure) mirror() figure {
	n := len(f)
	out := make(figure, n)

	for i := range out {
		out[i] = make([]bool, n)
		for j := range out[i] {
			out[i][j] = f[i][n-1-j]
		}
	}

	return out
}

func (f figure) key() string {
	var b strings.Builder

	for _, row := range f {
		for _, cell := range row {
			if cell {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}

	return b.String()
}

func (f figure) render() []string {
	lines := make([]string, 0, len(f))

	for _, row := range f {
		var b strings.Builder

		for _, cell := range row {
			if cell {
				b.WriteString("██")
			} else {
				b.WriteString("··")
			}
		}

		lines = append(lines, b.String())
	}

	return lines
}

// chiral reports whether no rotation of the figure equals any rotation of
// its mirror image. Only chiral figures make valid rotation questions.
func (f figure) chiral() bool {
	rotations := make(map[string]bool)
	cur := f

	for i := 0; i < 4; i++ {
		rotations[cur.key()] = true
		cur = cur.rotate()
	}

	mirrored := f.mirror()

	for i := 0; i < 4; i++ {
		if rotations[mirrored.key()] {
			return false
		}

		mirrored = mirrored.rotate()
	}

	return true
}

type rotationOption struct {
	fig     figure
	rotated bool // same figure rotated, as opposed to mirrored
}

// RotationQuestion builds one question: a chiral target figure and four
// candidates of which exactly two are rotations and two are mirror images,
// shuffled into their display positions.
func RotationQuestion(r *rand.Rand) (figure, []rotationOption) {
	target := randomFigure(r)
	for !target.chiral() {
		target = randomFigure(r)
	}

	rotate := func(f figure, quarters int) figure {
		for i := 0; i < quarters; i++ {
			f = f.rotate()
		}

		return f
	}

	options := []rotationOption{
		{fig: rotate(target, 1+r.Intn(3)), rotated: true},
		{fig: rotate(target, 1+r.Intn(3)), rotated: true},
		{fig: rotate(target.mirror(), r.Intn(4))},
		{fig: rotate(target.mirror(), r.Intn(4))},
	}

	shuffle(options, r)

	return target, options
}

// rotationDisplay renders the target above its four labelled candidates.
func rotationDisplay(target figure, options []rotationOption) string {
	var b strings.Builder

	b.WriteString(rotationTitleStyle.Render("Target") + "\n")

	for _, line := range target.render() {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")

	rendered := make([][]string, len(options))
	for i, opt := range options {
		rendered[i] = opt.fig.render()
	}

	for i := range options {
		b.WriteString(fmt.Sprintf("%-*s", 2*rotationGridSize+3,
			rotationLabels[i]))
	}

	b.WriteString("\n")

	for line := 0; line < rotationGridSize; line++ {
		for i := range rendered {
			b.WriteString(rendered[i][line] + "   ")
		}

		b.WriteString("\n")
	}

	return b.String()
}

// RotationSequence generates n questions, each holding exactly two rotated
// and two mirrored candidates.
func RotationSequence(n int, r *rand.Rand) []trial.Stimulus {
	stimuli := make([]trial.Stimulus, 0, n)

	for i := 0; i < n; i++ {
		target, options := RotationQuestion(r)

		var correct []string

		opts := make([]trial.Option, 0, rotationOptionCount)

		for j, opt := range options {
			label := rotationLabels[j]

			value := "mirrored"
			if opt.rotated {
				value = "rotated"
				correct = append(correct, label)
			}

			opts = append(opts, trial.Option{
				Key:   strings.ToLower(label),
				Label: label,
				Value: value,
			})
		}

		sort.Strings(correct)

		stimuli = append(stimuli, trial.Stimulus{
			ID:         fmt.Sprintf("rotation-%d", i+1),
			Display:    rotationDisplay(target, options),
			Prompt:     "which two are rotations?",
			Expected:   strings.Join(correct, ""),
			Type:       "question",
			Options:    opts,
			TypedInput: true,
		})
	}

	return stimuli
}

type rotationGame struct {
	prof trial.Profile
}

func newRotation(p trial.Profile) trial.Game {
	return &rotationGame{prof: p}
}

func (g *rotationGame) Profile() trial.Profile { return g.prof }

func (g *rotationGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return trial.FixedSequence(RotationSequence(n, r))
}

// Classify accepts the two chosen letters in either order.
func (g *rotationGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	letters := strings.Split(
		strings.ToUpper(strings.ReplaceAll(response, " ", "")), "",
	)
	sort.Strings(letters)

	return trial.ClassifyExact(s, strings.Join(letters, ""))
}

func (g *rotationGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)
	sum.Metrics["mean_decision_ms"] = ms(trial.MeanRT(sess.Trials))

	return sum
}
