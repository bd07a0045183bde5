package games

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogbench/cogbench/trial"
)

const (
	trailsPartA = "A"
	trailsPartB = "B"

	trailsNodesPerPart = 25
	trailsGridColumns  = 5
)

var (
	trailsNodeStyle = lipgloss.NewStyle().Bold(true)
	trailsDoneStyle = lipgloss.NewStyle().Faint(true)
)

func trailsProfile() trial.Profile {
	return trial.Profile{
		ID:   "trails",
		Game: Trails,
		Name: "Trail Making",
		Instructions: []string{
			"Part A: connect the numbers in ascending order by typing the next number and pressing ENTER.",
			"Part B: alternate between numbers and letters in order, 1 A 2 B 3 C and so on.",
			"Work as quickly as you can. A wrong entry counts as an error and you must still enter the correct node to continue.",
		},
		PracticeTrials: 5,
		TestTrials:     2 * trailsNodesPerPart,
		FeedbackDelay:  300 * time.Millisecond,
		ReadyDelay:     300 * time.Millisecond,
		ShowFeedback:   true,
	}
}

// trailsTargets returns the ordered node labels for a part.
func trailsTargets(part string, n int) []string {
	targets := make([]string, 0, n)

	if part == trailsPartA {
		for i := 1; i <= n; i++ {
			targets = append(targets, strconv.Itoa(i))
		}

		return targets
	}

	// Part B alternates numbers and letters: 1 A 2 B ... ending on a
	// number when n is odd.
	num, letter := 1, 'A'

	for len(targets) < n {
		targets = append(targets, strconv.Itoa(num))
		num++

		if len(targets) == n {
			break
		}

		targets = append(targets, string(letter))
		letter++
	}

	return targets
}

// trailsSequencer advances to the next node only on a correct selection,
// so the number of attempts grows with every error.
type trailsSequencer struct {
	parts  []string
	boards map[string][]string // shuffled display order per part
}

func newTrailsSequencer(n int, r *rand.Rand) *trailsSequencer {
	seq := &trailsSequencer{
		boards: make(map[string][]string),
	}

	if n <= trailsNodesPerPart {
		// practice runs a shortened part A only
		seq.parts = []string{trailsPartA}
		seq.boards[trailsPartA] = trailsTargets(trailsPartA, n)
	} else {
		seq.parts = []string{trailsPartA, trailsPartB}
		seq.boards[trailsPartA] = trailsTargets(trailsPartA, n/2)
		seq.boards[trailsPartB] = trailsTargets(trailsPartB, n/2)
	}

	for _, part := range seq.parts {
		layout := make([]string, len(seq.boards[part]))
		copy(layout, seq.boards[part])
		shuffle(layout, r)
		seq.boards[part] = layout
	}

	return seq
}

// progress returns the part in play and how many of its nodes have been
// correctly selected.
func (q *trailsSequencer) progress(history []trial.Trial) (string, int) {
	hits := make(map[string]int)

	for _, t := range history {
		if t.Correct() {
			hits[t.Type]++
		}
	}

	for _, part := range q.parts {
		if hits[part] < q.partLen(part) {
			return part, hits[part]
		}
	}

	return "", 0
}

func (q *trailsSequencer) partLen(part string) int {
	return len(q.boards[part])
}

func (q *trailsSequencer) Next(history []trial.Trial) (trial.Stimulus, bool) {
	part, done := q.progress(history)
	if part == "" {
		return trial.Stimulus{}, false
	}

	targets := trailsTargets(part, q.partLen(part))
	target := targets[done]
	hit := make(map[string]bool, done)

	for i := 0; i < done; i++ {
		hit[targets[i]] = true
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("Part %s\n\n", part))

	for i, label := range q.boards[part] {
		cell := fmt.Sprintf("%3s", label)

		if hit[label] {
			b.WriteString(trailsDoneStyle.Render(cell))
		} else {
			b.WriteString(trailsNodeStyle.Render(cell))
		}

		if (i+1)%trailsGridColumns == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}

	return trial.Stimulus{
		ID:         part + ":" + target,
		Display:    b.String(),
		Prompt:     "next node?",
		Expected:   strings.ToUpper(target),
		Type:       part,
		TypedInput: true,
	}, true
}

type trailsGame struct {
	prof trial.Profile
}

func newTrails(p trial.Profile) trial.Game {
	return &trailsGame{prof: p}
}

func (g *trailsGame) Profile() trial.Profile { return g.prof }

func (g *trailsGame) Sequence(n int, r *rand.Rand) trial.Sequencer {
	return newTrailsSequencer(n, r)
}

func (g *trailsGame) Classify(
	s trial.Stimulus,
	response string,
	rt time.Duration,
) trial.Outcome {
	return trial.ClassifyExact(s, strings.ToUpper(strings.TrimSpace(response)))
}

func (g *trailsGame) Summarize(sess *trial.Session) trial.Summary {
	sum := trial.Summarize(sess)

	var (
		timeA, timeB     time.Duration
		errorsA, errorsB int
	)

	for _, t := range sess.Trials {
		switch t.Type {
		case trailsPartA:
			timeA += t.ReactionTime

			if !t.Correct() {
				errorsA++
			}
		case trailsPartB:
			timeB += t.ReactionTime

			if !t.Correct() {
				errorsB++
			}
		}
	}

	sum.Metrics["part_a_time_ms"] = ms(timeA)
	sum.Metrics["part_b_time_ms"] = ms(timeB)
	sum.Metrics["part_a_errors"] = float64(errorsA)
	sum.Metrics["part_b_errors"] = float64(errorsB)
	sum.Metrics["b_minus_a_ms"] = ms(timeB - timeA)

	// B/A ratio is the standard clinical index for the task.
	if timeA > 0 {
		sum.Metrics["b_to_a_ratio"] = float64(timeB) / float64(timeA)
	}

	return sum
}
