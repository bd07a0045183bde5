package games

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cogbench/cogbench/trial"
)

func TestFigureRotationRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	f := randomFigure(r)

	got := f.rotate().rotate().rotate().rotate()
	if got.key() != f.key() {
		t.Error("four quarter turns did not restore the figure")
	}

	if f.mirror().mirror().key() != f.key() {
		t.Error("mirroring twice did not restore the figure")
	}
}

func TestRotationQuestionCandidates(t *testing.T) {
	r := rand.New(rand.NewSource(9))

	target, options := RotationQuestion(r)

	if !target.chiral() {
		t.Fatal("target figure is not chiral")
	}

	// rotations of the target, for candidate verification
	rotations := make(map[string]bool)
	cur := target

	for i := 0; i < 4; i++ {
		rotations[cur.key()] = true
		cur = cur.rotate()
	}

	var rotated int

	for _, opt := range options {
		isRotation := rotations[opt.fig.key()]

		if opt.rotated {
			rotated++

			if !isRotation {
				t.Error("candidate marked rotated is not a rotation of the target")
			}
		} else if isRotation {
			t.Error("mirrored candidate matches a rotation of the target")
		}
	}

	if rotated != 2 {
		t.Errorf("rotated candidates = %d, want 2", rotated)
	}
}

func TestRotationSequenceExpected(t *testing.T) {
	r := rand.New(rand.NewSource(4))

	for i, s := range RotationSequence(6, r) {
		if len(s.Expected) != 2 {
			t.Fatalf("stimulus %d expects %q, want two letters", i, s.Expected)
		}

		if s.Expected[0] >= s.Expected[1] {
			t.Errorf("stimulus %d expected %q is not in sorted order", i, s.Expected)
		}

		var rotated int

		for _, opt := range s.Options {
			if opt.Value == "rotated" {
				rotated++
			}
		}

		if rotated != 2 {
			t.Errorf("stimulus %d has %d rotated options, want 2", i, rotated)
		}
	}
}

func TestRotationClassifyOrderInsensitive(t *testing.T) {
	g := newRotation(rotationProfile())

	s := trial.Stimulus{Expected: "AC"}

	for _, response := range []string{"AC", "CA", "ca", "a c"} {
		if got := g.Classify(s, response, time.Second); got != trial.OutcomeCorrect {
			t.Errorf("Classify(%q) = %v, want correct", response, got)
		}
	}

	if got := g.Classify(s, "AB", time.Second); got != trial.OutcomeIncorrect {
		t.Errorf("Classify(%q) = %v, want incorrect", "AB", got)
	}
}
