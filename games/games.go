// Package games implements the cognitive tasks of the battery: their
// stimulus generators, response classifiers, and summary aggregators.
package games

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/cogbench/cogbench/trial"
)

// Game identifiers. Variants of the same task (differing trial counts and
// timeouts) are exposed as distinct profiles of one game.
const (
	Stroop     trial.GameID = "stroop"
	Flanker    trial.GameID = "flanker"
	Simon      trial.GameID = "simon"
	NBack      trial.GameID = "nback"
	SART       trial.GameID = "sart"
	Trails     trial.GameID = "trails"
	Rotation   trial.GameID = "rotation"
	Dichotic   trial.GameID = "dichotic"
	DigitSpan  trial.GameID = "digitspan"
	Corsi      trial.GameID = "corsi"
	Hanoi      trial.GameID = "hanoi"
	Handedness trial.GameID = "handedness"
)

var errUnknownGame = errors.New("unknown game")

type constructor func(p trial.Profile) trial.Game

var constructors = map[trial.GameID]constructor{
	Stroop:     newStroop,
	Flanker:    newFlanker,
	Simon:      newSimon,
	NBack:      newNBack,
	SART:       newSART,
	Trails:     newTrails,
	Rotation:   newRotation,
	Dichotic:   newDichotic,
	DigitSpan:  newDigitSpan,
	Corsi:      newCorsi,
	Hanoi:      newHanoi,
	Handedness: newHandedness,
}

var defaults = func() map[string]trial.Profile {
	m := make(map[string]trial.Profile)

	for _, p := range []trial.Profile{
		stroopProfile(),
		stroopBriefProfile(),
		flankerProfile(),
		flankerBriefProfile(),
		simonProfile(),
		nbackProfile(),
		sartProfile(),
		trailsProfile(),
		rotationProfile(),
		dichoticProfile(),
		digitSpanProfile(),
		corsiProfile(),
		hanoiProfile(),
		handednessProfile(),
	} {
		m[p.ID] = p
	}

	return m
}()

// IDs returns every known profile identifier in natural sort order.
func IDs() []string {
	ids := make([]string, 0, len(defaults))

	for id := range defaults {
		ids = append(ids, id)
	}

	sort.Sort(natural.StringSlice(ids))

	return ids
}

// Default returns the built-in profile for the given identifier.
func Default(id string) (trial.Profile, bool) {
	p, ok := defaults[id]
	return p, ok
}

// New constructs the game bound to the profile's task.
func New(p trial.Profile) (trial.Game, error) {
	ctor, ok := constructors[p.Game]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownGame, p.Game)
	}

	return ctor(p), nil
}

// ms expresses a duration in milliseconds for summary metrics.
func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// shuffle permutes s in place using the supplied source.
func shuffle[T any](s []T, r *rand.Rand) {
	r.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
