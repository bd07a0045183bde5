package player

import (
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/kballard/go-shellquote"

	"github.com/cogbench/cogbench/config"
	"github.com/cogbench/cogbench/trial"
)

var errNoTTS = errors.New("no text-to-speech command found")

// ttsCommands are tried in order when no command is configured.
var ttsCommands = []string{"say", "espeak", "spd-say"}

const (
	toneDuration  = 600 * time.Millisecond
	checkToneFreq = 440
	checkToneGap  = 300 * time.Millisecond
)

// audioPlayer presents dichotic cues. It prefers speech synthesis via an
// external command and falls back to panned tones, whose frequencies
// identify the words.
type audioPlayer struct {
	once    sync.Once
	initErr error

	sr      beep.SampleRate
	enabled bool
	ttsCmd  string
}

func newAudioPlayer(opts *config.PlayConfig) *audioPlayer {
	return &audioPlayer{
		sr:      beep.SampleRate(44100),
		enabled: opts.Sound,
		ttsCmd:  opts.TTSCmd,
	}
}

func (a *audioPlayer) init() error {
	a.once.Do(func() {
		bufferSize := 10

		a.initErr = speaker.Init(
			a.sr,
			a.sr.N(time.Duration(int(time.Second)/bufferSize)),
		)
	})

	return a.initErr
}

// speakCmd resolves the command used to pronounce a word.
func (a *audioPlayer) speakCmd(word string) (*exec.Cmd, error) {
	if a.ttsCmd != "" {
		cmdSlice, err := shellquote.Split(a.ttsCmd)
		if err != nil || len(cmdSlice) == 0 {
			return nil, errNoTTS
		}

		//nolint:gosec // the command is user-configured
		return exec.Command(cmdSlice[0], append(cmdSlice[1:], word)...), nil
	}

	for _, name := range ttsCommands {
		path, err := exec.LookPath(name)
		if err == nil {
			return exec.Command(path, word), nil
		}
	}

	return nil, errNoTTS
}

// speakPair pronounces both words at once through two concurrent
// processes, approximating simultaneous presentation.
func (a *audioPlayer) speakPair(left, right string) error {
	leftCmd, err := a.speakCmd(left)
	if err != nil {
		return err
	}

	rightCmd, err := a.speakCmd(right)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		_ = leftCmd.Run()
	}()

	go func() {
		defer wg.Done()
		_ = rightCmd.Run()
	}()

	wg.Wait()

	return nil
}

// tone builds a pure tone of the given frequency, hard-panned to one ear.
func (a *audioPlayer) tone(
	freq float64,
	pan float64,
	d time.Duration,
) (beep.Streamer, error) {
	s, err := generators.SineTone(a.sr, freq)
	if err != nil {
		return nil, err
	}

	return &effects.Pan{
		Streamer: beep.Take(a.sr.N(d), s),
		Pan:      pan,
	}, nil
}

// play blocks until the given streamer has been consumed.
func (a *audioPlayer) play(s beep.Streamer) {
	done := make(chan bool)

	speaker.Play(beep.Seq(s, beep.Callback(func() {
		done <- true
	})))

	<-done
}

// playCue presents one dichotic trial's audio.
func (a *audioPlayer) playCue(cue *trial.AudioCue) {
	if !a.enabled || cue == nil {
		return
	}

	err := a.speakPair(cue.Left, cue.Right)
	if err == nil {
		return
	}

	if a.init() != nil {
		return
	}

	left, err := a.tone(cue.LeftFreq, -1, toneDuration)
	if err != nil {
		return
	}

	right, err := a.tone(cue.RightFreq, 1, toneDuration)
	if err != nil {
		return
	}

	a.play(beep.Mix(left, right))
}

// playCheck plays a tone in the left ear, a brief pause, then one in the
// right ear.
func (a *audioPlayer) playCheck() {
	if !a.enabled || a.init() != nil {
		return
	}

	left, err := a.tone(checkToneFreq, -1, toneDuration)
	if err != nil {
		return
	}

	right, err := a.tone(checkToneFreq, 1, toneDuration)
	if err != nil {
		return
	}

	gap := beep.Silence(a.sr.N(checkToneGap))

	a.play(beep.Seq(left, gap, right))
}
