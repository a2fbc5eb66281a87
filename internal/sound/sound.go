// Package sound plays the one-minute warning chime.
package sound

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
)

//go:embed chime.wav
var defaultChime []byte

// Chime is anything that can make the warning noise.
type Chime interface {
	Play()
}

// Silent is the Chime used when sound is disabled or failed to load.
type Silent struct{}

func (Silent) Play() {}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the audio device once, at the rate of the first clip
// played.
func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// Player keeps a decoded wav in memory and plays it through the speaker.
type Player struct {
	buffer *beep.Buffer
	volume float64
	log    logger.Logger
}

// Default returns a Player for the built-in chime.
func Default(volume float64, log logger.Logger) (*Player, error) {
	buffer, err := decode(bytes.NewReader(defaultChime), "built-in chime")
	if err != nil {
		return nil, err
	}
	return newPlayer(buffer, volume, log), nil
}

// Load decodes the wav at path. Volume is in beep's base-2 scale: 0 is
// unchanged, -1 is half, 1 is double. The audio device is opened on the
// first Play.
func Load(path string, volume float64, log logger.Logger) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	defer f.Close()

	buffer, err := decode(f, path)
	if err != nil {
		return nil, err
	}
	return newPlayer(buffer, volume, log), nil
}

func newPlayer(buffer *beep.Buffer, volume float64, log logger.Logger) *Player {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Player{buffer: buffer, volume: volume, log: log}
}

func decode(r io.Reader, name string) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sound: decode %s: %w", name, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("sound: read %s: %w", name, err)
	}
	return buffer, nil
}

// Play starts the chime and returns immediately.
func (p *Player) Play() {
	if err := initSpeaker(p.buffer.Format().SampleRate); err != nil {
		p.log.Warning("sound: speaker: %v", err)
		return
	}
	streamer := p.buffer.Streamer(0, p.buffer.Len())
	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   p.volume,
		Silent:   false,
	})
}

// Length is the duration of the loaded clip.
func (p *Player) Length() time.Duration {
	return p.buffer.Format().SampleRate.D(p.buffer.Len())
}

var (
	_ Chime = (*Player)(nil)
	_ Chime = Silent{}
)
