// Package audio plays the completion sound through the system speaker.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/bft-labs/officetimer/internal/ports"
)

// resampleQuality is passed to beep.Resample when a file's sample rate
// differs from the speaker's.
const resampleQuality = 4

// Player loops decoded sound files on the speaker. Decoded files are
// kept in memory, so repeated notifications do not touch the disk.
// The speaker is initialised with the sample rate of the first file.
type Player struct {
	logger ports.Logger
	volume float64

	mu         sync.Mutex
	buffers    map[string]*beep.Buffer
	sampleRate beep.SampleRate
	ctrl       *beep.Ctrl
}

// NewPlayer creates a player. volume is relative to the file's level in
// powers of two; 0 plays the file unchanged.
func NewPlayer(logger ports.Logger, volume float64) *Player {
	return &Player{
		logger:  logger,
		volume:  volume,
		buffers: make(map[string]*beep.Buffer),
	}
}

// Loop starts playing path repeatedly, replacing any sound already
// playing.
func (p *Player) Loop(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, err := p.load(path)
	if err != nil {
		return err
	}
	if err := p.initSpeaker(buf.Format().SampleRate); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	var s beep.Streamer = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	if rate := buf.Format().SampleRate; rate != p.sampleRate {
		s = beep.Resample(resampleQuality, rate, p.sampleRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   p.volume,
	}}

	p.stopLocked()
	p.ctrl = ctrl
	speaker.Play(ctrl)

	p.logger.Debug("sound looping",
		ports.String("path", path),
		ports.Int("sample_rate", int(buf.Format().SampleRate)),
	)
	return nil
}

// Stop silences the sound started by Loop.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	p.ctrl = nil
}

func (p *Player) initSpeaker(rate beep.SampleRate) error {
	if p.sampleRate != 0 {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	p.sampleRate = rate
	return nil
}

// load decodes path into memory, or returns the cached buffer.
func (p *Player) load(path string) (*beep.Buffer, error) {
	if buf, ok := p.buffers[path]; ok {
		return buf, nil
	}

	buf, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	p.buffers[path] = buf
	return buf, nil
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		// mp3.Decode takes ownership of f.
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported sound format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}
