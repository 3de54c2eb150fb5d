package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/officetimer/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...ports.Field) {}
func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}

func writeWAV(t *testing.T, path string, samples int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(samples), format))
}

func TestPlayer_LoadCachesDecodedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.wav")
	writeWAV(t, path, 4410)

	p := NewPlayer(nopLogger{}, 0)
	buf, err := p.load(path)
	require.NoError(t, err)
	assert.Equal(t, 4410, buf.Len())
	assert.Equal(t, beep.SampleRate(44100), buf.Format().SampleRate)

	require.NoError(t, os.Remove(path))
	cached, err := p.load(path)
	require.NoError(t, err)
	assert.Same(t, buf, cached)
}

func TestPlayer_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "timer.ogg")
	require.NoError(t, os.WriteFile(bogus, []byte("OggS"), 0o644))
	garbage := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not a wav file"), 0o644))

	tests := []struct {
		name string
		path string
		is   error
	}{
		{"missing file", filepath.Join(dir, "missing.mp3"), os.ErrNotExist},
		{"unsupported format", bogus, nil},
		{"corrupt file", garbage, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(nopLogger{}, 0)
			err := p.Loop(tt.path)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.Empty(t, p.buffers)
		})
	}
}

func TestPlayer_StopWithoutLoop(t *testing.T) {
	p := NewPlayer(nopLogger{}, 0)
	assert.NotPanics(t, p.Stop)
}

func TestBeeper(t *testing.T) {
	t.Run("system beep", func(t *testing.T) {
		var bell bytes.Buffer
		b := &Beeper{bell: &bell, beep: func(float64, int) error { return nil }}
		require.NoError(t, b.Beep())
		assert.Empty(t, bell.String())
	})

	t.Run("falls back to bell", func(t *testing.T) {
		var bell bytes.Buffer
		b := &Beeper{bell: &bell, beep: func(float64, int) error { return errors.New("no device") }}
		require.NoError(t, b.Beep())
		assert.Equal(t, "\a", bell.String())
	})

	t.Run("no bell", func(t *testing.T) {
		b := &Beeper{beep: func(float64, int) error { return errors.New("no device") }}
		assert.EqualError(t, b.Beep(), "no device")
	})
}
