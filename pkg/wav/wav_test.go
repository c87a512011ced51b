package astiwav

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, numSamples, sampleRate int) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	e := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	require.NoError(t, e.Write(&audio.IntBuffer{
		Data: make([]int, numSamples),
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
	}))
	require.NoError(t, e.Close())
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	// Valid
	p := filepath.Join(dir, "report.wav")
	writeWav(t, p, 22050*2, 22050)
	i, err := Inspect(p)
	require.NoError(t, err)
	assert.Equal(t, 16, i.BitDepth)
	assert.Equal(t, 1, i.NumChannels)
	assert.Equal(t, 22050, i.SampleRate)
	assert.InDelta(t, float64(2*time.Second), float64(i.Duration), float64(10*time.Millisecond))
	assert.Equal(t, "2s, 22050 Hz, 16 bits, 1 channel(s)", i.String())

	// Invalid
	p = filepath.Join(dir, "report.aiff")
	require.NoError(t, ioutil.WriteFile(p, []byte("FORM0000AIFF"), 0666))
	_, err = Inspect(p)
	assert.Equal(t, ErrInvalidFile, errors.Cause(err))

	// Missing
	_, err = Inspect(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)
}
