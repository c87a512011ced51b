package astiwav

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// ErrInvalidFile is returned when a file is not a valid wav file
var ErrInvalidFile = errors.New("astiwav: invalid wav file")

// Info represents wav file information
type Info struct {
	BitDepth    int
	Duration    time.Duration
	NumChannels int
	SampleRate  int
}

// String implements the fmt.Stringer interface
func (i Info) String() string {
	return fmt.Sprintf("%s, %d Hz, %d bits, %d channel(s)", i.Duration.Round(100*time.Millisecond), i.SampleRate, i.BitDepth, i.NumChannels)
}

// Inspect reads a wav file header
func Inspect(path string) (i Info, err error) {
	// Open file
	var f *os.File
	if f, err = os.Open(path); err != nil {
		err = errors.Wrapf(err, "astiwav: opening %s failed", path)
		return
	}
	defer f.Close()

	// Create decoder
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		err = errors.Wrapf(ErrInvalidFile, "astiwav: checking %s failed", path)
		return
	}

	// Forward to pcm data
	if err = d.FwdToPCM(); err != nil {
		err = errors.Wrapf(err, "astiwav: forwarding to pcm data of %s failed", path)
		return
	}

	// Get duration
	if d.AvgBytesPerSec > 0 {
		i.Duration = time.Duration(float64(d.PCMSize) / float64(d.AvgBytesPerSec) * float64(time.Second))
	}

	// Update info
	i.BitDepth = int(d.BitDepth)
	i.NumChannels = int(d.NumChans)
	i.SampleRate = int(d.SampleRate)
	return
}
