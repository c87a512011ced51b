package astipdf2speech

import (
	"fmt"
	"io"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipdf2speech/pkg/speak"
	"github.com/pkg/errors"
)

// Speech settings, applied whatever the selected voice
const (
	SpeechRate   = 150
	SpeechVolume = 0.9
)

// Some platforms only reveal a voice's gender through its name
var femaleVoiceNames = []string{"zira", "susan", "serena", "hazel"}

func isEnglish(v astispeak.Voice) bool {
	for _, l := range v.Languages {
		if strings.Contains(strings.ToLower(l), "en") {
			return true
		}
	}
	return false
}

func isFemale(v astispeak.Voice) bool {
	if strings.ToLower(v.Gender) == "female" {
		return true
	}
	n := strings.ToLower(v.Name)
	for _, f := range femaleVoiceNames {
		if strings.Contains(n, f) {
			return true
		}
	}
	return false
}

// SelectVoice returns the first english female voice
func SelectVoice(vs []astispeak.Voice) (v astispeak.Voice, ok bool) {
	for _, v = range vs {
		if isEnglish(v) && isFemale(v) {
			ok = true
			return
		}
	}
	v = astispeak.Voice{}
	return
}

// ConfigureVoice selects the voice, the rate and the volume of an engine
func ConfigureVoice(e Engine, w io.Writer) (err error) {
	// Get voices
	var vs []astispeak.Voice
	if vs, err = e.Voices(); err != nil {
		err = errors.Wrap(err, "astipdf2speech: getting voices failed")
		return
	}

	// Select voice
	if v, ok := SelectVoice(vs); ok {
		fmt.Fprintln(w, "Found an English female voice.")
		astilog.Debugf("astipdf2speech: selected voice %s (%s)", v.Name, v.ID)
		if err = e.SetVoice(v.ID); err != nil {
			err = errors.Wrapf(err, "astipdf2speech: setting voice %s failed", v.ID)
			return
		}
	} else {
		fmt.Fprintln(w, "Could not find a dedicated English female voice. Using system default.")
	}

	// Set rate
	if err = e.SetRate(SpeechRate); err != nil {
		err = errors.Wrap(err, "astipdf2speech: setting rate failed")
		return
	}

	// Set volume
	if err = e.SetVolume(SpeechVolume); err != nil {
		err = errors.Wrap(err, "astipdf2speech: setting volume failed")
		return
	}
	return
}

// ListVoices prints the voices available on the host
func ListVoices(e Engine, w io.Writer) (err error) {
	// Get voices
	var vs []astispeak.Voice
	if vs, err = e.Voices(); err != nil {
		err = errors.Wrap(err, "astipdf2speech: getting voices failed")
		return
	}

	// Print
	fmt.Fprintln(w, "Available Text-to-Speech Voices:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for idx, v := range vs {
		g := "N/A"
		if v.Gender != "" {
			g = v.Gender
		}
		ls := "N/A"
		if v.Languages != nil {
			ls = strings.Join(v.Languages, ", ")
		}
		fmt.Fprintf(w, "  %d: %s\n", idx, v.Name)
		fmt.Fprintf(w, "     - Gender: %s, Languages: %s\n", g, ls)
	}
	return
}
