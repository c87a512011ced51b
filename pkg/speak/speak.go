package astispeak

import (
	"context"
	"runtime"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Engines
const (
	EngineESpeak = "espeak"
	EngineSAPI   = "sapi"
	EngineSay    = "say"
)

// Errors
var (
	ErrInterrupted    = errors.New("astispeak: interrupted")
	ErrNotInitialized = errors.New("astispeak: the Init() method should be called before running anything else")
)

// Voice represents a voice exposed by the host speech engine.
// A nil Languages or an empty Gender means the platform didn't report it.
type Voice struct {
	Gender    string
	ID        string
	Languages []string
	Name      string
}

// Options represents speaker options.
type Options struct {
	BinaryDirPath string `toml:"binary_dir_path"`
	BinaryName    string `toml:"binary_name"`
	Engine        string `toml:"engine"`
}

// Zero rate, empty voice and negative volume mean engine defaults
type properties struct {
	rate   int
	voice  string
	volume float64
}

type backend interface {
	close() error
	init() error
	save(ctx context.Context, text, path string, p properties) error
	say(ctx context.Context, text string, p properties) error
	voices() ([]Voice, error)
}

// Speaker represents a handle to the host speech engine
type Speaker struct {
	b          backend
	newBackend func(o Options) (backend, error)
	o          Options
	p          properties
}

// New creates a new speaker
func New(o Options) *Speaker {
	return &Speaker{
		newBackend: newBackend,
		o:          o,
		p:          properties{volume: -1},
	}
}

// DefaultEngine returns the engine used on the current platform when none is configured
func DefaultEngine() string {
	switch runtime.GOOS {
	case "darwin":
		return EngineSay
	case "windows":
		return EngineSAPI
	default:
		return EngineESpeak
	}
}

func newBackend(o Options) (b backend, err error) {
	e := strings.ToLower(o.Engine)
	if e == "" {
		e = DefaultEngine()
	}
	switch e {
	case EngineESpeak:
		b = newESpeak(o, execute)
	case EngineSay:
		b = newSay(o, execute)
	case EngineSAPI:
		b = newSAPI()
	default:
		err = errors.Errorf("astispeak: unknown engine %s", o.Engine)
	}
	return
}

// Init initializes the speaker
func (s *Speaker) Init() (err error) {
	// Create backend
	var b backend
	if b, err = s.newBackend(s.o); err != nil {
		err = errors.Wrap(err, "astispeak: creating backend failed")
		return
	}

	// Init backend
	astilog.Debug("astispeak: initializing backend")
	if err = b.init(); err != nil {
		// Release what has been acquired before the failure
		if errClose := b.close(); errClose != nil {
			astilog.Error(errors.Wrap(errClose, "astispeak: closing backend failed"))
		}
		err = errors.Wrap(err, "astispeak: initializing backend failed")
		return
	}
	s.b = b
	return
}

// Close implements the io.Closer interface
func (s *Speaker) Close() (err error) {
	if s.b == nil {
		return
	}
	astilog.Debug("astispeak: closing backend")
	if err = s.b.close(); err != nil {
		err = errors.Wrap(err, "astispeak: closing backend failed")
		return
	}
	s.b = nil
	return
}

// Voices returns the voices available on the host
func (s *Speaker) Voices() (vs []Voice, err error) {
	if s.b == nil {
		err = ErrNotInitialized
		return
	}
	if vs, err = s.b.voices(); err != nil {
		err = errors.Wrap(err, "astispeak: listing voices failed")
		return
	}
	return
}

// SetVoice sets the voice used by next calls
func (s *Speaker) SetVoice(id string) error {
	if s.b == nil {
		return ErrNotInitialized
	}
	if id == "" {
		return errors.New("astispeak: empty voice id")
	}
	astilog.Debugf("astispeak: setting voice to %s", id)
	s.p.voice = id
	return nil
}

// SetRate sets the speech rate in words per minute
func (s *Speaker) SetRate(wpm int) error {
	if s.b == nil {
		return ErrNotInitialized
	}
	if wpm <= 0 {
		return errors.Errorf("astispeak: invalid rate %d", wpm)
	}
	astilog.Debugf("astispeak: setting rate to %d", wpm)
	s.p.rate = wpm
	return nil
}

// SetVolume sets the volume between 0 and 1
func (s *Speaker) SetVolume(v float64) error {
	if s.b == nil {
		return ErrNotInitialized
	}
	if v < 0 || v > 1 {
		return errors.Errorf("astispeak: invalid volume %v", v)
	}
	astilog.Debugf("astispeak: setting volume to %v", v)
	s.p.volume = v
	return nil
}

// Say says words and blocks until playback is done
func (s *Speaker) Say(ctx context.Context, i string) (err error) {
	if s.b == nil {
		err = ErrNotInitialized
		return
	}
	astilog.Debugf("astispeak: saying %d bytes", len(i))
	if err = s.b.say(ctx, i, s.p); err != nil {
		err = errors.Wrap(err, "astispeak: saying failed")
		return
	}
	return
}

// SaveToFile renders words to an audio file and blocks until rendering is done
func (s *Speaker) SaveToFile(ctx context.Context, i, path string) (err error) {
	if s.b == nil {
		err = ErrNotInitialized
		return
	}
	astilog.Debugf("astispeak: saving %d bytes to %s", len(i), path)
	if err = s.b.save(ctx, i, path, s.p); err != nil {
		err = errors.Wrapf(err, "astispeak: saving to %s failed", path)
		return
	}
	return
}
