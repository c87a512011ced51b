package astipdf2speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipdf2speech/pkg/pdf"
	"github.com/asticode/go-astipdf2speech/pkg/speak"
	"github.com/asticode/go-astipdf2speech/pkg/wav"
	"github.com/pkg/errors"
)

const previewLength = 200

// Engine represents the host speech engine
type Engine interface {
	io.Closer
	SaveToFile(ctx context.Context, text, path string) error
	Say(ctx context.Context, text string) error
	SetRate(wpm int) error
	SetVoice(id string) error
	SetVolume(v float64) error
	Voices() ([]astispeak.Voice, error)
}

// EngineFunc creates an initialized engine
type EngineFunc func() (Engine, error)

// SpeakerEngineFunc creates engines backed by the host speech platform
func SpeakerEngineFunc(o astispeak.Options) EngineFunc {
	return func() (e Engine, err error) {
		s := astispeak.New(o)
		if err = s.Init(); err != nil {
			err = errors.Wrap(err, "astipdf2speech: initializing speaker failed")
			return
		}
		return s, nil
	}
}

// Reader reads pdfs aloud
type Reader struct {
	extract   func(path string) (astipdf.Document, error)
	in        *bufio.Reader
	name      string
	newEngine EngineFunc
	out       io.Writer
}

// New creates a new reader
func New(name string, fn EngineFunc, in io.Reader, out io.Writer) *Reader {
	return &Reader{
		extract:   astipdf.Extract,
		in:        bufio.NewReader(in),
		name:      name,
		newEngine: fn,
		out:       out,
	}
}

// Run runs a command
func (r *Reader) Run(ctx context.Context, c Command) (err error) {
	switch c.Name {
	case CommandHelp:
		PrintUsage(r.out, r.name)
	case CommandVoices:
		if err = r.listVoices(); err != nil {
			err = errors.Wrap(err, "astipdf2speech: listing voices failed")
			return
		}
	case CommandSave, CommandSpeak:
		if err = r.read(ctx, c); err != nil {
			err = errors.Wrapf(err, "astipdf2speech: reading %s failed", c.Path)
			return
		}
	default:
		err = errors.Errorf("astipdf2speech: unknown command %s", c.Name)
	}
	return
}

func (r *Reader) withEngine(fn func(e Engine) error) (err error) {
	// Create engine
	var e Engine
	if e, err = r.newEngine(); err != nil {
		err = errors.Wrap(err, "astipdf2speech: creating engine failed")
		return
	}

	// Make sure the engine is closed
	defer func() {
		if errClose := e.Close(); errClose != nil {
			astilog.Error(errors.Wrap(errClose, "astipdf2speech: closing engine failed"))
		}
	}()

	// Custom
	return fn(e)
}

func (r *Reader) listVoices() error {
	return r.withEngine(func(e Engine) error {
		return ListVoices(e, r.out)
	})
}

func (r *Reader) read(ctx context.Context, c Command) (err error) {
	// Check path
	if _, err = os.Stat(c.Path); err != nil {
		if os.IsNotExist(err) {
			err = FileNotFoundError{Path: c.Path}
			return
		}
		err = errors.Wrapf(err, "astipdf2speech: stating %s failed", c.Path)
		return
	}

	// Extract text
	var text string
	if text, err = r.extractText(c.Path); err != nil {
		return
	}

	// Speak or save
	return r.withEngine(func(e Engine) (err error) {
		// Configure voice
		if err = ConfigureVoice(e, r.out); err != nil {
			err = errors.Wrap(err, "astipdf2speech: configuring voice failed")
			return
		}

		// Save
		if c.Name == CommandSave {
			if err = r.save(ctx, e, text, c.Path); err != nil {
				err = errors.Wrap(err, "astipdf2speech: saving failed")
				return
			}
			return
		}

		// Speak
		if err = r.speak(ctx, e, text); err != nil {
			err = errors.Wrap(err, "astipdf2speech: speaking failed")
			return
		}
		return
	})
}

func (r *Reader) extractText(path string) (text string, err error) {
	// Extract
	fmt.Fprintf(r.out, "Reading PDF: %s\n", path)
	var d astipdf.Document
	if d, err = r.extract(path); err != nil {
		err = errors.Wrapf(err, "astipdf2speech: extracting text from %s failed", path)
		return
	}
	fmt.Fprintf(r.out, "PDF has %d pages.\n", d.NumPages)

	// No text
	if d.IsEmpty() {
		err = ErrEmptyExtraction
		return
	}

	// Preview
	fmt.Fprintf(r.out, "\nPreview of text:\n%s...\n", Preview(d.Text))
	text = d.Text
	return
}

// Preview returns the beginning of a text
func Preview(text string) string {
	rs := []rune(text)
	if len(rs) > previewLength {
		rs = rs[:previewLength]
	}
	return strings.TrimSpace(string(rs))
}

// confirm blocks until the user answers or ctx is cancelled. Only "y" confirms.
func (r *Reader) confirm(ctx context.Context, question string) (ok bool, err error) {
	// Ask
	fmt.Fprint(r.out, question)

	// Read answer
	type answer struct {
		err  error
		line string
	}
	ch := make(chan answer, 1)
	go func() {
		l, err := r.in.ReadString('\n')
		ch <- answer{err: err, line: l}
	}()

	// Wait
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			err = errors.Wrap(a.err, "astipdf2speech: reading answer failed")
			return
		}
		ok = strings.TrimRight(a.line, "\r\n") == "y"
	}
	return
}

func (r *Reader) speak(ctx context.Context, e Engine, text string) (err error) {
	// Confirm
	var ok bool
	if ok, err = r.confirm(ctx, "\nStart speaking? (y/n): "); err != nil {
		err = errors.Wrap(err, "astipdf2speech: confirming failed")
		return
	} else if !ok {
		err = ErrSpeechCancelled
		return
	}

	// Say
	fmt.Fprintln(r.out, "Starting speech... (Press Ctrl+C to stop)")
	if err = e.Say(ctx, text); err != nil {
		err = errors.Wrap(err, "astipdf2speech: saying failed")
		return
	}
	fmt.Fprintln(r.out, "Finished speaking!")
	return
}

// OutputPath returns the audio file name of a pdf, in the current directory
func OutputPath(pdfPath string) string {
	b := filepath.Base(pdfPath)

	// Leading dots don't start an extension
	n := strings.TrimLeft(b, ".")
	if ext := filepath.Ext(n); ext != "" {
		b = b[:len(b)-len(ext)]
	}
	return b + ".wav"
}

func (r *Reader) save(ctx context.Context, e Engine, text, pdfPath string) (err error) {
	// Save
	p := OutputPath(pdfPath)
	fmt.Fprintf(r.out, "Converting PDF to audio file: %s\n", p)
	if err = e.SaveToFile(ctx, text, p); err != nil {
		err = errors.Wrapf(err, "astipdf2speech: saving to %s failed", p)
		return
	}

	// Get absolute path
	if p, err = filepath.Abs(p); err != nil {
		err = errors.Wrapf(err, "astipdf2speech: getting absolute path of %s failed", p)
		return
	}
	fmt.Fprintf(r.out, "Audio saved successfully to: %s\n", p)

	// Inspect
	i, errInspect := astiwav.Inspect(p)
	if errInspect != nil {
		astilog.Debugf("astipdf2speech: inspecting %s failed: %s", p, errInspect)
		return
	}
	fmt.Fprintf(r.out, "Audio format: %s\n", i)
	return
}
