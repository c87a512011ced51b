package astispeak

import (
	"context"
	"math"

	"github.com/asticode/go-astilog"
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/pkg/errors"
)

// sapi drives a SAPI.SpVoice ole object
type sapi struct {
	oleInitialized   bool
	windowsIDispatch *ole.IDispatch
	windowsIUnknown  *ole.IUnknown
}

func newSAPI() *sapi {
	return &sapi{}
}

func (s *sapi) init() (err error) {
	// Initialize ole
	astilog.Debug("astispeak: initializing ole")
	if err = ole.CoInitialize(0); err != nil {
		err = errors.Wrap(err, "astispeak: initializing ole failed")
		return
	}
	s.oleInitialized = true

	// Create SAPI.SpVoice object
	astilog.Debug("astispeak: creating SAPI.SpVoice ole object")
	if s.windowsIUnknown, err = oleutil.CreateObject("SAPI.SpVoice"); err != nil {
		err = errors.Wrap(err, "astispeak: creating SAPI.SpVoice ole object failed")
		return
	}

	// Get IDispatch
	astilog.Debug("astispeak: getting ole IDispatch")
	if s.windowsIDispatch, err = s.windowsIUnknown.QueryInterface(ole.IID_IDispatch); err != nil {
		err = errors.Wrap(err, "astispeak: getting ole IDispatch failed")
		return
	}
	return
}

func (s *sapi) close() (err error) {
	// Release IDispatch
	if s.windowsIDispatch != nil {
		astilog.Debug("astispeak: releasing IDispatch")
		s.windowsIDispatch.Release()
		s.windowsIDispatch = nil
	}

	// Release IUnknown
	if s.windowsIUnknown != nil {
		astilog.Debug("astispeak: releasing IUnknown")
		s.windowsIUnknown.Release()
		s.windowsIUnknown = nil
	}

	// Uninitialize ole
	if s.oleInitialized {
		astilog.Debug("astispeak: uninitializing ole")
		ole.CoUninitialize()
		s.oleInitialized = false
	}
	return
}

// tokens loops through the voice tokens until fn returns false
func (s *sapi) tokens(fn func(t *ole.IDispatch) (bool, error)) (err error) {
	// Get tokens
	var v *ole.VARIANT
	if v, err = oleutil.CallMethod(s.windowsIDispatch, "GetVoices"); err != nil {
		err = errors.Wrap(err, "astispeak: calling GetVoices on IDispatch failed")
		return
	}
	ts := v.ToIDispatch()
	defer ts.Release()

	// Get count
	var c *ole.VARIANT
	if c, err = oleutil.GetProperty(ts, "Count"); err != nil {
		err = errors.Wrap(err, "astispeak: getting tokens count failed")
		return
	}

	// Loop through tokens
	for idx := 0; idx < int(c.Val); idx++ {
		// Get token
		var t *ole.VARIANT
		if t, err = oleutil.CallMethod(ts, "Item", idx); err != nil {
			err = errors.Wrapf(err, "astispeak: getting token #%d failed", idx)
			return
		}

		// Callback
		d := t.ToIDispatch()
		next, errFn := fn(d)
		d.Release()
		if errFn != nil {
			err = errors.Wrapf(errFn, "astispeak: handling token #%d failed", idx)
			return
		}
		if !next {
			return
		}
	}
	return
}

func tokenAttribute(t *ole.IDispatch, name string) string {
	v, err := oleutil.CallMethod(t, "GetAttribute", name)
	if err != nil {
		return ""
	}
	return v.ToString()
}

func (s *sapi) voices() (vs []Voice, err error) {
	if err = s.tokens(func(t *ole.IDispatch) (bool, error) {
		// Get id
		id, err := oleutil.GetProperty(t, "Id")
		if err != nil {
			return false, errors.Wrap(err, "astispeak: getting token id failed")
		}

		// Get description
		d, err := oleutil.CallMethod(t, "GetDescription")
		if err != nil {
			return false, errors.Wrap(err, "astispeak: getting token description failed")
		}

		// Append voice
		v := Voice{
			Gender: tokenAttribute(t, "Gender"),
			ID:     id.ToString(),
			Name:   d.ToString(),
		}
		if a := tokenAttribute(t, "Language"); a != "" {
			v.Languages = sapiLanguages(a)
		}
		vs = append(vs, v)
		return true, nil
	}); err != nil {
		err = errors.Wrap(err, "astispeak: looping through tokens failed")
		return
	}
	return
}

func (s *sapi) apply(p properties) (err error) {
	// Voice
	if p.voice != "" {
		var found bool
		if err = s.tokens(func(t *ole.IDispatch) (bool, error) {
			id, err := oleutil.GetProperty(t, "Id")
			if err != nil {
				return false, errors.Wrap(err, "astispeak: getting token id failed")
			}
			if id.ToString() != p.voice {
				return true, nil
			}
			found = true
			if _, err = oleutil.PutPropertyRef(s.windowsIDispatch, "Voice", t); err != nil {
				return false, errors.Wrap(err, "astispeak: putting voice failed")
			}
			return false, nil
		}); err != nil {
			err = errors.Wrap(err, "astispeak: setting voice failed")
			return
		}
		if !found {
			err = errors.Errorf("astispeak: unknown voice %s", p.voice)
			return
		}
	}

	// Rate
	if p.rate > 0 {
		if _, err = oleutil.PutProperty(s.windowsIDispatch, "Rate", int32(sapiRate(p.rate))); err != nil {
			err = errors.Wrap(err, "astispeak: putting rate failed")
			return
		}
	}

	// Volume
	if p.volume >= 0 {
		if _, err = oleutil.PutProperty(s.windowsIDispatch, "Volume", int32(math.Round(p.volume*100))); err != nil {
			err = errors.Wrap(err, "astispeak: putting volume failed")
			return
		}
	}
	return
}

// speak speaks asynchronously and polls until done so that ctx can purge playback
func (s *sapi) speak(ctx context.Context, text string) (err error) {
	// Speak
	var v *ole.VARIANT
	if v, err = oleutil.CallMethod(s.windowsIDispatch, "Speak", text, sapiFlagsAsync); err != nil {
		err = errors.Wrap(err, "astispeak: calling Speak on IDispatch failed")
		return
	}

	// Clear variant
	if err = v.Clear(); err != nil {
		err = errors.Wrap(err, "astispeak: clearing variant failed")
		return
	}

	// Wait
	for {
		// Context has been cancelled
		if ctx.Err() != nil {
			if _, errPurge := oleutil.CallMethod(s.windowsIDispatch, "Speak", "", sapiFlagsPurge); errPurge != nil {
				astilog.Error(errors.Wrap(errPurge, "astispeak: purging speech failed"))
			}
			err = ErrInterrupted
			return
		}

		// Wait until done
		var d *ole.VARIANT
		if d, err = oleutil.CallMethod(s.windowsIDispatch, "WaitUntilDone", sapiWaitTimeoutMillis); err != nil {
			err = errors.Wrap(err, "astispeak: calling WaitUntilDone on IDispatch failed")
			return
		}
		if done, ok := d.Value().(bool); ok && done {
			return
		}
	}
}

func (s *sapi) say(ctx context.Context, text string, p properties) (err error) {
	// Init has not been executed
	if s.windowsIDispatch == nil {
		err = ErrNotInitialized
		return
	}

	// Apply properties
	if err = s.apply(p); err != nil {
		err = errors.Wrap(err, "astispeak: applying properties failed")
		return
	}

	// Speak
	if err = s.speak(ctx, text); err != nil {
		err = errors.Wrap(err, "astispeak: speaking failed")
		return
	}
	return
}

func (s *sapi) save(ctx context.Context, text, path string, p properties) (err error) {
	// Init has not been executed
	if s.windowsIDispatch == nil {
		err = ErrNotInitialized
		return
	}

	// Apply properties
	if err = s.apply(p); err != nil {
		err = errors.Wrap(err, "astispeak: applying properties failed")
		return
	}

	// Create format
	var u *ole.IUnknown
	if u, err = oleutil.CreateObject("SAPI.SpAudioFormat"); err != nil {
		err = errors.Wrap(err, "astispeak: creating SAPI.SpAudioFormat ole object failed")
		return
	}
	defer u.Release()
	var f *ole.IDispatch
	if f, err = u.QueryInterface(ole.IID_IDispatch); err != nil {
		err = errors.Wrap(err, "astispeak: getting format IDispatch failed")
		return
	}
	defer f.Release()
	if _, err = oleutil.PutProperty(f, "Type", sapiFormat22kHz16Mono); err != nil {
		err = errors.Wrap(err, "astispeak: putting format type failed")
		return
	}

	// Create stream
	if u, err = oleutil.CreateObject("SAPI.SpFileStream"); err != nil {
		err = errors.Wrap(err, "astispeak: creating SAPI.SpFileStream ole object failed")
		return
	}
	defer u.Release()
	var st *ole.IDispatch
	if st, err = u.QueryInterface(ole.IID_IDispatch); err != nil {
		err = errors.Wrap(err, "astispeak: getting stream IDispatch failed")
		return
	}
	defer st.Release()
	if _, err = oleutil.PutPropertyRef(st, "Format", f); err != nil {
		err = errors.Wrap(err, "astispeak: putting stream format failed")
		return
	}

	// Open stream
	astilog.Debugf("astispeak: opening file stream %s", path)
	if _, err = oleutil.CallMethod(st, "Open", path, sapiStreamCreateWrite, false); err != nil {
		err = errors.Wrapf(err, "astispeak: opening file stream %s failed", path)
		return
	}
	defer func() {
		if _, errClose := oleutil.CallMethod(st, "Close"); errClose != nil {
			astilog.Error(errors.Wrapf(errClose, "astispeak: closing file stream %s failed", path))
		}
	}()

	// Get current output
	var o *ole.VARIANT
	if o, err = oleutil.GetProperty(s.windowsIDispatch, "AudioOutputStream"); err != nil {
		err = errors.Wrap(err, "astispeak: getting audio output stream failed")
		return
	}
	od := o.ToIDispatch()

	// Route output to the stream
	if _, err = oleutil.PutPropertyRef(s.windowsIDispatch, "AudioOutputStream", st); err != nil {
		err = errors.Wrap(err, "astispeak: putting audio output stream failed")
		return
	}
	defer func() {
		if _, errRestore := oleutil.PutPropertyRef(s.windowsIDispatch, "AudioOutputStream", od); errRestore != nil {
			astilog.Error(errors.Wrap(errRestore, "astispeak: restoring audio output stream failed"))
		}
	}()

	// Speak
	if err = s.speak(ctx, text); err != nil {
		err = errors.Wrap(err, "astispeak: speaking failed")
		return
	}
	return
}
