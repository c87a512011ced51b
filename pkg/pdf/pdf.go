package astipdf

import (
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// Document represents the text content of a pdf
type Document struct {
	NumPages int
	Text     string
}

// IsEmpty checks whether no text has been extracted
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// pager abstracts a pdf reader, pages are 1-indexed
type pager interface {
	NumPage() int
	PageText(n int) (string, error)
}

type reader struct {
	r *pdf.Reader
}

func (r reader) NumPage() int { return r.r.NumPage() }

func (r reader) PageText(n int) (t string, err error) {
	p := r.r.Page(n)
	if p.V.IsNull() {
		return
	}
	if t, err = p.GetPlainText(nil); err != nil {
		err = errors.Wrapf(err, "astipdf: getting plain text of page %d failed", n)
		return
	}
	return
}

// Extract extracts the text of a pdf, page after page
func Extract(path string) (d Document, err error) {
	// The parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("astipdf: parsing %s panicked: %v", path, r)
		}
	}()

	// Open
	astilog.Debugf("astipdf: opening %s", path)
	f, r, err := pdf.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "astipdf: opening %s failed", path)
		return
	}
	defer f.Close()

	// Extract
	if d, err = extract(reader{r: r}); err != nil {
		err = errors.Wrapf(err, "astipdf: extracting %s failed", path)
		return
	}
	return
}

func extract(p pager) (d Document, err error) {
	// Loop through pages
	d.NumPages = p.NumPage()
	var b strings.Builder
	for n := 1; n <= d.NumPages; n++ {
		// Get text
		var t string
		if t, err = p.PageText(n); err != nil {
			err = errors.Wrapf(err, "astipdf: getting text of page %d failed", n)
			return
		}
		astilog.Debugf("astipdf: page %d has %d bytes of text", n, len(t))

		// Append
		b.WriteString(t)
	}
	d.Text = b.String()
	return
}
