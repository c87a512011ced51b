package astipdf

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedPager struct {
	err   error
	pages []string
}

func (p mockedPager) NumPage() int { return len(p.pages) }

func (p mockedPager) PageText(n int) (string, error) {
	if p.err != nil && n == len(p.pages) {
		return "", p.err
	}
	return p.pages[n-1], nil
}

func TestExtract(t *testing.T) {
	// Pages are concatenated in order without separator
	d, err := extract(mockedPager{pages: []string{"Hello ", "", "world", "!"}})
	require.NoError(t, err)
	assert.Equal(t, Document{NumPages: 4, Text: "Hello world!"}, d)
	assert.False(t, d.IsEmpty())

	// No text
	d, err = extract(mockedPager{pages: []string{"", " \n\t", ""}})
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumPages)
	assert.True(t, d.IsEmpty())

	// No pages
	d, err = extract(mockedPager{})
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	// Error
	errPage := errors.New("invalid page")
	_, err = extract(mockedPager{err: errPage, pages: []string{"a", "b"}})
	assert.Equal(t, errPage, errors.Cause(err))
}

// buildPDF builds a minimal pdf with one page per text, an empty text leading to an empty page
func buildPDF(pages []string) []byte {
	// Objects
	var kids []string
	for idx := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*idx))
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for idx, p := range pages {
		objs = append(objs, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*idx))
		var c string
		if p != "" {
			c = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", p)
		}
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c))
	}

	// Body
	b := &bytes.Buffer{}
	b.WriteString("%PDF-1.4\n")
	var offsets []int
	for idx, o := range objs {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(b, "%d 0 obj\n%s\nendobj\n", idx+1, o)
	}

	// Xref
	x := b.Len()
	fmt.Fprintf(b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, o := range offsets {
		fmt.Fprintf(b, "%010d 00000 n \n", o)
	}
	fmt.Fprintf(b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, x)
	return b.Bytes()
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()

	// Text
	p := filepath.Join(dir, "report.pdf")
	require.NoError(t, ioutil.WriteFile(p, buildPDF([]string{"Hello", "", "World"}), 0666))
	d, err := Extract(p)
	require.NoError(t, err)
	assert.Equal(t, 3, d.NumPages)
	assert.Contains(t, d.Text, "Hello")
	assert.Contains(t, d.Text, "World")
	assert.True(t, strings.Index(d.Text, "Hello") < strings.Index(d.Text, "World"))

	// No text
	p = filepath.Join(dir, "empty.pdf")
	require.NoError(t, ioutil.WriteFile(p, buildPDF([]string{"", ""}), 0666))
	d, err = Extract(p)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NumPages)
	assert.True(t, d.IsEmpty())

	// Malformed
	p = filepath.Join(dir, "malformed.pdf")
	require.NoError(t, ioutil.WriteFile(p, []byte("not a pdf"), 0666))
	_, err = Extract(p)
	assert.Error(t, err)

	// Missing
	_, err = Extract(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}
