package astipdf2speech

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	assert.Equal(t, Command{Name: CommandHelp}, ParseCommand(nil))
	assert.Equal(t, Command{Name: CommandHelp}, ParseCommand([]string{"-h"}))
	assert.Equal(t, Command{Name: CommandHelp}, ParseCommand([]string{"--help"}))
	assert.Equal(t, Command{Name: CommandVoices}, ParseCommand([]string{"voices"}))
	assert.Equal(t, Command{Name: CommandSpeak, Path: "report.pdf"}, ParseCommand([]string{"report.pdf"}))
	assert.Equal(t, Command{Name: CommandSpeak, Path: "report.pdf"}, ParseCommand([]string{"report.pdf", "other"}))
	assert.Equal(t, Command{Name: CommandSave, Path: "report.pdf"}, ParseCommand([]string{"report.pdf", "save"}))
	assert.Equal(t, Command{Name: CommandSave, Path: "report.pdf"}, ParseCommand([]string{"report.pdf", "SAVE"}))
}

func TestSplitArgs(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("c", "", "")
	fs.Bool("v", false, "")
	for _, c := range []struct {
		args        []string
		flags       []string
		positionals []string
	}{
		{},
		{args: []string{"report.pdf"}, flags: []string{}, positionals: []string{"report.pdf"}},
		{args: []string{"-c", "c.toml", "report.pdf", "save"}, flags: []string{"-c", "c.toml"}, positionals: []string{"report.pdf", "save"}},
		{args: []string{"--c=c.toml", "-v", "voices"}, flags: []string{"--c=c.toml", "-v"}, positionals: []string{"voices"}},
		{args: []string{"-v", "-x"}, flags: []string{"-v"}, positionals: []string{"-x"}},
		{args: []string{"-report.pdf", "save"}, flags: []string{}, positionals: []string{"-report.pdf", "save"}},
		{args: []string{"-h"}, flags: []string{}, positionals: []string{"-h"}},
		{args: []string{"--help"}, flags: []string{}, positionals: []string{"--help"}},
		{args: []string{"-v", "--", "-v"}, flags: []string{"-v"}, positionals: []string{"-v"}},
		{args: []string{"-", "save"}, flags: []string{}, positionals: []string{"-", "save"}},
	} {
		fl, ps := SplitArgs(fs, c.args)
		assert.Equal(t, len(c.flags), len(fl), c.args)
		assert.Equal(t, len(c.positionals), len(ps), c.args)
		if len(c.flags) > 0 {
			assert.Equal(t, c.flags, fl, c.args)
		}
		if len(c.positionals) > 0 {
			assert.Equal(t, c.positionals, ps, c.args)
		}
	}

	// Positionals starting with "-" are pdf paths
	_, ps := SplitArgs(fs, []string{"-v", "-x"})
	assert.Equal(t, Command{Name: CommandSpeak, Path: "-x"}, ParseCommand(ps))
}

func TestPrintUsage(t *testing.T) {
	w := &bytes.Buffer{}
	PrintUsage(w, "astipdf2speech")
	assert.Equal(t, `PDF to Speech Reader
==============================
Usage:
  astipdf2speech <pdf_file>         - Read PDF aloud
  astipdf2speech <pdf_file> save    - Save to audio file
  astipdf2speech voices             - List available voices
`, w.String())
}
