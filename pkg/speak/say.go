package astispeak

import (
	"bufio"
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var regexpSayVoice = regexp.MustCompile(`^(.+?)\s+([a-zA-Z]{2,3}[_-][a-zA-Z0-9]+)\s+#`)

// say drives macOS' say binary
type say struct {
	name string
	run  runner
}

func newSay(o Options, run runner) *say {
	return &say{
		name: binaryPath(o, "say"),
		run:  run,
	}
}

func (s *say) init() (err error) {
	if _, err = exec.LookPath(s.name); err != nil {
		err = errors.Wrapf(err, "astispeak: looking for %s failed", s.name)
		return
	}
	return
}

func (s *say) close() error { return nil }

func (s *say) voices() (vs []Voice, err error) {
	var b []byte
	if b, err = s.run(context.Background(), s.name, []string{"-v", "?"}, ""); err != nil {
		err = errors.Wrap(err, "astispeak: running say -v ? failed")
		return
	}
	vs = parseSayVoices(string(b))
	return
}

func (s *say) args(p properties) (args []string) {
	if p.rate > 0 {
		args = append(args, "-r", strconv.Itoa(p.rate))
	}
	if p.voice != "" {
		args = append(args, "-v", p.voice)
	}
	return
}

// input prefixes text with an embedded volume command since say has no volume flag
func (s *say) input(text string, p properties) string {
	if p.volume < 0 {
		return text
	}
	return "[[volm " + strconv.FormatFloat(p.volume, 'f', -1, 64) + "]] " + text
}

func (s *say) say(ctx context.Context, text string, p properties) (err error) {
	if _, err = s.run(ctx, s.name, append(s.args(p), "-f", "-"), s.input(text, p)); err != nil {
		err = errors.Wrap(err, "astispeak: running say failed")
		return
	}
	return
}

func (s *say) save(ctx context.Context, text, path string, p properties) (err error) {
	args := append(s.args(p), "-o", path, "--file-format=WAVE", "--data-format=LEI16@22050", "-f", "-")
	if _, err = s.run(ctx, s.name, args, s.input(text, p)); err != nil {
		err = errors.Wrap(err, "astispeak: running say failed")
		return
	}
	return
}

// parseSayVoices parses the list printed by "say -v ?":
//
//	Alex                en_US    # Most people recognize me by my voice.
//	Eddy (English (UK)) en_GB    # Hello! My name is Eddy.
//
// say doesn't report genders
func parseSayVoices(i string) (vs []Voice) {
	s := bufio.NewScanner(strings.NewReader(i))
	for s.Scan() {
		ms := regexpSayVoice.FindStringSubmatch(s.Text())
		if len(ms) < 3 {
			continue
		}
		vs = append(vs, Voice{
			ID:        ms[1],
			Languages: []string{ms[2]},
			Name:      ms[1],
		})
	}
	return
}
