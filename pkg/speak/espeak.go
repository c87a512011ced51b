package astispeak

import (
	"bufio"
	"context"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var regexpESpeakOtherLanguage = regexp.MustCompile(`\(([^\s()]+)\s*\d*\)`)

// eSpeak drives the espeak (or espeak-ng) binary
type eSpeak struct {
	name string
	run  runner
}

func newESpeak(o Options, run runner) *eSpeak {
	return &eSpeak{
		name: binaryPath(o, "espeak"),
		run:  run,
	}
}

func (e *eSpeak) init() (err error) {
	if _, err = exec.LookPath(e.name); err != nil {
		err = errors.Wrapf(err, "astispeak: looking for %s failed", e.name)
		return
	}
	return
}

func (e *eSpeak) close() error { return nil }

func (e *eSpeak) voices() (vs []Voice, err error) {
	var b []byte
	if b, err = e.run(context.Background(), e.name, []string{"--voices"}, ""); err != nil {
		err = errors.Wrap(err, "astispeak: running espeak --voices failed")
		return
	}
	vs = parseESpeakVoices(string(b))
	return
}

func (e *eSpeak) args(p properties) (args []string) {
	if p.rate > 0 {
		args = append(args, "-s", strconv.Itoa(p.rate))
	}
	if p.volume >= 0 {
		// Amplitude goes from 0 to 200, 100 being espeak's default
		args = append(args, "-a", strconv.Itoa(int(math.Round(p.volume*100))))
	}
	if p.voice != "" {
		args = append(args, "-v", p.voice)
	}
	return
}

func (e *eSpeak) say(ctx context.Context, text string, p properties) (err error) {
	if _, err = e.run(ctx, e.name, append(e.args(p), "--stdin"), text); err != nil {
		err = errors.Wrap(err, "astispeak: running espeak failed")
		return
	}
	return
}

func (e *eSpeak) save(ctx context.Context, text, path string, p properties) (err error) {
	if _, err = e.run(ctx, e.name, append(e.args(p), "-w", path, "--stdin"), text); err != nil {
		err = errors.Wrap(err, "astispeak: running espeak failed")
		return
	}
	return
}

// parseESpeakVoices parses the table printed by "espeak --voices":
//
//	Pty Language Age/Gender VoiceName          File          Other Languages
//	 2  en-us          M  english-us           en-us         (en-r 5)(en 3)
//
// espeak-ng prints the gender as "--/M"
func parseESpeakVoices(i string) (vs []Voice) {
	s := bufio.NewScanner(strings.NewReader(i))
	for s.Scan() {
		// Split fields
		fs := strings.Fields(s.Text())
		if len(fs) < 5 || fs[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fs[0]); err != nil {
			continue
		}

		// Create voice
		v := Voice{
			Gender:    eSpeakGender(fs[2]),
			ID:        fs[4],
			Languages: []string{fs[1]},
			Name:      fs[3],
		}

		// Add other languages
		for _, m := range regexpESpeakOtherLanguage.FindAllStringSubmatch(strings.Join(fs[5:], " "), -1) {
			if !containsString(v.Languages, m[1]) {
				v.Languages = append(v.Languages, m[1])
			}
		}
		vs = append(vs, v)
	}
	return
}

func eSpeakGender(i string) string {
	if idx := strings.LastIndex(i, "/"); idx >= 0 {
		i = i[idx+1:]
	}
	switch strings.ToUpper(i) {
	case "F":
		return "female"
	case "M":
		return "male"
	default:
		return ""
	}
}

func containsString(ss []string, i string) bool {
	for _, s := range ss {
		if s == i {
			return true
		}
	}
	return false
}
