package astispeak

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// runner executes a binary with text on its stdin and returns its combined output
type runner func(ctx context.Context, name string, args []string, stdin string) ([]byte, error)

func binaryPath(o Options, defaultName string) string {
	name := defaultName
	if o.BinaryName != "" {
		name = o.BinaryName
	}
	if o.BinaryDirPath != "" {
		name = filepath.Join(o.BinaryDirPath, name)
	}
	return name
}

func execute(ctx context.Context, name string, args []string, stdin string) (b []byte, err error) {
	// Create cmd
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	// Execute cmd
	astilog.Debugf("astispeak: executing %s", strings.Join(cmd.Args, " "))
	if b, err = cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil || interruptedBySignal(err) {
			err = ErrInterrupted
			return
		}
		err = errors.Wrapf(err, "astispeak: running %s failed with combined output %s", strings.Join(cmd.Args, " "), b)
		return
	}
	return
}
