package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astipdf2speech"
	"github.com/asticode/go-astipdf2speech/pkg/speak"
	"github.com/asticode/go-astitools/config"
)

// Flags
var (
	ctx, cancel = context.WithCancel(context.Background())
	config      = flag.String("c", "", "the config path")
	engine      = flag.String("e", "", "the speech engine (espeak, say or sapi)")
)

func main() {
	// Parse flags
	name := filepath.Base(os.Args[0])
	flag.Usage = func() {
		astipdf2speech.PrintUsage(flag.CommandLine.Output(), name)
		fmt.Fprintln(flag.CommandLine.Output(), "Flags:")
		flag.PrintDefaults()
	}
	fs, args := astipdf2speech.SplitArgs(flag.CommandLine, os.Args[1:])
	flag.CommandLine.Parse(fs)
	astilog.FlagInit()

	// Create configuration
	c := newConfiguration()

	// Handle signals
	handleSignals()

	// Create reader
	r := astipdf2speech.New(name, astipdf2speech.SpeakerEngineFunc(c.Speak), os.Stdin, os.Stdout)

	// Run
	if err := r.Run(ctx, astipdf2speech.ParseCommand(args)); err != nil {
		fmt.Println(astipdf2speech.Message(err))
		if astipdf2speech.KindOf(err) == astipdf2speech.KindUnexpected {
			astilog.Debugf("main: %+v", err)
			os.Exit(1)
		}
	}
}

// Configuration represents a configuration
type Configuration struct {
	Speak astispeak.Options `toml:"speak"`
}

// newConfiguration creates a new configuration
func newConfiguration() *Configuration {
	// Global config
	gc := &Configuration{
		Speak: astispeak.Options{
			Engine: astispeak.DefaultEngine(),
		},
	}

	// Flag config
	fc := &Configuration{
		Speak: astispeak.Options{
			Engine: *engine,
		},
	}

	// Build configuration
	c, err := asticonfig.New(gc, *config, fc)
	if err != nil {
		astilog.Fatal(err)
	}
	return c.(*Configuration)
}

func handleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	go func() {
		for s := range ch {
			astilog.Debugf("main: received signal %s", s)
			cancel()
		}
	}()
}
