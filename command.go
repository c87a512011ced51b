package astipdf2speech

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Command names
const (
	CommandHelp   CommandName = "help"
	CommandSave   CommandName = "save"
	CommandSpeak  CommandName = "speak"
	CommandVoices CommandName = "voices"
)

// CommandName represents a command name
type CommandName string

// Command represents what the user asked for
type Command struct {
	Name CommandName
	Path string
}

// SplitArgs separates the leading arguments that are flags defined in fs from the positional
// arguments. Parsing stops at the first argument that isn't a defined flag, so that a pdf path
// starting with "-" is a positional argument. "--" ends the flags.
func SplitArgs(fs *flag.FlagSet, args []string) (flags, positionals []string) {
	i := 0
	for i < len(args) {
		a := args[i]

		// Terminator
		if a == "--" {
			return args[:i], args[i+1:]
		}

		// Not a flag
		if len(a) < 2 || a[0] != '-' {
			break
		}

		// Get name
		n := strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-")
		hasValue := false
		if idx := strings.Index(n, "="); idx >= 0 {
			n = n[:idx]
			hasValue = true
		}

		// Not a defined flag
		f := fs.Lookup(n)
		if n == "" || f == nil {
			break
		}
		i++

		// Non boolean flags consume the next argument
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); !hasValue && (!ok || !bf.IsBoolFlag()) && i < len(args) {
			i++
		}
	}
	return args[:i], args[i:]
}

// ParseCommand parses positional arguments
func ParseCommand(args []string) (c Command) {
	// Help
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		c.Name = CommandHelp
		return
	}

	// Voices
	if args[0] == "voices" {
		c.Name = CommandVoices
		return
	}

	// Pdf
	c.Path = args[0]
	c.Name = CommandSpeak
	if len(args) > 1 && strings.ToLower(args[1]) == "save" {
		c.Name = CommandSave
	}
	return
}

// PrintUsage prints the usage
func PrintUsage(w io.Writer, name string) {
	fmt.Fprintln(w, "PDF to Speech Reader")
	fmt.Fprintln(w, strings.Repeat("=", 30))
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s <pdf_file>         - Read PDF aloud\n", name)
	fmt.Fprintf(w, "  %s <pdf_file> save    - Save to audio file\n", name)
	fmt.Fprintf(w, "  %s voices             - List available voices\n", name)
}
