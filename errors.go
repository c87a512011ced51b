package astipdf2speech

import (
	"context"
	"fmt"

	"github.com/asticode/go-astipdf2speech/pkg/speak"
	"github.com/pkg/errors"
)

// Error kinds
const (
	KindNone Kind = iota
	KindFileNotFound
	KindEmptyExtraction
	KindSpeechCancelled
	KindInterrupted
	KindUnexpected
)

// Kind represents the kind of an error
type Kind int

// Errors
var (
	ErrEmptyExtraction = errors.New("astipdf2speech: no text could be extracted")
	ErrSpeechCancelled = errors.New("astipdf2speech: speech cancelled")
)

// FileNotFoundError is returned when the input file doesn't exist
type FileNotFoundError struct {
	Path string
}

// Error implements the error interface
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("astipdf2speech: file %s does not exist", e.Path)
}

// KindOf classifies an error
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	switch c := errors.Cause(err); c {
	case ErrEmptyExtraction:
		return KindEmptyExtraction
	case ErrSpeechCancelled:
		return KindSpeechCancelled
	case context.Canceled, astispeak.ErrInterrupted:
		return KindInterrupted
	default:
		if _, ok := c.(FileNotFoundError); ok {
			return KindFileNotFound
		}
		return KindUnexpected
	}
}

// Message returns the message displayed to the user for an error
func Message(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindFileNotFound:
		return fmt.Sprintf("Error: File '%s' does not exist!", errors.Cause(err).(FileNotFoundError).Path)
	case KindEmptyExtraction:
		return "No text could be extracted from the PDF."
	case KindSpeechCancelled:
		return "Speech cancelled."
	case KindInterrupted:
		return "\nOperation interrupted by user."
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", err)
	}
}
