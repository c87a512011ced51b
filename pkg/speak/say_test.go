package astispeak

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSayVoices(t *testing.T) {
	vs := parseSayVoices(`Alex                en_US    # Most people recognize me by my voice.
Eddy (English (UK)) en_GB    # Hello! My name is Eddy.
Fiona               en-scotland # Hello, my name is Fiona.
invalid line
`)
	assert.Equal(t, []Voice{
		{ID: "Alex", Languages: []string{"en_US"}, Name: "Alex"},
		{ID: "Eddy (English (UK))", Languages: []string{"en_GB"}, Name: "Eddy (English (UK))"},
		{ID: "Fiona", Languages: []string{"en-scotland"}, Name: "Fiona"},
	}, vs)
}

func TestSay(t *testing.T) {
	r := &mockedRunner{}
	s := newSay(Options{}, r.run)
	p := properties{rate: 150, voice: "Serena", volume: 0.9}

	// Say
	require.NoError(t, s.say(context.Background(), "hello", p))
	assert.Equal(t, execCall{args: []string{"-r", "150", "-v", "Serena", "-f", "-"}, name: "say", stdin: "[[volm 0.9]] hello"}, r.calls[0])

	// Save
	require.NoError(t, s.save(context.Background(), "hello", "report.wav", properties{volume: -1}))
	assert.Equal(t, execCall{args: []string{"-o", "report.wav", "--file-format=WAVE", "--data-format=LEI16@22050", "-f", "-"}, name: "say", stdin: "hello"}, r.calls[1])
}
