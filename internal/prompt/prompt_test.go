package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"yes", "y\n", true},
		{"yes full word", "yes\n", true},
		{"yes uppercase", "Y\n", true},
		{"empty defaults to yes", "\n", true},
		{"no", "n\n", false},
		{"no full word", "no\n", false},
		{"garbage is no", "maybe\n", false},
		{"whitespace around yes", "  y  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewWithStreams(strings.NewReader(tt.input), &out, false, true)

			ok, err := p.Confirm("Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.expect, ok)
			assert.Contains(t, out.String(), "Proceed? [Y/n]:")
		})
	}
}

func TestConfirmAutoConfirmSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader("n\n"), &out, true, true)

	ok, err := p.Confirm("Proceed?")
	require.NoError(t, err)
	assert.True(t, ok, "auto-confirm should accept without reading input")
	assert.Empty(t, out.String(), "auto-confirm should not print the question")
}

func TestConfirmPipedDecline(t *testing.T) {
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader("n\n"), &out, false, false)

	ok, err := p.Confirm("Proceed?")
	require.NoError(t, err)
	assert.False(t, ok, "a piped no must decline even without a terminal")
	assert.Empty(t, out.String(), "question should not be echoed to a non-terminal")
}

func TestConfirmPipedAccept(t *testing.T) {
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader("y\n"), &out, false, false)

	ok, err := p.Confirm("Proceed?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmEmptyInputDefaultsToYes(t *testing.T) {
	// Immediate EOF, the /dev/null case.
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader(""), &out, false, false)

	ok, err := p.Confirm("Proceed?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmEOFWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewWithStreams(strings.NewReader("n"), &out, false, true)

	ok, err := p.Confirm("Proceed?")
	require.NoError(t, err)
	assert.False(t, ok)
}
