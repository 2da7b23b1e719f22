package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminal-sim/terminal-sim/sim/terminal"
)

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"integer", "1000", 1000, false},
		{"fractional with whitespace", "  12.5\n", 12.5, false},
		{"empty", "", 0, true},
		{"blank line", "   \n", 0, true},
		{"not a number", "ten", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"infinite", "Inf", 0, true},
		{"NaN", "NaN", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHorizon(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, terminal.ErrInvalidHorizon)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptHorizon_ReadsOneLine(t *testing.T) {
	// GIVEN operator input followed by more text
	in := strings.NewReader("480\nignored\n")
	var out bytes.Buffer

	// WHEN the horizon is prompted for
	h, err := promptHorizon(in, &out)

	// THEN the prompt is shown and only the first line is used
	require.NoError(t, err)
	assert.Equal(t, 480.0, h)
	assert.Equal(t, horizonPrompt, out.String())
}

func TestPromptHorizon_NoTrailingNewline(t *testing.T) {
	h, err := promptHorizon(strings.NewReader("75"), &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, 75.0, h)
}

func TestPromptHorizon_EmptyInput_ReturnsError(t *testing.T) {
	_, err := promptHorizon(strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
