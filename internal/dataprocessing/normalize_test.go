package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain ticker uppercased",
			input:    "aapl",
			expected: "AAPL",
		},
		{
			name:     "hyphen suffix truncated",
			input:    "aapl-us",
			expected: "AAPL",
		},
		{
			name:     "space suffix truncated",
			input:    "aapl us",
			expected: "AAPL",
		},
		{
			name:     "period suffix truncated",
			input:    "aapl.us",
			expected: "AAPL",
		},
		{
			name:     "slash suffix truncated",
			input:    "brk/b",
			expected: "BRK",
		},
		{
			name:     "underscore suffix truncated",
			input:    "spy_etf",
			expected: "SPY",
		},
		{
			name:     "cut at earliest separator among several",
			input:    "aapl us-equity.nasdaq",
			expected: "AAPL",
		},
		{
			name:     "hyphen before space wins",
			input:    "brk-b us equity",
			expected: "BRK",
		},
		{
			name:     "already canonical",
			input:    "MSFT",
			expected: "MSFT",
		},
		{
			name:     "digits preserved",
			input:    "7203-jp",
			expected: "7203",
		},
		{
			name:     "non-alphanumeric runes stripped after truncation",
			input:    "aa$pl-us",
			expected: "AAPL",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "no alphanumeric prefix yields empty result",
			input:    "$#!-us",
			expected: "",
		},
		{
			name:     "separator first yields empty result",
			input:    "-aapl",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTicker(tt.input))
		})
	}
}

func TestNormalizeTickerDeterministic(t *testing.T) {
	inputs := []string{"aapl-us", "BRK/B equity", "", "7203.T", "msft_us-old"}
	for _, in := range inputs {
		assert.Equal(t, NormalizeTicker(in), NormalizeTicker(in), "input %q", in)
	}
}
