package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xaty/errors"
)

func TestFilter_Validate(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter([]string{"puta", "idiota", "merda"}, MaxMessageLength)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		reason   Reason
	}{
		{
			name:     "Surrounding whitespace is trimmed before any check",
			input:    "  hola a tothom  ",
			expected: "hola a tothom",
		},
		{
			name:   "Whitespace-only input rejects as empty",
			input:  "   ",
			reason: Empty,
		},
		{
			name:   "Empty input rejects as empty",
			input:  "",
			reason: Empty,
		},
		{
			name:     "Exactly 500 characters passes",
			input:    strings.Repeat("a", 500),
			expected: strings.Repeat("a", 500),
		},
		{
			name:   "501 characters rejects as too long",
			input:  strings.Repeat("a", 501),
			reason: TooLong,
		},
		{
			name:     "Length is measured after trimming",
			input:    " " + strings.Repeat("a", 500) + " ",
			expected: strings.Repeat("a", 500),
		},
		{
			name:   "Banned term alone rejects as offensive",
			input:  "merda",
			reason: Offensive,
		},
		{
			name:   "Banned term inside a sentence rejects",
			input:  "quina merda de directe",
			reason: Offensive,
		},
		{
			name:   "Matching is case-folded",
			input:  "MERDA",
			reason: Offensive,
		},
		{
			name:     "Banned term embedded in a longer word passes",
			input:    "ho ha fet idiotament",
			expected: "ho ha fet idiotament",
		},
		{
			name:   "Banned term next to punctuation still rejects",
			input:  "ets un idiota!",
			reason: Offensive,
		},
		{
			name:     "Clean message is returned untouched",
			input:    "Quin directe més bo",
			expected: "Quin directe més bo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			text, err := filter.Validate(tt.input)
			if tt.reason != "" {
				var rejection *RejectionError
				req.ErrorAs(err, &rejection)
				req.Equal(tt.reason, rejection.Reason)
				req.NotEmpty(rejection.UserMessage())
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, text)
		})
	}
}

func TestFilter_CornerCases(t *testing.T) {
	req := require.New(t)

	// Blank entries in the configured list are ignored.
	filter, err := NewFilter([]string{"  ", "merda", ""}, MaxMessageLength)
	req.NoError(err)

	_, err = filter.Validate("merda")
	var rejection *RejectionError
	req.ErrorAs(err, &rejection)
	req.Equal(Offensive, rejection.Reason)

	// An entirely blank list is a configuration mistake.
	_, err = NewFilter([]string{"", "  "}, MaxMessageLength)
	req.ErrorIs(err, errors.ErrEmptyWords)
}
