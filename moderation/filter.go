package moderation

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"xaty/errors"
)

// MaxMessageLength is the default character cap applied after trimming.
const MaxMessageLength = 500

type Reason string

const (
	Empty     Reason = "empty"
	TooLong   Reason = "too_long"
	Offensive Reason = "offensive"
)

// userMessages holds the field-level feedback rendered to chat clients.
var userMessages = map[Reason]string{
	Empty:     "El missatge no pot estar buit.",
	TooLong:   "Missatge massa llarg. Número màxim de caracters: 500.",
	Offensive: "El missatge conté llenguatge ofensiu.",
}

// RejectionError reports why a message failed validation.
type RejectionError struct {
	Reason Reason
}

func (e *RejectionError) Error() string {
	return "message rejected: " + string(e.Reason)
}

// UserMessage returns the Catalan feedback string for the rejection.
func (e *RejectionError) UserMessage() string {
	return userMessages[e.Reason]
}

// Filter validates chat message text against emptiness, length and a fixed
// banned-term list. The list is compiled once into an Aho-Corasick automaton
// at startup; the filter is immutable and safe for concurrent use.
type Filter struct {
	matcher   *goahocorasick.Machine
	maxLength int
}

// NewFilter compiles the banned terms, case-folded, into the automaton.
// Blank entries are discarded; an entirely blank list is refused.
func NewFilter(bannedTerms []string, maxLength int) (*Filter, error) {
	patterns := make([][]rune, 0, len(bannedTerms))
	for _, term := range bannedTerms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		patterns = append(patterns, foldRunes([]rune(term)))
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		maxLength = MaxMessageLength
	}
	return &Filter{matcher: m, maxLength: maxLength}, nil
}

// Validate trims raw and rejects it when empty, over the length cap, or
// containing a banned term as a whole word. On success it returns the
// trimmed text unchanged.
func (f *Filter) Validate(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &RejectionError{Reason: Empty}
	}

	runes := []rune(text)
	if len(runes) > f.maxLength {
		return "", &RejectionError{Reason: TooLong}
	}

	folded := foldRunes(runes)
	for _, span := range f.matcher.MultiPatternSearch(folded, false) {
		if isWholeWord(folded, span.Pos, span.Pos+len(span.Word)) {
			return "", &RejectionError{Reason: Offensive}
		}
	}
	return text, nil
}

// isWholeWord checks that the match at [start, end) is not embedded in a
// longer word, so "idiota" flags but "idiotament" does not.
func isWholeWord(text []rune, start, end int) bool {
	if start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func foldRunes(input []rune) []rune {
	out := make([]rune, len(input))
	for i, r := range input {
		out[i] = unicode.ToLower(r)
	}
	return out
}
