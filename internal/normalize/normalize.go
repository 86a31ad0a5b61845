// Package normalize turns raw free text (typed or voice-transcribed) into
// discrete item names. It fixes known transcription errors first, then
// segments on commas and the Croatian conjunction "i".
package normalize

import (
	"strings"
	"unicode"
)

// correction is one (wrong, right) replacement pair. Pairs are applied
// whole-word, case-insensitively, in declared order; later entries see the
// output of earlier ones.
type correction struct {
	wrong string
	right string
}

// corrections holds transcription errors the speech recognizer makes often
// enough to hard-code.
var corrections = []correction{
	{"mljeko", "mlijeko"},
	{"kruč", "kruh"},
	{"kruv", "kruh"},
	{"jogurd", "jogurt"},
	{"kumpir", "krumpir"},
	{"paradajz", "rajčica"},
	{"vegeta", "Vegeta"},
}

// Segment splits raw input into ordered, trimmed, non-empty item names.
// Separators are commas (with optional surrounding whitespace) and the
// standalone word "i". Input consisting only of separators yields nil;
// callers treat that as a no-op.
func Segment(raw string) []string {
	text := applyCorrections(raw)

	var out []string
	for _, part := range strings.Split(text, ",") {
		for _, name := range splitConjunction(part) {
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// applyCorrections replaces each known wrong word throughout the text,
// preserving everything between words verbatim.
func applyCorrections(text string) string {
	for _, c := range corrections {
		text = replaceWord(text, c.wrong, c.right)
	}
	return text
}

// replaceWord substitutes whole-word, case-insensitive occurrences of wrong.
// Word boundaries are computed over Unicode letter runs; regexp \b is
// ASCII-only and mishandles diacritics like č.
func replaceWord(text, wrong, right string) string {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		word := string(runes[i:j])
		if strings.EqualFold(word, wrong) {
			b.WriteString(right)
		} else {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

// splitConjunction breaks a comma-free chunk at standalone "i" words.
// Multi-word names are re-joined with single spaces.
func splitConjunction(chunk string) []string {
	fields := strings.Fields(chunk)

	var names []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			names = append(names, strings.Join(current, " "))
			current = current[:0]
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f, "i") {
			flush()
			continue
		}
		current = append(current, f)
	}
	flush()
	return names
}
