// Package textproc provides text cleanup for speech output.
//
// Responses from the language model may carry emoji, control characters, and
// ragged whitespace that the TTS boundary cannot pronounce. This package
// strips them, splits responses into speakable sentences, and truncates long
// responses at sentence boundaries.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// Sentence terminators recognized by SplitSentences and TruncateAtSentence.
const terminators = ".!?"

var whitespaceRe = regexp.MustCompile(`\s+`)

// Split after a run of terminators followed by whitespace.
var sentenceEndRe = regexp.MustCompile(`(?:[.!?])\s+`)

// Sanitize strips emoji and control characters and collapses whitespace.
// The result is trimmed; it may be empty.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) || unicode.IsControl(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// IsSpeakable reports whether text still carries pronounceable content after
// sanitization. Empty and emoji-only fragments are not speakable.
func IsSpeakable(text string) bool {
	return Sanitize(text) != ""
}

// IsEmojiOnly reports whether text consists solely of emoji and whitespace.
// Empty text is not considered emoji-only.
func IsEmojiOnly(text string) bool {
	seen := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if !isEmoji(r) {
			return false
		}
		seen = true
	}
	return seen
}

// SplitSentences splits text into sentences on terminator-plus-space
// boundaries. Leading and trailing whitespace is trimmed from each sentence;
// empty fragments are dropped.
func SplitSentences(text string) []string {
	ends := sentenceEndRe.FindAllStringIndex(text, -1)
	var out []string
	prev := 0
	for _, loc := range ends {
		// Keep the terminator, drop the whitespace that follows it.
		s := strings.TrimSpace(text[prev : loc[0]+1])
		if s != "" {
			out = append(out, s)
		}
		prev = loc[1]
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		out = append(out, s)
	}
	return out
}

// TruncateAtSentence cuts text to at most budget bytes, preferring to end at
// the last sentence terminator inside the budget. If no terminator exists
// before the cutoff the text is hard-cut at exactly budget bytes.
func TruncateAtSentence(text string, budget int) string {
	if budget <= 0 || len(text) <= budget {
		return text
	}
	cut := text[:budget]
	last := strings.LastIndexAny(cut, terminators)
	if last != -1 {
		return cut[:last+1]
	}
	return cut
}

// isEmoji reports whether r falls in one of the common emoji blocks.
// Ranges mirror the pictographic blocks the robot's TTS cannot pronounce.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map symbols
		return true
	case r >= 0x1F1E0 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	case r >= 0x2600 && r <= 0x27BF: // miscellaneous symbols, dingbats
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended pictographs
		return true
	case r == 0xFE0F: // variation selector attached to emoji
		return true
	}
	return false
}
