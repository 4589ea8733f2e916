package guide

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/medijourney/recovery-guide/internal/locale"
)

const (
	minHeadingLevel = 2
	maxHeadingLevel = 4
)

// LineKind is the classification of one source line.
type LineKind int

const (
	LinePlain LineKind = iota
	LineBlank
	LineHeading
	LineListItem
	LineTipTrigger
	LineCautionTrigger
	LineInfoTrigger
)

func (k LineKind) String() string {
	switch k {
	case LinePlain:
		return "plain"
	case LineBlank:
		return "blank"
	case LineHeading:
		return "heading"
	case LineListItem:
		return "list-item"
	case LineTipTrigger:
		return "tip-trigger"
	case LineCautionTrigger:
		return "caution-trigger"
	case LineInfoTrigger:
		return "info-trigger"
	default:
		return "unknown"
	}
}

// Line is a classified source line. Text holds the payload with any
// heading or list marker removed.
type Line struct {
	Kind    LineKind
	Level   int  // heading level, LineHeading only
	Ordered bool // ordinal marker, LineListItem only
	Text    string
}

// Classify tags one line. The line is trimmed first. Trigger phrases are
// checked before any markup so that "## 💡 Tip" opens a card rather than a
// heading.
func Classify(line string, lang *locale.Language) Line {
	line = strings.TrimSpace(line)

	if kind, ok := matchTrigger(line, lang); ok {
		return Line{Kind: kind, Text: line}
	}
	if level, text, ok := headingMarker(line); ok {
		// A marker with no title carries no content.
		if text == "" {
			return Line{Kind: LineBlank}
		}
		return Line{Kind: LineHeading, Level: level, Text: text}
	}
	if ordered, text, ok := listMarker(line); ok {
		return Line{Kind: LineListItem, Ordered: ordered, Text: text}
	}
	if line == "" {
		return Line{Kind: LineBlank}
	}
	return Line{Kind: LinePlain, Text: line}
}

// matchTrigger checks Info first, then Caution, then Tip, so a line naming
// more than one trigger resolves to the most structural card.
func matchTrigger(line string, lang *locale.Language) (LineKind, bool) {
	if lang == nil || line == "" {
		return LinePlain, false
	}
	folded := foldVariation(line)
	switch {
	case containsAny(folded, lang.Triggers.Info):
		return LineInfoTrigger, true
	case containsAny(folded, lang.Triggers.Caution):
		return LineCautionTrigger, true
	case containsAny(folded, lang.Triggers.Tip):
		return LineTipTrigger, true
	}
	return LinePlain, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		sub = foldVariation(sub)
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// foldVariation drops emoji variation selectors so "⚠" and "⚠️" match.
func foldVariation(s string) string {
	if !strings.ContainsRune(s, '\uFE0F') && !strings.ContainsRune(s, '\uFE0E') {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\uFE0F' || r == '\uFE0E' {
			return -1
		}
		return r
	}, s)
}

// headingMarker recognizes a run of '#' followed by whitespace or the end
// of the line. The level is clamped into the supported range.
func headingMarker(line string) (int, string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 {
		return 0, "", false
	}
	rest := line[n:]
	if rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsSpace(r) {
			return 0, "", false
		}
	}
	return clampLevel(n), strings.TrimSpace(rest), true
}

func clampLevel(n int) int {
	if n < minHeadingLevel {
		return minHeadingLevel
	}
	if n > maxHeadingLevel {
		return maxHeadingLevel
	}
	return n
}

// listMarker recognizes "- ", "* ", "• ", "· " and "12. " / "12) ".
func listMarker(line string) (bool, string, bool) {
	for _, bullet := range []string{"-", "*", "•", "·"} {
		if rest, ok := strings.CutPrefix(line, bullet); ok && startsWithSpace(rest) {
			return false, strings.TrimSpace(rest), true
		}
	}

	n := 0
	for n < len(line) && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(line) || (line[n] != '.' && line[n] != ')') {
		return false, "", false
	}
	rest := line[n+1:]
	if !startsWithSpace(rest) {
		return false, "", false
	}
	return true, strings.TrimSpace(rest), true
}

func startsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// IsWeekTitle reports whether a level-2 heading text opens a week section.
func IsWeekTitle(text string, lang *locale.Language) bool {
	if lang == nil {
		return false
	}
	return containsAny(foldVariation(text), lang.WeekMarkers)
}
