package guide

import (
	"regexp"
	"sort"

	"github.com/medijourney/recovery-guide/internal/locale"
)

// emphasisPattern matches an explicit **...** span with non-empty content.
var emphasisPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// span is an emphasized byte range [start,end) of the fragment. text is
// what gets emitted, which for explicit spans excludes the delimiters.
type span struct {
	start, end int
	text       string
}

// FormatInline splits a fragment into plain and emphasized spans. Explicit
// **...** spans are found first; the language's duration and procedures
// label patterns are then emphasized wherever they do not overlap a span
// already found. Emphasis delimiters are dropped and every other byte of the
// fragment appears in exactly one returned span.
func FormatInline(fragment string, lang *locale.Language) []Inline {
	if fragment == "" {
		return nil
	}

	var spans []span
	for _, m := range emphasisPattern.FindAllStringSubmatchIndex(fragment, -1) {
		spans = append(spans, span{start: m[0], end: m[1], text: fragment[m[2]:m[3]]})
	}

	if lang != nil {
		for _, re := range []*regexp.Regexp{lang.DurationPattern(), lang.ProceduresPattern()} {
			if re == nil {
				continue
			}
			for _, m := range re.FindAllStringIndex(fragment, -1) {
				candidate := span{start: m[0], end: m[1], text: fragment[m[0]:m[1]]}
				if !overlapsAny(candidate, spans) {
					spans = append(spans, candidate)
				}
			}
		}
	}

	if len(spans) == 0 {
		return []Inline{Text(fragment)}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	out := make([]Inline, 0, 2*len(spans)+1)
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			out = append(out, Text(fragment[pos:s.start]))
		}
		out = append(out, Emphasis(s.text))
		pos = s.end
	}
	if pos < len(fragment) {
		out = append(out, Text(fragment[pos:]))
	}
	return out
}

func overlapsAny(c span, spans []span) bool {
	for _, s := range spans {
		if c.start < s.end && s.start < c.end {
			return true
		}
	}
	return false
}
