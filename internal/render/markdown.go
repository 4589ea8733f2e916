package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/medijourney/recovery-guide/internal/guide"
)

// Markdown writes the document as CommonMark. Week sections become level-2
// headings followed by their body; cards become blockquotes whose first
// line is the bold card title.
func Markdown(w io.Writer, doc guide.Document) error {
	var sb strings.Builder
	if err := guide.VisitAll(doc, &markdownVisitor{sb: &sb}); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.TrimRight(sb.String(), "\n")+"\n")
	return err
}

// MarkdownString is a convenience wrapper for Markdown.
func MarkdownString(doc guide.Document) string {
	var sb strings.Builder
	_ = Markdown(&sb, doc)
	return sb.String()
}

type markdownVisitor struct {
	sb *strings.Builder
}

// block writes one block followed by a blank line.
func (v *markdownVisitor) block(s string) {
	v.sb.WriteString(s)
	v.sb.WriteString("\n\n")
}

func (v *markdownVisitor) VisitHeading(h *guide.Heading) error {
	v.block(strings.Repeat("#", h.Level) + " " + h.Text)
	return nil
}

func (v *markdownVisitor) VisitParagraph(p *guide.Paragraph) error {
	v.block(markdownInlines(p.Inlines))
	return nil
}

func (v *markdownVisitor) VisitList(l *guide.List) error {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		marker := "-"
		if l.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		lines[i] = marker + " " + markdownInlines(item)
	}
	v.block(strings.Join(lines, "\n"))
	return nil
}

func (v *markdownVisitor) VisitCard(c *guide.Card) error {
	var body strings.Builder
	if err := guide.VisitAll(c.Body, &markdownVisitor{sb: &body}); err != nil {
		return err
	}

	lines := []string{"> **" + c.Title + "**"}
	inner := strings.TrimRight(body.String(), "\n")
	if inner != "" {
		lines = append(lines, ">")
		for _, line := range strings.Split(inner, "\n") {
			if line == "" {
				lines = append(lines, ">")
				continue
			}
			lines = append(lines, "> "+line)
		}
	}
	v.block(strings.Join(lines, "\n"))
	return nil
}

func (v *markdownVisitor) VisitWeekSection(s *guide.WeekSection) error {
	v.block("## " + s.Title)
	return guide.VisitAll(s.Body, v)
}

func markdownInlines(inlines []guide.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		if in.IsEmphasis() {
			sb.WriteString("**" + in.Text + "**")
			continue
		}
		sb.WriteString(in.Text)
	}
	return sb.String()
}
