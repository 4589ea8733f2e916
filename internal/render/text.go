package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/medijourney/recovery-guide/internal/guide"
)

// Text writes the document without any markup. Card and week bodies are
// indented by two spaces under their title.
func Text(w io.Writer, doc guide.Document) error {
	var lines []string
	if err := guide.VisitAll(doc, &textVisitor{lines: &lines}); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

type textVisitor struct {
	lines  *[]string
	indent string
}

func (v *textVisitor) add(s string) {
	if len(*v.lines) > 0 {
		*v.lines = append(*v.lines, "")
	}
	for _, line := range strings.Split(s, "\n") {
		*v.lines = append(*v.lines, v.indent+line)
	}
}

func (v *textVisitor) nested(title string, body []guide.Block) error {
	v.add(title)
	child := &textVisitor{lines: v.lines, indent: v.indent + "  "}
	return guide.VisitAll(body, child)
}

func (v *textVisitor) VisitHeading(h *guide.Heading) error {
	v.add(h.Text)
	return nil
}

func (v *textVisitor) VisitParagraph(p *guide.Paragraph) error {
	v.add(p.Text())
	return nil
}

func (v *textVisitor) VisitList(l *guide.List) error {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		marker := "•"
		if l.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		items[i] = marker + " " + guide.PlainText(item)
	}
	v.add(strings.Join(items, "\n"))
	return nil
}

func (v *textVisitor) VisitCard(c *guide.Card) error {
	return v.nested("["+c.Title+"]", c.Body)
}

func (v *textVisitor) VisitWeekSection(s *guide.WeekSection) error {
	return v.nested(s.Title, s.Body)
}
