package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/medijourney/recovery-guide/internal/guide"
	"golang.org/x/net/html"
)

// HTML writes the document as an HTML fragment:
//
//	<section class="week"><h2>…</h2>…</section>
//	<aside class="card card-tip"><p class="card-title">…</p>…</aside>
//
// All text is escaped; emphasis becomes <strong>.
func HTML(w io.Writer, doc guide.Document) error {
	var sb strings.Builder
	if err := guide.VisitAll(doc, &htmlVisitor{sb: &sb}); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type htmlVisitor struct {
	sb *strings.Builder
}

func (v *htmlVisitor) VisitHeading(h *guide.Heading) error {
	fmt.Fprintf(v.sb, "<h%d>%s</h%d>\n", h.Level, html.EscapeString(h.Text), h.Level)
	return nil
}

func (v *htmlVisitor) VisitParagraph(p *guide.Paragraph) error {
	v.sb.WriteString("<p>")
	writeHTMLInlines(v.sb, p.Inlines)
	v.sb.WriteString("</p>\n")
	return nil
}

func (v *htmlVisitor) VisitList(l *guide.List) error {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	v.sb.WriteString("<" + tag + ">\n")
	for _, item := range l.Items {
		v.sb.WriteString("<li>")
		writeHTMLInlines(v.sb, item)
		v.sb.WriteString("</li>\n")
	}
	v.sb.WriteString("</" + tag + ">\n")
	return nil
}

func (v *htmlVisitor) VisitCard(c *guide.Card) error {
	fmt.Fprintf(v.sb, "<aside class=\"card card-%s\">\n", c.Kind)
	fmt.Fprintf(v.sb, "<p class=\"card-title\">%s</p>\n", html.EscapeString(c.Title))
	if err := guide.VisitAll(c.Body, v); err != nil {
		return err
	}
	v.sb.WriteString("</aside>\n")
	return nil
}

func (v *htmlVisitor) VisitWeekSection(s *guide.WeekSection) error {
	v.sb.WriteString("<section class=\"week\">\n")
	fmt.Fprintf(v.sb, "<h2>%s</h2>\n", html.EscapeString(s.Title))
	if err := guide.VisitAll(s.Body, v); err != nil {
		return err
	}
	v.sb.WriteString("</section>\n")
	return nil
}

func writeHTMLInlines(sb *strings.Builder, inlines []guide.Inline) {
	for _, in := range inlines {
		if in.IsEmphasis() {
			sb.WriteString("<strong>" + html.EscapeString(in.Text) + "</strong>")
			continue
		}
		sb.WriteString(html.EscapeString(in.Text))
	}
}
