package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/ui"
)

// cardChrome is the horizontal space taken by a card's border and padding.
const cardChrome = 4

// Terminal renders a document with lipgloss: bordered cards colored by
// kind, underlined week titles, wrapped paragraphs.
type Terminal struct {
	opts Options
}

// NewTerminal returns a terminal renderer.
func NewTerminal(opts Options) *Terminal {
	return &Terminal{opts: opts}
}

// Render implements Renderer.
func (t *Terminal) Render(w io.Writer, doc guide.Document) error {
	out, err := t.RenderString(doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// RenderString returns the rendered document without a trailing newline.
func (t *Terminal) RenderString(doc guide.Document) (string, error) {
	var styles *ui.Styles
	if t.opts.Plain {
		styles = ui.NewPlainStyles(io.Discard)
	} else {
		styles = ui.NewStyles(os.Stdout)
	}
	v := &terminalVisitor{styles: styles, width: t.opts.width()}
	if err := guide.VisitAll(doc, v); err != nil {
		return "", err
	}
	return strings.Join(v.parts, "\n\n"), nil
}

type terminalVisitor struct {
	styles *ui.Styles
	width  int
	parts  []string
}

func (v *terminalVisitor) wrap(s string) string {
	return v.styles.Renderer().NewStyle().Width(v.width).Render(s)
}

// body renders nested blocks at a reduced width.
func (v *terminalVisitor) body(blocks []guide.Block, width int) (string, error) {
	child := &terminalVisitor{styles: v.styles, width: width}
	if err := guide.VisitAll(blocks, child); err != nil {
		return "", err
	}
	return strings.Join(child.parts, "\n\n"), nil
}

func (v *terminalVisitor) VisitHeading(h *guide.Heading) error {
	switch h.Level {
	case 2:
		v.parts = append(v.parts, v.styles.Week.Width(v.width).Render(h.Text))
	case 3:
		v.parts = append(v.parts, v.styles.Heading3.Render("▸ "+h.Text))
	default:
		v.parts = append(v.parts, v.styles.Heading4.Render(h.Text))
	}
	return nil
}

func (v *terminalVisitor) VisitParagraph(p *guide.Paragraph) error {
	v.parts = append(v.parts, v.wrap(v.inlines(p.Inlines)))
	return nil
}

func (v *terminalVisitor) VisitList(l *guide.List) error {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		marker := ui.BulletIcon
		if l.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		prefix := v.styles.Bullet.Render(marker) + " "
		indent := lipgloss.Width(marker) + 1
		text := v.styles.Renderer().NewStyle().Width(max(v.width-indent, 1)).Render(v.inlines(item))
		// Hang continuation lines under the item text.
		text = strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", indent))
		lines[i] = prefix + text
	}
	v.parts = append(v.parts, strings.Join(lines, "\n"))
	return nil
}

func (v *terminalVisitor) VisitCard(c *guide.Card) error {
	inner := max(v.width-cardChrome, 10)
	body, err := v.body(c.Body, inner)
	if err != nil {
		return err
	}

	frame := v.styles.TipCard
	switch c.Kind {
	case guide.CardCaution:
		frame = v.styles.CautionCard
	case guide.CardInfo:
		frame = v.styles.InfoCard
	}

	title := v.styles.Bold.Foreground(frame.GetBorderTopForeground()).Render(c.Title)
	content := title
	if body != "" {
		content += "\n" + body
	}
	v.parts = append(v.parts, frame.Width(v.width-2).Render(content))
	return nil
}

func (v *terminalVisitor) VisitWeekSection(s *guide.WeekSection) error {
	title := v.styles.Week.Width(v.width).Render(s.Title)
	body, err := v.body(s.Body, v.width)
	if err != nil {
		return err
	}
	if body == "" {
		v.parts = append(v.parts, title)
		return nil
	}
	v.parts = append(v.parts, title+"\n"+body)
	return nil
}

func (v *terminalVisitor) inlines(inlines []guide.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		if in.IsEmphasis() {
			sb.WriteString(v.styles.Emphasis.Render(in.Text))
			continue
		}
		sb.WriteString(in.Text)
	}
	return sb.String()
}

// Glamour renders the Markdown form of a document through glamour with
// the theme's style sheet.
type Glamour struct {
	opts Options
}

// NewGlamour returns a glamour-backed renderer.
func NewGlamour(opts Options) *Glamour {
	return &Glamour{opts: opts}
}

// Render implements Renderer.
func (g *Glamour) Render(w io.Writer, doc guide.Document) error {
	out, err := ui.RenderMarkdownWithError(MarkdownString(doc), g.opts.width(), g.opts.Plain)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}
