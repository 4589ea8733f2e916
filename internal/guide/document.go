package guide

import "strings"

// Document is the ordered sequence of top-level blocks of one guide.
// A Document is never modified after Parse returns and is safe for
// concurrent reads.
type Document []Block

// InlineKind discriminates Inline spans.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineEmphasis
)

func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "text"
	case InlineEmphasis:
		return "emphasis"
	default:
		return "unknown"
	}
}

// Inline is a run of plain or emphasized text.
type Inline struct {
	Kind InlineKind
	Text string
}

// Text returns a plain span.
func Text(s string) Inline { return Inline{Kind: InlineText, Text: s} }

// Emphasis returns an emphasized span.
func Emphasis(s string) Inline { return Inline{Kind: InlineEmphasis, Text: s} }

// IsEmphasis reports whether the span is emphasized.
func (in Inline) IsEmphasis() bool { return in.Kind == InlineEmphasis }

// ListItem is one entry of a List.
type ListItem []Inline

// CardKind is the flavour of a highlighted aside.
type CardKind int

const (
	CardTip CardKind = iota
	CardCaution
	CardInfo
)

func (k CardKind) String() string {
	switch k {
	case CardTip:
		return "tip"
	case CardCaution:
		return "caution"
	case CardInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Block is one node of the document tree. The set of implementations is
// closed: Heading, Paragraph, List, Card and WeekSection.
type Block interface {
	// Accept dispatches to the matching Visitor method.
	Accept(v Visitor) error
	block()
}

// Heading is a section title of level 2, 3 or 4.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of consecutive plain-text lines.
type Paragraph struct {
	Inlines []Inline
}

// List is a run of consecutive list-item lines. Bulleted and numbered
// items merge into one list; Ordered is taken from the marker of the first
// item and the markers of later items are not kept.
type List struct {
	Items   []ListItem
	Ordered bool
}

// Card is a tip, caution or info aside. Title is the fixed, language
// specific heading for Kind.
type Card struct {
	Kind  CardKind
	Title string
	Body  []Block
}

// WeekSection groups the instructions for one recovery time window.
type WeekSection struct {
	Title string
	Body  []Block
}

func (*Heading) block()     {}
func (*Paragraph) block()   {}
func (*List) block()        {}
func (*Card) block()        {}
func (*WeekSection) block() {}

// PlainText concatenates the span texts.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		sb.WriteString(in.Text)
	}
	return sb.String()
}

// Text returns the paragraph's text without emphasis markup.
func (p *Paragraph) Text() string { return PlainText(p.Inlines) }
