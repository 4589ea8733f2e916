package guide

import (
	"strings"

	"github.com/medijourney/recovery-guide/internal/locale"
)

// lineSeparator joins consecutive plain-text lines within one paragraph.
const lineSeparator = " "

// Parse converts an authored guide into a Document. It never fails:
// unknown markup reads as plain text and any card or week section still
// open at the end of input is closed. lang supplies the trigger phrases,
// card titles and label patterns; with a nil lang no cards or week
// sections are recognized and no labels are emphasized.
func Parse(content string, lang *locale.Language) Document {
	a := &assembler{lang: lang}
	for _, raw := range splitLines(content) {
		a.feed(Classify(raw, lang))
	}
	a.finish()
	return Document(a.output)
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

type openCard struct {
	kind CardKind
	body []Block
}

type openWeek struct {
	title string
	body  []Block
}

// assembler holds the per-parse state. Nothing outlives one Parse call.
type assembler struct {
	lang *locale.Language

	paragraph []Inline
	list      []ListItem
	ordered   bool
	card      *openCard
	week      *openWeek
	output    []Block
}

// innermost returns the body that new blocks go into: the open card, else
// the open week section, else the top level.
func (a *assembler) innermost() *[]Block {
	if a.card != nil {
		return &a.card.body
	}
	return a.outsideCard()
}

// outsideCard is innermost with the open card ignored.
func (a *assembler) outsideCard() *[]Block {
	if a.week != nil {
		return &a.week.body
	}
	return &a.output
}

func (a *assembler) feed(line Line) {
	switch line.Kind {
	case LineTipTrigger, LineCautionTrigger:
		a.flushParagraph()
		a.flushList()
		a.flushCard()
		kind := CardTip
		if line.Kind == LineCautionTrigger {
			kind = CardCaution
		}
		a.card = &openCard{kind: kind}

	case LineInfoTrigger:
		a.flushParagraph()
		a.flushList()
		a.flushCard()
		a.flushWeek()
		a.card = &openCard{kind: CardInfo}

	case LineHeading:
		a.heading(line)

	case LineListItem:
		a.flushParagraph()
		if len(a.list) == 0 {
			a.ordered = line.Ordered
		}
		a.list = append(a.list, ListItem(FormatInline(line.Text, a.lang)))

	case LineBlank:
		a.flushParagraph()
		a.flushList()

	default:
		a.flushList()
		inlines := FormatInline(line.Text, a.lang)
		if len(a.paragraph) > 0 && len(inlines) > 0 {
			a.paragraph = append(a.paragraph, Text(lineSeparator))
		}
		a.paragraph = append(a.paragraph, inlines...)
	}
}

func (a *assembler) heading(line Line) {
	h := &Heading{Level: line.Level, Text: line.Text}

	switch line.Level {
	case 2:
		a.flushParagraph()
		a.flushList()
		a.flushCard()
		a.flushWeek()
		if IsWeekTitle(line.Text, a.lang) {
			a.week = &openWeek{title: line.Text}
			return
		}
		a.output = append(a.output, h)

	case 3:
		a.flushParagraph()
		a.flushList()
		target := a.innermost()
		*target = append(*target, h)

	default:
		// Level 4 always lands at the top level, even inside a week section.
		a.flushParagraph()
		a.flushList()
		a.flushCard()
		a.output = append(a.output, h)
	}
}

func (a *assembler) flushParagraph() {
	if len(a.paragraph) == 0 {
		return
	}
	target := a.innermost()
	*target = append(*target, &Paragraph{Inlines: a.paragraph})
	a.paragraph = nil
}

func (a *assembler) flushList() {
	if len(a.list) == 0 {
		return
	}
	target := a.innermost()
	*target = append(*target, &List{Items: a.list, Ordered: a.ordered})
	a.list = nil
	a.ordered = false
}

func (a *assembler) flushCard() {
	if a.card == nil {
		return
	}
	target := a.outsideCard()
	*target = append(*target, &Card{
		Kind:  a.card.kind,
		Title: cardTitle(a.card.kind, a.lang),
		Body:  a.card.body,
	})
	a.card = nil
}

func (a *assembler) flushWeek() {
	if a.week == nil {
		return
	}
	a.output = append(a.output, &WeekSection{Title: a.week.title, Body: a.week.body})
	a.week = nil
}

func (a *assembler) finish() {
	a.flushParagraph()
	a.flushList()
	a.flushCard()
	a.flushWeek()
}

func cardTitle(kind CardKind, lang *locale.Language) string {
	if lang == nil {
		return ""
	}
	switch kind {
	case CardTip:
		return lang.Titles.Tip
	case CardCaution:
		return lang.Titles.Caution
	default:
		return lang.Titles.Info
	}
}
