package guide

import "errors"

// SkipChildren may be returned from a WalkFunc to skip a container's body.
var SkipChildren = errors.New("skip children")

// Visitor receives one call per block. Renderers implement Visitor; a
// container's body is not visited automatically, so implementations decide
// how to descend (usually by calling Accept on each child).
type Visitor interface {
	VisitHeading(h *Heading) error
	VisitParagraph(p *Paragraph) error
	VisitList(l *List) error
	VisitCard(c *Card) error
	VisitWeekSection(w *WeekSection) error
}

func (h *Heading) Accept(v Visitor) error     { return v.VisitHeading(h) }
func (p *Paragraph) Accept(v Visitor) error   { return v.VisitParagraph(p) }
func (l *List) Accept(v Visitor) error        { return v.VisitList(l) }
func (c *Card) Accept(v Visitor) error        { return v.VisitCard(c) }
func (w *WeekSection) Accept(v Visitor) error { return v.VisitWeekSection(w) }

// VisitAll dispatches every block in order, stopping at the first error.
func VisitAll(blocks []Block, v Visitor) error {
	for _, b := range blocks {
		if err := b.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// WalkContext describes where a block sits in the tree.
type WalkContext struct {
	Index  int   // position within the parent's body
	Depth  int   // 0 for top-level blocks
	Parent Block // nil for top-level blocks
}

// WalkFunc is called for every block in document order.
type WalkFunc func(b Block, ctx WalkContext) error

// Walk visits every block depth-first in document order. Returning
// SkipChildren from fn skips the body of a Card or WeekSection.
func Walk(doc Document, fn WalkFunc) error {
	return walk(doc, nil, 0, fn)
}

func walk(blocks []Block, parent Block, depth int, fn WalkFunc) error {
	for i, b := range blocks {
		err := fn(b, WalkContext{Index: i, Depth: depth, Parent: parent})
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if body := Body(b); body != nil {
			if err := walk(body, b, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Body returns the nested blocks of a Card or WeekSection, nil otherwise.
func Body(b Block) []Block {
	switch b := b.(type) {
	case *Card:
		return b.Body
	case *WeekSection:
		return b.Body
	}
	return nil
}

// Inlines returns every inline span of the document in reading order:
// paragraph spans and list item spans. Heading and title texts are not
// spans and are not included.
func (d Document) Inlines() []Inline {
	var out []Inline
	_ = Walk(d, func(b Block, _ WalkContext) error {
		switch b := b.(type) {
		case *Paragraph:
			out = append(out, b.Inlines...)
		case *List:
			for _, item := range b.Items {
				out = append(out, item...)
			}
		}
		return nil
	})
	return out
}

// Headings returns all headings with their depth, e.g. for a table of
// contents. Week section titles are reported as level 2 headings.
func (d Document) Headings() []Heading {
	var out []Heading
	_ = Walk(d, func(b Block, _ WalkContext) error {
		switch b := b.(type) {
		case *Heading:
			out = append(out, *b)
		case *WeekSection:
			out = append(out, Heading{Level: 2, Text: b.Title})
		}
		return nil
	})
	return out
}
