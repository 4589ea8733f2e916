package guide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownType is returned by Decode for a block or inline type it does
// not know.
var ErrUnknownType = errors.New("unknown type")

// ErrInvalidNesting is returned by Decode for a block placed where Parse
// never puts one: a week section or card inside a card, or a week section
// or info card inside a week section.
var ErrInvalidNesting = errors.New("invalid nesting")

// wireBlock is the JSON shape of every block variant, discriminated by Type.
type wireBlock struct {
	Type    string         `json:"type"`
	Level   int            `json:"level,omitempty"`
	Text    string         `json:"text,omitempty"`
	Inlines []wireInline   `json:"inlines,omitempty"`
	Items   [][]wireInline `json:"items,omitempty"`
	Ordered bool           `json:"ordered,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Title   string         `json:"title,omitempty"`
	Body    []wireBlock    `json:"body,omitempty"`
}

type wireInline struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	typeHeading   = "heading"
	typeParagraph = "paragraph"
	typeList      = "list"
	typeCard      = "card"
	typeWeek      = "week"
)

// Encode writes the document as a JSON array of typed blocks.
func Encode(w io.Writer, doc Document) error {
	blocks, err := toWire(doc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(blocks)
}

// EncodeString is a convenience wrapper for Encode.
func EncodeString(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Decode reads a document written by Encode.
func Decode(r io.Reader) (Document, error) {
	var blocks []wireBlock
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fromWire(blocks, "", "")
}

// MarshalJSON encodes the document in the Encode format.
func (d Document) MarshalJSON() ([]byte, error) {
	blocks, err := toWire(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blocks)
}

// UnmarshalJSON decodes the Encode format.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

func toWire(blocks []Block) ([]wireBlock, error) {
	out := make([]wireBlock, 0, len(blocks))
	for _, b := range blocks {
		switch b := b.(type) {
		case *Heading:
			out = append(out, wireBlock{Type: typeHeading, Level: b.Level, Text: b.Text})
		case *Paragraph:
			out = append(out, wireBlock{Type: typeParagraph, Inlines: inlinesToWire(b.Inlines)})
		case *List:
			items := make([][]wireInline, len(b.Items))
			for i, item := range b.Items {
				items[i] = inlinesToWire(item)
			}
			out = append(out, wireBlock{Type: typeList, Items: items, Ordered: b.Ordered})
		case *Card:
			body, err := toWire(b.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, wireBlock{Type: typeCard, Kind: b.Kind.String(), Title: b.Title, Body: body})
		case *WeekSection:
			body, err := toWire(b.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, wireBlock{Type: typeWeek, Title: b.Title, Body: body})
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownType, b)
		}
	}
	return out, nil
}

func inlinesToWire(inlines []Inline) []wireInline {
	out := make([]wireInline, len(inlines))
	for i, in := range inlines {
		out[i] = wireInline{Type: in.Kind.String(), Text: in.Text}
	}
	return out
}

// fromWire decodes blocks found inside parent, which is "" at top level,
// typeWeek or typeCard.
func fromWire(blocks []wireBlock, path, parent string) (Document, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	out := make(Document, 0, len(blocks))
	for i, wb := range blocks {
		at := fmt.Sprintf("%s[%d]", path, i)
		if err := checkNesting(wb, parent); err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		switch wb.Type {
		case typeHeading:
			out = append(out, &Heading{Level: clampLevel(wb.Level), Text: wb.Text})
		case typeParagraph:
			inlines, err := inlinesFromWire(wb.Inlines, at+".inlines")
			if err != nil {
				return nil, err
			}
			out = append(out, &Paragraph{Inlines: inlines})
		case typeList:
			items := make([]ListItem, len(wb.Items))
			for j, item := range wb.Items {
				inlines, err := inlinesFromWire(item, fmt.Sprintf("%s.items[%d]", at, j))
				if err != nil {
					return nil, err
				}
				items[j] = inlines
			}
			out = append(out, &List{Items: items, Ordered: wb.Ordered})
		case typeCard:
			kind, err := parseCardKind(wb.Kind)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			body, err := fromWire(wb.Body, at+".body", typeCard)
			if err != nil {
				return nil, err
			}
			out = append(out, &Card{Kind: kind, Title: wb.Title, Body: body})
		case typeWeek:
			body, err := fromWire(wb.Body, at+".body", typeWeek)
			if err != nil {
				return nil, err
			}
			out = append(out, &WeekSection{Title: wb.Title, Body: body})
		default:
			return nil, fmt.Errorf("%s: %w: block %q", at, ErrUnknownType, wb.Type)
		}
	}
	return out, nil
}

func checkNesting(wb wireBlock, parent string) error {
	switch parent {
	case typeCard:
		if wb.Type == typeCard || wb.Type == typeWeek {
			return fmt.Errorf("%w: %s inside card", ErrInvalidNesting, wb.Type)
		}
	case typeWeek:
		if wb.Type == typeWeek {
			return fmt.Errorf("%w: week inside week", ErrInvalidNesting)
		}
		if wb.Type == typeCard && wb.Kind == "info" {
			return fmt.Errorf("%w: info card inside week", ErrInvalidNesting)
		}
	}
	return nil
}

func inlinesFromWire(in []wireInline, path string) ([]Inline, error) {
	out := make([]Inline, len(in))
	for i, w := range in {
		switch w.Type {
		case "text":
			out[i] = Text(w.Text)
		case "emphasis":
			out[i] = Emphasis(w.Text)
		default:
			return nil, fmt.Errorf("%s[%d]: %w: inline %q", path, i, ErrUnknownType, w.Type)
		}
	}
	return out, nil
}

func parseCardKind(s string) (CardKind, error) {
	switch s {
	case "tip":
		return CardTip, nil
	case "caution":
		return CardCaution, nil
	case "info":
		return CardInfo, nil
	}
	return 0, fmt.Errorf("%w: card kind %q", ErrUnknownType, s)
}
