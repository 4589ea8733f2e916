// Package render turns a parsed guide into output. Every format is a
// guide.Visitor, so adding a format never touches the parser.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/ui"
)

// Renderer writes a document in one output format.
type Renderer interface {
	Render(w io.Writer, doc guide.Document) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, doc guide.Document) error

func (f RendererFunc) Render(w io.Writer, doc guide.Document) error { return f(w, doc) }

// Options tune the terminal-oriented formats. Zero values pick defaults.
type Options struct {
	Width int  // wrap width; ui.DefaultWidth when zero
	Plain bool // no color or text attributes
}

func (o Options) width() int {
	if o.Width <= 0 {
		return ui.DefaultWidth
	}
	return o.Width
}

// Format names accepted by For.
const (
	FormatTerminal = "term"
	FormatGlamour  = "glamour"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
	FormatJSON     = "json"
)

var factories = map[string]func(Options) Renderer{
	FormatTerminal: func(o Options) Renderer { return NewTerminal(o) },
	FormatGlamour:  func(o Options) Renderer { return NewGlamour(o) },
	FormatMarkdown: func(Options) Renderer { return RendererFunc(Markdown) },
	FormatHTML:     func(Options) Renderer { return RendererFunc(HTML) },
	FormatText:     func(Options) Renderer { return RendererFunc(Text) },
	FormatJSON:     func(Options) Renderer { return RendererFunc(guide.Encode) },
}

// Formats lists the accepted format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the renderer for a format name. "md" is accepted for
// markdown and "terminal" for term.
func For(format string, opts Options) (Renderer, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "md":
		format = FormatMarkdown
	case "terminal", "":
		format = FormatTerminal
	default:
		format = f
	}
	factory, ok := factories[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats(), ", "))
	}
	return factory(opts), nil
}

// DefaultFormat picks the terminal renderer for a TTY and markdown
// otherwise, so piped output stays free of escape codes.
func DefaultFormat(out *os.File) string {
	if ui.IsTerminal(out) {
		return FormatTerminal
	}
	return FormatMarkdown
}
