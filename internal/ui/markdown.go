package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	width int
	plain bool
}

// rendererCache holds glamour renderers keyed by width and color mode.
// Building a renderer compiles the whole style sheet, so reuse matters when
// the pager re-renders on every resize.
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

func getRenderer(width int, plain bool) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, plain: plain}
	if cached, ok := rendererCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	var styleOpt glamour.TermRendererOption
	if plain {
		styleOpt = glamour.WithStandardStyle("notty")
	} else {
		style := GlamourStyle()
		margin := uint(0)
		style.Document.Margin = &margin
		style.Document.BlockPrefix = ""
		style.Document.BlockSuffix = ""
		styleOpt = glamour.WithStyles(style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	// Race-safe: a concurrent Store just replaces an equivalent renderer.
	rendererCache.Store(key, renderer)
	return renderer, nil
}

// ResetRendererCache drops cached renderers. SetTheme calls it.
func ResetRendererCache() {
	rendererCache.Range(func(k, _ any) bool {
		rendererCache.Delete(k)
		return true
	})
}

// RenderMarkdownWithError renders markdown content and returns any errors.
func RenderMarkdownWithError(content string, width int, plain bool) (string, error) {
	renderer, err := getRenderer(width, plain)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(rendered), nil
}
