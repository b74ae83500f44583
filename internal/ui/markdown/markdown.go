// Package markdown renders highlighted code by feeding fenced blocks
// through glamour.
package markdown

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/cuh4/codefield/internal/cache"
	"github.com/cuh4/codefield/internal/log"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// renderTTL bounds how long a rendered block stays memoized. Edits
// produce new keys, so stale entries only cost memory.
const renderTTL = 10 * time.Minute

// Renderer wraps glamour with codefield-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
	memo     *cache.Memory[string]
}

// New creates a markdown renderer with the given width and style.
// style should be "dark" or "light". Defaults to "dark" if empty.
// Use an explicit style instead of WithAutoStyle() to avoid terminal
// OSC queries. WithAutoStyle() creates a new lipgloss renderer that
// detects light/dark background by querying the terminal, which causes
// escape sequence responses to leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		renderer: r,
		width:    width,
		style:    style,
		memo:     cache.NewMemory[string]("markdown", cache.DefaultExpiration, cache.DefaultCleanupInterval),
	}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderCode highlights text as a fenced code block in the given
// language. Output is memoized keyed on content, language, style and
// width since glamour rendering dominates the view path.
func (r *Renderer) RenderCode(text, language string) (string, error) {
	key := renderKey(text, language, r.style, r.width)
	return r.memo.GetOrFill(key, renderTTL, func() (string, error) {
		out, err := r.Render(CodeBlock(text, language))
		if err != nil {
			log.ErrorErr(log.CatRender, "code block render failed", err, "language", language)
			return "", err
		}
		return out, nil
	})
}

// CodeBlock wraps text in a markdown code fence. Backticks in the text
// are escaped so they cannot terminate the fence early, and an empty
// buffer becomes a single space so glamour still emits a block.
func CodeBlock(text, language string) string {
	if text == "" {
		text = " "
	}
	text = strings.ReplaceAll(text, "`", "\\`")
	return fmt.Sprintf("```%s\n%s\n```", language, text)
}

func renderKey(text, language, style string, width int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%x|%s|%s|%d", h.Sum64(), language, style, width)
}
