package ui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown renders markdown for the terminal. Without color the
// no-TTY style is used so output stays plain when piped.
func RenderMarkdown(content string, width int, color bool) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	style := styles.NoTTYStyle
	if color {
		style = styles.DarkStyle
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// MarkdownToHTML converts markdown help into an HTML fragment.
func MarkdownToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
