// Package preview renders a static HTML page of a form: description text
// runs through Markdown, the field list renders as the matching input
// controls, and everything user-authored is sanitized on the way out.
package preview

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var sanitizer = bluemonday.UGCPolicy()

// DescriptionHTML converts a Markdown description to sanitized HTML. Untrusted
// markup in the source survives only as far as the sanitizer allows.
func DescriptionHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// PlainText strips all markup from user-authored text. Used for titles and
// labels, which never carry formatting.
func PlainText(source string) string {
	return bluemonday.StrictPolicy().Sanitize(source)
}
