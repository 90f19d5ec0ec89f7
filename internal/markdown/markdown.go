package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = bluemonday.UGCPolicy()
)

// Render converts raw Markdown to HTML and strips anything that could execute
// in a browser (scripts, event handlers, javascript: URIs, iframes). The
// result is safe to inject into a page without further escaping.
//
// Render must always be called on the original raw source; re-rendering
// already-rendered output is not guaranteed to round-trip.
func Render(raw string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(raw), &buf); err != nil {
		// goldmark's renderer writes to an in-memory buffer and does not
		// fail on any text input; fall back to escaping everything.
		return string(policy.SanitizeBytes([]byte(raw)))
	}
	return string(policy.SanitizeBytes(buf.Bytes()))
}
