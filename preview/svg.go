package preview

import (
	"fmt"
	"net/url"
	"strings"
)

// Preview canvas geometry. The card is sized for the panel's preview area;
// the host document's own dimensions do not affect it.
const (
	svgWidth      = 512
	svgHeight     = 512
	svgLineHeight = 28
	svgMarginLeft = 24
	svgMarginTop  = 48
)

// BuildSVG renders the given text lines onto a dark preview card. Each line
// is escaped before embedding, so callers pass raw text.
func BuildSVG(title string, lines []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		svgWidth, svgHeight, svgWidth, svgHeight)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#1e1e1e"/>`, svgWidth, svgHeight)
	fmt.Fprintf(&b, `<text x="%d" y="%d" fill="#e8e8e8" font-family="monospace" font-size="20" font-weight="bold">%s</text>`,
		svgMarginLeft, svgMarginTop, EscapeText(title))

	y := svgMarginTop + 2*svgLineHeight
	for _, line := range lines {
		fmt.Fprintf(&b, `<text x="%d" y="%d" fill="#b8b8b8" font-family="monospace" font-size="14">%s</text>`,
			svgMarginLeft, y, EscapeText(line))
		y += svgLineHeight
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// DataURI percent-encodes an SVG document into a self-contained
// image/svg+xml data URI. QueryEscape encodes spaces as "+", which data URIs
// do not understand, so those are rewritten to "%20". The encoding is
// reversible: decoding the URI yields the original SVG byte for byte.
func DataURI(svg string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
	return "data:image/svg+xml," + encoded
}
