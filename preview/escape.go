package preview

import "strings"

// xmlEscaper escapes the five characters that are unsafe inside XML text and
// attribute content. The replacement is lossless: each escaped entity decodes
// back to exactly the original character.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes s for embedding as XML text content.
func EscapeText(s string) string {
	return xmlEscaper.Replace(s)
}
