package document

import "strings"

// cdataOpen / cdataClose delimit opaque character data. Content containing
// the closing sequence is split across adjacent chunks so the visual closing
// marker is disrupted while the underlying text concatenates back unchanged.
const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// wrapOpaque wraps free-form text so that markup-significant sequences inside
// it cannot terminate the enclosing section.
func wrapOpaque(s string) string {
	escaped := strings.ReplaceAll(s, cdataClose, "]]"+cdataClose+cdataOpen+">")
	return cdataOpen + escaped + cdataClose
}

// DecodeOpaque reverses wrapOpaque: it extracts every opaque chunk from s and
// concatenates their contents. Used to verify round-tripping; a consumer that
// strips the markers the same way recovers the original text exactly.
func DecodeOpaque(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, cdataOpen)
		if start < 0 {
			break
		}
		rest := s[start+len(cdataOpen):]
		end := strings.Index(rest, cdataClose)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:end])
		s = rest[end+len(cdataClose):]
	}
	return b.String()
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeAttr escapes the narrow set of markup-significant characters allowed
// to appear in attribute values.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
