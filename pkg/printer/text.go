package printer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanText makes s safe for printers with unreliable code pages: accents
// are stripped, Ñ becomes N, letters are uppercased and anything outside
// printable ASCII (newline excepted) is dropped. The result is trimmed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	upper := strings.ToUpper(stripped)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if r == '\n' || (r >= 0x20 && r <= 0x7E) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// FormatLine lays out left and right on a single line of width characters
// terminated by a newline. Left is truncated to leave room for right plus
// one space.
func FormatLine(left, right string, width int) string {
	l := CleanText(left)
	r := CleanText(right)

	keep := width - len(r) - 1
	if keep < 0 {
		keep = 0
	}
	if keep > len(l) {
		keep = len(l)
	}
	l = l[:keep]

	spaces := width - len(l) - len(r)
	if spaces < 0 {
		spaces = 0
	}
	return l + strings.Repeat(" ", spaces) + r + "\n"
}

// Wrap cuts s into chunks of at most width characters. Line breaks end a
// chunk and are not part of any chunk.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var chunks []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' {
			flush()
			continue
		}
		cur = append(cur, r)
		if len(cur) == width {
			flush()
		}
	}
	flush()

	if len(chunks) == 0 {
		return []string{s}
	}
	return chunks
}
