package mermaid

import (
	"strconv"
	"strings"
)

var labelEscaper = strings.NewReplacer(
	"#", "#35;",
	`"`, "#quot;",
	"|", "#124;",
	"[", "#91;",
	"]", "#93;",
	"{", "#123;",
	"}", "#125;",
	"(", "#40;",
	")", "#41;",
	"<", "#lt;",
	">", "#gt;",
	"`", "#96;",
	"\r", "#13;",
	"\n", "<br>",
)

var namedEntities = map[string]rune{
	"quot": '"',
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"nbsp": ' ',
	"apos": '\'',
}

// Escape encodes a label so it can sit inside a quoted node or edge label.
// Every character with meaning to the flowchart grammar becomes an entity
// code; newlines become <br>.
func Escape(s string) string {
	return labelEscaper.Replace(s)
}

// Unescape reverses Escape. It also decodes named and numeric entity codes
// and the <br> variants found in hand-written diagrams. Anything that is not a
// recognized sequence is kept verbatim.
func Unescape(s string) string {
	if !strings.ContainsAny(s, "#<") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			if n := matchBreak(s[i:]); n > 0 {
				b.WriteByte('\n')
				i += n
				continue
			}
		case '#':
			if r, n, ok := matchEntity(s[i:]); ok {
				b.WriteRune(r)
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// matchBreak returns the length of a <br>, <br/> or <br /> prefix, or 0.
func matchBreak(s string) int {
	for _, form := range []string{"<br>", "<br/>", "<br />"} {
		if len(s) >= len(form) && strings.EqualFold(s[:len(form)], form) {
			return len(form)
		}
	}
	return 0
}

// matchEntity decodes a #name; or #123; prefix.
func matchEntity(s string) (rune, int, bool) {
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 9 {
		return 0, 0, false
	}
	body := s[1:end]
	if r, ok := namedEntities[body]; ok {
		return r, end + 1, true
	}
	code, err := strconv.ParseUint(body, 10, 32)
	if err != nil || code > 0x10FFFF {
		return 0, 0, false
	}
	return rune(code), end + 1, true
}
