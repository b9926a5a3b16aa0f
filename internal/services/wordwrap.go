package services

import (
	"strings"
	"unicode/utf8"
)

// WrapText splits s into lines of at most width runes.
//
// Words are whitespace-delimited and never broken, hyphenated words included;
// a word longer than width is emitted alone on its own line. Runs of
// whitespace collapse to a single space.
func WrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{}
	}

	lines := make([]string, 0, 1+utf8.RuneCountInString(s)/max(width, 1))
	var cur strings.Builder
	curLen := 0

	for _, w := range words {
		wLen := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wLen > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wLen
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}

	return lines
}
