package radial

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// truncateLabel shortens s to at most n runes, ending in "..".
func truncateLabel(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-2]) + ".."
}

func pillWidth(label string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(label))*fontSize*charWidth + pillPadding
}
