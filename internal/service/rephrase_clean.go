package service

import (
	"regexp"
	"strings"
)

var (
	reFenceStart = regexp.MustCompile("(?s)^\\s*```(?:[a-zA-Z]+[ \\t]*\\n)?\\s*")
	reFenceEnd   = regexp.MustCompile("(?s)\\s*```\\s*$")
)

// cleanRephrase deja solo el texto reformulado: sin espacios de borde, BOM,
// fences ``` ni comillas que envuelvan toda la respuesta.
func cleanRephrase(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = reFenceStart.ReplaceAllString(s, "")
	s = reFenceEnd.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q && !strings.ContainsRune(s[1:len(s)-1], rune(q)) {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
