package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// periodGap matches a period glued to the next word, as in "Ad.suman".
var periodGap = regexp.MustCompile(`\.(\w)`)

// Text canonicalizes free text (names, addresses, cities) into consistent
// title case. Comma-separated segments are trimmed and rejoined with ", ".
// Within a word, hyphen-, apostrophe- and period-delimited sub-words are
// title-cased independently ("o'brien" -> "O'Brien", "ad.suman" ->
// "Ad. Suman"). Idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	caser := cases.Title(language.Und)

	if strings.Contains(s, ",") {
		segments := strings.Split(s, ",")
		formatted := make([]string, 0, len(segments))
		for _, seg := range segments {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			formatted = append(formatted, formatWords(caser, seg))
		}
		return strings.Join(formatted, ", ")
	}

	s = periodGap.ReplaceAllString(s, ". $1")
	return formatWords(caser, s)
}

func formatWords(caser cases.Caser, s string) string {
	words := strings.Fields(s)
	formatted := words[:0]
	for _, w := range words {
		// A bare delimiter token formats to nothing and is dropped, so
		// a second pass sees the same word sequence.
		if fw := formatWord(caser, w); fw != "" {
			formatted = append(formatted, fw)
		}
	}
	return strings.Join(formatted, " ")
}

// formatWord title-cases one word. The first matching delimiter wins;
// a trailing period does not count as a sub-word delimiter.
func formatWord(caser cases.Caser, w string) string {
	switch {
	case strings.Contains(w, "-"):
		return joinSubwords(caser, w, "-", "-")
	case strings.Contains(w, "'"):
		return joinSubwords(caser, w, "'", "'")
	case strings.Contains(w, ".") && !strings.HasSuffix(w, "."):
		return joinSubwords(caser, w, ".", ". ")
	default:
		return caser.String(w)
	}
}

func joinSubwords(caser cases.Caser, w, sep, join string) string {
	split := strings.Split(w, sep)
	parts := make([]string, 0, len(split))
	for _, p := range split {
		if p == "" {
			continue
		}
		parts = append(parts, caser.String(p))
	}
	return strings.Join(parts, join)
}
