// Package speech cleans up lines before they are spoken aloud. The
// completion model is prompted to stay in character, but a public-
// facing guide gets a hard filter on top of the soft one.
package speech

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps words the guide must not say to mild stand-ins.
var replacements = map[string]string{
	"fuck":     "fudge",
	"shit":     "shoot",
	"damn":     "dash it",
	"hell":     "heck",
	"ass":      "backside",
	"bitch":    "bother",
	"bastard":  "scoundrel",
	"crap":     "rubbish",
	"bullshit": "poppycock",
	"asshole":  "boor",
	"goddamn":  "confounded",
	"piss":     "vex",
	"prick":    "boor",
}

// Sanitizer rewrites disallowed words while preserving their case.
type Sanitizer struct {
	patterns map[string]*regexp.Regexp
}

func NewSanitizer() *Sanitizer {
	s := &Sanitizer{patterns: make(map[string]*regexp.Regexp, len(replacements))}
	for word := range replacements {
		s.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return s
}

// Clean returns text with every disallowed word replaced.
func (s *Sanitizer) Clean(text string) string {
	result := text
	for word, re := range s.patterns {
		replacement := replacements[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return matchCase(match, replacement)
		})
	}
	return result
}

// IsClean reports whether text contains no disallowed words.
func (s *Sanitizer) IsClean(text string) bool {
	for _, re := range s.patterns {
		if re.MatchString(text) {
			return false
		}
	}
	return true
}

var titleCaser = cases.Title(language.English)

// matchCase applies the case shape of the matched word to the
// replacement: all-caps stays all-caps, title case stays title case.
func matchCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if strings.ToUpper(original) == original && strings.ContainsFunc(original, unicode.IsLetter) {
		return strings.ToUpper(replacement)
	}
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}
	return replacement
}
