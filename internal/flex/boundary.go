package flex

import (
	"strings"
	"unicode"

	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// markBoundary adds the hyphens an affix is written with: a suffix gets a
// leading one, a prefix a trailing one and an infix both, unless present.
func markBoundary(text, morphType string) string {
	switch morphType {
	case types.MorphSuffix:
		if !strings.HasPrefix(text, "-") {
			text = "-" + text
		}
	case types.MorphPrefix:
		if !strings.HasSuffix(text, "-") {
			text += "-"
		}
	case types.MorphInfix:
		if !strings.HasPrefix(text, "-") {
			text = "-" + text
		}
		if !strings.HasSuffix(text, "-") {
			text += "-"
		}
	}
	return text
}

// markClitic adds the "=" a clitic is written with on the side facing its host.
func markClitic(text string, kind types.UnitKind) string {
	switch kind {
	case types.UnitProclitic:
		if !strings.HasSuffix(text, "=") {
			text += "="
		}
	case types.UnitEnclitic:
		if !strings.HasPrefix(text, "=") {
			text = "=" + text
		}
	}
	return text
}

var separatorRepairs = strings.NewReplacer("--", "-", "=-", "=", "-=", "=")

// collapseSeparators rewrites doubled separators until none remain.
func collapseSeparators(s string) string {
	for {
		next := separatorRepairs.Replace(s)
		if next == s {
			return s
		}
		s = next
	}
}

// joinMorphs concatenates the forms or glosses of one word's morphs with
// boundary repair: affixes are marked, parts are joined with "-" and the
// resulting doubled separators are collapsed.
func joinMorphs(parts, morphTypes []string) string {
	fixed := make([]string, len(parts))
	for i, p := range parts {
		t := types.MorphRoot
		if i < len(morphTypes) {
			t = morphTypes[i]
		}
		fixed[i] = markBoundary(p, t)
	}
	return collapseSeparators(strings.Join(fixed, "-"))
}

// isPunctuation reports whether every rune of s is punctuation or a symbol.
func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// composeSurface joins word tokens into a sentence. Punctuation tokens are
// attached to the preceding word without a space.
func composeSurface(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if !isPunctuation(tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return strings.TrimLeftFunc(b.String(), unicode.IsSpace)
}

// trimQuotes strips the typographic single quotes FLEx users often put
// around free translations.
func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), "‘’")
}
