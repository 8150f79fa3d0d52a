// Package names canonicalizes person names into matchable keys. Several raw
// spellings normalize to one key, so keys are for matching only, never for
// display.
package names

import (
	"regexp"
	"strings"
)

var (
	suffixRe     = regexp.MustCompile(`(?i)\s+(jr\.?|sr\.?|ii|iii|iv)$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// translit maps accented characters to their nearest ASCII base letter.
// Covers the letters that actually appear on NBA rosters: Serbian/Croatian,
// Latvian, Lithuanian, Spanish, German/Nordic, French/Portuguese, plus
// typographic quote and dash variants.
var translit = map[rune]string{
	// Serbian/Croatian
	'ć': "c", 'Ć': "C",
	'č': "c", 'Č': "C",
	'ž': "z", 'Ž': "Z",
	'š': "s", 'Š': "S",
	'đ': "d", 'Đ': "D",
	// Latvian
	'ņ': "n", 'Ņ': "N",
	'ģ': "g", 'Ģ': "G",
	'ķ': "k", 'Ķ': "K",
	'ļ': "l", 'Ļ': "L",
	// Lithuanian
	'ū': "u", 'Ū': "U",
	'ą': "a", 'Ą': "A",
	'ę': "e", 'Ę': "E",
	'ė': "e", 'Ė': "E",
	'į': "i", 'Į': "I",
	'ų': "u", 'Ų': "U",
	// Spanish
	'ñ': "n", 'Ñ': "N",
	// German/Nordic
	'ö': "o", 'Ö': "O",
	'ü': "u", 'Ü': "U",
	'ä': "a", 'Ä': "A",
	// French/Portuguese
	'é': "e", 'É': "E",
	'è': "e", 'È': "E",
	'ê': "e", 'Ê': "E",
	'ë': "e", 'Ë': "E",
	'à': "a", 'À': "A",
	'á': "a", 'Á': "A",
	'â': "a", 'Â': "A",
	'í': "i", 'Í': "I",
	'ì': "i", 'Ì': "I",
	'î': "i", 'Î': "I",
	'ï': "i", 'Ï': "I",
	'ó': "o", 'Ó': "O",
	'ò': "o", 'Ò': "O",
	'ô': "o", 'Ô': "O",
	'ú': "u", 'Ú': "U",
	'ù': "u", 'Ù': "U",
	'û': "u", 'Û': "U",
	'ý': "y", 'Ý': "Y",
	'ÿ': "y", 'Ÿ': "Y",
	// Typography
	'‘': "'", '’': "'",
	'–': "-", '—': "-",
}

// Normalize canonicalizes a raw name into a matching key. It is pure, total
// and idempotent: any input yields a best-effort ASCII string, an empty input
// yields an empty key (which callers must treat as "no key"). Only a single
// trailing generational suffix token is stripped.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		// Unmapped characters outside printable ASCII are dropped, not
		// substituted.
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}

	name := strings.ToLower(b.String())
	name = suffixRe.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, ".", "")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// SplitKey splits a normalized key into its tokens. Returns nil for an empty
// key.
func SplitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, " ")
}
