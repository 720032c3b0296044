package translate

import "strings"

// Transliterate maps romanized (ITRANS-style) text to Devanagari. It is a
// deterministic, offline script mapping — not a translation — used as the
// terminal pronunciation fallback, so it must never fail.
func Transliterate(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(runes) * 3)

	i := 0
	for i < len(runes) {
		if cons, n := matchToken(runes, i, consonantSigns); n > 0 {
			b.WriteString(cons)

			// A following vowel becomes a matra ("a" is the inherent vowel
			// and is consumed silently); otherwise the consonant is dead and
			// takes a virama.
			if vowel, vn := matchToken(runes, i+n, vowelMatras); vn > 0 {
				b.WriteString(vowel)
				i += n + vn
				continue
			}
			b.WriteRune(virama)
			i += n
			continue
		}

		if vowel, n := matchToken(runes, i, independentVowels); n > 0 {
			b.WriteString(vowel)
			i += n
			continue
		}

		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

const virama = '्'

// matchToken finds the longest table entry starting at position i, trying the
// raw token first and a lowercased variant second (unknown capitals in normal
// prose degrade to their lowercase mapping).
func matchToken(runes []rune, i int, table map[string]string) (string, int) {
	for n := maxTokenLen; n >= 1; n-- {
		if i+n > len(runes) {
			continue
		}
		tok := string(runes[i : i+n])
		if out, ok := table[tok]; ok {
			return out, n
		}
		if lower := strings.ToLower(tok); lower != tok {
			if out, ok := table[lower]; ok {
				return out, n
			}
		}
	}
	return "", 0
}

const maxTokenLen = 2

// Case is significant in ITRANS: "T"/"D" are retroflex, "t"/"d" dental, so
// the case-sensitive entries below must be hit before the lowercase retry.
var consonantSigns = map[string]string{
	"k": "क", "kh": "ख", "g": "ग", "gh": "घ",
	"ch": "च", "Ch": "छ", "j": "ज", "jh": "झ",
	"T": "ट", "Th": "ठ", "D": "ड", "Dh": "ढ", "N": "ण",
	"t": "त", "th": "थ", "d": "द", "dh": "ध", "n": "न",
	"p": "प", "ph": "फ", "f": "फ", "b": "ब", "bh": "भ",
	"m": "म", "y": "य", "r": "र", "l": "ल",
	"v": "व", "w": "व",
	"sh": "श", "Sh": "ष", "s": "स", "h": "ह",
	"c": "च", "q": "क", "x": "क", "z": "ज",
}

var vowelMatras = map[string]string{
	"a": "", "aa": "ा", "A": "ा",
	"i": "ि", "ii": "ी", "I": "ी",
	"u": "ु", "uu": "ू", "U": "ू",
	"e": "े", "ai": "ै",
	"o": "ो", "au": "ौ",
}

var independentVowels = map[string]string{
	"a": "अ", "aa": "आ", "A": "आ",
	"i": "इ", "ii": "ई", "I": "ई",
	"u": "उ", "uu": "ऊ", "U": "ऊ",
	"e": "ए", "ai": "ऐ",
	"o": "ओ", "au": "औ",
}
