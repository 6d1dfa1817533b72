package render

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFilenameLen = 200

// SanitizeFilename replaces characters that are invalid in file names on
// common systems and caps the length.
func SanitizeFilename(name string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxFilenameLen {
		s = string(r[:maxFilenameLen])
	}
	return s
}

// Slug turns a client name into an ASCII file name fragment:
// "Hélène Dupont-Martin" becomes "helene_dupont_martin".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	out := b.String()
	if len(out) > maxFilenameLen {
		out = out[:maxFilenameLen]
	}
	return out
}

// OutputName builds cerfa_<id>_<client>_<YYYYMMDD>.pdf. The client part is
// dropped when the name has no usable characters.
func OutputName(docID, client string, at time.Time) string {
	parts := []string{"cerfa", SanitizeFilename(docID)}
	if slug := Slug(client); slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, at.Format("20060102"))
	return strings.Join(parts, "_") + ".pdf"
}
