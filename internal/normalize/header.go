package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so that
// "Descrição" and "Descricao" normalize to the same token.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Header canonicalizes a column header for matching: diacritics stripped,
// lowercased, non-alphanumeric runs collapsed to single spaces.
// "Valor (R$)" → "valor r", "Final do Cartão **" → "final do cartao".
func Header(s string) string {
	t, _, err := transform.String(stripMarks, s)
	if err != nil {
		t = s
	}
	t = strings.ToLower(t)
	t = nonAlnum.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
