package filter

import (
	"unicode"

	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// numericFilter rejects terms made only of numerals and meaningless tokens
type numericFilter struct {
	classifier classifier.Classifier
	isNumber   func(term.Token) bool
}

func newNumeric(code lang.Code, c classifier.Classifier) *numericFilter {
	f := &numericFilter{classifier: c, isNumber: isEnglishNumber}
	if code == lang.Japanese {
		f.isNumber = isJapaneseNumber
	}
	return f
}

func (f *numericFilter) IsCandidate(t term.Term) bool {
	for _, tok := range t.Tokens {
		if !f.classifier.InScope(tok) {
			continue
		}
		if f.isNumber(tok) || f.classifier.IsMeaningless(tok) {
			continue
		}
		return true
	}
	return false
}

func isEnglishNumber(tok term.Token) bool {
	return tok.POS == "NUM" || tok.Category == "CD" || isDigits(tok.SurfaceForm)
}

func isJapaneseNumber(tok term.Token) bool {
	return (tok.POS == "名詞" && tok.Category == "数詞") || isDigits(tok.SurfaceForm)
}

// isDigits returns true for numbers like "42", "3.14" or "1,000"
func isDigits(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}
