package tokenizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// English tags text with prose's averaged perceptron and maps the Penn
// Treebank tags onto universal POS tags. The Penn tag is kept as Category.
type English struct{}

// NewEnglish creates the English tokenizer
func NewEnglish() *English { return &English{} }

func (*English) Lang() lang.Code { return lang.English }

// InScope accepts text with at least one Latin letter and no CJK script
func (*English) InScope(text string) bool {
	latin := false
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
			return false
		case unicode.Is(unicode.Latin, r):
			latin = true
		}
	}
	return latin
}

func (e *English) Tokenize(text string) ([]term.Token, error) {
	text = norm.NFKC.String(text)
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tag english text: %w", err)
	}

	var tokens []term.Token
	for _, tok := range doc.Tokens() {
		for _, part := range splitHyphen(tok.Text) {
			tag := tok.Tag
			if part == "-" {
				tag = "HYPH"
			}
			tokens = append(tokens, newToken(part, tag))
		}
	}
	return tokens, nil
}

// splitHyphen breaks "state-of-the-art" into words and hyphens so the hyphen
// can act as a connector symbol.
func splitHyphen(s string) []string {
	if s == "-" || !strings.Contains(s, "-") || strings.Trim(s, "-") == "" {
		return []string{s}
	}
	var parts []string
	for i, p := range strings.Split(s, "-") {
		if i > 0 {
			parts = append(parts, "-")
		}
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func newToken(surface, tag string) term.Token {
	pos := UniversalPOS(tag, surface)
	return term.Token{
		Lang:        lang.English,
		SurfaceForm: surface,
		POS:         pos,
		Category:    tag,
		Lemma:       Lemmatize(surface, pos),
	}
}

// UniversalPOS maps a Penn Treebank tag to a universal POS tag
func UniversalPOS(tag, surface string) string {
	switch tag {
	case "NN", "NNS":
		return "NOUN"
	case "NNP", "NNPS":
		return "PROPN"
	case "JJ", "JJR", "JJS":
		return "ADJ"
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "MD":
		return "VERB"
	case "RB", "RBR", "RBS", "WRB":
		return "ADV"
	case "CD":
		return "NUM"
	case "IN":
		return "ADP"
	case "TO":
		return "PART"
	case "DT", "PDT", "WDT":
		return "DET"
	case "CC":
		return "CCONJ"
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return "PRON"
	case "UH":
		return "INTJ"
	case "SYM", "HYPH", "$", "#":
		return "SYM"
	case ",", ".", ":", "(", ")", "``", "''", "-LRB-", "-RRB-":
		return "PUNCT"
	case "FW", "LS":
		return "X"
	}
	if surface != "" && isPunct(surface) {
		return "PUNCT"
	}
	return "X"
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Lemmatize lower-cases surface and stems content words
func Lemmatize(surface, pos string) string {
	lower := strings.ToLower(surface)
	switch pos {
	case "NOUN", "PROPN", "ADJ", "VERB":
		return english.Stem(lower, false)
	}
	return lower
}
