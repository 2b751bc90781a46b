package filter

import (
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// TokenFilter decides whether the token at idx may be part of a candidate,
// looking at its neighbours when the token only joins other words.
type TokenFilter interface {
	IsPartOfCandidate(tokens []term.Token, idx int) bool
}

// NewTokenFilter returns the token filter for a language
func NewTokenFilter(code lang.Code, c classifier.Classifier) (TokenFilter, bool) {
	switch code {
	case lang.English:
		return &englishTokens{classifier: c}, true
	case lang.Japanese:
		return &japaneseTokens{classifier: c}, true
	}
	return nil, false
}

type englishTokens struct {
	classifier classifier.Classifier
}

var (
	englishHeads     = map[string]bool{"NOUN": true, "PROPN": true, "NUM": true}
	englishModifiers = map[string]bool{"NOUN": true, "PROPN": true, "ADJ": true, "VERB": true, "NUM": true}
)

func (f *englishTokens) IsPartOfCandidate(tokens []term.Token, idx int) bool {
	tok := tokens[idx]
	c := f.classifier
	if !c.InScope(tok) || (c.IsMeaningless(tok) && !c.IsConnectorSymbol(tok) && !c.IsConnectorTerm(tok)) {
		return false
	}

	switch {
	case englishHeads[tok.POS]:
		return true
	case tok.POS == "ADJ" || tok.POS == "VERB":
		return idx+1 < len(tokens) && (englishModifiers[tokens[idx+1].POS] || c.IsConnectorSymbol(tokens[idx+1]))
	case c.IsConnectorSymbol(tok):
		return idx > 0 && idx+1 < len(tokens) &&
			englishModifiers[tokens[idx-1].POS] && englishModifiers[tokens[idx+1].POS]
	case c.IsConnectorTerm(tok):
		return idx > 0 && idx+1 < len(tokens) &&
			(tokens[idx-1].POS == "NOUN" || tokens[idx-1].POS == "PROPN") &&
			englishModifiers[tokens[idx+1].POS]
	}
	return false
}

type japaneseTokens struct {
	classifier classifier.Classifier
}

func (f *japaneseTokens) IsPartOfCandidate(tokens []term.Token, idx int) bool {
	tok := tokens[idx]
	c := f.classifier
	if !c.InScope(tok) {
		return false
	}

	isNoun := func(i int) bool {
		return i >= 0 && i < len(tokens) && tokens[i].POS == "名詞"
	}

	switch {
	case tok.POS == "名詞":
		return true
	case tok.POS == "形状詞":
		return isNoun(idx+1) || (idx+1 < len(tokens) && tokens[idx+1].POS == "接尾辞")
	case tok.POS == "接頭辞":
		return isNoun(idx + 1)
	case tok.POS == "接尾辞":
		return isNoun(idx - 1)
	case c.IsConnectorSymbol(tok), c.IsConnectorTerm(tok):
		return isNoun(idx-1) && isNoun(idx+1)
	}
	return false
}
