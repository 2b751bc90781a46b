package classifier

import (
	"regexp"

	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

var japaneseSurface = regexp.MustCompile(`^[\p{Hiragana}\p{Katakana}\p{Han}ー・\-0-9０-９A-Za-zＡ-Ｚａ-ｚ]+$`)

// Japanese classifies tokens tagged with UniDic-style POS tags
type Japanese struct{}

// NewJapanese creates a Japanese classifier
func NewJapanese() *Japanese {
	return &Japanese{}
}

func (c *Japanese) InScope(tok term.Token) bool {
	return tok.Lang == lang.Japanese && japaneseSurface.MatchString(tok.SurfaceForm)
}

func (c *Japanese) IsSymbol(tok term.Token) bool {
	return tok.POS == "補助記号"
}

func (c *Japanese) IsConnectorSymbol(tok term.Token) bool {
	return (tok.SurfaceForm == "・" || tok.SurfaceForm == "-") &&
		tok.POS == "補助記号" && tok.Category == "一般"
}

func (c *Japanese) IsConnectorTerm(tok term.Token) bool {
	return tok.SurfaceForm == "の" && tok.POS == "助詞"
}

func (c *Japanese) IsMeaningless(tok term.Token) bool {
	return c.IsSymbol(tok) || c.IsConnectorTerm(tok)
}
