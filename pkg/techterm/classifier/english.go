package classifier

import (
	"regexp"

	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/stoplist"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

var englishSurface = regexp.MustCompile(`^[\p{Latin}0-9\-\.'&+#/]+$|^\p{P}$|^\p{S}$`)

// English classifies tokens tagged with universal POS tags
type English struct {
	stops *stoplist.List
}

// NewEnglish creates an English classifier. stops may be nil.
func NewEnglish(stops *stoplist.List) *English {
	return &English{stops: stops}
}

func (c *English) InScope(tok term.Token) bool {
	return tok.Lang == lang.English && englishSurface.MatchString(tok.SurfaceForm)
}

func (c *English) IsSymbol(tok term.Token) bool {
	return tok.POS == "SYM" || tok.POS == "PUNCT"
}

func (c *English) IsConnectorSymbol(tok term.Token) bool {
	return tok.SurfaceForm == "-" && (tok.POS == "SYM" || tok.POS == "PUNCT")
}

func (c *English) IsConnectorTerm(tok term.Token) bool {
	return tok.Lemma == "of" && tok.POS == "ADP"
}

func (c *English) IsMeaningless(tok term.Token) bool {
	return c.IsSymbol(tok) || c.IsConnectorTerm(tok) || c.stops.IsStop(tok.Lemma)
}
