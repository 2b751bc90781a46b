package term

import "github.com/cognicore/techterm/pkg/techterm/lang"

// Token is one tagged word produced by an external tokenizer.
type Token struct {
	Lang        lang.Code `json:"lang"`
	SurfaceForm string    `json:"surface_form"`
	POS         string    `json:"pos"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Lemma       string    `json:"lemma"`
}
