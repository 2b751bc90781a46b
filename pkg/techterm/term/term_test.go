package term

import (
	"testing"

	"github.com/cognicore/techterm/pkg/techterm/lang"
)

func en(surface, pos, lemma string) Token {
	return Token{Lang: lang.English, SurfaceForm: surface, POS: pos, Lemma: lemma}
}

func ja(surface, pos, lemma string) Token {
	return Token{Lang: lang.Japanese, SurfaceForm: surface, POS: pos, Lemma: lemma}
}

func TestLemmaEnglish(t *testing.T) {
	tm := Term{Tokens: []Token{en("Neural", "ADJ", "neural"), en("Networks", "NOUN", "network")}}
	if got := tm.Lemma(); got != "neural network" {
		t.Errorf("Lemma() = %q, want %q", got, "neural network")
	}
	if got := tm.String(); got != "Neural Networks" {
		t.Errorf("String() = %q", got)
	}
}

func TestLemmaHyphenCompound(t *testing.T) {
	tm := Term{Tokens: []Token{
		en("end", "NOUN", "end"),
		en("-", "SYM", "-"),
		en("to", "ADP", "to"),
		en("-", "SYM", "-"),
		en("end", "NOUN", "end"),
		en("model", "NOUN", "model"),
	}}
	if got := tm.Lemma(); got != "end-to-end model" {
		t.Errorf("Lemma() = %q", got)
	}
}

func TestLemmaJapanese(t *testing.T) {
	tm := Term{Tokens: []Token{ja("情報", "名詞", "情報"), ja("の", "助詞", "の"), ja("検索", "名詞", "検索")}}
	if got := tm.Lemma(); got != "情報の検索" {
		t.Errorf("Lemma() = %q", got)
	}
}

func TestLemmaIgnoresStyle(t *testing.T) {
	tokens := []Token{en("Graph", "NOUN", "graph")}
	a := Term{Tokens: tokens, FontSize: 24, Color: "#ff0000"}
	b := Term{Tokens: []Token{en("graphs", "NOUN", "graph")}, FontSize: 10}
	if a.Lemma() != b.Lemma() {
		t.Errorf("style variants should share a lemma: %q vs %q", a.Lemma(), b.Lemma())
	}
}

func TestLangDominant(t *testing.T) {
	tm := Term{Tokens: []Token{en("a", "NOUN", "a"), ja("b", "名詞", "b"), ja("c", "名詞", "c")}}
	if tm.Lang() != lang.Japanese {
		t.Errorf("Lang() = %q, want ja", tm.Lang())
	}

	tie := Term{Tokens: []Token{en("a", "NOUN", "a"), ja("b", "名詞", "b")}}
	if tie.Lang() != lang.English {
		t.Errorf("tie should go to first seen, got %q", tie.Lang())
	}

	if (Term{}).Lang() != "" {
		t.Error("empty term has no language")
	}
}

func TestSubKeepsStyle(t *testing.T) {
	tm := Term{
		Tokens:   []Token{en("deep", "ADJ", "deep"), en("learning", "NOUN", "learning")},
		FontSize: 18,
		Color:    "#000000",
	}
	sub := tm.Sub(1, 2)
	if sub.Lemma() != "learning" || sub.FontSize != 18 || sub.Color != "#000000" {
		t.Errorf("Sub() = %+v", sub)
	}
}
