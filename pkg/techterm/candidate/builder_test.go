package candidate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/techterm/pkg/techterm/augment"
	"github.com/cognicore/techterm/pkg/techterm/filter"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

func en(surface, pos, lemma string) term.Token {
	return term.Token{Lang: lang.English, SurfaceForm: surface, POS: pos, Lemma: lemma}
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(Options{
		Languages:   []lang.Code{lang.English, lang.Japanese},
		TermFilters: filter.DefaultTermFilters,
		Augmenters:  augment.DefaultAugmenters,
	})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

func lemmas(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Lemma()
	}
	return out
}

func TestBuildSeedAndAugmentations(t *testing.T) {
	b := newTestBuilder(t)

	tokens := []term.Token{
		en("The", "DET", "the"),
		en("structure", "NOUN", "structure"),
		en("of", "ADP", "of"),
		en("layered", "ADJ", "layered"),
		en("architecture", "NOUN", "architecture"),
		en("is", "AUX", "be"),
		en("simple", "ADJ", "simple"),
		en(".", "PUNCT", "."),
	}

	got := b.Build(tokens, 14, "#000000")
	want := []string{"structure of layered architecture", "structure", "layered architecture"}
	if !reflect.DeepEqual(lemmas(got), want) {
		t.Fatalf("Build = %v, want %v", lemmas(got), want)
	}
	if got[0].Augmented || !got[1].Augmented || !got[2].Augmented {
		t.Error("only derived terms are flagged as augmented")
	}
	if got[0].FontSize != 14 || got[2].Color != "#000000" {
		t.Error("style must be carried to every candidate")
	}
}

func TestBuildDropsNumericRuns(t *testing.T) {
	b := newTestBuilder(t)

	tokens := []term.Token{
		en("in", "ADP", "in"),
		en("2019", "NUM", "2019"),
		en(",", "PUNCT", ","),
		en("graphs", "NOUN", "graph"),
	}
	if got := lemmas(b.Build(tokens, 10, "")); !reflect.DeepEqual(got, []string{"graph"}) {
		t.Errorf("Build = %v, want [graph]", got)
	}
}

func TestBuildDropsUnsupportedLanguage(t *testing.T) {
	b := newTestBuilder(t)

	tokens := []term.Token{
		{Lang: "fr", SurfaceForm: "réseau", POS: "NOUN", Lemma: "réseau"},
		{Lang: "fr", SurfaceForm: "neuronal", POS: "ADJ", Lemma: "neuronal"},
	}
	if got := b.Build(tokens, 10, ""); len(got) != 0 {
		t.Errorf("unsupported language should be dropped silently, got %v", lemmas(got))
	}
	if b.IsCandidate(term.Term{Tokens: tokens}) {
		t.Error("unsupported language is never a candidate")
	}
}

func TestBuildJapanese(t *testing.T) {
	b := newTestBuilder(t)

	ja := func(surface, pos, category string) term.Token {
		return term.Token{Lang: lang.Japanese, SurfaceForm: surface, POS: pos, Category: category, Lemma: surface}
	}
	tokens := []term.Token{
		ja("情報", "名詞", "普通名詞"),
		ja("の", "助詞", "格助詞"),
		ja("検索", "名詞", "普通名詞"),
		ja("を", "助詞", "格助詞"),
		ja("行う", "動詞", "一般"),
	}
	want := []string{"情報の検索", "情報", "検索"}
	if got := lemmas(b.Build(tokens, 12, "")); !reflect.DeepEqual(got, want) {
		t.Errorf("Build = %v, want %v", got, want)
	}
}

func TestNewBuilderUnknownLanguage(t *testing.T) {
	_, err := NewBuilder(Options{Languages: []lang.Code{"xx"}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestDomainListLemmas(t *testing.T) {
	graph := term.Term{Tokens: []term.Token{en("graph", "NOUN", "graph")}}
	tree := term.Term{Tokens: []term.Token{en("tree", "NOUN", "tree")}}
	graphs := term.Term{Tokens: []term.Token{en("graphs", "NOUN", "graph")}, FontSize: 30}

	d := &DomainList{
		Domain: "cs",
		PDFs: []PDFList{
			{Path: "a.pdf", Pages: []PageList{{Page: 1, Candidates: []Candidate{graph, tree}}}},
			{Path: "b.pdf", Pages: []PageList{{Page: 1, Candidates: []Candidate{graphs}}}},
		},
	}
	if got := d.Lemmas(); !reflect.DeepEqual(got, []string{"graph", "tree"}) {
		t.Errorf("Lemmas() = %v", got)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
}
