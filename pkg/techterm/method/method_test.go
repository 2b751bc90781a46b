package method

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/techterm/pkg/techterm/augment"
	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/filter"
	"github.com/cognicore/techterm/pkg/techterm/freq"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

const eps = 1e-9

func en(surface, pos string) term.Token {
	return term.Token{Lang: lang.English, SurfaceForm: surface, POS: pos, Lemma: surface}
}

func newAggregator(t *testing.T) *freq.Aggregator {
	t.Helper()
	b, err := candidate.NewBuilder(candidate.Options{
		Languages:   []lang.Code{lang.English},
		TermFilters: filter.DefaultTermFilters,
		Augmenters:  augment.DefaultAugmenters,
	})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return freq.NewAggregator(b.Classifiers(), b, 1)
}

func sampleDomain() *candidate.DomainList {
	neuralNetwork := term.Term{Tokens: []term.Token{en("neural", "ADJ"), en("network", "NOUN")}}
	networkArchitecture := term.Term{Tokens: []term.Token{en("network", "NOUN"), en("architecture", "NOUN")}}
	return &candidate.DomainList{
		Domain: "sample",
		PDFs: []candidate.PDFList{
			{Path: "a.pdf", Pages: []candidate.PageList{
				{Page: 1, Candidates: []candidate.Candidate{neuralNetwork, neuralNetwork, neuralNetwork}},
			}},
			{Path: "b.pdf", Pages: []candidate.PageList{
				{Page: 1, Candidates: []candidate.Candidate{networkArchitecture, networkArchitecture}},
			}},
		},
	}
}

func lemmasOf(r *Ranking) []string {
	out := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		out[i] = t.Lemma
	}
	return out
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"tf", "FLR", " hits ", "flrh", "mdp"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	_, err := Lookup("tfidf")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("Lookup(tfidf) error = %v, want ErrInvalidConfig", err)
	}
}

func TestFLRRanking(t *testing.T) {
	list := sampleDomain()
	m := NewFLR(newAggregator(t))
	data, err := m.CollectData(context.Background(), list)
	if err != nil {
		t.Fatalf("CollectData: %v", err)
	}
	r, err := m.RankTerms(list, data)
	if err != nil {
		t.Fatalf("RankTerms: %v", err)
	}

	want := map[string]float64{
		"neural network":       3,
		"network":              5 * math.Sqrt(0.5*2.0/3.0),
		"network architecture": 2,
		"neural":               1.5,
		"architecture":         2 * math.Sqrt(1.0/3.0),
	}
	for lemma, w := range want {
		got, ok := r.Score(lemma)
		if !ok {
			t.Fatalf("missing %q", lemma)
		}
		if math.Abs(got-w) > eps {
			t.Errorf("score(%q) = %v, want %v", lemma, got, w)
		}
	}

	wantOrder := []string{"neural network", "network", "network architecture", "neural", "architecture"}
	if got := lemmasOf(r); !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("order = %v, want %v", got, wantOrder)
	}
}

func TestFLRZeroFrequency(t *testing.T) {
	data := FrequencyData{Tables: *freq.NewTables("d")}
	data.Order = []string{"ghost"}
	if got := flrScore(data, "ghost"); got != 0 {
		t.Errorf("flrScore = %v, want 0", got)
	}
}

func TestHITSFixedPoint(t *testing.T) {
	m := NewHITS(nil, HITSConfig{})
	data := HITSData{
		Domain:   "d",
		Order:    []string{"a b", "a", "b"},
		Subterms: map[string][]string{"a b": {"a", "b"}},
	}
	auth, loops := m.Authorities(data)
	if loops >= DefaultMaxLoop {
		t.Fatalf("did not converge: %d loops", loops)
	}
	want := map[string]float64{"a b": 0, "a": 1 / math.Sqrt2, "b": 1 / math.Sqrt2}
	for lemma, w := range want {
		if math.Abs(auth[lemma]-w) > 1e-6 {
			t.Errorf("auth[%q] = %v, want %v", lemma, auth[lemma], w)
		}
	}
}

func TestHITSSharedAuthority(t *testing.T) {
	// h1 -> x, h2 -> x, y. Authorities follow the principal eigenvector of
	// [[2 1] [1 1]].
	m := NewHITS(nil, DefaultHITSConfig())
	data := HITSData{
		Domain: "d",
		Order:  []string{"h1", "x", "h2", "y"},
		Subterms: map[string][]string{
			"h1": {"x"},
			"h2": {"x", "y"},
		},
	}
	auth, _ := m.Authorities(data)

	phi := (math.Sqrt(5) - 1) / 2
	wantX := 1 / math.Sqrt(1+phi*phi)
	wantY := phi * wantX
	if math.Abs(auth["x"]-wantX) > 1e-6 || math.Abs(auth["y"]-wantY) > 1e-6 {
		t.Errorf("auth = %v, want x=%v y=%v", auth, wantX, wantY)
	}
	if auth["h1"] != 0 || auth["h2"] != 0 {
		t.Errorf("hubs without incoming edges should score 0: %v", auth)
	}
}

func TestHITSMaxLoopIsNotAnError(t *testing.T) {
	list := sampleDomain()
	m := NewHITS(newAggregator(t), HITSConfig{Threshold: 1e-300, MaxLoop: 1})
	data, err := m.CollectData(context.Background(), list)
	if err != nil {
		t.Fatalf("CollectData: %v", err)
	}
	if _, loops := m.Authorities(data); loops != 1 {
		t.Errorf("loops = %d, want 1", loops)
	}
	r, err := m.RankTerms(list, data)
	if err != nil {
		t.Fatalf("RankTerms: %v", err)
	}
	if len(r.Terms) != len(data.Order) {
		t.Errorf("ranked %d terms, want %d", len(r.Terms), len(data.Order))
	}
}

func TestHITSContainmentEdges(t *testing.T) {
	list := sampleDomain()
	m := NewHITS(newAggregator(t), DefaultHITSConfig())
	data, err := m.CollectData(context.Background(), list)
	if err != nil {
		t.Fatalf("CollectData: %v", err)
	}
	want := map[string][]string{
		"neural network":       {"neural", "network"},
		"network architecture": {"network", "architecture"},
	}
	if !reflect.DeepEqual(data.Subterms, want) {
		t.Errorf("Subterms = %v, want %v", data.Subterms, want)
	}

	r, err := m.RankTerms(list, data)
	if err != nil {
		t.Fatalf("RankTerms: %v", err)
	}
	if r.Terms[0].Lemma != "network" {
		t.Errorf("top authority = %q, want network", r.Terms[0].Lemma)
	}
}

func TestFLRHIsSumOfFLRAndHITS(t *testing.T) {
	ctx := context.Background()
	list := sampleDomain()
	agg := newAggregator(t)

	flr := NewFLR(agg)
	flrData, err := flr.CollectData(ctx, list)
	if err != nil {
		t.Fatal(err)
	}
	flrRank, err := flr.RankTerms(list, flrData)
	if err != nil {
		t.Fatal(err)
	}

	hits := NewHITS(agg, DefaultHITSConfig())
	hitsData, err := hits.CollectData(ctx, list)
	if err != nil {
		t.Fatal(err)
	}
	hitsRank, err := hits.RankTerms(list, hitsData)
	if err != nil {
		t.Fatal(err)
	}

	flrh := NewFLRH(agg, DefaultHITSConfig())
	data, err := flrh.CollectData(ctx, list)
	if err != nil {
		t.Fatal(err)
	}
	r, err := flrh.RankTerms(list, data)
	if err != nil {
		t.Fatal(err)
	}

	f, h := flrRank.Scores(), hitsRank.Scores()
	for _, st := range r.Terms {
		if want := f[st.Lemma] + h[st.Lemma]; st.Score != want {
			t.Errorf("flrh(%q) = %v, want %v", st.Lemma, st.Score, want)
		}
	}
}

func TestRankingTiesKeepOrder(t *testing.T) {
	data := FrequencyData{Tables: *freq.NewTables("d")}
	data.Order = []string{"b", "a", "c", "d"}
	data.TermFreq = map[string]int{"b": 1, "a": 2, "c": 1, "d": 2}

	r, err := NewTermFrequency(nil).RankTerms(&candidate.DomainList{Domain: "d"}, data)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "d", "b", "c"}
	if got := lemmasOf(r); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDomainMismatch(t *testing.T) {
	data := FrequencyData{Tables: *freq.NewTables("other")}
	_, err := NewFLR(nil).RankTerms(&candidate.DomainList{Domain: "mine"}, data)
	if !errors.Is(err, internalerr.ErrDomainMismatch) {
		t.Fatalf("err = %v, want ErrDomainMismatch", err)
	}
	var cfgErr *internalerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %T, want *ConfigurationError", err)
	}
}

func TestMDP(t *testing.T) {
	m := NewMDP(nil)
	list := &candidate.DomainList{Domain: "A"}
	a := MDPData{Domain: "A", Order: []string{"x", "y"}, TermFreq: map[string]int{"x": 2, "y": 2}, NumTerms: 4}
	b := MDPData{Domain: "B", Order: []string{"x"}, TermFreq: map[string]int{"x": 4}, NumTerms: 4}

	alone, err := m.RankTerms(list, a)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := alone.Score("x"); math.Abs(got-0.5) > eps {
		t.Errorf("single-domain score(x) = %v, want 0.5", got)
	}

	r, err := m.RankAgainst(list, a, []MDPData{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Score("x"); math.Abs(got-1.0/6.0) > eps {
		t.Errorf("score(x) = %v, want 1/6", got)
	}
	if got, _ := r.Score("y"); math.Abs(got-0.5) > eps {
		t.Errorf("score(y) = %v, want 0.5", got)
	}
	if r.Terms[0].Lemma != "y" {
		t.Errorf("top = %q, want y", r.Terms[0].Lemma)
	}
}

func TestMDPEmptyDomain(t *testing.T) {
	tables := freq.NewTables("empty")
	data := NewMDPData(tables)
	if data.NumTerms != 0 {
		t.Fatalf("NumTerms = %d", data.NumTerms)
	}
	if rf := data.RelativeFrequency("x"); rf != 0 {
		t.Errorf("RelativeFrequency = %v, want 0", rf)
	}
	r, err := NewMDP(nil).RankTerms(&candidate.DomainList{Domain: "empty"}, data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Terms) != 0 {
		t.Errorf("terms = %v, want none", r.Terms)
	}
}
