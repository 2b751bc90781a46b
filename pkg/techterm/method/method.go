// Package method ranks the candidate terms of a domain. Every method derives
// its ranking data once from the domain's frequency tables; the data is
// cacheable and the ranking is a pure function of it.
package method

import (
	"context"
	"sort"
	"strings"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
)

// Method identifiers accepted in configuration
const (
	TF   = "tf"
	FLR  = "flr"
	HITS = "hits"
	FLRH = "flrh"
	MDP  = "mdp"
)

// Names lists every method identifier
var Names = []string{TF, FLR, HITS, FLRH, MDP}

// Known reports whether name identifies a method
func Known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Lookup resolves a configured method name to its identifier
func Lookup(name string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if !Known(id) {
		return "", internalerr.Unknown("method", name)
	}
	return id, nil
}

// Data is method-specific ranking data for one domain
type Data interface {
	DomainName() string
}

// Method ranks candidates using ranking data of type D
type Method[D Data] interface {
	Name() string
	CollectData(ctx context.Context, list *candidate.DomainList) (D, error)
	RankTerms(list *candidate.DomainList, data D) (*Ranking, error)
}

// ScoredTerm is a lemma with its method score
type ScoredTerm struct {
	Lemma string  `json:"lemma"`
	Score float64 `json:"score"`
}

// Ranking is the ordered output of a method for one domain: descending score,
// ties in first-seen order.
type Ranking struct {
	Domain string       `json:"domain"`
	Terms  []ScoredTerm `json:"terms"`
}

// Score returns the score of lemma
func (r *Ranking) Score(lemma string) (float64, bool) {
	for _, t := range r.Terms {
		if t.Lemma == lemma {
			return t.Score, true
		}
	}
	return 0, false
}

// Scores returns the ranking as a lemma to score map
func (r *Ranking) Scores() map[string]float64 {
	out := make(map[string]float64, len(r.Terms))
	for _, t := range r.Terms {
		out[t.Lemma] = t.Score
	}
	return out
}

// newRanking scores lemmas in order and sorts them by descending score.
// The sort is stable so ties keep their aggregation order.
func newRanking(domain string, order []string, score func(lemma string) float64) *Ranking {
	terms := make([]ScoredTerm, len(order))
	for i, lemma := range order {
		terms[i] = ScoredTerm{Lemma: lemma, Score: score(lemma)}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Score > terms[j].Score
	})
	return &Ranking{Domain: domain, Terms: terms}
}

func checkDomain(list *candidate.DomainList, data Data) error {
	if list.Domain != data.DomainName() {
		return internalerr.DomainMismatch(list.Domain, data.DomainName())
	}
	return nil
}
