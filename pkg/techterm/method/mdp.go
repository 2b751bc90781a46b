package method

import (
	"context"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/freq"
)

// MDPData holds a domain's term frequencies and their total
type MDPData struct {
	Domain   string         `json:"domain"`
	Order    []string       `json:"order"`
	TermFreq map[string]int `json:"term_freq"`
	NumTerms int            `json:"num_terms"`
}

// NewMDPData derives NumTerms from the tables
func NewMDPData(tables *freq.Tables) MDPData {
	return MDPData{
		Domain:   tables.Domain,
		Order:    tables.Order,
		TermFreq: tables.TermFreq,
		NumTerms: tables.Total(),
	}
}

func (d MDPData) DomainName() string { return d.Domain }

// RelativeFrequency returns tf/NumTerms, or 0 for an empty domain
func (d MDPData) RelativeFrequency(lemma string) float64 {
	if d.NumTerms == 0 {
		return 0
	}
	return float64(d.TermFreq[lemma]) / float64(d.NumTerms)
}

// MDPScorer measures how pertinent a term is to its domain. Alone it ranks by
// relative frequency; RankAgainst scales that by the share the domain holds
// against the strongest other domain.
type MDPScorer struct {
	agg *freq.Aggregator
}

// NewMDP creates the mdp method
func NewMDP(agg *freq.Aggregator) *MDPScorer {
	return &MDPScorer{agg: agg}
}

func (m *MDPScorer) Name() string { return MDP }

func (m *MDPScorer) CollectData(ctx context.Context, list *candidate.DomainList) (MDPData, error) {
	tables, err := m.agg.Aggregate(ctx, list)
	if err != nil {
		return MDPData{}, err
	}
	return NewMDPData(tables), nil
}

func (m *MDPScorer) RankTerms(list *candidate.DomainList, data MDPData) (*Ranking, error) {
	return m.RankAgainst(list, data, nil)
}

// RankAgainst ranks the domain of data against other domains.
//
//	score(t) = rf_D(t) * rf_D(t) / (rf_D(t) + max_O rf_O(t))
//
// Other entries for the same domain are ignored.
func (m *MDPScorer) RankAgainst(list *candidate.DomainList, data MDPData, others []MDPData) (*Ranking, error) {
	if err := checkDomain(list, data); err != nil {
		return nil, err
	}
	return newRanking(data.Domain, data.Order, func(lemma string) float64 {
		rf := data.RelativeFrequency(lemma)
		if rf == 0 {
			return 0
		}
		var strongest float64
		for _, o := range others {
			if o.Domain == data.Domain {
				continue
			}
			if orf := o.RelativeFrequency(lemma); orf > strongest {
				strongest = orf
			}
		}
		return rf * rf / (rf + strongest)
	}), nil
}
