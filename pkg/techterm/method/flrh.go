package method

import (
	"context"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/freq"
)

// FLRHData holds what both FLR and HITS need, built from the same tables
type FLRHData struct {
	Frequency FrequencyData `json:"frequency"`
	HITS      HITSData      `json:"hits"`
}

func (d FLRHData) DomainName() string { return d.Frequency.Domain }

// FLRHScorer adds the FLR and HITS scores of each lemma
type FLRHScorer struct {
	agg  *freq.Aggregator
	hits *HITSScorer
}

// NewFLRH creates the flrh method
func NewFLRH(agg *freq.Aggregator, cfg HITSConfig) *FLRHScorer {
	return &FLRHScorer{agg: agg, hits: NewHITS(agg, cfg)}
}

func (m *FLRHScorer) Name() string { return FLRH }

func (m *FLRHScorer) CollectData(ctx context.Context, list *candidate.DomainList) (FLRHData, error) {
	tables, err := m.agg.Aggregate(ctx, list)
	if err != nil {
		return FLRHData{}, err
	}
	return FLRHData{
		Frequency: FrequencyData{Tables: *tables},
		HITS:      hitsData(m.agg, list, tables),
	}, nil
}

func (m *FLRHScorer) RankTerms(list *candidate.DomainList, data FLRHData) (*Ranking, error) {
	if err := checkDomain(list, data); err != nil {
		return nil, err
	}
	auth, _ := m.hits.Authorities(data.HITS)
	return newRanking(data.Frequency.Domain, data.Frequency.Order, func(lemma string) float64 {
		return flrScore(data.Frequency, lemma) + auth[lemma]
	}), nil
}
