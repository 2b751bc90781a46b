package method

import (
	"context"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/freq"
)

// FrequencyData carries the three frequency tables of a domain
type FrequencyData struct {
	freq.Tables
}

func (d FrequencyData) DomainName() string { return d.Domain }

func collectFrequency(ctx context.Context, agg *freq.Aggregator, list *candidate.DomainList) (FrequencyData, error) {
	tables, err := agg.Aggregate(ctx, list)
	if err != nil {
		return FrequencyData{}, err
	}
	return FrequencyData{Tables: *tables}, nil
}

// TermFrequency scores a term by its raw domain frequency
type TermFrequency struct {
	agg *freq.Aggregator
}

// NewTermFrequency creates the tf method
func NewTermFrequency(agg *freq.Aggregator) *TermFrequency {
	return &TermFrequency{agg: agg}
}

func (m *TermFrequency) Name() string { return TF }

func (m *TermFrequency) CollectData(ctx context.Context, list *candidate.DomainList) (FrequencyData, error) {
	return collectFrequency(ctx, m.agg, list)
}

func (m *TermFrequency) RankTerms(list *candidate.DomainList, data FrequencyData) (*Ranking, error) {
	if err := checkDomain(list, data); err != nil {
		return nil, err
	}
	return newRanking(data.Domain, data.Order, func(lemma string) float64 {
		return float64(data.TermFreq[lemma])
	}), nil
}
