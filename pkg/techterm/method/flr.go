package method

import (
	"context"
	"math"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/freq"
)

// FLRScorer scores terms by frequency and boundary independence.
//
//	score(t) = tf(t) * sqrt(LR_left(t) * LR_right(t))
//	LR_side(t) = 1 - top_side(t) / (tf(t) + 1)
//
// top_side is the count of the most frequent neighbour on that side. A term
// that nearly always extends into the same word approaches tf/(tf+1) of its
// frequency on that side; a term with varied or no neighbours keeps tf.
type FLRScorer struct {
	agg *freq.Aggregator
}

// NewFLR creates the flr method
func NewFLR(agg *freq.Aggregator) *FLRScorer {
	return &FLRScorer{agg: agg}
}

func (m *FLRScorer) Name() string { return FLR }

func (m *FLRScorer) CollectData(ctx context.Context, list *candidate.DomainList) (FrequencyData, error) {
	return collectFrequency(ctx, m.agg, list)
}

func (m *FLRScorer) RankTerms(list *candidate.DomainList, data FrequencyData) (*Ranking, error) {
	if err := checkDomain(list, data); err != nil {
		return nil, err
	}
	return newRanking(data.Domain, data.Order, func(lemma string) float64 {
		return flrScore(data, lemma)
	}), nil
}

func flrScore(data FrequencyData, lemma string) float64 {
	tf := data.TermFreq[lemma]
	if tf <= 0 {
		return 0
	}
	left := independence(freq.Top(data.LeftFreq[lemma]), tf)
	right := independence(freq.Top(data.RightFreq[lemma]), tf)
	return float64(tf) * math.Sqrt(left*right)
}

func independence(top, tf int) float64 {
	if top > tf {
		top = tf
	}
	return 1 - float64(top)/float64(tf+1)
}
