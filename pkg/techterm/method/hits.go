package method

import (
	"context"
	"math"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/freq"
)

// Default HITS iteration settings
const (
	DefaultThreshold = 1e-8
	DefaultMaxLoop   = 1000
)

// HITSConfig bounds the power iteration
type HITSConfig struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	MaxLoop   int     `yaml:"max_loop" json:"max_loop"`
}

// DefaultHITSConfig returns the default iteration settings
func DefaultHITSConfig() HITSConfig {
	return HITSConfig{Threshold: DefaultThreshold, MaxLoop: DefaultMaxLoop}
}

// HITSData is the containment graph of a domain: every counted lemma, in
// first-seen order, and for each longer term (hub) the shorter terms it
// contains (authorities).
type HITSData struct {
	Domain   string              `json:"domain"`
	Order    []string            `json:"order"`
	TermFreq map[string]int      `json:"term_freq"`
	Subterms map[string][]string `json:"subterms"`
}

func (d HITSData) DomainName() string { return d.Domain }

// HITSScorer scores a term by its authority in the containment graph
type HITSScorer struct {
	agg *freq.Aggregator
	cfg HITSConfig
}

// NewHITS creates the hits method. Zero settings fall back to the defaults.
func NewHITS(agg *freq.Aggregator, cfg HITSConfig) *HITSScorer {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.MaxLoop <= 0 {
		cfg.MaxLoop = DefaultMaxLoop
	}
	return &HITSScorer{agg: agg, cfg: cfg}
}

func (m *HITSScorer) Name() string { return HITS }

func (m *HITSScorer) CollectData(ctx context.Context, list *candidate.DomainList) (HITSData, error) {
	tables, err := m.agg.Aggregate(ctx, list)
	if err != nil {
		return HITSData{}, err
	}
	return hitsData(m.agg, list, tables), nil
}

func (m *HITSScorer) RankTerms(list *candidate.DomainList, data HITSData) (*Ranking, error) {
	if err := checkDomain(list, data); err != nil {
		return nil, err
	}
	auth, _ := m.Authorities(data)
	return newRanking(data.Domain, data.Order, func(lemma string) float64 {
		return auth[lemma]
	}), nil
}

// Authorities runs the power iteration and returns the authority score of
// every lemma together with the number of iterations performed. Hitting
// MaxLoop is not an error; the last vector is returned.
func (m *HITSScorer) Authorities(data HITSData) (map[string]float64, int) {
	n := len(data.Order)
	index := make(map[string]int, n)
	for i, lemma := range data.Order {
		index[lemma] = i
	}

	out := make([][]int, n)
	in := make([][]int, n)
	for h, lemma := range data.Order {
		for _, sub := range data.Subterms[lemma] {
			a, ok := index[sub]
			if !ok {
				continue
			}
			out[h] = append(out[h], a)
			in[a] = append(in[a], h)
		}
	}

	auth := ones(n)
	hub := ones(n)
	loops := 0
	for loops < m.cfg.MaxLoop {
		loops++

		nextAuth := make([]float64, n)
		for a := range n {
			for _, h := range in[a] {
				nextAuth[a] += hub[h]
			}
		}
		normalize(nextAuth)

		nextHub := make([]float64, n)
		for h := range n {
			for _, a := range out[h] {
				nextHub[h] += nextAuth[a]
			}
		}
		normalize(nextHub)

		delta := distance(nextAuth, auth)
		auth, hub = nextAuth, nextHub
		if delta < m.cfg.Threshold {
			break
		}
	}

	scores := make(map[string]float64, n)
	for i, lemma := range data.Order {
		scores[lemma] = auth[i]
	}
	return scores, loops
}

// hitsData builds the containment edges from the counted spans of every seed candidate
func hitsData(agg *freq.Aggregator, list *candidate.DomainList, tables *freq.Tables) HITSData {
	subterms := make(map[string][]string)
	seen := make(map[[2]string]struct{})
	for _, pdf := range list.PDFs {
		for _, page := range pdf.Pages {
			for _, c := range page.Candidates {
				if c.Augmented {
					continue
				}
				spans := agg.Spans(c)
				for _, h := range spans {
					hl := h.Term.Lemma()
					for _, a := range spans {
						if !h.Contains(a) {
							continue
						}
						al := a.Term.Lemma()
						edge := [2]string{hl, al}
						if hl == al {
							continue
						}
						if _, ok := seen[edge]; ok {
							continue
						}
						seen[edge] = struct{}{}
						subterms[hl] = append(subterms[hl], al)
					}
				}
			}
		}
	}

	return HITSData{
		Domain:   tables.Domain,
		Order:    tables.Order,
		TermFreq: tables.TermFreq,
		Subterms: subterms,
	}
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// normalize scales v to unit L2 norm; a zero vector is left unchanged
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
