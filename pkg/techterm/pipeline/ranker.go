package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cognicore/techterm/pkg/techterm/cache"
	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/method"
)

// ranker hides the ranking-data type of the configured method
type ranker interface {
	Name() string
	RankDomains(ctx context.Context, runs []*domainRun) ([]*method.Ranking, error)
	Purge(ctx context.Context) error
}

// crossDomain ranks one domain's data against the data of the other domains
type crossDomain[D method.Data] func(list *candidate.DomainList, data D, others []D) (*method.Ranking, error)

func newRanker(p *Pipeline) (ranker, error) {
	name, err := method.Lookup(p.cfg.Method.Name)
	if err != nil {
		return nil, err
	}
	agg := p.aggregator
	hits := p.cfg.Method.HITS

	switch name {
	case method.TF:
		return newMethodLayer[method.FrequencyData](p, method.NewTermFrequency(agg), nil)
	case method.FLR:
		return newMethodLayer[method.FrequencyData](p, method.NewFLR(agg), nil)
	case method.HITS:
		return newMethodLayer[method.HITSData](p, method.NewHITS(agg, hits), nil)
	case method.FLRH:
		return newMethodLayer[method.FLRHData](p, method.NewFLRH(agg, hits), nil)
	case method.MDP:
		mdp := method.NewMDP(agg)
		return newMethodLayer[method.MDPData](p, mdp, mdp.RankAgainst)
	}
	return nil, internalerr.Unknown("method", name)
}

// methodLayer caches ranking data and rankings for one method
type methodLayer[D method.Data] struct {
	method   method.Method[D]
	against  crossDomain[D]
	data     *cache.Layer[D]
	rankings *cache.Layer[*method.Ranking]
	prints   fingerprints
	logger   *slog.Logger
}

func newMethodLayer[D method.Data](p *Pipeline, m method.Method[D], against crossDomain[D]) (ranker, error) {
	data, err := openLayer[D](p, "method_data", p.cfg.Cache.MethodData)
	if err != nil {
		return nil, err
	}
	rankings, err := openLayer[*method.Ranking](p, "method_ranking", p.cfg.Cache.MethodRanking)
	if err != nil {
		return nil, err
	}
	return &methodLayer[D]{
		method:   m,
		against:  against,
		data:     data,
		rankings: rankings,
		prints:   p.prints,
		logger:   p.logger.With("method", m.Name()),
	}, nil
}

func (l *methodLayer[D]) Name() string { return l.method.Name() }

func (l *methodLayer[D]) Purge(ctx context.Context) error {
	return errors.Join(l.data.Purge(ctx), l.rankings.Purge(ctx))
}

// RankDomains collects the ranking data of every domain, then ranks each one.
// Data is reused only when all of the domain's PDFs came from the cache; a
// ranking is reused only when the data it was computed from was. Cross-domain
// rankings depend on every domain's data.
func (l *methodLayer[D]) RankDomains(ctx context.Context, runs []*domainRun) ([]*method.Ranking, error) {
	data := make([]D, len(runs))
	prints := make([]string, len(runs))
	hits := make([]bool, len(runs))

	for i, run := range runs {
		prints[i] = l.prints.methodData(run)
		key := cache.Key{Path: domainKey(run), Fingerprint: prints[i]}
		d, hit, err := l.data.GetOrCompute(ctx, key, run.reuse(), func(ctx context.Context) (D, error) {
			return l.method.CollectData(ctx, run.list)
		})
		if err != nil {
			return nil, fmt.Errorf("collect %s data for domain %s: %w", l.Name(), run.name, err)
		}
		data[i], hits[i] = d, hit
		l.logger.Debug("method data layer", "domain", run.name, "hit", hit)
	}

	allHit := true
	for _, h := range hits {
		allHit = allHit && h
	}

	rankings := make([]*method.Ranking, len(runs))
	for i, run := range runs {
		reuse := hits[i]
		fp := l.prints.methodRanking(prints[i])
		rank := func(context.Context) (*method.Ranking, error) {
			return l.method.RankTerms(run.list, data[i])
		}
		if l.against != nil {
			reuse = allHit
			fp = l.prints.methodRanking(append([]string{prints[i]}, prints...)...)
			rank = func(context.Context) (*method.Ranking, error) {
				return l.against(run.list, data[i], others(data, i))
			}
		}

		key := cache.Key{Path: domainKey(run), Fingerprint: fp}
		r, hit, err := l.rankings.GetOrCompute(ctx, key, reuse, rank)
		if err != nil {
			return nil, fmt.Errorf("rank domain %s with %s: %w", run.name, l.Name(), err)
		}
		rankings[i] = r
		l.logger.Debug("method ranking layer", "domain", run.name, "hit", hit)
	}
	return rankings, nil
}

func others[D any](all []D, skip int) []D {
	out := make([]D, 0, len(all)-1)
	for i, d := range all {
		if i != skip {
			out = append(out, d)
		}
	}
	return out
}
