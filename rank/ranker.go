package rank

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/corpus"
)

// DefaultTopK is the result count used when a ranker is not configured
// with an explicit top-K.
const DefaultTopK = 15

// Ranker scores and orders corpus passages against a query context.
type Ranker struct {
	weights BoostWeights
	profile ScoringProfile
	pool    *ants.Pool
	topK    int
	logger  *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithWeights sets the metadata boost weights.
// Default is DefaultBoostWeights().
func WithWeights(w BoostWeights) Option {
	return func(r *Ranker) error {
		if err := w.Validate(); err != nil {
			return err
		}
		r.weights = w
		return nil
	}
}

// WithProfile sets the scoring profile.
// Default is AdditiveProfile.
func WithProfile(p ScoringProfile) Option {
	return func(r *Ranker) error {
		if p != nil {
			r.profile = p
		}
		return nil
	}
}

// WithTopK sets how many results Rank returns at most.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Ranker) error {
		if k > 0 {
			r.topK = k
		}
		return nil
	}
}

// NewRanker creates a new ranker.
func NewRanker(opts ...Option) (*Ranker, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Ranker{
		weights: DefaultBoostWeights(),
		profile: AdditiveProfile{},
		pool:    pool,
		topK:    DefaultTopK,
		logger:  slog.Default().With("component", "ranker"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Close releases the worker pool.
func (r *Ranker) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Rank scores every passage the query context is allowed to see and
// returns the top-K results, best first.
func (r *Ranker) Rank(ctx context.Context, qc *core.QueryContext, snap *corpus.Snapshot) ([]*core.ScoredResult, error) {
	return r.RankWithMonitor(ctx, qc, snap, nil)
}

// RankWithMonitor ranks with monitoring. The monitor receives callbacks
// at each stage of the ranking process.
//
// Ranking is deterministic: the same query context over the same
// snapshot always yields the same ordering. Score ties are broken by
// corpus insertion order.
func (r *Ranker) RankWithMonitor(ctx context.Context, qc *core.QueryContext, snap *corpus.Snapshot, monitor RankMonitor) ([]*core.ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if snap == nil {
		return nil, ErrSnapshotRequired
	}
	if err := core.ValidateQueryContext(qc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	monitor.Start(qc.Query)

	// Source exclusion happens before any scoring.
	view := snap.Filter(qc.SourceAllowlist)
	monitor.AfterSourceFilter(view.Len())

	if view.Len() == 0 {
		r.logger.Debug("no candidates after source filter", "query", qc.Query)
		results := []*core.ScoredResult{}
		monitor.Finish(results)
		return results, nil
	}

	// A query embedding that disagrees with the corpus dimension is a
	// contract violation; the whole query fails rather than returning
	// partial results.
	if _, err := CosineSimilarity(qc.Vector, view.At(0).Vector); err != nil {
		r.logger.Error("query embedding dimension mismatch",
			"query", len(qc.Vector), "corpus", view.Dimension())
		return nil, err
	}

	results := make([]*core.ScoredResult, view.Len())
	var wg sync.WaitGroup
	for i := 0; i < view.Len(); i++ {
		i := i
		p := view.At(i)
		wg.Add(1)
		task := func() {
			defer wg.Done()
			// Dimension already checked against the snapshot.
			sim, _ := CosineSimilarity(qc.Vector, p.Vector)
			boost := MetadataBoost(p.Metadata, qc.Filters, r.weights)
			results[i] = &core.ScoredResult{
				Passage:    p,
				Similarity: sim,
				Boost:      boost,
				Combined:   r.profile.Score(qc, p, sim, boost),
			}
		}
		if err := r.pool.Submit(task); err != nil {
			// Pool unavailable (e.g. released); score inline.
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Order by combined score descending; ties keep insertion order.
	order := make([]int, view.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := results[order[a]], results[order[b]]
		if ra.Combined != rb.Combined {
			return ra.Combined > rb.Combined
		}
		return view.Position(order[a]) < view.Position(order[b])
	})

	k := r.topK
	if k > len(order) {
		k = len(order)
	}
	top := make([]*core.ScoredResult, 0, k)
	for i := 0; i < k; i++ {
		res := results[order[i]]
		res.Rank = i + 1
		monitor.Scored(res)
		top = append(top, res)
	}

	r.logger.Debug("ranking complete",
		"query", qc.Query, "candidates", view.Len(), "returned", len(top))
	monitor.Finish(top)
	return top, nil
}
