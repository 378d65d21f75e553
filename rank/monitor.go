package rank

import "github.com/scriptoria/loci/core"

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps during ranking.
type RankMonitor interface {
	Start(query string)
	AfterSourceFilter(candidates int)
	Scored(result *core.ScoredResult)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) AfterSourceFilter(_ int)         {}
func (n *noopMonitor) Scored(_ *core.ScoredResult)     {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)   {}
