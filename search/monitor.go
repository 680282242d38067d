package search

import (
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/index"
)

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during
// a query.
//
// All callbacks for a query are invoked sequentially from the goroutine
// that called Retrieve, in stage order. Implementations need no locking of
// their own.
type RetrievalMonitor interface {
	Start(query string)
	AfterEntityExtraction(entities []core.Entity)
	AfterDarkZoneDetection(zones []core.DarkZone)
	AfterQueryEnhancement(enhanced string)
	AfterLexicalRank(matches []index.Match)
	AfterSemanticRank(matches []core.SimilarityMatch)
	SemanticDegraded(err error)
	AfterFusion(results []core.RankedResult)
	AfterChunkRetrieval(chunks []*core.Chunk)
	StatuteResolved(section *core.StatuteSection)
	StatuteMissing(act, number string)
	Finish(bundle *Bundle)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterEntityExtraction(_ []core.Entity)       {}
func (n *noopMonitor) AfterDarkZoneDetection(_ []core.DarkZone)    {}
func (n *noopMonitor) AfterQueryEnhancement(_ string)              {}
func (n *noopMonitor) AfterLexicalRank(_ []index.Match)            {}
func (n *noopMonitor) AfterSemanticRank(_ []core.SimilarityMatch)  {}
func (n *noopMonitor) SemanticDegraded(_ error)                    {}
func (n *noopMonitor) AfterFusion(_ []core.RankedResult)           {}
func (n *noopMonitor) AfterChunkRetrieval(_ []*core.Chunk)         {}
func (n *noopMonitor) StatuteResolved(_ *core.StatuteSection)      {}
func (n *noopMonitor) StatuteMissing(_, _ string)                  {}
func (n *noopMonitor) Finish(_ *Bundle)                            {}
