package engine

import (
	"time"
)

// nodeCheckMask limits budget checks to every 128th node.
const nodeCheckMask = 127

// Budget bounds one search call by node count and wall-clock time.
type Budget struct {
	maxNodes  uint64        // 0 = no node limit
	moveTime  time.Duration // 0 = no time limit
	startTime time.Time     // When search started

	nodes     uint64
	exhausted bool
}

// NewBudget starts a budget of maxNodes nodes and moveTime wall-clock time.
func NewBudget(maxNodes uint64, moveTime time.Duration) *Budget {
	return &Budget{
		maxNodes:  maxNodes,
		moveTime:  moveTime,
		startTime: time.Now(),
	}
}

// Tick counts one node and returns false once the budget is spent. Limits
// are only compared every nodeCheckMask+1 nodes; after the first failure
// every later call fails too.
func (bu *Budget) Tick() bool {
	if bu.exhausted {
		return false
	}
	bu.nodes++
	if bu.nodes&nodeCheckMask != 0 {
		return true
	}

	if bu.maxNodes > 0 && bu.nodes >= bu.maxNodes {
		bu.exhausted = true
	} else if bu.moveTime > 0 && bu.Elapsed() > bu.moveTime {
		bu.exhausted = true
	}
	return !bu.exhausted
}

// Nodes returns the number of nodes counted so far.
func (bu *Budget) Nodes() uint64 {
	return bu.nodes
}

// Exhausted reports whether the search ran out of budget.
func (bu *Budget) Exhausted() bool {
	return bu.exhausted
}

// Elapsed returns the time elapsed since search started.
func (bu *Budget) Elapsed() time.Duration {
	return time.Since(bu.startTime)
}
