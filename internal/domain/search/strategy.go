package search

import (
	"fmt"
	"runtime"
)

// Strategy selects how per-code search work is scheduled. The space is
// closed and small, so a plain enum plus a scoring function fits better than
// an open interface hierarchy.
type Strategy int

const (
	// StrategyAdaptive picks between the others based on input size.
	StrategyAdaptive Strategy = iota
	// StrategySequential runs every code on the calling goroutine.
	StrategySequential
	// StrategyParallel fans codes out across a bounded worker pool.
	StrategyParallel
	// StrategyStreaming is parallel search with progress events emitted as
	// each code completes.
	StrategyStreaming
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyParallel:
		return "parallel"
	case StrategyStreaming:
		return "streaming"
	default:
		return "adaptive"
	}
}

// ParseStrategy maps a configuration string onto a Strategy. The empty
// string means adaptive; anything else unrecognized is rejected so a typo in
// configuration surfaces at startup instead of silently degrading.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "adaptive":
		return StrategyAdaptive, nil
	case "sequential":
		return StrategySequential, nil
	case "parallel":
		return StrategyParallel, nil
	case "streaming":
		return StrategyStreaming, nil
	default:
		return StrategyAdaptive, fmt.Errorf("unknown search strategy %q", s)
	}
}

// scoreStrategy is the pure scoring function behind adaptive selection.
// Larger is better for the given workload.
func scoreStrategy(s Strategy, textLen, codeCount, workers int) int {
	switch s {
	case StrategySequential:
		// Small documents finish before a pool even warms up.
		if textLen < 2_000 || codeCount < 4 || workers <= 1 {
			return 3
		}
		return 1
	case StrategyParallel:
		if textLen >= 2_000 && codeCount >= 4 && workers > 1 {
			return 3
		}
		return 2
	case StrategyStreaming:
		// Streaming only pays for itself when someone is listening; the
		// orchestrator bumps this score when a progress channel is set.
		return 0
	default:
		return 0
	}
}

// resolveStrategy turns adaptive into a concrete choice for this workload.
func resolveStrategy(s Strategy, textLen, codeCount, workers int, progressAttached bool) Strategy {
	if s == StrategyStreaming || (s == StrategyAdaptive && progressAttached) {
		return StrategyStreaming
	}
	if s != StrategyAdaptive {
		return s
	}
	best, bestScore := StrategySequential, -1
	for _, candidate := range []Strategy{StrategySequential, StrategyParallel} {
		if score := scoreStrategy(candidate, textLen, codeCount, workers); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}

// defaultWorkers bounds the pool by available CPU cores; the work is pure
// regex scanning with no I/O to wait on.
func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
