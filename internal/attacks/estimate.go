package attacks

import (
	"math"
)

type Estimate struct {
	Rounds    int
	Length    int
	Reachable uint64
}

// EstimateRounds reports how many expansion rounds count strings need when
// growing from roots strings of rootLength bytes, the length of the strings
// that round produces and how many it can produce. Reachable saturates at
// math.MaxUint64.
func EstimateRounds(roots, rootLength, count int) Estimate {
	est := Estimate{
		Length:    rootLength,
		Reachable: uint64(max(roots, 0)),
	}
	if roots < 2 || count <= roots {
		return est
	}

	for est.Reachable < uint64(count) {
		est.Reachable = squareSaturating(est.Reachable)
		est.Length *= 2
		est.Rounds++
	}

	return est
}

// EstimateFor runs EstimateRounds against the roots of c.
func EstimateFor(c Targeted, count int) Estimate {
	roots := c.Roots()
	if len(roots) == 0 {
		return Estimate{}
	}
	return EstimateRounds(len(roots), len(roots[0]), count)
}

func squareSaturating(n uint64) uint64 {
	if n > math.MaxUint32 {
		return math.MaxUint64
	}
	return n * n
}
