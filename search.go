package texpack

import "math/bits"

// SizeSearch binary-searches the smallest page dimension for which a packing attempt succeeds.
//
// Under power-of-two rounding the search runs over exponents, so every candidate is a power of
// two. Otherwise candidates are rounded up to a multiple of 4 when requested, or used as-is.
type SizeSearch struct {
	pot       bool
	mod4      bool
	min       int
	max       int
	fuzziness int
	low       int
	high      int
	current   int
}

// Exhausted is returned by SizeSearch.Next once no further candidate should be tried.
const Exhausted = -1

// NewSizeSearch initializes a search over [lo, hi]. The fuzziness is the interval width at which
// the search stops refining, and is ignored under power-of-two rounding.
//
// Rounding never produces a candidate above hi. The upper bound is rounded down to the largest
// power of two or multiple of 4 that does not exceed it, and the lower bound is rounded up but
// clamped to the upper one.
func NewSizeSearch(lo, hi, fuzziness int, pot, mod4 bool) *SizeSearch {
	s := &SizeSearch{pot: pot, mod4: mod4, fuzziness: fuzziness}
	switch {
	case pot:
		s.max = log2(max(hi, 1))
		s.min = min(log2(nextPowerOfTwo(lo)), s.max)
		s.fuzziness = 0
	case mod4:
		s.max = hi &^ 3
		s.min = min(roundUp4(lo), s.max)
	default:
		s.max = hi
		s.min = min(lo, hi)
	}
	return s
}

// Max returns the largest candidate the search can produce.
func (s *SizeSearch) Max() int {
	if s.pot {
		return 1 << s.max
	}
	return s.max
}

// Reset restarts the search and returns the first candidate, the midpoint of the range.
func (s *SizeSearch) Reset() int {
	s.low = s.min
	s.high = s.max
	s.current = int(uint(s.low+s.high) >> 1)
	return s.candidate()
}

// Next narrows the search with the outcome of the attempt at the last candidate and returns the
// next candidate, or Exhausted. A successful attempt searches for something smaller, a failed
// one for something larger.
func (s *SizeSearch) Next(fit bool) int {
	if s.low >= s.high {
		return Exhausted
	}
	if fit {
		s.high = s.current - 1
	} else {
		s.low = s.current + 1
	}
	s.current = int(uint(s.low+s.high) >> 1)
	if s.low > s.high || abs(s.low-s.high) < s.fuzziness {
		return Exhausted
	}
	return s.candidate()
}

func (s *SizeSearch) candidate() int {
	if s.pot {
		return 1 << s.current
	}
	if s.mod4 {
		return min(roundUp4(s.current), s.max)
	}
	return s.current
}

func abs(x int) int {
	if x >= 0 {
		return x
	}
	return -x
}

// nextPowerOfTwo returns the smallest power of two that is greater than or equal to x.
func nextPowerOfTwo(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

func log2(x int) int {
	return bits.Len(uint(x)) - 1
}

func roundUp4(x int) int {
	if r := x % 4; r != 0 {
		return x + 4 - r
	}
	return x
}

// vim: ts=4
