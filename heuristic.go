package texpack

import (
	"fmt"
	"strings"
)

// Heuristic selects the rule used by MaxRects to score candidate positions for a rectangle
// within the available free space. The set is closed: every page is attempted with each of
// them and the best result is kept.
type Heuristic uint8

const (
	// BestShortSideFit (BSSF) positions the rectangle against the short side of a free rectangle
	// into which it fits the best.
	BestShortSideFit Heuristic = iota
	// BestLongSideFit (BLSF) positions the rectangle against the long side of a free rectangle
	// into which it fits the best.
	BestLongSideFit
	// BestAreaFit (BAF) positions the rectangle into the smallest free rect into which it fits.
	BestAreaFit
	// BottomLeft (BL) does the Tetris placement.
	BottomLeft
	// ContactPoint (CP) chooses the placement where the rectangle touches other rects (and the
	// page edges) as much as possible. This is the only heuristic where a larger score is better.
	ContactPoint

	heuristicCount = iota
)

// Heuristics lists every heuristic in the order they are attempted.
var Heuristics = [heuristicCount]Heuristic{
	BestShortSideFit,
	BestLongSideFit,
	BestAreaFit,
	BottomLeft,
	ContactPoint,
}

var heuristicNames = [heuristicCount]string{
	BestShortSideFit: "BSSF",
	BestLongSideFit:  "BLSF",
	BestAreaFit:      "BAF",
	BottomLeft:       "BL",
	ContactPoint:     "CP",
}

// Validate returns an error when the value is not one of the defined heuristics.
func (h Heuristic) Validate() error {
	if h >= heuristicCount {
		return fmt.Errorf("invalid heuristic %d", uint8(h))
	}
	return nil
}

// String returns the short name of the heuristic, e.g. "BSSF".
func (h Heuristic) String() string {
	if h >= heuristicCount {
		return fmt.Sprintf("Heuristic(%d)", uint8(h))
	}
	return heuristicNames[h]
}

// ParseHeuristic returns the heuristic matching the given short name, case-insensitive.
func ParseHeuristic(s string) (Heuristic, error) {
	for i, name := range heuristicNames {
		if strings.EqualFold(name, s) {
			return Heuristic(i), nil
		}
	}
	return 0, fmt.Errorf("unknown heuristic %q", s)
}

// vim: ts=4
