package texpack

import "cmp"

// SortFunc is a prototype for a function that compares two request sizes, returning standard
// comparer result of -1 for less-than, 1 for greater-than, or 0 for equal to.
type SortFunc func(a, b Size) int

// SortWidth sorts two sizes in descending order (greatest to least) by comparing their width.
func SortWidth(a, b Size) int {
	return cmp.Compare(b.Width, a.Width)
}

// SortMaxSide sorts two sizes in descending order (greatest to least) by comparing the longest
// side of each.
func SortMaxSide(a, b Size) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// sortFunc returns the comparer requests are ordered by before packing.
func (s *Settings) sortFunc() SortFunc {
	if s.Rotation {
		return SortMaxSide
	}
	return SortWidth
}

// vim: ts=4
