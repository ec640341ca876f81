package texpack

import (
	"math"
	"slices"
)

// rotationEnabled guards the rotated orientation in Score. Rotation is not supported by the
// packer, the hook is kept so the scoring functions do not need to change if it ever is.
const rotationEnabled = false

// Placed is a rectangle positioned by MaxRects, along with the two heuristic-specific scores used
// to rank it against other candidates. Lower scores are better for every heuristic.
type Placed struct {
	Rect
	// Score1 is the primary score of the placement.
	Score1 int
	// Score2 breaks ties between placements with an equal primary score.
	Score2 int
}

// Fits tests whether the placement found a position. A placement that does not fit has a zero
// height.
func (p Placed) Fits() bool {
	return p.Height != 0
}

// Less reports whether p is a strictly better placement than other.
func (p Placed) Less(other Placed) bool {
	return p.Score1 < other.Score1 || (p.Score1 == other.Score1 && p.Score2 < other.Score2)
}

type scoreFunc func(m *MaxRects, width, height int) Placed

var scoreFuncs = [heuristicCount]scoreFunc{
	BestShortSideFit: findPositionBestShortSideFit,
	BestLongSideFit:  findPositionBestLongSideFit,
	BestAreaFit:      findPositionBestAreaFit,
	BottomLeft:       findPositionBottomLeft,
	ContactPoint:     findPositionContactPoint,
}

// MaxRects maintains the free space of a single page using the maximal rectangles algorithm.
// Every free rectangle is as large as possible, so free rectangles usually overlap each other.
//
// The state is only valid for one packing attempt. A MaxRects is not safe for concurrent use,
// concurrent attempts must each use their own.
type MaxRects struct {
	width    int
	height   int
	usedArea int
	free     []Rect
	split    []Rect
	used     []Rect
}

// NewMaxRects initializes a new packer for a page of the given size.
func NewMaxRects(width, height int) *MaxRects {
	var m MaxRects
	m.Init(width, height)
	return &m
}

// Init resets the packer to a single free rectangle covering the whole page. Backing memory of
// the previous attempt is reused. This function will panic if width or height is less than 1.
func (m *MaxRects) Init(width, height int) {
	if width <= 0 || height <= 0 {
		panic("texpack: page width and height must be greater than 0")
	}

	m.width = width
	m.height = height
	m.usedArea = 0
	m.used = m.used[:0]
	m.split = m.split[:0]
	m.free = append(m.free[:0], NewRect(0, 0, width, height))
}

// Size returns the page size the packer was initialized with.
func (m *MaxRects) Size() Size {
	return NewSize(m.width, m.height)
}

// Insert finds the best position for a rectangle of the given size using the heuristic, and
// places it there. The returned boolean is false when no free rectangle can hold it, in which
// case the packer is left unchanged.
func (m *MaxRects) Insert(width, height int, h Heuristic) (Placed, bool) {
	node := m.Score(width, height, h)
	if !node.Fits() {
		return Placed{}, false
	}
	m.Place(node.Rect)
	return node, true
}

// Score finds the best position for a rectangle of the given size without placing it. When no
// free rectangle can hold it, the returned placement has a zero height and both scores are set
// to math.MaxInt, so it never compares better than a real candidate.
func (m *MaxRects) Score(width, height int, h Heuristic) Placed {
	find := scoreFuncs[h]
	node := find(m, width, height)
	if rotationEnabled {
		if alt := find(m, height, width); alt.Fits() && (!node.Fits() || alt.Less(node)) {
			alt.Rotated = true
			node = alt
		}
	}

	if !node.Fits() {
		node.Score1 = math.MaxInt
		node.Score2 = math.MaxInt
	}
	return node
}

// Place commits a rectangle previously returned by Score. Every free rectangle that intersects
// it is split into the slivers around it, and free rectangles contained in others are pruned.
func (m *MaxRects) Place(node Rect) {
	kept := m.free[:0]
	for _, free := range m.free {
		if !m.splitFreeNode(free, node) {
			kept = append(kept, free)
		}
	}

	m.free = append(kept, m.split...)
	m.split = m.split[:0]
	m.pruneFreeList()

	m.used = append(m.used, node)
	m.usedArea += node.Area()
}

// FreeRects returns the current free rectangles.
//
// The backing memory is owned by the packer, and a copy should be made if modification or
// persistence is required.
func (m *MaxRects) FreeRects() []Rect {
	return m.free
}

// Rects returns the rectangles placed so far, in placement order.
//
// The backing memory is owned by the packer, and a copy should be made if modification or
// persistence is required.
func (m *MaxRects) Rects() []Rect {
	return m.used
}

// UsedArea returns the total area that is occupied.
func (m *MaxRects) UsedArea() int {
	return m.usedArea
}

// Occupancy computes the ratio of used surface area to the area of the page, in the range of
// 0.0 (empty) and 1.0 (perfectly packed with no waste).
func (m *MaxRects) Occupancy() float64 {
	return float64(m.usedArea) / float64(m.width*m.height)
}

// Extent returns the smallest size, anchored at the origin, that contains every placed
// rectangle.
func (m *MaxRects) Extent() Size {
	var size Size
	for _, rect := range m.used {
		size.Width = max(size.Width, rect.Right())
		size.Height = max(size.Height, rect.Bottom())
	}
	return size
}

func findPositionBottomLeft(m *MaxRects, width, height int) Placed {
	best := Placed{Score1: math.MaxInt, Score2: math.MaxInt}

	for _, freeRect := range m.free {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		topSideY := freeRect.Y + height
		if topSideY < best.Score1 || (topSideY == best.Score1 && freeRect.X < best.Score2) {
			best.Rect = NewRect(freeRect.X, freeRect.Y, width, height)
			best.Score1 = topSideY
			best.Score2 = freeRect.X
		}
	}
	return best
}

func findPositionBestShortSideFit(m *MaxRects, width, height int) Placed {
	best := Placed{Score1: math.MaxInt, Score2: math.MaxInt}

	for _, freeRect := range m.free {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		leftoverHoriz := freeRect.Width - width
		leftoverVert := freeRect.Height - height
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)

		if shortSideFit < best.Score1 || (shortSideFit == best.Score1 && longSideFit < best.Score2) {
			best.Rect = NewRect(freeRect.X, freeRect.Y, width, height)
			best.Score1 = shortSideFit
			best.Score2 = longSideFit
		}
	}
	return best
}

func findPositionBestLongSideFit(m *MaxRects, width, height int) Placed {
	best := Placed{Score1: math.MaxInt, Score2: math.MaxInt}

	for _, freeRect := range m.free {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		leftoverHoriz := freeRect.Width - width
		leftoverVert := freeRect.Height - height
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)

		// Primary score is the long side, so Score1/Score2 are swapped relative to BSSF.
		if longSideFit < best.Score1 || (longSideFit == best.Score1 && shortSideFit < best.Score2) {
			best.Rect = NewRect(freeRect.X, freeRect.Y, width, height)
			best.Score1 = longSideFit
			best.Score2 = shortSideFit
		}
	}
	return best
}

func findPositionBestAreaFit(m *MaxRects, width, height int) Placed {
	best := Placed{Score1: math.MaxInt, Score2: math.MaxInt}

	for _, freeRect := range m.free {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		areaFit := freeRect.Area() - width*height
		shortSideFit := min(freeRect.Width-width, freeRect.Height-height)

		if areaFit < best.Score1 || (areaFit == best.Score1 && shortSideFit < best.Score2) {
			best.Rect = NewRect(freeRect.X, freeRect.Y, width, height)
			best.Score1 = areaFit
			best.Score2 = shortSideFit
		}
	}
	return best
}

// Returns 0 if the two intervals i1 and i2 are disjoint, or the length of their overlap otherwise
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

func (m *MaxRects) contactPointScoreNode(x, y, width, height int) int {
	score := 0

	if x == 0 || x+width == m.width {
		score += height
	}
	if y == 0 || y+height == m.height {
		score += width
	}

	for _, used := range m.used {
		if used.X == x+width || used.X+used.Width == x {
			score += commonIntervalLength(used.Y, used.Y+used.Height, y, y+height)
		}
		if used.Y == y+height || used.Y+used.Height == y {
			score += commonIntervalLength(used.X, used.X+used.Width, x, x+width)
		}
	}
	return score
}

// findPositionContactPoint maximizes the contact score, and reports it negated so that lower is
// better like every other heuristic.
func findPositionContactPoint(m *MaxRects, width, height int) Placed {
	var best Placed
	bestContactScore := -1

	for _, freeRect := range m.free {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		score := m.contactPointScoreNode(freeRect.X, freeRect.Y, width, height)
		if score > bestContactScore {
			best.Rect = NewRect(freeRect.X, freeRect.Y, width, height)
			bestContactScore = score
		}
	}

	best.Score1 = -bestContactScore
	return best
}

// splitFreeNode appends the slivers of freeNode left uncovered by usedNode to the split buffer,
// and reports whether the two intersect at all. Slivers always have a positive area.
func (m *MaxRects) splitFreeNode(freeNode, usedNode Rect) bool {
	// Separating axis test.
	if usedNode.X >= freeNode.Right() || usedNode.Right() <= freeNode.X ||
		usedNode.Y >= freeNode.Bottom() || usedNode.Bottom() <= freeNode.Y {
		return false
	}

	if usedNode.X < freeNode.Right() && usedNode.Right() > freeNode.X {
		// New node at the top side of the used node.
		if usedNode.Y > freeNode.Y && usedNode.Y < freeNode.Bottom() {
			newNode := freeNode
			newNode.Height = usedNode.Y - newNode.Y
			m.split = append(m.split, newNode)
		}

		// New node at the bottom side of the used node.
		if usedNode.Bottom() < freeNode.Bottom() {
			newNode := freeNode
			newNode.Y = usedNode.Bottom()
			newNode.Height = freeNode.Bottom() - usedNode.Bottom()
			m.split = append(m.split, newNode)
		}
	}

	if usedNode.Y < freeNode.Bottom() && usedNode.Bottom() > freeNode.Y {
		// New node at the left side of the used node.
		if usedNode.X > freeNode.X && usedNode.X < freeNode.Right() {
			newNode := freeNode
			newNode.Width = usedNode.X - newNode.X
			m.split = append(m.split, newNode)
		}

		// New node at the right side of the used node.
		if usedNode.Right() < freeNode.Right() {
			newNode := freeNode
			newNode.X = usedNode.Right()
			newNode.Width = freeNode.Right() - usedNode.Right()
			m.split = append(m.split, newNode)
		}
	}

	return true
}

// pruneFreeList removes every free rectangle that is contained in another. Order of the
// remaining rectangles is preserved so results are reproducible.
func (m *MaxRects) pruneFreeList() {
	for i := 0; i < len(m.free); i++ {
		for j := i + 1; j < len(m.free); {
			if m.free[j].ContainsRect(m.free[i]) {
				m.free = slices.Delete(m.free, i, i+1)
				i--
				break
			}
			if m.free[i].ContainsRect(m.free[j]) {
				m.free = slices.Delete(m.free, j, j+1)
				continue
			}
			j++
		}
	}
}

// vim: ts=4
