package texpack

import (
	"context"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Packer lays requests out on as few pages as possible.
//
// For every page, candidate page sizes are binary-searched, and at each candidate size a full
// packing attempt is made with every Heuristic. The attempt with the highest occupancy that
// places every remaining request wins. When no candidate can hold everything, the page is
// filled as much as possible at the maximum size and the rest carries over to the next page.
//
// A Packer reuses its internal buffers between calls and is not safe for concurrent use.
type Packer struct {
	// Settings configures the packer. Changes take effect on the next call to Pack.
	Settings Settings
	// Logger receives debug output for each page. When nil, nothing is logged.
	Logger *log.Logger

	bins [heuristicCount]MaxRects
}

// item is a request inflated by padding, as seen by MaxRects.
type item struct {
	req  *Request
	size Size
}

type placedItem struct {
	item
	rect Rect
}

// attempt is the outcome of packing at one size with one heuristic.
type attempt struct {
	heuristic Heuristic
	bin       Size
	placed    []placedItem
	remaining []item
	extent    Size
	occupancy float64
}

// New initializes a Packer with the given settings, returning an error when they are invalid.
func New(settings Settings) (*Packer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Packer{Settings: settings}, nil
}

// Pack lays out every request, returning the pages in order. Each request appears on exactly
// one page.
//
// The context is checked before each page and before each heuristic attempt. When it is
// cancelled, Pack returns the context error and no pages.
func (p *Packer) Pack(ctx context.Context, requests []*Request) ([]Page, error) {
	if err := p.Settings.Validate(); err != nil {
		return nil, err
	}

	s := &p.Settings
	items := make([]item, 0, len(requests))
	for _, req := range requests {
		if req == nil {
			panic("texpack: nil request")
		}
		if req.Width <= 0 || req.Height <= 0 {
			return nil, NewError(ErrCodeInvalidRequest, req.Name, "size %dx%d is not positive", req.Width, req.Height)
		}
		items = append(items, item{req: req, size: NewSize(req.Width+s.PaddingX, req.Height+s.PaddingY)})
	}

	compare := s.sortFunc()
	slices.SortStableFunc(items, func(a, b item) int {
		return compare(a.size, b.size)
	})

	logger := p.logger()
	var pages []Page
	for len(items) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := p.packPage(ctx, items)
		if err != nil {
			return nil, err
		}

		page := p.finalize(result)
		logger.Debug("packed page",
			"page", len(pages)+1,
			"size", NewSize(page.Width, page.Height),
			"heuristic", page.Heuristic,
			"placed", len(page.Placements),
			"remaining", len(page.Remaining),
			"occupancy", page.Occupancy)

		pages = append(pages, page)
		items = result.remaining
	}
	return pages, nil
}

func (p *Packer) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.New(io.Discard)
}

// packPage finds the best attempt for a single page.
func (p *Packer) packPage(ctx context.Context, items []item) (*attempt, error) {
	s := &p.Settings
	padX, padY := s.PaddingX, s.PaddingY

	maxWidth, maxHeight := s.MaxWidth, s.MaxHeight
	if s.EdgePadding {
		if s.DuplicatePadding {
			maxWidth -= padX
			maxHeight -= padY
		} else {
			maxWidth -= padX * 2
			maxHeight -= padY * 2
		}
	}

	minWidth, minHeight := math.MaxInt, math.MaxInt
	for _, it := range items {
		minWidth = min(minWidth, it.req.Width)
		minHeight = min(minHeight, it.req.Height)
		if err := p.checkFits(it.req, maxWidth, maxHeight); err != nil {
			return nil, err
		}
	}
	minWidth = max(minWidth, s.MinWidth)
	minHeight = max(minHeight, s.MinHeight)

	// Candidate sizes are page sizes. Requests are packed with right and bottom padding, so the
	// bin is enlarged by it, then shrunk to reserve the edge padding.
	adjustX, adjustY := padX, padY
	if s.EdgePadding {
		if s.DuplicatePadding {
			adjustX -= padX
			adjustY -= padY
		} else {
			adjustX -= padX * 2
			adjustY -= padY * 2
		}
	}

	logger := p.logger()
	fuzziness := s.fuzziness()

	var best *attempt
	if s.Square {
		maxSize := min(s.MaxWidth, s.MaxHeight)
		minSize := min(max(minWidth, minHeight), maxSize)
		search := NewSizeSearch(minSize, maxSize, fuzziness, s.POT, s.MultipleOfFour)
		for size := search.Reset(); size != Exhausted; {
			result, err := p.packAtSize(ctx, true, size+adjustX, size+adjustY, items)
			if err != nil {
				return nil, err
			}
			logger.Debug("candidate", "size", NewSize(size, size), "fit", result != nil)
			best = getBest(best, result)
			size = search.Next(result != nil)
		}
		if best == nil {
			side := search.Max()
			var err error
			if best, err = p.packAtSize(ctx, false, side+adjustX, side+adjustY, items); err != nil {
				return nil, err
			}
		}
		if best == nil {
			return nil, p.overflowError(items)
		}

		side := best.extent.MaxSide()
		best.extent = NewSize(side-padX, side-padY)
		return best, nil
	}

	widthSearch := NewSizeSearch(minWidth, s.MaxWidth, fuzziness, s.POT, s.MultipleOfFour)
	heightSearch := NewSizeSearch(minHeight, s.MaxHeight, fuzziness, s.POT, s.MultipleOfFour)
	width, height := widthSearch.Reset(), heightSearch.Reset()
	for {
		var bestWidth *attempt
		for width != Exhausted {
			result, err := p.packAtSize(ctx, true, width+adjustX, height+adjustY, items)
			if err != nil {
				return nil, err
			}
			logger.Debug("candidate", "size", NewSize(width, height), "fit", result != nil)
			bestWidth = getBest(bestWidth, result)
			width = widthSearch.Next(result != nil)
		}
		best = getBest(best, bestWidth)

		height = heightSearch.Next(bestWidth != nil)
		if height == Exhausted {
			break
		}
		width = widthSearch.Reset()
	}

	// The fallback uses the largest size rounding allows, which may be below the max size.
	if best == nil {
		var err error
		best, err = p.packAtSize(ctx, false, widthSearch.Max()+adjustX, heightSearch.Max()+adjustY, items)
		if err != nil {
			return nil, err
		}
	}
	if best == nil {
		return nil, p.overflowError(items)
	}

	best.extent = NewSize(best.extent.Width-padX, best.extent.Height-padY)
	return best, nil
}

// checkFits returns an error when the request can never fit within the effective maximum size.
func (p *Packer) checkFits(req *Request, maxWidth, maxHeight int) error {
	s := &p.Settings
	w, h := req.Width, req.Height
	edgeX := s.EdgePadding && s.PaddingX > 0
	edgeY := s.EdgePadding && s.PaddingY > 0

	if s.Rotation {
		if (w > maxWidth || h > maxHeight) && (w > maxHeight || h > maxWidth) {
			msg := ""
			if edgeX || edgeY {
				msg = " and edge padding"
			}
			return NewError(ErrCodeOversizedInput, req.Name, "image %s does not fit with max page size %s%s",
				req.Size(), NewSize(s.MaxWidth, s.MaxHeight), msg)
		}
		return nil
	}

	if w > maxWidth {
		msg := ""
		if edgeX {
			msg = " and X edge padding"
		}
		return NewError(ErrCodeOversizedInput, req.Name, "image %s does not fit with max page width %d%s",
			req.Size(), s.MaxWidth, msg)
	}
	if h > maxHeight {
		msg := ""
		if edgeY {
			msg = " and Y edge padding"
		}
		return NewError(ErrCodeOversizedInput, req.Name, "image %s does not fit with max page height %d%s",
			req.Size(), s.MaxHeight, msg)
	}
	return nil
}

func (p *Packer) overflowError(items []item) error {
	req := items[0].req
	return NewError(ErrCodeOversizedInput, req.Name, "no request fits on a %s page",
		NewSize(p.Settings.MaxWidth, p.Settings.MaxHeight))
}

// packAtSize attempts to pack the items into a bin of the given size with every heuristic and
// returns the attempt with the highest occupancy. When fully is set, only attempts that place
// every item are considered. Returns nil when no attempt qualifies, and the context error when it
// is cancelled before every heuristic was tried.
func (p *Packer) packAtSize(ctx context.Context, fully bool, width, height int, items []item) (*attempt, error) {
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	var results [heuristicCount]*attempt
	if p.Settings.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, h := range Heuristics {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = p.attempt(&p.bins[i], h, width, height, items)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, h := range Heuristics {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.attempt(&p.bins[0], h, width, height, items)
		}
	}

	var best *attempt
	for _, result := range results {
		if fully && len(result.remaining) > 0 {
			continue
		}
		if len(result.placed) == 0 {
			continue
		}
		best = getBest(best, result)
	}
	return best, nil
}

// attempt packs the items into a bin using a single heuristic.
func (p *Packer) attempt(bin *MaxRects, h Heuristic, width, height int, items []item) *attempt {
	bin.Init(width, height)

	result := &attempt{heuristic: h, bin: NewSize(width, height)}
	if p.Settings.Fast {
		result.placed, result.remaining = packFast(bin, h, items)
	} else {
		result.placed, result.remaining = packBest(bin, h, items)
	}
	result.extent = bin.Extent()
	result.occupancy = bin.Occupancy()
	return result
}

// packBest places the best-scoring item at each step until nothing else fits.
func packBest(bin *MaxRects, h Heuristic, items []item) (placed []placedItem, remaining []item) {
	remaining = slices.Clone(items)
	for len(remaining) > 0 {
		bestIndex := -1
		best := Placed{Score1: math.MaxInt, Score2: math.MaxInt}

		for i, it := range remaining {
			node := bin.Score(it.size.Width, it.size.Height, h)
			if node.Less(best) {
				best = node
				bestIndex = i
			}
		}

		if bestIndex == -1 {
			break
		}

		bin.Place(best.Rect)
		placed = append(placed, placedItem{item: remaining[bestIndex], rect: best.Rect})
		remaining = slices.Delete(remaining, bestIndex, bestIndex+1)
	}
	return placed, remaining
}

// packFast places the items in order. The first item that does not fit is deferred to the next
// page along with every item after it.
func packFast(bin *MaxRects, h Heuristic, items []item) (placed []placedItem, remaining []item) {
	for i, it := range items {
		node, ok := bin.Insert(it.size.Width, it.size.Height, h)
		if !ok {
			remaining = slices.Clone(items[i:])
			break
		}
		placed = append(placed, placedItem{item: it, rect: node.Rect})
	}
	return placed, remaining
}

// getBest returns the attempt with the higher occupancy. Ties go to b, so of equal results the
// one found last wins.
func getBest(a, b *attempt) *attempt {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.occupancy > b.occupancy {
		return a
	}
	return b
}

// finalize converts the winning attempt into a Page, applying edge padding, rounding and the
// minimum size.
func (p *Packer) finalize(result *attempt) Page {
	s := &p.Settings
	edgeX, edgeY := s.edgePad()

	width := result.extent.Width + edgeX*2
	height := result.extent.Height + edgeY*2
	if s.POT {
		width = nextPowerOfTwo(width)
		height = nextPowerOfTwo(height)
	}
	if s.MultipleOfFour {
		width = roundUp4(width)
		height = roundUp4(height)
	}
	width = max(width, s.MinWidth)
	height = max(height, s.MinHeight)

	page := Page{
		Width:      width,
		Height:     height,
		Offset:     Point{X: edgeX, Y: edgeY},
		Content:    result.extent,
		Placements: make([]Placement, len(result.placed)),
		Occupancy:  result.occupancy,
		Heuristic:  result.heuristic,
	}
	for i, placed := range result.placed {
		rect := NewRect(placed.rect.X+edgeX, placed.rect.Y+edgeY, placed.req.Width, placed.req.Height)
		rect.Rotated = placed.rect.Rotated
		page.Placements[i] = Placement{Request: placed.req, Rect: rect}
	}
	for _, it := range result.remaining {
		page.Remaining = append(page.Remaining, it.req)
	}
	return page
}

// vim: ts=4
