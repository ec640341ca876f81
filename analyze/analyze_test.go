package analyze

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverZer0/texpack"
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

// newImage returns a transparent image with the given opaque pixels set to red.
func newImage(w, h int, opaque ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, pt := range opaque {
		img.SetNRGBA(pt.X, pt.Y, red)
	}
	return img
}

// fill sets every pixel of r to c.
func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestTrim(t *testing.T) {
	img := newImage(10, 8, image.Pt(3, 2), image.Pt(6, 5))

	tests := []struct {
		name string
		opts TrimOptions
		want Bounds
	}{
		{"None", TrimOptions{}, Bounds{0, 0, 10, 8}},
		{"Both", TrimOptions{StripX: true, StripY: true}, Bounds{3, 2, 4, 4}},
		{"OnlyY", TrimOptions{StripY: true}, Bounds{0, 2, 10, 4}},
		{"OnlyX", TrimOptions{StripX: true}, Bounds{3, 0, 4, 8}},
		{"Duplicate", TrimOptions{StripX: true, StripY: true, DuplicatePadding: true}, Bounds{2, 1, 6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Trim(img, tt.opts)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimDuplicatePaddingAtEdge(t *testing.T) {
	// Opaque on the left and top edges, so only the right and bottom sides are trimmed.
	img := newImage(6, 6)
	fill(img, image.Rect(0, 0, 3, 3), red)

	got, ok := Trim(img, TrimOptions{StripX: true, StripY: true, DuplicatePadding: true})
	require.True(t, ok)
	assert.Equal(t, Bounds{0, 0, 4, 4}, got)
}

func TestTrimThreshold(t *testing.T) {
	img := newImage(4, 4)
	img.SetNRGBA(0, 0, color.NRGBA{A: 10})
	img.SetNRGBA(2, 2, color.NRGBA{A: 11})

	got, ok := Trim(img, TrimOptions{StripX: true, StripY: true, AlphaThreshold: 10})
	require.True(t, ok)
	assert.Equal(t, Bounds{2, 2, 1, 1}, got)
}

func TestTrimBlank(t *testing.T) {
	img := newImage(10, 10)
	for _, opts := range []TrimOptions{
		{StripX: true},
		{StripY: true},
		{StripX: true, StripY: true, DuplicatePadding: true},
	} {
		_, ok := Trim(img, opts)
		assert.False(t, ok, "%+v", opts)
	}
}

func TestTrimSubImage(t *testing.T) {
	parent := newImage(20, 20, image.Pt(12, 13))
	sub := parent.SubImage(image.Rect(10, 10, 20, 20)).(*image.NRGBA)

	got, ok := Trim(sub, TrimOptions{StripX: true, StripY: true})
	require.True(t, ok)
	assert.Equal(t, Bounds{2, 3, 1, 1}, got)
	assert.Equal(t, image.Rect(12, 13, 13, 14), got.Rect(sub))
}

// ninePatch builds a nine-patch image with an opaque red interior and the given marker runs
// (inclusive start, exclusive end) on each border.
func ninePatch(w, h int, top, left, bottom, right [2]int) *image.NRGBA {
	img := newImage(w, h)
	fill(img, image.Rect(1, 1, w-1, h-1), red)
	fill(img, image.Rect(top[0], 0, top[1], 1), black)
	fill(img, image.Rect(0, left[0], 1, left[1]), black)
	fill(img, image.Rect(bottom[0], h-1, bottom[1], h), black)
	fill(img, image.Rect(w-1, right[0], w, right[1]), black)
	return img
}

func TestSplitsFullRun(t *testing.T) {
	// Marker covering the whole top edge between the corners.
	img := newImage(10, 10)
	fill(img, image.Rect(1, 0, 9, 1), black)

	splits, err := Splits(img)
	require.NoError(t, err)
	require.NotNil(t, splits)
	assert.Equal(t, 0, splits[0])
	assert.Equal(t, 0, splits[1])
	// No markers on the left column stretches fully.
	assert.Equal(t, 0, splits[2])
	assert.Equal(t, 8, splits[3])
}

func TestSplitsAndPads(t *testing.T) {
	img := ninePatch(12, 10, [2]int{3, 7}, [2]int{2, 5}, [2]int{2, 9}, [2]int{4, 8})

	splits, err := Splits(img)
	require.NoError(t, err)
	assert.Equal(t, &[4]int{2, 4, 1, 4}, splits)

	pads, err := Pads(img, splits)
	require.NoError(t, err)
	assert.Equal(t, &[4]int{1, 2, 3, 1}, pads)
}

func TestSplitsNone(t *testing.T) {
	img := newImage(8, 8)
	fill(img, image.Rect(1, 1, 7, 7), red)

	splits, err := Splits(img)
	require.NoError(t, err)
	assert.Nil(t, splits)

	pads, err := Pads(img, splits)
	require.NoError(t, err)
	assert.Nil(t, pads)
}

func TestPadsEqualSplits(t *testing.T) {
	img := ninePatch(10, 10, [2]int{3, 6}, [2]int{2, 7}, [2]int{3, 6}, [2]int{2, 7})

	splits, err := Splits(img)
	require.NoError(t, err)
	require.NotNil(t, splits)

	pads, err := Pads(img, splits)
	require.NoError(t, err)
	assert.Nil(t, pads)
}

func TestPadsSingleAxis(t *testing.T) {
	img := newImage(10, 10)
	fill(img, image.Rect(2, 9, 5, 10), black)

	pads, err := Pads(img, nil)
	require.NoError(t, err)
	assert.Equal(t, &[4]int{1, 4, -1, -1}, pads)
}

func TestSplitsInvalidPixel(t *testing.T) {
	img := newImage(10, 10)
	fill(img, image.Rect(2, 0, 7, 1), black)
	img.SetNRGBA(4, 0, color.NRGBA{G: 255, A: 255})

	_, err := Splits(img)
	require.Error(t, err)

	var perr *NinePatchError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.X)
	assert.Equal(t, 0, perr.Y)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, perr.Color)
}

func TestSplitNinePatchName(t *testing.T) {
	name, ok := SplitNinePatchName("button.9")
	assert.True(t, ok)
	assert.Equal(t, "button", name)

	name, ok = SplitNinePatchName("icon9")
	assert.False(t, ok)
	assert.Equal(t, "icon9", name)
}

func TestAnalyzerTrim(t *testing.T) {
	settings := texpack.DefaultSettings()
	settings.StripWhitespaceX = true
	settings.StripWhitespaceY = true

	img := newImage(10, 8, image.Pt(3, 2), image.Pt(6, 5))
	req, err := New(settings).Request(Source{Name: "walk_12", Image: img})
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, "walk_12", req.Name)
	assert.Equal(t, 12, req.Index)
	assert.Equal(t, 4, req.Width)
	assert.Equal(t, 4, req.Height)
	assert.Equal(t, 10, req.OriginalWidth)
	assert.Equal(t, 8, req.OriginalHeight)
	assert.Equal(t, 3, req.OffsetX)
	assert.Equal(t, 2, req.OffsetY)
	require.NotNil(t, req.Image)
	assert.Equal(t, image.Rect(0, 0, 4, 4), req.Image.Bounds())
	assert.Equal(t, red, req.Image.NRGBAAt(0, 0))
	assert.Equal(t, red, req.Image.NRGBAAt(3, 3))
	assert.Nil(t, req.Splits)
	assert.Nil(t, req.Pads)
}

func TestAnalyzerIndex(t *testing.T) {
	settings := texpack.DefaultSettings()
	img := newImage(2, 2, image.Pt(0, 0))

	req, err := New(settings).Request(Source{Name: "frame", Image: img})
	require.NoError(t, err)
	assert.Equal(t, -1, req.Index)

	settings.UseIndexes = false
	req, err = New(settings).Request(Source{Name: "frame7", Image: img})
	require.NoError(t, err)
	assert.Equal(t, -1, req.Index)
}

func TestAnalyzerBlank(t *testing.T) {
	settings := texpack.DefaultSettings()
	settings.StripWhitespaceX = true
	settings.StripWhitespaceY = true
	img := newImage(10, 10)

	req, err := New(settings).Request(Source{Name: "blank", Image: img})
	require.NoError(t, err)
	assert.Nil(t, req)

	settings.IgnoreBlankImages = false
	req, err = New(settings).Request(Source{Name: "blank", Image: img})
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 1, req.Width)
	assert.Equal(t, 1, req.Height)
	assert.Equal(t, black, req.Image.NRGBAAt(0, 0))

	requests, err := New(texpack.DefaultSettings()).Requests([]Source{
		{Name: "blank", Image: img},
		{Name: "dot", Image: newImage(3, 3, image.Pt(1, 1))},
	})
	require.NoError(t, err)
	// Trimming is off by default, so the blank image is kept at full size.
	assert.Len(t, requests, 2)
}

func TestAnalyzerNinePatch(t *testing.T) {
	settings := texpack.DefaultSettings()
	settings.StripWhitespaceX = true
	settings.StripWhitespaceY = true

	img := ninePatch(12, 10, [2]int{3, 7}, [2]int{2, 5}, [2]int{2, 9}, [2]int{4, 8})
	req, err := New(settings).Request(Source{Name: "panel.9", Image: img})
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, "panel", req.Name)
	assert.Equal(t, 10, req.Width)
	assert.Equal(t, 8, req.Height)
	assert.Equal(t, 10, req.OriginalWidth)
	assert.Equal(t, 8, req.OriginalHeight)
	assert.Zero(t, req.OffsetX)
	assert.Zero(t, req.OffsetY)
	assert.Equal(t, &[4]int{2, 4, 1, 4}, req.Splits)
	assert.Equal(t, &[4]int{1, 2, 3, 1}, req.Pads)
	assert.Equal(t, image.Rect(0, 0, 10, 8), req.Image.Bounds())
	assert.Equal(t, red, req.Image.NRGBAAt(0, 0))
}

func TestAnalyzerNinePatchInvalid(t *testing.T) {
	img := newImage(10, 10)
	fill(img, image.Rect(1, 1, 9, 9), red)
	fill(img, image.Rect(2, 0, 7, 1), black)
	img.SetNRGBA(4, 0, color.NRGBA{G: 255, A: 128})

	settings := texpack.DefaultSettings()
	settings.StrictNinePatch = true
	_, err := New(settings).Request(Source{Name: "broken", Image: img, NinePatch: true})
	require.Error(t, err)
	assert.True(t, texpack.IsCode(err, texpack.ErrCodeInvalidNinePatch))

	var perr *NinePatchError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken", perr.Name)
	assert.Contains(t, err.Error(), "4, 0")

	var buf bytes.Buffer
	settings.StrictNinePatch = false
	analyzer := New(settings)
	analyzer.Logger = log.New(&buf)

	req, err := analyzer.Request(Source{Name: "broken", Image: img, NinePatch: true})
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Nil(t, req.Splits)
	assert.Nil(t, req.Pads)
	assert.Equal(t, 8, req.Width)
	assert.Contains(t, buf.String(), "dropping nine-patch metadata")
}

func TestAnalyzerNinePatchTooSmall(t *testing.T) {
	_, err := New(texpack.DefaultSettings()).Request(Source{Name: "tiny.9", Image: newImage(2, 5)})
	require.Error(t, err)
	assert.True(t, texpack.IsCode(err, texpack.ErrCodeInvalidNinePatch))
}

// vim: ts=4
