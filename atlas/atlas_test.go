package atlas

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverZer0/texpack"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 128}
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func testPage() texpack.Page {
	hero := &texpack.Request{
		Name: "hero", Width: 2, Height: 3, Index: -1,
		OriginalWidth: 4, OriginalHeight: 5, OffsetX: 1, OffsetY: 2,
		Image: solid(2, 3, red),
	}
	panel := &texpack.Request{
		Name: "panel", Width: 3, Height: 2, Index: 7,
		Splits: &[4]int{1, 1, 0, 0}, Pads: &[4]int{0, 1, -1, -1},
		OriginalWidth: 3, OriginalHeight: 2,
		Image: solid(3, 2, blue),
	}
	return texpack.Page{
		Width:  8,
		Height: 8,
		Placements: []texpack.Placement{
			{Request: hero, Rect: texpack.NewRect(1, 1, 2, 3)},
			{Request: panel, Rect: texpack.NewRect(4, 5, 3, 2)},
		},
	}
}

func TestPageImageName(t *testing.T) {
	assert.Equal(t, "atlas", PageImageName("atlas", 0))
	assert.Equal(t, "atlas2", PageImageName("atlas", 1))
	assert.Equal(t, "atlas3", PageImageName("atlas", 2))
}

func TestRender(t *testing.T) {
	page := testPage()
	page.Placements = append(page.Placements, texpack.Placement{
		Request: &texpack.Request{Name: "layout-only", Width: 1, Height: 1},
		Rect:    texpack.NewRect(0, 7, 1, 1),
	})

	img := Render(page)
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	assert.Equal(t, red, img.NRGBAAt(1, 1))
	assert.Equal(t, red, img.NRGBAAt(2, 3))
	assert.Equal(t, blue, img.NRGBAAt(4, 5))
	assert.Equal(t, blue, img.NRGBAAt(6, 6))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(3, 1))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 7))
}

func TestWriteLibGDX(t *testing.T) {
	sheets := NewSheets("atlas", PNG, []texpack.Page{testPage()})

	var buf bytes.Buffer
	require.NoError(t, WriteLibGDX(&buf, sheets))

	want := `
atlas.png
size: 8,8
format: RGBA8888
filter: Nearest,Nearest
repeat: none
hero
  rotate: false
  xy: 1, 1
  size: 2, 3
  orig: 4, 5
  offset: 1, 2
  index: -1
panel
  rotate: false
  xy: 4, 5
  size: 3, 2
  split: 1, 1, 0, 0
  pad: 0, 1, -1, -1
  orig: 3, 2
  offset: 0, 0
  index: 7
`
	assert.Equal(t, want, buf.String())
}

func TestWriteLibGDXPadsOnly(t *testing.T) {
	var buf bytes.Buffer
	sheet := Sheet{
		Name:    "ui.png",
		Image:   image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		Regions: []Region{{Name: "box", Width: 1, Height: 1, Pads: &[4]int{1, 2, 3, 4}}},
	}
	require.NoError(t, WriteLibGDX(&buf, []Sheet{sheet}))
	assert.Contains(t, buf.String(), "  split: 0, 0, 0, 0\n  pad: 1, 2, 3, 4\n")
}

func TestBinaryRoundTrip(t *testing.T) {
	pages := []texpack.Page{testPage(), {Width: 4, Height: 2}}
	sheets := NewSheets("atlas", PNG, pages)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, sheets))

	data := buf.Bytes()
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:8]))
	// Length-prefixed name of the first region.
	assert.Equal(t, []byte{4, 'h', 'e', 'r', 'o'}, data[8:13])

	decoded, err := ReadBinary(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	assert.Equal(t, sheets[0].Regions, decoded[0].Regions)
	assert.Equal(t, sheets[0].Image.Pix, decoded[0].Image.Pix)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded[0].Image.Bounds())

	assert.Empty(t, decoded[1].Regions)
	assert.Equal(t, image.Rect(0, 0, 4, 2), decoded[1].Image.Bounds())
}

func TestReadBinaryMalformed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, NewSheets("atlas", PNG, []texpack.Page{testPage()})))
	data := buf.Bytes()

	_, err := ReadBinary(bytes.NewReader(data[:len(data)/2]))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ReadBinary(bytes.NewReader(data[:10]))
	assert.ErrorIs(t, err, ErrMalformed)

	negative := binary.LittleEndian.AppendUint32(nil, uint32(0xFFFFFFFF))
	_, err = ReadBinary(bytes.NewReader(negative))
	assert.ErrorIs(t, err, ErrMalformed)

	pages, err := ReadBinary(bytes.NewReader(binary.LittleEndian.AppendUint32(nil, 0)))
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestEncode(t *testing.T) {
	img := solid(4, 3, red)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, WebP))
	decoded, err = webp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, JPEG))
	assert.NotZero(t, buf.Len())

	assert.Error(t, Encode(&buf, img, Format("bmp")))
}

func TestParseFormats(t *testing.T) {
	f, err := ParseFormat("JPEG")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)
	assert.Equal(t, ".jpg", f.Ext())

	_, err = ParseFormat("gif")
	assert.Error(t, err)

	m, err := ParseManifest("BBA")
	require.NoError(t, err)
	assert.Equal(t, Binary, m)
	assert.Equal(t, ".bba", m.Ext())
	assert.Equal(t, ".atlas", LibGDX.Ext())

	_, err = ParseManifest("json")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	pages := []texpack.Page{testPage(), testPage()}

	t.Run("LibGDX", func(t *testing.T) {
		dir := t.TempDir()
		files, err := Export(dir, "ui", pages, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "ui.png"),
			filepath.Join(dir, "ui2.png"),
			filepath.Join(dir, "ui.atlas"),
		}, files)

		manifest, err := os.ReadFile(filepath.Join(dir, "ui.atlas"))
		require.NoError(t, err)
		assert.Contains(t, string(manifest), "\nui2.png\n")
	})

	t.Run("Binary", func(t *testing.T) {
		dir := t.TempDir()
		files, err := Export(dir, "ui", pages, Options{Manifest: Binary})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "ui.bba")}, files)

		f, err := os.Open(files[0])
		require.NoError(t, err)
		defer f.Close()

		decoded, err := ReadBinary(f)
		require.NoError(t, err)
		assert.Len(t, decoded, 2)
	})

	t.Run("MissingDir", func(t *testing.T) {
		_, err := Export(filepath.Join(t.TempDir(), "missing"), "ui", pages, Options{})
		assert.Error(t, err)
	})
}

// vim: ts=4
