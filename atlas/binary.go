package atlas

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/flate"
)

const (
	// maxNameLength bounds region names read from a binary manifest.
	maxNameLength = 1 << 16
	// maxPagePixels bounds the size of a page image read from a binary manifest.
	maxPagePixels = 1 << 28
)

// ErrMalformed is returned by ReadBinary for data that is not a valid binary manifest.
var ErrMalformed = errors.New("malformed binary atlas")

// BinaryPage is a page decoded from a binary manifest.
type BinaryPage struct {
	// Regions are in the order they were written.
	Regions []Region
	// Image is the decompressed page, with its origin at 0,0.
	Image *image.NRGBA
}

// WriteBinary writes the sheets in the binary manifest format. All integers are little-endian
// int32, booleans are a single byte, and strings are UTF-8 prefixed with their byte length as a
// 7-bit encoded integer. Each page is followed by its size and its RGBA pixels, deflate
// compressed and prefixed with their compressed length.
func WriteBinary(w io.Writer, sheets []Sheet) error {
	bw := &binaryWriter{w: bufio.NewWriter(w)}
	bw.int32(len(sheets))
	for _, sheet := range sheets {
		bw.int32(len(sheet.Regions))
		for _, region := range sheet.Regions {
			bw.region(region)
		}

		compressed, err := compressPixels(sheet.Image)
		if err != nil {
			return fmt.Errorf("compress %s: %w", sheet.Name, err)
		}
		size := sheet.Image.Bounds().Size()
		bw.int32(size.X)
		bw.int32(size.Y)
		bw.int32(len(compressed))
		bw.w.Write(compressed)
	}
	return bw.w.Flush()
}

// compressPixels deflates the rows of img, without any stride padding.
func compressPixels(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rowLen := bounds.Dx() * 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := img.PixOffset(bounds.Min.X, y)
		if _, err := fw.Write(img.Pix[off : off+rowLen]); err != nil {
			return nil, err
		}
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// binaryWriter relies on bufio.Writer keeping the first error, which is reported by Flush.
type binaryWriter struct {
	w       *bufio.Writer
	scratch []byte
}

func (b *binaryWriter) int32(v int) {
	b.scratch = binary.LittleEndian.AppendUint32(b.scratch[:0], uint32(int32(v)))
	b.w.Write(b.scratch)
}

func (b *binaryWriter) bool(v bool) {
	if v {
		b.w.WriteByte(1)
	} else {
		b.w.WriteByte(0)
	}
}

func (b *binaryWriter) string(s string) {
	b.scratch = binary.AppendUvarint(b.scratch[:0], uint64(len(s)))
	b.w.Write(b.scratch)
	b.w.WriteString(s)
}

func (b *binaryWriter) quad(q *[4]int) {
	b.bool(q != nil)
	if q != nil {
		for _, v := range q {
			b.int32(v)
		}
	}
}

func (b *binaryWriter) region(r Region) {
	b.string(r.Name)
	b.bool(r.Rotated)
	b.int32(r.X)
	b.int32(r.Y)
	b.int32(r.Width)
	b.int32(r.Height)
	b.quad(r.Splits)
	b.quad(r.Pads)
	b.int32(r.OriginalWidth)
	b.int32(r.OriginalHeight)
	b.int32(r.OffsetX)
	b.int32(r.OffsetY)
	b.int32(r.Index)
}

// ReadBinary decodes a manifest written by WriteBinary.
func ReadBinary(r io.Reader) ([]BinaryPage, error) {
	br := &binaryReader{r: bufio.NewReader(r)}

	count := br.count()
	var pages []BinaryPage
	for i := 0; i < count && br.err == nil; i++ {
		var page BinaryPage
		regions := br.count()
		for j := 0; j < regions && br.err == nil; j++ {
			page.Regions = append(page.Regions, br.region())
		}
		page.Image = br.image()
		pages = append(pages, page)
	}

	if br.err != nil {
		if errors.Is(br.err, io.EOF) || errors.Is(br.err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: unexpected end of data", ErrMalformed)
		}
		return nil, br.err
	}
	return pages, nil
}

// binaryReader keeps the first error, after which every read returns a zero value.
type binaryReader struct {
	r   *bufio.Reader
	err error
}

func (b *binaryReader) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
	}
}

func (b *binaryReader) int32() int {
	if b.err != nil {
		return 0
	}
	var buf [4]byte
	if _, b.err = io.ReadFull(b.r, buf[:]); b.err != nil {
		return 0
	}
	return int(int32(binary.LittleEndian.Uint32(buf[:])))
}

// count reads a non-negative element count.
func (b *binaryReader) count() int {
	n := b.int32()
	if n < 0 {
		b.fail("negative count %d", n)
		return 0
	}
	return n
}

func (b *binaryReader) bool() bool {
	if b.err != nil {
		return false
	}
	c, err := b.r.ReadByte()
	if err != nil {
		b.err = err
		return false
	}
	return c != 0
}

func (b *binaryReader) string() string {
	if b.err != nil {
		return ""
	}
	n, err := binary.ReadUvarint(b.r)
	if err != nil {
		b.err = err
		return ""
	}
	if n > maxNameLength {
		b.fail("string length %d", n)
		return ""
	}
	buf := make([]byte, n)
	if _, b.err = io.ReadFull(b.r, buf); b.err != nil {
		return ""
	}
	return string(buf)
}

func (b *binaryReader) quad() *[4]int {
	if !b.bool() {
		return nil
	}
	var q [4]int
	for i := range q {
		q[i] = b.int32()
	}
	return &q
}

func (b *binaryReader) region() Region {
	var r Region
	r.Name = b.string()
	r.Rotated = b.bool()
	r.X = b.int32()
	r.Y = b.int32()
	r.Width = b.int32()
	r.Height = b.int32()
	r.Splits = b.quad()
	r.Pads = b.quad()
	r.OriginalWidth = b.int32()
	r.OriginalHeight = b.int32()
	r.OffsetX = b.int32()
	r.OffsetY = b.int32()
	r.Index = b.int32()
	return r
}

func (b *binaryReader) image() *image.NRGBA {
	width := b.count()
	height := b.count()
	length := b.count()
	if b.err != nil {
		return nil
	}
	if width*height > maxPagePixels {
		b.fail("page size %dx%d", width, height)
		return nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	compressed := io.LimitReader(b.r, int64(length))
	fr := flate.NewReader(compressed)
	defer fr.Close()

	if _, err := io.ReadFull(fr, img.Pix); err != nil {
		b.fail("page pixels: %v", err)
		return nil
	}
	// Skip whatever the decompressor did not consume, so the next page starts aligned.
	if _, err := io.Copy(io.Discard, compressed); err != nil {
		b.err = err
		return nil
	}
	return img
}

// vim: ts=4
