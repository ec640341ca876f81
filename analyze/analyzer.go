// Package analyze converts decoded source images into packing requests.
//
// Transparent borders are trimmed according to the settings, and images whose name ends with
// ".9" are treated as nine-patches: their stretch and padding markers are read from the 1px
// border, which is then removed. Nine-patches are never trimmed.
package analyze

import (
	"errors"
	"image"
	"io"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/ForeverZer0/texpack"
)

// Source is a decoded image to be analyzed.
type Source struct {
	// Name identifies the image, typically the file name without its extension. A ".9" suffix
	// marks a nine-patch and is removed from the name of the request.
	Name string
	// Image contains the pixels of the image.
	Image *image.NRGBA
	// NinePatch marks the image as a nine-patch regardless of its name.
	NinePatch bool
}

var indexPattern = regexp.MustCompile(`\d+`)

// Analyzer builds requests from sources.
type Analyzer struct {
	settings texpack.Settings
	// Logger receives warnings for malformed nine-patches in lenient mode. When nil, nothing is
	// logged.
	Logger *log.Logger
}

// New creates an Analyzer using the trimming, index and nine-patch options of settings.
func New(settings texpack.Settings) *Analyzer {
	return &Analyzer{settings: settings}
}

func (a *Analyzer) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.New(io.Discard)
}

// TrimOptions returns the options used to trim sources.
func (a *Analyzer) TrimOptions() TrimOptions {
	return TrimOptions{
		StripX:           a.settings.StripWhitespaceX,
		StripY:           a.settings.StripWhitespaceY,
		AlphaThreshold:   a.settings.AlphaThreshold,
		DuplicatePadding: a.settings.DuplicatePadding,
	}
}

// Requests analyzes every source in order, skipping those that are dropped.
func (a *Analyzer) Requests(sources []Source) ([]*texpack.Request, error) {
	requests := make([]*texpack.Request, 0, len(sources))
	for _, src := range sources {
		req, err := a.Request(src)
		if err != nil {
			return nil, err
		}
		if req != nil {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

// Request analyzes a single source. A nil request without an error is returned when the image
// is blank and blank images are ignored.
func (a *Analyzer) Request(src Source) (*texpack.Request, error) {
	if src.Image == nil {
		return nil, texpack.NewError(texpack.ErrCodeInvalidRequest, src.Name, "no image")
	}

	name, patch := SplitNinePatchName(src.Name)
	patch = patch || src.NinePatch

	size := src.Image.Bounds().Size()
	req := &texpack.Request{
		Name:           name,
		Index:          a.index(name),
		OriginalWidth:  size.X,
		OriginalHeight: size.Y,
	}

	if patch {
		if err := a.ninePatch(req, src.Image); err != nil {
			return nil, err
		}
		return req, nil
	}

	bounds, ok := Trim(src.Image, a.TrimOptions())
	if !ok {
		if a.settings.IgnoreBlankImages {
			a.logger().Debug("ignoring blank image", "name", name)
			return nil, nil
		}
		req.Width, req.Height = 1, 1
		req.Image = placeholder()
		return req, nil
	}

	req.Width, req.Height = bounds.Width, bounds.Height
	req.OffsetX, req.OffsetY = bounds.Left, bounds.Top
	if bounds.Width == size.X && bounds.Height == size.Y {
		req.Image = src.Image
	} else {
		req.Image = imaging.Crop(src.Image, bounds.Rect(src.Image))
	}
	return req, nil
}

// ninePatch reads the markers of img into req and removes the border.
func (a *Analyzer) ninePatch(req *texpack.Request, img *image.NRGBA) error {
	size := img.Bounds().Size()
	if size.X < 3 || size.Y < 3 {
		return texpack.NewError(texpack.ErrCodeInvalidNinePatch, req.Name,
			"image %dx%d is too small for a nine-patch border", size.X, size.Y)
	}

	splits, pads, err := readMarkers(img)
	if err != nil {
		var perr *NinePatchError
		if errors.As(err, &perr) {
			perr.Name = req.Name
		}
		if a.settings.StrictNinePatch {
			return texpack.WrapError(texpack.ErrCodeInvalidNinePatch, req.Name, err, "malformed nine-patch border")
		}
		a.logger().Warn("dropping nine-patch metadata", "name", req.Name, "err", err)
		splits, pads = nil, nil
	}

	req.Splits = splits
	req.Pads = pads
	req.Width, req.Height = size.X-2, size.Y-2
	req.OriginalWidth, req.OriginalHeight = req.Width, req.Height
	req.Image = imaging.Crop(img, image.Rect(1, 1, size.X-1, size.Y-1).Add(img.Bounds().Min))
	return nil
}

func readMarkers(img *image.NRGBA) (splits, pads *[4]int, err error) {
	if splits, err = Splits(img); err != nil {
		return nil, nil, err
	}
	if pads, err = Pads(img, splits); err != nil {
		return nil, nil, err
	}
	return splits, pads, nil
}

// index returns the first run of digits in name, or -1 when there is none or indexes are
// disabled.
func (a *Analyzer) index(name string) int {
	if !a.settings.UseIndexes {
		return -1
	}
	match := indexPattern.FindString(name)
	if match == "" {
		return -1
	}
	index, err := strconv.Atoi(match)
	if err != nil {
		return -1
	}
	return index
}

// placeholder returns the 1x1 opaque image packed in place of a blank source.
func placeholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[3] = 255
	return img
}

// vim: ts=4
