package texpack

import "errors"

// DefaultMaxSize is the default maximum width/height of a page.
//
// This is based off a conservative maximum texture size that every GPU still in use supports.
// Larger pages can be requested with Settings.MaxWidth and Settings.MaxHeight.
const DefaultMaxSize = 1024

const (
	// bestFuzziness is the size search tolerance used when every request is scored each step.
	bestFuzziness = 15
	// fastFuzziness is the size search tolerance used in fast mode.
	fastFuzziness = 25
)

// Settings configures the packing of pages, as well as the analysis of source images that
// produce the requests.
type Settings struct {
	// POT rounds page sizes up to a power of two, and searches candidate sizes in log2 space.
	//
	// Default: true
	POT bool `toml:"pot"`
	// MultipleOfFour rounds page sizes up to a multiple of 4.
	//
	// Default: false
	MultipleOfFour bool `toml:"multiple_of_four"`
	// PaddingX is the amount of empty space placed to the right of each request.
	//
	// Default: 2
	PaddingX int `toml:"padding_x"`
	// PaddingY is the amount of empty space placed below each request.
	//
	// Default: 2
	PaddingY int `toml:"padding_y"`
	// EdgePadding adds padding along the edges of the page as well as between requests.
	//
	// Default: true
	EdgePadding bool `toml:"edge_padding"`
	// DuplicatePadding halves the edge padding, and keeps a single pixel of transparent border
	// on every trimmed side of an image so filtering does not bleed into its neighbors.
	//
	// Default: false
	DuplicatePadding bool `toml:"duplicate_padding"`
	// Rotation is accepted for compatibility. Requests are never rotated, the setting only
	// changes the order requests are sorted in and how oversized input is detected.
	//
	// Default: false
	Rotation bool `toml:"rotation"`
	// MinWidth is the smallest width of a page.
	//
	// Default: 16
	MinWidth int `toml:"min_width"`
	// MinHeight is the smallest height of a page.
	//
	// Default: 16
	MinHeight int `toml:"min_height"`
	// MaxWidth is the largest width of a page.
	//
	// Default: 1024
	MaxWidth int `toml:"max_width"`
	// MaxHeight is the largest height of a page.
	//
	// Default: 1024
	MaxHeight int `toml:"max_height"`
	// Square forces pages to have an equal width and height.
	//
	// Default: false
	Square bool `toml:"square"`
	// StripWhitespaceX trims transparent columns from the left and right of source images.
	//
	// Default: false
	StripWhitespaceX bool `toml:"strip_whitespace_x"`
	// StripWhitespaceY trims transparent rows from the top and bottom of source images.
	//
	// Default: false
	StripWhitespaceY bool `toml:"strip_whitespace_y"`
	// AlphaThreshold is the alpha value at or below which a pixel is considered transparent
	// when trimming.
	//
	// Default: 0
	AlphaThreshold uint8 `toml:"alpha_threshold"`
	// IgnoreBlankImages drops fully transparent images instead of packing a 1x1 placeholder.
	//
	// Default: true
	IgnoreBlankImages bool `toml:"ignore_blank_images"`
	// Fast packs requests greedily in order instead of choosing the best request at each step.
	// Fast mode is significantly quicker at the cost of less optimized pages.
	//
	// Default: false
	Fast bool `toml:"fast"`
	// UseIndexes parses the first run of digits in an image name as the region index.
	//
	// Default: true
	UseIndexes bool `toml:"use_indexes"`
	// Parallel runs the attempts with each heuristic concurrently. Results are identical to a
	// sequential pack.
	//
	// Default: false
	Parallel bool `toml:"parallel"`
	// StrictNinePatch fails on malformed nine-patch borders instead of dropping the nine-patch
	// metadata with a warning.
	//
	// Default: false
	StrictNinePatch bool `toml:"strict_nine_patch"`
}

// DefaultSettings returns settings with sensible defaults for packing a texture atlas.
func DefaultSettings() Settings {
	return Settings{
		POT:               true,
		PaddingX:          2,
		PaddingY:          2,
		EdgePadding:       true,
		MinWidth:          16,
		MinHeight:         16,
		MaxWidth:          DefaultMaxSize,
		MaxHeight:         DefaultMaxSize,
		IgnoreBlankImages: true,
		UseIndexes:        true,
	}
}

// Validate returns an ErrCodeInvalidSettings error describing every problem with the settings,
// or nil when they are usable.
func (s *Settings) Validate() error {
	var errs []error
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		errs = append(errs, errors.New("max page size must be greater than 0"))
	}
	if s.MinWidth < 0 || s.MinHeight < 0 {
		errs = append(errs, errors.New("min page size cannot be negative"))
	}
	if s.MinWidth > s.MaxWidth {
		errs = append(errs, errors.New("page min width cannot be higher than max width"))
	}
	if s.MinHeight > s.MaxHeight {
		errs = append(errs, errors.New("page min height cannot be higher than max height"))
	}
	if s.PaddingX < 0 || s.PaddingY < 0 {
		errs = append(errs, errors.New("padding cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return WrapError(ErrCodeInvalidSettings, "", err, "invalid settings")
	}
	return nil
}

// fuzziness returns the tolerance at which a size search stops refining.
func (s *Settings) fuzziness() int {
	if s.Fast {
		return fastFuzziness
	}
	return bestFuzziness
}

// edgePad returns the offset of the packed area from the page origin.
func (s *Settings) edgePad() (x, y int) {
	if !s.EdgePadding {
		return 0, 0
	}
	x, y = s.PaddingX, s.PaddingY
	if s.DuplicatePadding {
		x /= 2
		y /= 2
	}
	return x, y
}

// vim: ts=4
