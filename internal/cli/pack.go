package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ForeverZer0/texpack"
	"github.com/ForeverZer0/texpack/analyze"
	"github.com/ForeverZer0/texpack/atlas"
	"github.com/ForeverZer0/texpack/internal/config"
	"github.com/ForeverZer0/texpack/internal/source"
)

// packOptions holds the flags of the pack command that are not settings.
type packOptions struct {
	name      string
	config    string
	manifest  string
	image     string
	recursive bool
}

// settingFlag copies one flag from the parsed flag values into the effective settings.
type settingFlag struct {
	name  string
	apply func(dst, src *texpack.Settings)
}

var settingFlags = []settingFlag{
	{"pot", func(d, s *texpack.Settings) { d.POT = s.POT }},
	{"multiple-of-four", func(d, s *texpack.Settings) { d.MultipleOfFour = s.MultipleOfFour }},
	{"padding-x", func(d, s *texpack.Settings) { d.PaddingX = s.PaddingX }},
	{"padding-y", func(d, s *texpack.Settings) { d.PaddingY = s.PaddingY }},
	{"edge-padding", func(d, s *texpack.Settings) { d.EdgePadding = s.EdgePadding }},
	{"duplicate-padding", func(d, s *texpack.Settings) { d.DuplicatePadding = s.DuplicatePadding }},
	{"rotation", func(d, s *texpack.Settings) { d.Rotation = s.Rotation }},
	{"min-width", func(d, s *texpack.Settings) { d.MinWidth = s.MinWidth }},
	{"min-height", func(d, s *texpack.Settings) { d.MinHeight = s.MinHeight }},
	{"max-width", func(d, s *texpack.Settings) { d.MaxWidth = s.MaxWidth }},
	{"max-height", func(d, s *texpack.Settings) { d.MaxHeight = s.MaxHeight }},
	{"square", func(d, s *texpack.Settings) { d.Square = s.Square }},
	{"strip-x", func(d, s *texpack.Settings) { d.StripWhitespaceX = s.StripWhitespaceX }},
	{"strip-y", func(d, s *texpack.Settings) { d.StripWhitespaceY = s.StripWhitespaceY }},
	{"alpha-threshold", func(d, s *texpack.Settings) { d.AlphaThreshold = s.AlphaThreshold }},
	{"ignore-blank", func(d, s *texpack.Settings) { d.IgnoreBlankImages = s.IgnoreBlankImages }},
	{"fast", func(d, s *texpack.Settings) { d.Fast = s.Fast }},
	{"use-indexes", func(d, s *texpack.Settings) { d.UseIndexes = s.UseIndexes }},
	{"parallel", func(d, s *texpack.Settings) { d.Parallel = s.Parallel }},
	{"strict", func(d, s *texpack.Settings) { d.StrictNinePatch = s.StrictNinePatch }},
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOptions
	flags := texpack.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "pack <input-dir> <output-dir>",
		Short: "Pack a directory of images into an atlas",
		Long: `Pack every png, jpg and webp image of the input directory into atlas pages.

Settings are read from --config, or from texpack.toml in the input directory when it exists.
Flags given on the command line override the file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, args[0], opts.config, &flags)
			if err != nil {
				return err
			}
			return c.runPack(cmd, args[0], args[1], settings, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.name, "name", "n", "atlas", "base name of the output files")
	f.StringVarP(&opts.config, "config", "c", "", "settings file (default: <input-dir>/"+config.DefaultFile+")")
	f.StringVarP(&opts.manifest, "format", "f", string(atlas.LibGDX), "manifest format: libgdx, bba")
	f.StringVar(&opts.image, "image", string(atlas.PNG), "page image format: png, jpg, webp")
	f.BoolVarP(&opts.recursive, "recursive", "r", false, "include images in sub-directories")

	f.BoolVar(&flags.POT, "pot", flags.POT, "round page sizes up to a power of two")
	f.BoolVar(&flags.MultipleOfFour, "multiple-of-four", flags.MultipleOfFour, "round page sizes up to a multiple of 4")
	f.IntVar(&flags.PaddingX, "padding-x", flags.PaddingX, "horizontal padding between images")
	f.IntVar(&flags.PaddingY, "padding-y", flags.PaddingY, "vertical padding between images")
	f.BoolVar(&flags.EdgePadding, "edge-padding", flags.EdgePadding, "pad along the page edges")
	f.BoolVar(&flags.DuplicatePadding, "duplicate-padding", flags.DuplicatePadding, "halve edge padding and keep a 1px border on trimmed sides")
	f.BoolVar(&flags.Rotation, "rotation", flags.Rotation, "sort as if images could be rotated")
	f.IntVar(&flags.MinWidth, "min-width", flags.MinWidth, "minimum page width")
	f.IntVar(&flags.MinHeight, "min-height", flags.MinHeight, "minimum page height")
	f.IntVar(&flags.MaxWidth, "max-width", flags.MaxWidth, "maximum page width")
	f.IntVar(&flags.MaxHeight, "max-height", flags.MaxHeight, "maximum page height")
	f.BoolVar(&flags.Square, "square", flags.Square, "force square pages")
	f.BoolVar(&flags.StripWhitespaceX, "strip-x", flags.StripWhitespaceX, "trim transparent columns")
	f.BoolVar(&flags.StripWhitespaceY, "strip-y", flags.StripWhitespaceY, "trim transparent rows")
	f.Uint8Var(&flags.AlphaThreshold, "alpha-threshold", flags.AlphaThreshold, "alpha at or below which a pixel is transparent")
	f.BoolVar(&flags.IgnoreBlankImages, "ignore-blank", flags.IgnoreBlankImages, "drop fully transparent images")
	f.BoolVar(&flags.Fast, "fast", flags.Fast, "pack greedily in order")
	f.BoolVar(&flags.UseIndexes, "use-indexes", flags.UseIndexes, "parse region indexes from image names")
	f.BoolVar(&flags.Parallel, "parallel", flags.Parallel, "try heuristics concurrently")
	f.BoolVar(&flags.StrictNinePatch, "strict", flags.StrictNinePatch, "fail on malformed nine-patch borders")

	return cmd
}

// resolveSettings loads the settings file, if any, and applies the flags that were set.
func resolveSettings(cmd *cobra.Command, inputDir, path string, flags *texpack.Settings) (texpack.Settings, error) {
	logger := loggerFromContext(cmd.Context())
	settings := texpack.DefaultSettings()

	if path == "" {
		candidate := filepath.Join(inputDir, config.DefaultFile)
		ok, err := config.Exists(candidate)
		if err != nil {
			return settings, err
		}
		if ok {
			path = candidate
		}
	}
	if path != "" {
		var err error
		if settings, err = config.Load(path, logger); err != nil {
			return settings, err
		}
		logger.Debug("loaded settings", "file", path)
	}

	for _, sf := range settingFlags {
		if cmd.Flags().Changed(sf.name) {
			sf.apply(&settings, flags)
		}
	}
	return settings, settings.Validate()
}

func (c *CLI) runPack(cmd *cobra.Command, inputDir, outputDir string, settings texpack.Settings, opts packOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()

	manifest, err := atlas.ParseManifest(opts.manifest)
	if err != nil {
		return err
	}
	format, err := atlas.ParseFormat(opts.image)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	sources, err := source.Load(inputDir, opts.recursive)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no images found in %s", inputDir)
	}
	logger.Debug("loaded images", "count", len(sources), "dir", inputDir)

	analyzer := analyze.New(settings)
	analyzer.Logger = logger
	requests, err := analyzer.Requests(sources)
	if err != nil {
		return err
	}
	if dropped := len(sources) - len(requests); dropped > 0 {
		printWarning(w, "Ignored %d blank images", dropped)
	}

	packer, err := texpack.New(settings)
	if err != nil {
		return err
	}
	packer.Logger = logger
	pages, err := packer.Pack(ctx, requests)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files, err := atlas.Export(outputDir, opts.name, pages, atlas.Options{Manifest: manifest, Image: format})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d images into %d pages", len(requests), len(pages)))

	printSuccess(w, "Packed %s into %s", StyleTitle.Render(opts.name), outputDir)
	if len(pages) > 0 {
		printPages(w, pages)
	}
	for _, file := range files {
		printFile(w, file)
	}
	return nil
}
