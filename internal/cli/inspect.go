package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ForeverZer0/texpack/atlas"
)

// inspectCommand creates the inspect command, which lists the contents of a binary atlas.
func (c *CLI) inspectCommand() *cobra.Command {
	var regions bool

	cmd := &cobra.Command{
		Use:   "inspect <file.bba>",
		Short: "List the pages and regions of a binary atlas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			pages, err := atlas.ReadBinary(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			printInfo(w, "%s: %d pages", StyleTitle.Render(args[0]), len(pages))
			for i, page := range pages {
				size := page.Image.Bounds().Size()
				printDetail(w, "page %d: %dx%d, %d regions", i+1, size.X, size.Y, len(page.Regions))
				if !regions || len(page.Regions) == 0 {
					continue
				}
				rows := make([][]string, len(page.Regions))
				for j, r := range page.Regions {
					rows[j] = []string{
						r.Name,
						strconv.Itoa(r.Index),
						fmt.Sprintf("%d,%d", r.X, r.Y),
						fmt.Sprintf("%dx%d", r.Width, r.Height),
						fmt.Sprintf("%dx%d", r.OriginalWidth, r.OriginalHeight),
						strconv.FormatBool(r.Splits != nil),
					}
				}
				printTable(w, []string{"Name", "Index", "Position", "Size", "Original", "Nine-patch"}, rows)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&regions, "regions", false, "list the regions of every page")
	return cmd
}
