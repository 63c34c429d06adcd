package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelkit/panelkit/pkg/document"
)

// newShowCmd creates the "show" command.
func newShowCmd(cfg *Config) *cobra.Command {
	var geometryOnly bool

	cmd := &cobra.Command{
		Use:   "show <document.json>",
		Short: "Print a document's panel tree and resolved geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			l, err := document.ImportJSON(args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Solved %s", args[0]))

			if !geometryOnly {
				fmt.Println(styleTitle.Render("Panel tree"))
				fmt.Print(renderTree(l))
				fmt.Println()
			}

			fmt.Println(styleTitle.Render("Geometry"))
			tbl, err := renderGeometry(l, cfg.Precision)
			if err != nil {
				return err
			}
			fmt.Println(tbl)

			fw, err := l.FigureWidth()
			if err != nil {
				return err
			}
			fh, err := l.FigureHeight()
			if err != nil {
				return err
			}
			printDetail("figure: %.*f x %.*f", cfg.Precision, fw, cfg.Precision, fh)
			return nil
		},
	}

	cmd.Flags().BoolVar(&geometryOnly, "geometry-only", false, "skip the panel tree listing")
	return cmd
}
