package main

import (
	"fmt"

	"github.com/meikuraledutech/callflow/format"
	"github.com/meikuraledutech/callflow/render"
	"github.com/spf13/cobra"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		imageFormat string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Compile a dialogue script and render it with Graphviz",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, compiler, log, err := root.setup(cmd)
			if err != nil {
				return err
			}

			imgFormat, err := render.ParseImageFormat(imageFormat)
			if err != nil {
				return err
			}

			script, err := readScript(cmd, args)
			if err != nil {
				return err
			}

			description, err := format.DOT{}.Format(compiler.Compile(script))
			if err != nil {
				return fmt.Errorf("failed to format graph: %w", err)
			}

			renderer := render.New(render.Options{
				Binary:  cfg.Renderer.Binary,
				Timeout: cfg.Renderer.GetTimeout(),
				Logger:  log,
			})
			img, err := renderer.Render(cmd.Context(), string(description), imgFormat)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd, output, img); err != nil {
				return err
			}
			if output != "" {
				log.Infof("Image written to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imageFormat, "image-format", "t", "png", "Image format: png, svg, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if not specified)")

	return cmd
}
