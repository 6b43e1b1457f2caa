package main

import (
	"fmt"
	"strings"

	"github.com/meikuraledutech/callflow/format"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCompileCmd(root *rootOptions) *cobra.Command {
	var (
		formatName string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "compile [script]",
		Short: "Compile a dialogue script into a graph description",
		Long: `Compile a dialogue script into a graph description.

Reads the script from the given file, or stdin when no file (or "-") is given.
Lines must start with "Client:" or "Agent:"; all other lines are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, compiler, log, err := root.setup(cmd)
			if err != nil {
				return err
			}

			f, err := format.Lookup(formatName)
			if err != nil {
				return err
			}

			script, err := readScript(cmd, args)
			if err != nil {
				return err
			}

			g := compiler.Compile(script)
			out, err := f.Format(g)
			if err != nil {
				return fmt.Errorf("failed to format graph: %w", err)
			}

			log.WithFields(logrus.Fields{
				"nodes":  len(g.Nodes),
				"edges":  len(g.Edges),
				"format": f.Name(),
			}).Debug("compiled script")

			if err := writeOutput(cmd, output, out); err != nil {
				return err
			}
			if output != "" {
				log.Infof("Graph written to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", format.Default, "Output format: "+strings.Join(format.Names(), ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if not specified)")

	return cmd
}
