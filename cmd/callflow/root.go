package main

import (
	"fmt"
	"io"
	"os"

	"github.com/meikuraledutech/callflow"
	"github.com/meikuraledutech/callflow/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
	tagOrder   string
	strip      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "callflow",
		Short:         "Compile Client/Agent dialogue scripts into conversation graphs",
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to callflow.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.tagOrder, "tag-order", "", "Edge label tag order: line or kind")
	cmd.PersistentFlags().StringVar(&opts.strip, "strip", "", "Bracket stripping: all or recognized")

	cmd.AddCommand(newCompileCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))

	return cmd
}

// setup loads config, applies flag overrides and returns the compiler and logger.
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, *callflow.Compiler, *logrus.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if o.tagOrder != "" {
		cfg.Compiler.TagOrder = callflow.TagOrder(o.tagOrder)
	}
	if o.strip != "" {
		cfg.Compiler.Strip = callflow.StripMode(o.strip)
	}

	log := cfg.NewLogger()
	log.SetOutput(cmd.ErrOrStderr())
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	compiler, err := callflow.NewCompiler(cfg.Compiler)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, compiler, log, nil
}

// readScript reads the script from the named file, or from stdin when the
// name is empty or "-".
func readScript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
