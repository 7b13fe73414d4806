package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	serrors "github.com/vango-dev/shadow/internal/errors"
	"github.com/vango-dev/shadow/pkg/shadow"
)

func (a *app) checkCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <document>...",
		Short: "Validate documents against the schema",
		Long: `Validate one or more documents against the schema.

Every failing rule is reported with its path. The command fails when
any document is invalid.

Examples:
  shadowctl check -s bank.yaml bank.json
  cat bank.yaml | shadowctl check -s bank.yaml -`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.traced("check", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		return a.runCheck(ctx, cmd, args, quiet)
	})

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report invalid documents")

	return cmd
}

func (a *app) runCheck(ctx context.Context, cmd *cobra.Command, paths []string, quiet bool) error {
	s, err := a.loadSchema(ctx)
	if err != nil {
		return err
	}

	invalid := 0
	for _, path := range paths {
		doc, err := readDocument(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		v, err := shadow.New(s, doc, a.shadowOptions(a.newRuntime())...)
		if err != nil {
			return err
		}

		errs := v.Node().Errors()
		if len(errs) == 0 {
			if !quiet {
				fmt.Fprintf(a.out, "%s %s\n", green("✓"), path)
			}
			continue
		}

		invalid++
		fmt.Fprintf(a.out, "%s %s\n", red("✗"), path)
		for _, e := range errs {
			fmt.Fprintf(a.out, "    %s %s\n", faint(e.Path+":"), e.Message)
		}
		a.logger.Info("document invalid", "path", path, "errors", len(errs))
	}

	if invalid > 0 {
		return serrors.New("S100").
			WithDetailf("%d of %d documents failed validation", invalid, len(paths))
	}
	return nil
}
