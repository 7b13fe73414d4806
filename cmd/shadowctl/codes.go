package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

func (a *app) codesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes [code...]",
		Short: "List error codes",
		Long: `List every error code shadowctl and the shadow packages can report.
With arguments, print the full description of each named code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listCodes()
			}
			for _, code := range args {
				tmpl, ok := serrors.GetTemplate(strings.ToUpper(code))
				if !ok {
					return serrors.Newf(serrors.CategoryCLI, "unknown error code %q", code).
						WithSuggestion("Run 'shadowctl codes' to list every code")
				}
				fmt.Fprintf(a.out, "%s %s (%s)\n", cyan(strings.ToUpper(code)), tmpl.Message, tmpl.Category)
				if tmpl.Detail != "" {
					fmt.Fprintf(a.out, "  %s\n", tmpl.Detail)
				}
			}
			return nil
		},
	}
}

func (a *app) listCodes() error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, code := range serrors.GetAllCodes() {
		tmpl, _ := serrors.GetTemplate(code)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, tmpl.Category, tmpl.Message)
	}
	return tw.Flush()
}
