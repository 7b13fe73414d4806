package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vango-dev/shadow/pkg/shadow"
)

func (a *app) diffCmd() *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "diff <original> <modified>",
		Short: "Show what changed between two versions of a document",
		Long: `Build a shadow of the original document, write the modified document
into it, and print what changed.

By default only the changed fields are printed, in the output format.
With --text a line diff of both documents is printed instead. Fields
not declared by the schema are ignored either way.

Examples:
  shadowctl diff -s bank.yaml old.json new.json
  shadowctl diff -s bank.yaml --text old.yaml new.yaml`,
		Args: cobra.ExactArgs(2),
	}
	cmd.RunE = a.traced("diff", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		return a.runDiff(ctx, cmd, args[0], args[1], text)
	})

	cmd.Flags().BoolVarP(&text, "text", "t", false, "Print a line diff instead of the changed fields")

	return cmd
}

func (a *app) runDiff(ctx context.Context, cmd *cobra.Command, originalPath, modifiedPath string, text bool) error {
	s, err := a.loadSchema(ctx)
	if err != nil {
		return err
	}
	original, err := readDocument(cmd.InOrStdin(), originalPath)
	if err != nil {
		return err
	}
	modified, err := readDocument(cmd.InOrStdin(), modifiedPath)
	if err != nil {
		return err
	}

	v, err := shadow.New(s, original, a.shadowOptions(a.newRuntime())...)
	if err != nil {
		return err
	}
	before := v.Node().Clone()
	v.Node().SetValue(modified)

	if !v.Node().HasChanges() {
		a.logger.Info("no changes", "original", originalPath, "modified", modifiedPath)
		return nil
	}

	if !text {
		out, err := encode(v.Node().Changes(), a.cfg.Format)
		if err != nil {
			return err
		}
		_, err = a.out.Write(out)
		return err
	}

	from, err := encode(before, a.cfg.Format)
	if err != nil {
		return err
	}
	to, err := encode(v.Node().Clone(), a.cfg.Format)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n", red("--- "+originalPath), green("+++ "+modifiedPath))
	writeLineDiff(a.out, string(from), string(to), a.cfg.DiffContext)
	return nil
}

// writeLineDiff prints a line diff of from and to, collapsing unchanged
// runs longer than twice the context.
func writeLineDiff(w io.Writer, from, to string, ctxLines int) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffInsert:
			for _, l := range chunk {
				fmt.Fprintln(w, green("+ "+l))
			}
		case diffpatch.DiffDelete:
			for _, l := range chunk {
				fmt.Fprintln(w, red("- "+l))
			}
		case diffpatch.DiffEqual:
			head, tail := ctxLines, ctxLines
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(chunk) <= head+tail {
				for _, l := range chunk {
					fmt.Fprintln(w, "  "+l)
				}
				continue
			}
			for _, l := range chunk[:head] {
				fmt.Fprintln(w, "  "+l)
			}
			fmt.Fprintln(w, cyan(fmt.Sprintf("@@ %d unchanged lines @@", len(chunk)-head-tail)))
			for _, l := range chunk[len(chunk)-tail:] {
				fmt.Fprintln(w, "  "+l)
			}
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
