package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	jsonpatch "github.com/evanphx/json-patch"

	serrors "github.com/vango-dev/shadow/internal/errors"
	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"
	"github.com/vango-dev/shadow/pkg/shadow"
)

func (a *app) applyCmd() *cobra.Command {
	var (
		patchPath string
		merge     bool
		check     bool
	)

	cmd := &cobra.Command{
		Use:   "apply <document>",
		Short: "Apply a JSON patch to a document",
		Long: `Apply an RFC 6902 JSON patch, or with --merge an RFC 7386 merge patch,
to a document and print the result.

The patched document is written into a shadow of the original, so the
output only holds fields the schema declares. With --check the result
is validated before it is printed.

Examples:
  shadowctl apply -s bank.yaml --patch ops.json bank.json
  shadowctl apply -s bank.yaml --merge --patch update.yaml bank.yaml`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.traced("apply", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		if patchPath == "" {
			return serrors.New("S402").WithDetail("--patch is required")
		}
		return a.runApply(ctx, cmd, args[0], patchPath, merge, check)
	})

	cmd.Flags().StringVarP(&patchPath, "patch", "p", "", "Patch file (JSON or YAML)")
	cmd.Flags().BoolVarP(&merge, "merge", "m", false, "Treat the patch as a merge patch")
	cmd.Flags().BoolVar(&check, "check", false, "Validate the patched document")

	return cmd
}

func (a *app) runApply(ctx context.Context, cmd *cobra.Command, docPath, patchPath string, merge, check bool) error {
	s, err := a.loadSchema(ctx)
	if err != nil {
		return err
	}

	docJSON, err := a.readJSON(cmd, docPath)
	if err != nil {
		return err
	}
	patchJSON, err := a.readJSON(cmd, patchPath)
	if err != nil {
		return err
	}

	patched, err := patchDocument(docJSON, patchJSON, merge)
	if err != nil {
		return serrors.New("S402").Wrap(err).WithPath(patchPath)
	}

	original, err := decodeJSON(docJSON, docPath)
	if err != nil {
		return err
	}
	next, err := decodeJSON(patched, patchPath)
	if err != nil {
		return err
	}

	rt := a.newRuntime()
	v, err := shadow.New(s, original, a.shadowOptions(rt)...)
	if err != nil {
		return err
	}

	changed := 0
	watch := rt.Autorun(func(*reactive.Computation) {
		if v.Node().HasChanges() {
			changed++
		}
	})
	defer watch.Stop()

	v.Node().SetValue(next)
	rt.Flush()

	if changed == 0 {
		a.logger.Info("patch changed no declared field", "document", docPath, "patch", patchPath)
	} else {
		a.logger.Debug("patch applied", "document", docPath, "changes", v.Node().Changes())
	}

	if check {
		if errs := v.Node().Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(a.errOut, "%s %s %s\n", red("✗"), faint(e.Path+":"), e.Message)
			}
			return &schema.ValidationError{Errors: errs}
		}
	}

	out, err := encode(v.Node().Clone(), a.cfg.Format)
	if err != nil {
		return err
	}
	_, err = a.out.Write(out)
	return err
}

func (a *app) readJSON(cmd *cobra.Command, path string) ([]byte, error) {
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}
	return toJSON(data, path)
}

func patchDocument(doc, patch []byte, merge bool) ([]byte, error) {
	if merge {
		return jsonpatch.MergePatch(doc, patch)
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	return ops.Apply(doc)
}
