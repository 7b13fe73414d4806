// Command shadowctl checks, diffs and patches documents against shadow
// schemas.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err, !isTerminal(os.Stderr))
		os.Exit(1)
	}
}

// reportError prints err to w. Compact output is one line per error,
// for logs and pipes.
func reportError(w io.Writer, err error, compact bool) {
	var se *serrors.ShadowError
	if compact && errors.As(err, &se) {
		fmt.Fprintln(w, se.FormatCompact())
		return
	}
	serrors.Fprint(w, err)
}
