package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/shadow/internal/config"
	serrors "github.com/vango-dev/shadow/internal/errors"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create or update " + config.ConfigFileName,
		Long: `Write a config file with default settings into dir (default: the
current directory). An existing file is updated in place with the
--schema, --format and --log-level values given on the command line.`,
		Args: cobra.MaximumNArgs(1),
		// The config file may not exist yet, so skip the shared setup.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				dir := "."
				if len(args) == 1 {
					dir = args[0]
				}
				path = filepath.Join(dir, config.ConfigFileName)
			}

			created := false
			cfg, err := config.LoadFile(path)
			if serrors.HasCode(err, "S300") {
				created = true
				cfg = config.New()
			} else if err != nil {
				return err
			}

			if a.schemaPath != "" {
				cfg.Schema = a.schemaPath
			}
			if a.format != "" {
				cfg.Format = a.format
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			verb := "Updated"
			if created {
				verb = "Created"
				err = cfg.SaveTo(path)
			} else {
				err = cfg.Save()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", verb, path)
			return nil
		},
	}
}
