package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/shadow/internal/config"
	serrors "github.com/vango-dev/shadow/internal/errors"
	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"
	"github.com/vango-dev/shadow/pkg/shadow"
)

const tracerName = "github.com/vango-dev/shadow/cmd/shadowctl"

// app carries what every command shares: resolved configuration,
// output streams, the logger and the tracer.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	schemaPath string
	logLevel   string
	format     string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:    out,
		errOut: errOut,
		tracer: otel.Tracer(tracerName),
	}

	rootCmd := &cobra.Command{
		Use:   "shadowctl",
		Short: "Validate, diff and patch documents through shadow schemas",
		Long: `shadowctl loads a schema and builds a reactive shadow of each input
document. It reports rule failures, shows what changed between two
versions of a document, and applies JSON patches while keeping the
document inside the schema's shape.

Documents may be JSON or YAML; "-" reads from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.schemaPath, "schema", "s", "", "Schema file (JSON or YAML)")
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default: nearest "+config.ConfigFileName+")")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&a.format, "format", "o", "", "Output format: json or yaml")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		a.checkCmd(),
		a.diffCmd(),
		a.applyCmd(),
		a.codesCmd(),
		a.initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// setup resolves configuration and flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if a.schemaPath != "" {
		cfg.Schema = a.schemaPath
	} else if cfg.Schema != "" {
		cfg.Schema = cfg.SchemaPath()
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.format != "" {
		cfg.Format = a.format
	}
	if a.noColor {
		cfg.Color = config.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: cfg.Level()}))

	switch cfg.Color {
	case config.ColorNever:
		color.NoColor = true
	case config.ColorAlways:
		color.NoColor = false
	default:
		color.NoColor = !isTerminal(a.out)
	}

	a.logger.Debug("config resolved",
		"path", cfg.Path(),
		"schema", cfg.Schema,
		"format", cfg.Format,
		"command", cmd.Name())
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.New(), nil
	}
	return config.LoadFromDir(wd)
}

// loadSchema reads the configured schema file.
func (a *app) loadSchema(ctx context.Context) (*schema.Schema, error) {
	_, span := a.tracer.Start(ctx, "shadowctl.load_schema")
	defer span.End()

	if a.cfg.Schema == "" {
		return nil, serrors.New("S400")
	}
	s, err := schema.LoadFile(a.cfg.Schema)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	a.logger.Debug("schema loaded", "path", a.cfg.Schema, "kind", s.Kind.String())
	return s, nil
}

// newRuntime returns a runtime configured from the config file.
func (a *app) newRuntime() *reactive.Runtime {
	return reactive.NewRuntime(
		reactive.WithMaxFlushPasses(a.cfg.MaxFlushPasses),
		reactive.WithLogger(a.logger),
	)
}

func (a *app) shadowOptions(rt *reactive.Runtime) []shadow.Option {
	return []shadow.Option{
		shadow.WithRuntime(rt),
		shadow.WithLogger(a.logger),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)
