package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string) error

// traced runs fn inside a span named after the command. Failures are
// recorded on the span together with their error code.
func (a *app) traced(name string, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, span := a.tracer.Start(cmd.Context(), "shadowctl."+name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.StringSlice("shadowctl.args", args),
				attribute.String("shadowctl.format", a.cfg.Format),
			),
		)
		defer span.End()

		err := fn(ctx, cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var se *serrors.ShadowError
			if errors.As(err, &se) {
				span.SetAttributes(attribute.String("shadowctl.error_code", se.Code))
			}
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}
}
