/*
Package tracing records request spans and writes them to the structured log.

Each HTTP request gets a span; tool executions open child spans under it.
Trace context travels in the X-Trace-ID and X-Span-ID headers, so a caller
that already has a trace keeps it. Finished spans go through a buffered
channel to a single collector goroutine; Close drains it on shutdown.

	tracer := tracing.New("fsops", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "filesystem.tree")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
