package mw

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing opens one span per request on the global tracer. Storage spans
// started from the request context become its children.
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		span := opentracing.GlobalTracer().StartSpan(string(c.Method()) + " " + string(c.Path()))
		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().RequestURI()))
		ctx = opentracing.ContextWithSpan(ctx, span)

		c.Next(ctx)

		if route := c.FullPath(); route != "" {
			span.SetOperationName(string(c.Method()) + " " + route)
		}
		code := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(code))
		if code >= 500 {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}
}
