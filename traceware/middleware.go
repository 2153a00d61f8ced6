// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package traceware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/httpmw/httpmw"
	"github.com/httpmw/httpmw/retry"
)

// tracerName identifies this instrumentation library in exported
// spans.
const tracerName = "github.com/httpmw/httpmw/traceware"

// SpanName is an extension value which overrides the span name for a
// single logical request. Seed it with httpmw.Extension or
// Client.DoWithExtensions.
type SpanName string

// An Option configures the tracing middleware.
type Option func(*Middleware)

// WithTracerProvider sets the provider the middleware obtains its
// tracer from. The default is the global provider registered with the
// otel package.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("httpmw/traceware: nil tracer provider")
	}
	return func(m *Middleware) {
		m.tracer = tp.Tracer(tracerName)
	}
}

// WithSpanNamer sets the function that names the span for a request.
// The default name is "METHOD host", e.g. "GET www.example.com". A
// SpanName extension on the request takes priority over the namer.
func WithSpanNamer(namer func(req *http.Request) string) Option {
	if namer == nil {
		panic("httpmw/traceware: nil span namer")
	}
	return func(m *Middleware) {
		m.spanName = namer
	}
}

// Middleware opens an OpenTelemetry client span around each logical
// request. Placed before a retry middleware in the chain, one span
// covers all retry attempts; placed after it, each attempt gets its
// own span.
//
// The started span is deposited in the extension store as a
// trace.Span, so middlewares deeper in the chain can add events or
// attributes to it.
type Middleware struct {
	tracer   trace.Tracer
	spanName func(req *http.Request) string
}

// New returns a tracing middleware using the global tracer provider
// and default span names.
func New(opts ...Option) *Middleware {
	m := &Middleware{
		tracer:   otel.Tracer(tracerName),
		spanName: defaultSpanName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func defaultSpanName(req *http.Request) string {
	return req.Method + " " + req.URL.Host
}

// Handle starts the span, propagates its context into the request, and
// records the outcome when the rest of the chain returns. Transport
// and middleware errors mark the span as failed, as do 5xx responses.
func (m *Middleware) Handle(req *http.Request, ext *httpmw.Extensions, next httpmw.Next) (*httpmw.Response, error) {
	name := m.spanName(req)
	if override, ok := httpmw.GetExt[SpanName](ext); ok {
		name = string(override)
	}

	ctx, span := m.tracer.Start(req.Context(), name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			attribute.String("server.address", req.URL.Hostname()),
		),
	)
	defer span.End()
	httpmw.PutExt[trace.Span](ext, span)

	res, err := next.Run(req.WithContext(ctx), ext)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode()))
	if n, ok := httpmw.GetExt[retry.Count](res.Extensions()); ok {
		span.SetAttributes(attribute.Int("http.request.resend_count", int(n)))
	}
	if res.StatusCode() >= 500 {
		span.SetStatus(codes.Error, res.Status())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return res, nil
}
