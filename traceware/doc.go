// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package traceware provides an OpenTelemetry tracing middleware for
// httpmw clients. It opens a client-kind span at request start,
// records the response status or error at request end, and shares the
// active span with the rest of the chain through the extension store.
package traceware
