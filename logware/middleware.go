// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/httpmw/httpmw"
	"github.com/httpmw/httpmw/retry"
)

// Logging is a middleware that writes one structured log line per
// logical request: method, URL, status or error, elapsed time, and the
// retry count when the retry middleware performed retries. Register it
// before the retry middleware to log once per logical request, or
// after it to log every attempt.
type Logging struct {
	log zerolog.Logger
}

// NewLogging returns a logging middleware writing to log.
func NewLogging(log zerolog.Logger) *Logging {
	return &Logging{log: log}
}

// Handle logs the outcome of the remainder of the chain.
func (l *Logging) Handle(req *http.Request, ext *httpmw.Extensions, next httpmw.Next) (*httpmw.Response, error) {
	start := time.Now()
	res, err := next.Run(req, ext)
	elapsed := time.Since(start)

	if err != nil {
		evt := l.log.Error().
			Str("method", req.Method).
			Stringer("url", req.URL).
			Dur("elapsed", elapsed).
			Err(err)
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			evt = evt.Int("retries", exhausted.Retries)
		}
		evt.Msg("request failed")
		return nil, err
	}

	evt := l.log.Info().
		Str("method", req.Method).
		Stringer("url", req.URL).
		Int("status", res.StatusCode()).
		Dur("elapsed", elapsed)
	if n, ok := httpmw.GetExt[retry.Count](res.Extensions()); ok {
		evt = evt.Int("retries", int(n))
	}
	evt.Msg("request completed")
	return res, nil
}

// ID is the request identifier assigned by the RequestID middleware,
// stored in the extension store so every middleware and every retry
// attempt of a logical request observes the same identifier.
type ID string

// RequestID is a middleware that assigns a random UUID to each logical
// request and sends it in a header. If the extension store already
// holds an ID, for example one seeded by the caller through
// DoWithExtensions, that ID is reused instead.
type RequestID struct {
	header string
}

// NewRequestID returns a request-ID middleware using the X-Request-Id
// header.
func NewRequestID() *RequestID {
	return &RequestID{header: "X-Request-Id"}
}

// NewRequestIDHeader returns a request-ID middleware using a custom
// header name.
func NewRequestIDHeader(header string) *RequestID {
	if header == "" {
		panic("httpmw/logware: empty request ID header")
	}
	return &RequestID{header: header}
}

// Handle ensures the extension store holds an ID and stamps it on the
// outgoing request.
func (r *RequestID) Handle(req *http.Request, ext *httpmw.Extensions, next httpmw.Next) (*httpmw.Response, error) {
	id, ok := httpmw.GetExt[ID](ext)
	if !ok {
		id = ID(uuid.NewString())
		httpmw.PutExt(ext, id)
	}
	req.Header.Set(r.header, string(id))
	return next.Run(req, ext)
}
