// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
)

// ErrBodyConsumed is returned by the body materialization methods of
// Response when the body has already been consumed by an earlier call.
var ErrBodyConsumed = errors.New("httpmw: response body already consumed")

// A Response wraps the transport's raw HTTP response with the body
// fully buffered. Buffering means the response can travel back through
// the middleware chain with no live network resources attached, and a
// retrying middleware can discard it without leaking a connection.
//
// The status code, headers, protocol version, and final URL are read
// from the raw response at wrap time. The body is materialized exactly
// once via Bytes, Text, or JSON; a second materialization call fails
// with ErrBodyConsumed.
type Response struct {
	status     string
	statusCode int
	proto      string
	header     http.Header
	url        *url.URL
	body       []byte
	consumed   bool
	ext        *Extensions
}

// WrapResponse buffers the body of res and wraps it in a Response. The
// raw body is always closed, even on a read error. The final URL is
// taken from the raw response's request, which the standard HTTP client
// updates across redirects.
func WrapResponse(res *http.Response) (*Response, error) {
	defer func() {
		_ = res.Body.Close()
	}()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var u *url.URL
	if res.Request != nil {
		u = res.Request.URL
	}
	return &Response{
		status:     res.Status,
		statusCode: res.StatusCode,
		proto:      res.Proto,
		header:     res.Header,
		url:        u,
		body:       body,
		ext:        NewExtensions(),
	}, nil
}

// StatusCode returns the HTTP status code of the response.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Status returns the full status line text, e.g. "200 OK".
func (r *Response) Status() string {
	return r.status
}

// Proto returns the protocol version of the response, e.g. "HTTP/2.0".
func (r *Response) Proto() string {
	return r.proto
}

// Header returns the response header map. The map may be modified by
// middlewares on the way out of the chain.
func (r *Response) Header() http.Header {
	return r.header
}

// URL returns the final URL of the response, after any redirects
// followed by the underlying transport. It may be nil if the transport
// did not record the request on the response.
func (r *Response) URL() *url.URL {
	return r.url
}

// Extensions returns the response's typed extension store. Middlewares
// use it to attach per-response metadata, for example the retry count
// recorded by the retry middleware.
func (r *Response) Extensions() *Extensions {
	return r.ext
}

// ContentLength returns the size of the realized response body in
// bytes. Because the body is fully buffered, this is the actual body
// size, not an echo of the Content-Length header, so it stays accurate
// when the transport transparently decodes the body.
func (r *Response) ContentLength() int64 {
	return int64(len(r.body))
}

// Bytes consumes the response and returns the full body.
func (r *Response) Bytes() ([]byte, error) {
	if r.consumed {
		return nil, ErrBodyConsumed
	}
	r.consumed = true
	return r.body, nil
}

// Text consumes the response and returns the full body as a string.
func (r *Response) Text() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSON consumes the response and unmarshals the body into v.
func (r *Response) JSON(v interface{}) error {
	b, err := r.Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ErrorForStatus converts a response with a 4xx or 5xx status code into
// a *StatusError, consuming the response. A response with any other
// status code is returned untouched.
func (r *Response) ErrorForStatus() (*Response, error) {
	if err := r.ErrorForStatusRef(); err != nil {
		return nil, err
	}
	return r, nil
}

// ErrorForStatusRef performs the same check as ErrorForStatus by
// reference: it returns a *StatusError if the status code is 4xx or
// 5xx, and nil otherwise, leaving the response usable either way.
func (r *Response) ErrorForStatusRef() error {
	if r.statusCode < 400 || r.statusCode > 599 {
		return nil
	}
	var u string
	if r.url != nil {
		u = r.url.String()
	}
	return &StatusError{
		StatusCode: r.statusCode,
		Status:     r.status,
		URL:        u,
	}
}
