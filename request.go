// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

const badBodyTypeMsg = "httpmw: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// TryClone attempts to duplicate a request so that it can be sent
// again. It returns nil if the request is not replayable, which is the
// case when the request carries a body but no GetBody function to
// rewind it, i.e. a one-shot streaming body.
//
// A request built with NewRequest, or with http.NewRequest and an
// in-memory body type (*bytes.Buffer, *bytes.Reader, *strings.Reader),
// always has GetBody set, and duplicating it costs O(1): GetBody hands
// out a fresh reader over the same underlying buffer. TryClone never
// reads the original body, so a failed clone cannot truncate it.
func TryClone(req *http.Request) *http.Request {
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return nil
	}
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil
		}
		clone.Body = body
	}
	return clone
}

// NewRequest wraps NewRequestWithContext using the background context.
func NewRequest(method, url string, body interface{}) (*http.Request, error) {
	return NewRequestWithContext(context.Background(), method, url, body)
}

// NewRequestWithContext returns a new *http.Request whose body, if any,
// is buffered in memory so the request stays replayable under retries.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. Readers are drained into a byte
// slice (and closed, for an io.ReadCloser). The returned request always
// has GetBody set when a body is present, so TryClone succeeds on it.
func NewRequestWithContext(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return http.NewRequestWithContext(ctx, method, url, nil)
	}
	return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(b))
}

// BodyBytes converts a generic body parameter to a byte slice for use
// as a buffered request body.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. A nil body produces a nil slice. A
// []byte is returned as-is and a string is converted. A reader is read
// to the end, and closed if it implements io.Closer; a read or close
// error is returned with a nil slice. Any other type produces an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err2 := x.Close(); err == nil {
			err = err2
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return io.ReadAll(x)
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
