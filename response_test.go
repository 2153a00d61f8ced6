// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapResponse(t *testing.T) {
	raw := &http.Response{
		Status:     "200 OK",
		StatusCode: 200,
		Proto:      "HTTP/2.0",
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader("hello")),
		Request: &http.Request{
			URL: mustURL(t, "https://test.example.com/final"),
		},
	}
	res, err := WrapResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode())
	assert.Equal(t, "200 OK", res.Status())
	assert.Equal(t, "HTTP/2.0", res.Proto())
	assert.Equal(t, "text/plain", res.Header().Get("Content-Type"))
	assert.Equal(t, "https://test.example.com/final", res.URL().String())
	assert.Equal(t, int64(5), res.ContentLength())
	assert.Equal(t, 0, res.Extensions().Len())
}

type failingBody struct {
	closed bool
}

func (b *failingBody) Read(_ []byte) (int, error) {
	return 0, errors.New("read failure")
}

func (b *failingBody) Close() error {
	b.closed = true
	return nil
}

func TestWrapResponseReadError(t *testing.T) {
	body := &failingBody{}
	_, err := WrapResponse(&http.Response{
		StatusCode: 200,
		Body:       body,
	})
	assert.EqualError(t, err, "read failure")
	assert.True(t, body.closed)
}

func TestResponseBodyConsumeOnce(t *testing.T) {
	t.Run("Bytes then Bytes", func(t *testing.T) {
		res := newTestResponse(t, 200, "payload")
		b, err := res.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), b)
		_, err = res.Bytes()
		assert.ErrorIs(t, err, ErrBodyConsumed)
	})
	t.Run("Text then JSON", func(t *testing.T) {
		res := newTestResponse(t, 200, `{"a":1}`)
		s, err := res.Text()
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, s)
		var v map[string]int
		assert.ErrorIs(t, res.JSON(&v), ErrBodyConsumed)
	})
	t.Run("content length survives consumption", func(t *testing.T) {
		res := newTestResponse(t, 200, "1234")
		_, err := res.Bytes()
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.ContentLength())
	})
}

func TestResponseJSON(t *testing.T) {
	res := newTestResponse(t, 200, `{"name":"widget","count":3}`)
	var v struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, res.JSON(&v))
	assert.Equal(t, "widget", v.Name)
	assert.Equal(t, 3, v.Count)
}

func TestResponseJSONMalformed(t *testing.T) {
	res := newTestResponse(t, 200, `{"name":`)
	var v map[string]interface{}
	assert.Error(t, res.JSON(&v))
}

func TestErrorForStatus(t *testing.T) {
	t.Run("success passes through", func(t *testing.T) {
		res := newTestResponse(t, 200, "ok")
		same, err := res.ErrorForStatus()
		require.NoError(t, err)
		assert.Same(t, res, same)
	})
	t.Run("client error", func(t *testing.T) {
		res := newTestResponse(t, 404, "missing")
		same, err := res.ErrorForStatus()
		assert.Nil(t, same)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
		assert.Equal(t, "404 Not Found", statusErr.Status)
		assert.Equal(t, "http://test.example.com/path", statusErr.URL)
	})
	t.Run("server error", func(t *testing.T) {
		res := newTestResponse(t, 503, "")
		_, err := res.ErrorForStatus()
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 503, statusErr.StatusCode)
	})
	t.Run("by reference leaves body usable", func(t *testing.T) {
		res := newTestResponse(t, 500, "details")
		err := res.ErrorForStatusRef()
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		body, err := res.Text()
		require.NoError(t, err)
		assert.Equal(t, "details", body)
	})
	t.Run("by reference on success", func(t *testing.T) {
		res := newTestResponse(t, 302, "")
		assert.NoError(t, res.ErrorForStatusRef())
	})
}
