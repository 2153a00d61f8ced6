// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientZeroValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("zero value ok"))
	}))
	defer server.Close()

	var client Client
	res, err := client.Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode())
	body, err := res.Text()
	require.NoError(t, err)
	assert.Equal(t, "zero value ok", body)
}

func TestClientChainOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer server.Close()

	var trace []string
	client := NewClientBuilder(nil).
		With(probe{label: "A", trace: &trace}).
		With(probe{label: "B", trace: &trace}, probe{label: "C", trace: &trace}).
		Build()

	res, err := client.Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, 204, res.StatusCode())
	assert.Equal(t, []string{"A-in", "B-in", "C-in", "C-out", "B-out", "A-out"}, trace)
}

func TestClientPost(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(201)
	}))
	defer server.Close()

	client := NewClientBuilder(nil).Build()
	res, err := client.Post(server.URL, "application/json", `{"k":"v"}`)
	require.NoError(t, err)
	assert.Equal(t, 201, res.StatusCode())
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"k":"v"}`, string(gotBody))
}

func TestClientPostForm(t *testing.T) {
	var gotContentType string
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
	}))
	defer server.Close()

	client := NewClientBuilder(nil).Build()
	_, err := client.PostForm(server.URL, url.Values{"id": {"123"}, "key": {"value"}})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, url.Values{"id": {"123"}, "key": {"value"}}, gotForm)
}

func TestClientHead(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer server.Close()

	client := NewClientBuilder(nil).Build()
	res, err := client.Head(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "HEAD", gotMethod)
	assert.Equal(t, int64(0), res.ContentLength())
}

type erringDoer struct {
	err error
}

func (d erringDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, d.err
}

func TestClientTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	client := NewClientBuilder(erringDoer{err: cause}).Build()
	req, err := NewRequest("GET", "http://test.example.com", nil)
	require.NoError(t, err)

	_, err = client.Do(req)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Same(t, cause, tErr.Err)
}

func TestClientInitialisers(t *testing.T) {
	var gotHeader string
	var gotExt apiKey
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	spy := MiddlewareFunc(func(req *http.Request, ext *Extensions, next Next) (*Response, error) {
		gotExt, _ = GetExt[apiKey](ext)
		return next.Run(req, ext)
	})
	client := NewClientBuilder(nil).
		WithInit(Headers(http.Header{"User-Agent": []string{"httpmw-test/1.0"}})).
		WithInit(Extension(apiKey("k-123"))).
		With(spy).
		Build()

	_, err := client.Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "httpmw-test/1.0", gotHeader)
	assert.Equal(t, apiKey("k-123"), gotExt)
}

func TestClientInitialiserError(t *testing.T) {
	transportCalls := 0
	doer := HTTPDoerFunc(func(_ *http.Request) (*http.Response, error) {
		transportCalls++
		return nil, errors.New("unreachable")
	})
	client := NewClientBuilder(doer).
		WithInit(Headers(http.Header{"Bad Name": []string{"v"}})).
		Build()
	req, err := NewRequest("GET", "http://test.example.com", nil)
	require.NoError(t, err)

	_, err = client.Do(req)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 0, transportCalls)
}

func TestClientDoWithExtensions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	type depositKey struct{ v int }
	depositor := MiddlewareFunc(func(req *http.Request, ext *Extensions, next Next) (*Response, error) {
		PutExt(ext, depositKey{v: 42})
		return next.Run(req, ext)
	})
	client := NewClientBuilder(nil).With(depositor).Build()
	req, err := NewRequest("GET", server.URL, nil)
	require.NoError(t, err)
	ext := NewExtensions()

	_, err = client.DoWithExtensions(req, ext)

	require.NoError(t, err)
	deposited, ok := GetExt[depositKey](ext)
	assert.True(t, ok)
	assert.Equal(t, 42, deposited.v)
}

func TestClientNilRequest(t *testing.T) {
	client := NewClientBuilder(nil).Build()
	assert.PanicsWithValue(t, "httpmw: nil request", func() { _, _ = client.Do(nil) })
}

func TestClientBuilderNilArgs(t *testing.T) {
	assert.PanicsWithValue(t, "httpmw: nil middleware", func() {
		NewClientBuilder(nil).With(nil)
	})
	assert.PanicsWithValue(t, "httpmw: nil initialiser", func() {
		NewClientBuilder(nil).WithInit(nil)
	})
}

type idleCloseDoer struct {
	closed bool
}

func (d *idleCloseDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, errors.New("not used")
}

func (d *idleCloseDoer) CloseIdleConnections() {
	d.closed = true
}

func TestClientCloseIdleConnections(t *testing.T) {
	doer := &idleCloseDoer{}
	client := NewClientBuilder(doer).Build()
	client.CloseIdleConnections()
	assert.True(t, doer.closed)
}

func TestInflate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	t.Run("nil doer", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpmw: nil doer", func() { Inflate(nil) })
	})
	t.Run("passes through senders", func(t *testing.T) {
		client := NewClientBuilder(nil).Build()
		assert.Equal(t, Sender(client), Inflate(client))
	})
	t.Run("wraps bare doers", func(t *testing.T) {
		client := NewClientBuilder(nil).Build()
		s := Inflate(bareDoer{client})
		res, err := s.Get(server.URL)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode())
	})
}

type bareDoer struct {
	doer Doer
}

func (d bareDoer) Do(req *http.Request) (*Response, error) {
	return d.doer.Do(req)
}
