// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"net/http"
	"net/url"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package. It is the
// transport collaborator underneath a Client: everything below "send a
// request, get back a response or an error" (connection handling, TLS,
// redirects, cookies) is the HTTPDoer's business.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// The HTTPDoerFunc type is an adapter to allow the use of ordinary
// functions as HTTPDoers.
type HTTPDoerFunc func(r *http.Request) (*http.Response, error)

// Do calls f(r).
func (f HTTPDoerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

// A ClientBuilder assembles a Client from an HTTPDoer, an ordered list
// of middlewares, and an ordered list of request initialisers.
//
//	client := httpmw.NewClientBuilder(nil).
//		With(traceMW, retryMW).
//		Build()
type ClientBuilder struct {
	doer         HTTPDoer
	middlewares  []Middleware
	initialisers []RequestInitialiser
}

// NewClientBuilder returns a builder wrapping doer. A nil doer means
// http.DefaultClient from the standard net/http package.
func NewClientBuilder(doer HTTPDoer) *ClientBuilder {
	return &ClientBuilder{doer: doer}
}

// With appends middlewares to the chain. Middlewares run in the order
// they were added on the way in, and in reverse order on the way out.
func (b *ClientBuilder) With(mw ...Middleware) *ClientBuilder {
	for _, m := range mw {
		if m == nil {
			panic("httpmw: nil middleware")
		}
	}
	b.middlewares = append(b.middlewares, mw...)
	return b
}

// WithInit appends request initialisers, which run once per logical
// request before the middleware chain.
func (b *ClientBuilder) WithInit(init ...RequestInitialiser) *ClientBuilder {
	for _, i := range init {
		if i == nil {
			panic("httpmw: nil initialiser")
		}
	}
	b.initialisers = append(b.initialisers, init...)
	return b
}

// Build returns the assembled Client. The middleware chain is fixed at
// this point and shared, read-only, by every request the client sends.
func (b *ClientBuilder) Build() *Client {
	return &Client{
		doer:         b.doer,
		middlewares:  append([]Middleware(nil), b.middlewares...),
		initialisers: append([]RequestInitialiser(nil), b.initialisers...),
	}
}

// A Client is an HTTP client which threads every outbound request
// through a middleware chain before handing it to the underlying
// HTTPDoer. Its zero value is a valid configuration: no middlewares
// and http.DefaultClient as the transport.
//
// A Client's HTTPDoer typically has internal state (cached TCP
// connections), so Client instances should be reused instead of
// created as needed. Client is safe for concurrent use by multiple
// goroutines.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// buffers the entire response body and returns a *Response wrapper,
// runs the configured middleware chain around each request, and seeds
// a fresh per-request extension store shared by all middlewares and
// all retry attempts of the request.
type Client struct {
	doer         HTTPDoer
	middlewares  []Middleware
	initialisers []RequestInitialiser
}

// Do sends an HTTP request through the middleware chain and returns
// the buffered response.
//
// A fresh extension store is created for the logical request; use
// DoWithExtensions to supply a pre-populated one. A non-2XX status
// code does not result in an error; use Response.ErrorForStatus to
// convert one. Errors from the transport are of type *TransportError,
// configuration problems are *ConfigError, and middleware-raised
// failures keep whatever type the middleware gave them.
func (c *Client) Do(req *http.Request) (*Response, error) {
	return c.DoWithExtensions(req, NewExtensions())
}

// DoWithExtensions behaves like Do but uses the supplied extension
// store instead of creating a fresh one. This lets a caller seed
// per-request values for middlewares, or read back values the chain
// deposited, after the call returns.
func (c *Client) DoWithExtensions(req *http.Request, ext *Extensions) (*Response, error) {
	if req == nil {
		panic("httpmw: nil request")
	}
	if ext == nil {
		ext = NewExtensions()
	}
	for _, init := range c.initialisers {
		if err := init.Init(req, ext); err != nil {
			return nil, err
		}
	}
	next := Next{middlewares: c.middlewares, transport: c.send}
	return next.Run(req, ext)
}

// send is the terminal transport step of every chain the client runs:
// one attempt over the HTTPDoer, with the response body fully buffered
// into the Response wrapper. Transport and body-read failures both
// surface as *TransportError.
func (c *Client) send(req *http.Request, _ *Extensions) (*Response, error) {
	res, err := c.httpDoer().Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	wrapped, err := WrapResponse(res)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return wrapped, nil
}

// Get issues a GET to the specified URL through the middleware chain.
func (c *Client) Get(url string) (*Response, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL through the middleware chain.
func (c *Client) Head(url string) (*Response, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL through the middleware chain.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by NewRequest and BodyBytes, namely: string;
// []byte; io.Reader; and io.ReadCloser. The body is buffered, so the
// request stays replayable under retries.
func (c *Client) Post(url, contentType string, body interface{}) (*Response, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func (c *Client) PostForm(url string, data url.Values) (*Response, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one, and otherwise does nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.httpDoer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) httpDoer() HTTPDoer {
	if c.doer == nil {
		return http.DefaultClient
	}

	return c.doer
}
