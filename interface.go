// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"net/http"
	"net/url"
)

// Doer is the interface that wraps the basic Do method.
//
// Do sends an HTTP request through a middleware chain and returns the
// buffered response (and error, if any). Client implements the Doer
// interface, and any other Doer implementation must behave
// substantially the same as Client.Do.
//
// Any Doer can be converted into a Sender via the Inflate function.
type Doer interface {
	Do(req *http.Request) (*Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to the specified URL and returns the buffered
// response (and error, if any). Client implements the Getter
// interface.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string) (*Response, error)
}

// Header is the interface that wraps the basic Head method.
//
// Head issues a HEAD to the specified URL and returns the buffered
// response (and error, if any). Client implements the Header
// interface.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(url string) (*Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST to the specified URL and returns the buffered
// response (and error, if any). Client implements the Poster
// interface.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by NewRequest and BodyBytes, namely: string;
// []byte; io.Reader; and io.ReadCloser.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url, contentType string, body interface{}) (*Response, error)
}

// FormPoster is the interface that wraps the basic PostForm method.
//
// PostForm issues a POST to the specified URL with data's keys and
// values URL-encoded as the request body and the content type set to
// application/x-www-form-urlencoded. Client implements the FormPoster
// interface.
//
// Any Doer can be used to emulate a FormPoster via the PostForm
// function.
type FormPoster interface {
	PostForm(url string, data url.Values) (*Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes connections which were previously used but are now sitting
// idle in a "keep-alive" state. It does not interrupt any connections
// currently in use. If the underlying implementation does not support
// this ability, CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Sender is the interface that groups the basic Do, Get, Head, Post,
// PostForm, and CloseIdleConnections methods.
//
// Any Doer can be converted into a Sender via the Inflate function.
type Sender interface {
	Doer
	Getter
	Header
	Poster
	FormPoster
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// To send a request with custom headers, use NewRequest and d.Do.
func Get(d Doer, url string) (*Response, error) {
	req, err := NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(req)
}

// Head uses the specified Doer to issue a HEAD to the specified URL,
// using the same policies as d.Do.
//
// To send a request with custom headers, use NewRequest and d.Do.
func Head(d Doer, url string) (*Response, error) {
	req, err := NewRequest("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(req)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by NewRequest and BodyBytes, namely: string;
// []byte; io.Reader; and io.ReadCloser.
//
// To send a request with custom headers, use NewRequest and d.Do.
func Post(d Doer, url, contentType string, body interface{}) (*Response, error) {
	req, err := NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return d.Do(req)
}

// PostForm uses the specified Doer to issue a POST to the specified
// URL, with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To send a request with other headers, use NewRequest and d.Do.
func PostForm(d Doer, url string, data url.Values) (*Response, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode())
}

// Inflate converts any non-nil Doer into a Sender. This may be helpful
// for interop across library boundaries, i.e. if code that only has
// access to a Doer needs to call a function that requires a Sender.
func Inflate(d Doer) Sender {
	if d == nil {
		panic("httpmw: nil doer")
	}

	if s, ok := d.(Sender); ok {
		return s
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(req *http.Request) (*Response, error) {
	return i.doer.Do(req)
}

func (i inflated) Get(url string) (*Response, error) {
	return Get(i.doer, url)
}

func (i inflated) Head(url string) (*Response, error) {
	return Head(i.doer, url)
}

func (i inflated) Post(url, contentType string, body interface{}) (*Response, error) {
	return Post(i.doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*Response, error) {
	return PostForm(i.doer, url, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
