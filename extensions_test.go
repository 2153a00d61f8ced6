// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type extA struct {
	n int
}

type extB string

type extIface interface {
	Marker()
}

type extImpl struct{}

func (extImpl) Marker() {}

func TestExtensions(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		e := NewExtensions()
		assert.Equal(t, 0, e.Len())
		_, ok := GetExt[extA](e)
		assert.False(t, ok)
	})
	t.Run("put and get", func(t *testing.T) {
		e := NewExtensions()
		PutExt(e, extA{n: 7})
		PutExt(e, extB("hello"))
		assert.Equal(t, 2, e.Len())
		a, ok := GetExt[extA](e)
		assert.True(t, ok)
		assert.Equal(t, 7, a.n)
		b, ok := GetExt[extB](e)
		assert.True(t, ok)
		assert.Equal(t, extB("hello"), b)
	})
	t.Run("one value per type", func(t *testing.T) {
		e := NewExtensions()
		PutExt(e, extA{n: 1})
		PutExt(e, extA{n: 2})
		assert.Equal(t, 1, e.Len())
		a, ok := GetExt[extA](e)
		assert.True(t, ok)
		assert.Equal(t, 2, a.n)
	})
	t.Run("delete", func(t *testing.T) {
		e := NewExtensions()
		PutExt(e, extB("x"))
		DeleteExt[extB](e)
		assert.Equal(t, 0, e.Len())
		_, ok := GetExt[extB](e)
		assert.False(t, ok)
		DeleteExt[extB](e) // absent delete is a no-op
	})
	t.Run("interface key", func(t *testing.T) {
		e := NewExtensions()
		PutExt[extIface](e, extImpl{})
		v, ok := GetExt[extIface](e)
		assert.True(t, ok)
		assert.Equal(t, extImpl{}, v)
		// The concrete type is a distinct key from the interface.
		_, ok = GetExt[extImpl](e)
		assert.False(t, ok)
	})
	t.Run("pointer value", func(t *testing.T) {
		e := NewExtensions()
		a := &extA{n: 3}
		PutExt(e, a)
		got, ok := GetExt[*extA](e)
		assert.True(t, ok)
		assert.Same(t, a, got)
		got.n = 4
		got2, _ := GetExt[*extA](e)
		assert.Equal(t, 4, got2.n)
	})
}
