// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemStore(t *testing.T) {
	st, err := NewMem(Options{})
	assert.Nil(t, err)
	defer st.Close()

	ok, err := st.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.False(t, ok)

	assert.Nil(t, st.Put([]byte("k1"), []byte("v1")))

	val, err := st.Get([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), val)

	ok, err = st.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.True(t, ok)

	assert.Nil(t, st.Delete([]byte("k1")))
	_, err = st.Get([]byte("k1"))
	assert.True(t, st.IsNotFound(err))
}

func TestBucket(t *testing.T) {
	tests := []struct {
		b    Bucket
		key  string
		want string
	}{
		{Bucket(""), "k1", "v1"},
		{Bucket("k"), "1", "v2"},
		{Bucket("k1"), "", "v3"},
	}
	for _, tt := range tests {
		m, _ := NewMem(Options{})
		putter := tt.b.NewPutter(m)
		assert.Nil(t, putter.Put([]byte(tt.key), []byte(tt.want)))

		getter := tt.b.NewGetter(m)
		got, err := getter.Get([]byte(tt.key))
		assert.Nil(t, err)
		assert.Equal(t, tt.want, string(got))
	}

	// "k"+"1", ""+"k1" and "k1"+"" all resolve to the same raw key "k1":
	// a bucket is a plain key prefix, not an isolated namespace.
	m, _ := NewMem(Options{})
	assert.Nil(t, Bucket("k").NewPutter(m).Put([]byte("1"), []byte("shared")))
	got, err := Bucket("").NewGetter(m).Get([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, "shared", string(got))
}
