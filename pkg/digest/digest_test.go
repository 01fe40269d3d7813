/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: digest_test.go
Description: Tests for the digest registry using known vectors.
*/

package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashKnownValues(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		protocol string
		input    string
		expected string
	}{
		{"sha256", "azazelm3dj3d", "88172dfbf2e8c6aa00bdbd9611ffc72b3910be1fac0ef2c43196502022df8cfa"},
		{"sha2_256", "azazelm3dj3d", "88172dfbf2e8c6aa00bdbd9611ffc72b3910be1fac0ef2c43196502022df8cfa"},
		{"md5", "azazelm3dj3d", "4f85ebc7ef03bf7de13dd609f7b6a637"},
		{"md5", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"sha1", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for _, tt := range tests {
		t.Run(tt.protocol+"/"+tt.input, func(t *testing.T) {
			res := r.Hash(tt.protocol, tt.input)
			assert.True(t, res.IsOk())
			assert.Equal(t, tt.expected, res.Value())
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	r := NewRegistry()
	for _, p := range r.Protocols() {
		assert.Equal(t, r.Hash(p, "mercy").Value(), r.Hash(p, "mercy").Value(), p)
	}
}

func TestHashUnknownProtocol(t *testing.T) {
	res := NewRegistry().Hash("crc32", "x")
	assert.False(t, res.IsOk())
	assert.Equal(t, MsgUnableToHash, res.String())
}
