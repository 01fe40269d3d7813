/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: digest.go
Description: Digest registry for Mercy. Maps protocol names to one-way hash
constructors and renders digests as lowercase hexadecimal.
*/

package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"sort"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// MsgUnableToHash is returned for unregistered hash protocols
const MsgUnableToHash = "Unable to hash message"

// Registry maps protocol names to hash constructors
type Registry struct {
	hashes map[string]func() hash.Hash
}

// NewRegistry creates the registry with every built-in digest.
// sha2_256 is kept as an alias of sha256.
func NewRegistry() *Registry {
	return &Registry{
		hashes: map[string]func() hash.Hash{
			"sha256":   sha256.New,
			"sha2_256": sha256.New,
			"md5":      md5.New,
			"sha1":     sha1.New,
			"sha512":   sha512.New,
		},
	}
}

// Hash digests the UTF-8 bytes of text with the named algorithm
func (r *Registry) Hash(protocol, text string) interfaces.TransformResult {
	sum, ok := r.Sum(protocol, []byte(text))
	if !ok {
		return interfaces.Unsupported(MsgUnableToHash)
	}
	return interfaces.Ok(sum)
}

// Sum returns the lowercase hex digest of data, or false for an unknown protocol
func (r *Registry) Sum(protocol string, data []byte) (string, bool) {
	newHash, ok := r.hashes[strings.ToLower(protocol)]
	if !ok {
		return "", false
	}
	h := newHash()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), true
}

// Protocols lists the registered digest names in sorted order
func (r *Registry) Protocols() []string {
	out := make([]string, 0, len(r.hashes))
	for k := range r.hashes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
