/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec.go
Description: Codec registry for Mercy. Maps protocol names to symmetric encode/decode
transforms (base64, rot13). Malformed input is reported as a recoverable decode
failure instead of aborting the process.
*/

package codec

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// Sentinel texts returned for handled failures
const (
	MsgUnableToDecode = "Unable to decode message"
	MsgUnableToEncode = "Unable to encode message"
	MsgDecodeError    = "decode error"
)

// TextTransform converts one string into another
type TextTransform func(text string) (string, error)

// Registry is an immutable protocol -> transform mapping built once at startup
type Registry struct {
	decoders map[string]TextTransform
	encoders map[string]TextTransform
}

// NewRegistry creates the registry with every built-in codec
func NewRegistry() *Registry {
	return &Registry{
		decoders: map[string]TextTransform{
			"base64": Base64Decode,
			"rot13":  ROT13Transform,
		},
		encoders: map[string]TextTransform{
			"base64": Base64Encode,
			"rot13":  ROT13Transform,
		},
	}
}

// Decode runs the named decoder over text
func (r *Registry) Decode(protocol, text string) interfaces.TransformResult {
	return run(r.decoders, protocol, text, MsgUnableToDecode)
}

// Encode runs the named encoder over text
func (r *Registry) Encode(protocol, text string) interfaces.TransformResult {
	return run(r.encoders, protocol, text, MsgUnableToEncode)
}

// DecodeProtocols lists the registered decoder names in sorted order
func (r *Registry) DecodeProtocols() []string { return names(r.decoders) }

// EncodeProtocols lists the registered encoder names in sorted order
func (r *Registry) EncodeProtocols() []string { return names(r.encoders) }

func run(table map[string]TextTransform, protocol, text, unknown string) interfaces.TransformResult {
	fn, ok := table[strings.ToLower(protocol)]
	if !ok {
		return interfaces.Unsupported(unknown)
	}
	out, err := fn(text)
	if err != nil {
		return interfaces.Unsupported(MsgDecodeError)
	}
	return interfaces.Ok(out)
}

func names(table map[string]TextTransform) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Base64Decode decodes standard padded base64. Invalid UTF-8 in the decoded
// bytes is replaced with U+FFFD rather than rejected, one replacement per
// maximal invalid subpart.
func Base64Decode(text string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", interfaces.ErrDecodeFailure, err)
	}
	return lossyUTF8(raw), nil
}

// Base64Encode encodes text with the standard padded alphabet
func Base64Encode(text string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

// ROT13Transform rotates ASCII letters by 13 places. It is its own inverse.
func ROT13Transform(text string) (string, error) {
	return ROT13(text), nil
}

// ROT13 rotates ASCII letters by 13 places, leaving every other rune untouched
func ROT13(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune('a' + (r-'a'+13)%26)
		case r >= 'A' && r <= 'Z':
			b.WriteRune('A' + (r-'A'+13)%26)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lossyUTF8 replaces each maximal invalid subpart of raw with U+FFFD. A
// truncated multi-byte sequence collapses into a single replacement.
func lossyUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	var b strings.Builder
	b.Grow(len(raw) + 8)
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r != utf8.RuneError || size > 1 {
			b.Write(raw[:size])
			raw = raw[size:]
			continue
		}
		b.WriteRune(utf8.RuneError)
		raw = raw[invalidPrefix(raw):]
	}
	return b.String()
}

// invalidPrefix returns the length of the maximal subpart at the start of p:
// the lead byte plus every continuation byte that could still begin a valid
// sequence. p must start with an invalid sequence.
func invalidPrefix(p []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xBF)
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		need = 2
	case b == 0xE0:
		need, lo = 3, 0xA0
	case b == 0xED:
		need, hi = 3, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		need = 3
	case b == 0xF0:
		need, lo = 4, 0x90
	case b == 0xF4:
		need, hi = 4, 0x8F
	case b >= 0xF1 && b <= 0xF3:
		need = 4
	default:
		return 1
	}

	n := 1
	for n < need && n < len(p) {
		c := p[n]
		if n == 1 && (c < lo || c > hi) {
			break
		}
		if n > 1 && (c < 0x80 || c > 0xBF) {
			break
		}
		n++
	}
	return n
}
