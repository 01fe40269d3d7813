/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mutators.go
Description: Bit-flip domain mutation for Mercy. Enumerates every single-bit flip of
every byte in a seed, keeps flips that land on hostname characters, and emits the
permutations that still end in a known domain extension. Enumeration is lazy,
deterministic, and restartable.
*/

package strategies

import (
	"iter"
	"slices"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// DefaultExtensions is the ordered extension set checked against every candidate.
// None is a suffix of another, but the order is fixed so output is deterministic.
var DefaultExtensions = []string{
	".com", ".io", ".co", ".ai", ".moe", ".org", ".edu",
	".net", ".biz", ".ru", ".uk", ".au", ".de", ".in",
}

// BitFlipMutator generates bitsquatting permutations of a domain
type BitFlipMutator struct {
	extensions []string // Ordered extension set
}

// NewBitFlipMutator creates a mutator over the given extensions, or the
// default set when none are supplied
func NewBitFlipMutator(extensions ...string) *BitFlipMutator {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &BitFlipMutator{extensions: slices.Clone(extensions)}
}

// Flips yields every accepted single-bit permutation of seed, before extension
// filtering. Order: byte position ascending, then bit 0..7 ascending.
func (m *BitFlipMutator) Flips(seed string) iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		src := []byte(seed)
		for i, orig := range src {
			for bit := 0; bit < 8; bit++ {
				flipped := orig ^ (1 << bit)
				if !isHostnameByte(flipped) || toLower(flipped) == toLower(orig) {
					continue
				}
				candidate := slices.Clone(src)
				candidate[i] = flipped
				if !yield(i*8+bit, candidate) {
					return
				}
			}
		}
	}
}

// Candidates yields the permutations of seed that still end in a known
// extension. Each candidate is emitted at most once, tagged with the first
// extension it matched.
func (m *BitFlipMutator) Candidates(seed string) iter.Seq[interfaces.DomainCandidate] {
	return func(yield func(interfaces.DomainCandidate) bool) {
		for idx, raw := range m.Flips(seed) {
			text := string(raw)
			if !strings.Contains(text, ".") {
				continue
			}
			ext, ok := m.match(text)
			if !ok {
				continue
			}
			c := interfaces.DomainCandidate{
				Text:      text,
				Extension: ext,
				Position:  idx / 8,
				Bit:       idx % 8,
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Generate collects every candidate for seed
func (m *BitFlipMutator) Generate(seed string) []interfaces.DomainCandidate {
	return slices.Collect(m.Candidates(seed))
}

// Extensions returns a copy of the extension set in match order
func (m *BitFlipMutator) Extensions() []string {
	return slices.Clone(m.extensions)
}

// Name returns the name of this mutator
func (m *BitFlipMutator) Name() string {
	return "BitFlipMutator"
}

// Description returns a description of this mutator
func (m *BitFlipMutator) Description() string {
	return "Flips single bits in each byte of a domain and keeps hostname-valid permutations"
}

func (m *BitFlipMutator) match(text string) (string, bool) {
	for _, ext := range m.extensions {
		if strings.HasSuffix(text, ext) {
			return ext, true
		}
	}
	return "", false
}

// isHostnameByte reports ASCII alphanumerics and the hyphen
func isHostnameByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '-'
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
