/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mutators_test.go
Description: Tests for the bit-flip domain mutator. Checks exact enumeration order,
determinism, structural filters, and early termination of the lazy sequence.
*/

package strategies

import (
	"testing"

	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(cs []interfaces.DomainCandidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text)
	}
	return out
}

// TestBitFlipMutatorExactOrder tests the full ordered output for a fixed seed
func TestBitFlipMutatorExactOrder(t *testing.T) {
	m := NewBitFlipMutator()

	expected := []string{
		"dxample.com", "gxample.com", "axample.com", "mxample.com", "uxample.com",
		"eyample.com", "ezample.com", "epample.com", "ehample.com", "e8ample.com",
		"excmple.com", "exemple.com", "eximple.com", "exqmple.com",
		"exalple.com", "exaople.com", "exaiple.com", "exaeple.com", "exa-ple.com",
		"examqle.com", "examrle.com", "examtle.com", "examxle.com", "exam0le.com",
		"exampme.com", "exampne.com", "examphe.com", "exampde.com",
		"exampld.com", "examplg.com", "exampla.com", "examplm.com", "examplu.com",
	}

	got := m.Generate("example.com")
	assert.Equal(t, expected, texts(got))
	for _, c := range got {
		assert.Equal(t, ".com", c.Extension)
	}
}

// TestBitFlipMutatorPositions tests the recorded flip coordinates
func TestBitFlipMutatorPositions(t *testing.T) {
	got := NewBitFlipMutator().Generate("a.co")

	require.Len(t, got, 4)
	assert.Equal(t, interfaces.DomainCandidate{Text: "c.co", Extension: ".co", Position: 0, Bit: 1}, got[0])
	assert.Equal(t, interfaces.DomainCandidate{Text: "e.co", Extension: ".co", Position: 0, Bit: 2}, got[1])
	assert.Equal(t, interfaces.DomainCandidate{Text: "i.co", Extension: ".co", Position: 0, Bit: 3}, got[2])
	assert.Equal(t, interfaces.DomainCandidate{Text: "q.co", Extension: ".co", Position: 0, Bit: 4}, got[3])
}

// TestBitFlipMutatorExtensionFlip tests a flip inside the extension itself
func TestBitFlipMutatorExtensionFlip(t *testing.T) {
	got := NewBitFlipMutator().Generate("x.io")

	assert.Equal(t, []string{"y.io", "z.io", "p.io", "h.io", "8.io", "x.in"}, texts(got))
	assert.Equal(t, ".in", got[len(got)-1].Extension)
}

// TestBitFlipMutatorDeterministic tests that repeated enumeration is identical
func TestBitFlipMutatorDeterministic(t *testing.T) {
	m := NewBitFlipMutator()
	assert.Equal(t, m.Generate("example.com"), m.Generate("example.com"))

	seq := m.Candidates("example.com")
	var first, second []interfaces.DomainCandidate
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}
	assert.Equal(t, first, second)
}

// TestBitFlipMutatorEmptySequences tests seeds that can never emit
func TestBitFlipMutatorEmptySequences(t *testing.T) {
	m := NewBitFlipMutator()

	for _, seed := range []string{"", "aaa", "com", "héé.çøm", "\xff\xfe.\xfd"} {
		assert.Empty(t, m.Generate(seed), seed)
	}
}

// TestBitFlipMutatorRejectsCaseOnlyFlips tests that bit 5 on letters is skipped
func TestBitFlipMutatorRejectsCaseOnlyFlips(t *testing.T) {
	m := NewBitFlipMutator()
	for _, raw := range m.Flips("Ab") {
		assert.NotEqual(t, "ab", string(raw))
		assert.NotEqual(t, "AB", string(raw))
	}
}

// TestBitFlipMutatorFlipsKeepHostnameBytes tests the hostname character filter
func TestBitFlipMutatorFlipsKeepHostnameBytes(t *testing.T) {
	m := NewBitFlipMutator()
	count := 0
	for _, raw := range m.Flips("a-9.") {
		count++
		for _, b := range raw {
			ok := b == '.' || b == '-' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
			assert.True(t, ok, "unexpected byte %q in %q", b, raw)
		}
	}
	assert.Greater(t, count, 0)
}

// TestBitFlipMutatorEarlyStop tests that breaking out of the sequence stops enumeration
func TestBitFlipMutatorEarlyStop(t *testing.T) {
	m := NewBitFlipMutator()
	n := 0
	for range m.Candidates("example.com") {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

// TestBitFlipMutatorCustomExtensions tests the extension set override
func TestBitFlipMutatorCustomExtensions(t *testing.T) {
	m := NewBitFlipMutator(".co")
	assert.Equal(t, []string{".co"}, m.Extensions())
	assert.Empty(t, m.Generate("example.com"))
	assert.Len(t, m.Generate("a.co"), 4)
}

// TestBitFlipMutatorInterface tests the mutator metadata
func TestBitFlipMutatorInterface(t *testing.T) {
	var m interfaces.DomainMutator = NewBitFlipMutator()
	assert.Equal(t, "BitFlipMutator", m.Name())
	assert.Contains(t, m.Description(), "bit")
}
