/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces_test.go
Description: Tests for categories, transform results, classifications, and the
error taxonomy.
*/

package interfaces

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseCategory tests canonical names, aliases, and normalization
func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"decode":   CategoryDecode,
		" Encode ": CategoryEncode,
		"HASH":     CategoryHash,
		"hex":      CategoryHexDump,
		"sys":      CategoryInfo,
		"ip":       CategoryInfo,
		"mal":      CategoryLookup,
		"who":      CategoryLookup,
		"d":        CategoryAnalyze,
		"id":       CategoryAnalyze,
		"mutate":   CategoryMutate,
	}
	for in, want := range tests {
		got, ok := ParseCategory(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseCategory("compress")
	assert.False(t, ok)
	assert.Equal(t, CategoryUnknown, got)
}

// TestCategoryNames tests that every category round-trips through its name
func TestCategoryNames(t *testing.T) {
	for _, c := range Categories() {
		parsed, ok := ParseCategory(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
		assert.NotContains(t, c.Aliases(), c.String())
	}
	assert.Equal(t, "unknown", CategoryUnknown.String())
	assert.Equal(t, []string{"d", "extra", "id"}, CategoryAnalyze.Aliases())
	assert.Empty(t, CategoryDecode.Aliases())
}

// TestTransformResult tests the Ok/Unsupported union
func TestTransformResult(t *testing.T) {
	ok := Ok("")
	assert.True(t, ok.IsOk())
	assert.Equal(t, "", ok.String())

	bad := Unsupported("Unable to decode message")
	assert.False(t, bad.IsOk())
	assert.Equal(t, "", bad.Value())
	assert.Equal(t, "Unable to decode message", bad.String())

	assert.Equal(t, "unsupported", Unsupported("").Reason())
	assert.False(t, TransformResult{}.IsOk())
}

// TestParseClassification tests verdict normalization
func TestParseClassification(t *testing.T) {
	assert.Equal(t, ClassificationMalicious, ParseClassification(" malicious "))
	assert.Equal(t, ClassificationSuspicious, ParseClassification("SUSPICIOUS"))
	assert.Equal(t, ClassificationUnknown, ParseClassification("Unknown"))
	assert.Equal(t, ClassificationNone, ParseClassification("benign"))
	assert.Equal(t, ClassificationNone, ParseClassification(""))
}

// TestKindOf tests error classification through wrapping
func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindDecodeFailure, KindOf(fmt.Errorf("base64: %w", ErrDecodeFailure)))
	assert.Equal(t, KindEnvironment, KindOf(fmt.Errorf("read: %w", ErrEnvironment)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))

	assert.True(t, IsRecoverable(ErrUnsupportedProtocol))
	assert.True(t, IsRecoverable(fmt.Errorf("x: %w", ErrResourceNotFound)))
	assert.False(t, IsRecoverable(ErrEnvironment))
	assert.False(t, IsRecoverable(errors.New("other")))
	assert.False(t, IsRecoverable(nil))
}
