/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: crack.go
Description: Heuristic string cracking. Tries every Caesar shift and a base64 decode,
scores each plaintext against English letter frequencies, and reports the most
English-looking candidate.
*/

package analysis

import (
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// MsgUnableToCrack is returned when no candidate is plausible
const MsgUnableToCrack = "Unable to crack the string provided"

// englishFrequencies are relative letter frequencies (percent) for a..z
var englishFrequencies = [26]float64{
	8.167, 1.492, 2.782, 4.253, 12.702, 2.228, 2.015, 6.094, 6.966, 0.153, 0.772, 4.025, 2.406,
	6.749, 7.507, 1.929, 0.095, 5.987, 6.327, 9.056, 2.758, 0.978, 2.360, 0.150, 1.974, 0.074,
}

// Guess is one candidate plaintext
type Guess struct {
	Method    string  `json:"method"`
	Plaintext string  `json:"plaintext"`
	Score     float64 `json:"score"` // chi-squared distance; lower is more English-like
}

// Cracker ranks candidate decodings of a ciphertext
type Cracker struct {
	maxScore float64
}

// NewCracker creates a cracker with the default plausibility threshold
func NewCracker() *Cracker {
	return &Cracker{maxScore: 150}
}

// Guesses returns every candidate sorted from most to least plausible
func (c *Cracker) Guesses(ciphertext string) []Guess {
	var guesses []Guess

	if countLetters(ciphertext) > 0 {
		for shift := 1; shift < 26; shift++ {
			plain := caesar(ciphertext, shift)
			guesses = append(guesses, Guess{
				Method:    fmt.Sprintf("caesar shift %d", shift),
				Plaintext: plain,
				Score:     chiSquared(plain),
			})
		}
	}

	if raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext)); err == nil && isPrintable(raw) {
		plain := string(raw)
		guesses = append(guesses, Guess{Method: "base64", Plaintext: plain, Score: chiSquared(plain)})
	}

	sort.SliceStable(guesses, func(i, j int) bool { return guesses[i].Score < guesses[j].Score })
	return guesses
}

// Describe renders the best plausible guess
func (c *Cracker) Describe(ciphertext string) interfaces.TransformResult {
	guesses := c.Guesses(ciphertext)
	if len(guesses) == 0 || guesses[0].Score > c.maxScore {
		return interfaces.Unsupported(MsgUnableToCrack)
	}
	best := guesses[0]
	return interfaces.Ok(fmt.Sprintf("Best guess (%s): %s", best.Method, best.Plaintext))
}

func caesar(s string, shift int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune('a' + (r-'a'+rune(shift))%26)
		case r >= 'A' && r <= 'Z':
			b.WriteRune('A' + (r-'A'+rune(shift))%26)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	return n
}

// chiSquared measures distance from English letter frequencies
func chiSquared(s string) float64 {
	var counts [26]float64
	total := 0.0
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			counts[r-'a']++
			total++
		}
	}
	if total == 0 {
		return math.Inf(1)
	}
	score := 0.0
	for i, observed := range counts {
		expected := englishFrequencies[i] / 100 * total
		score += (observed - expected) * (observed - expected) / expected
	}
	return score
}

func isPrintable(raw []byte) bool {
	if len(raw) == 0 || !utf8.Valid(raw) {
		return false
	}
	for _, r := range string(raw) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
