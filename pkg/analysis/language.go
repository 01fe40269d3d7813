/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: language.go
Description: Natural language detection. Uses whatlanggo trigram profiles to name the
language, its writing script, and the detector's confidence.
*/

package analysis

import (
	"fmt"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/kleascm/mercy/pkg/interfaces"
)

// MsgUnableToDetect is returned for inputs with no letters
const MsgUnableToDetect = "Unable to detect the language of the input provided"

// Detection is the outcome of language detection
type Detection struct {
	Language   string  `json:"language"`   // English name, e.g. "Russian"
	Code       string  `json:"code"`       // ISO 639-3 code
	Script     string  `json:"script"`     // Writing system, e.g. "Cyrillic"
	Confidence float64 `json:"confidence"` // 0..1
}

// DetectLanguage identifies the language of s. It reports false when s has no
// letters or the detector cannot place it.
func DetectLanguage(s string) (Detection, bool) {
	if !hasLetter(s) {
		return Detection{}, false
	}

	info := whatlanggo.Detect(s)
	if info.Script == nil || info.Lang.String() == "" {
		return Detection{}, false
	}
	return Detection{
		Language:   info.Lang.String(),
		Code:       info.Lang.Iso6393(),
		Script:     whatlanggo.Scripts[info.Script],
		Confidence: info.Confidence,
	}, true
}

// DescribeLanguage renders DetectLanguage as a display result
func DescribeLanguage(s string) interfaces.TransformResult {
	d, ok := DetectLanguage(s)
	if !ok {
		return interfaces.Unsupported(MsgUnableToDetect)
	}
	return interfaces.Ok(fmt.Sprintf("Language: %s (%s), script: %s, confidence: %.0f%%",
		d.Language, d.Code, d.Script, d.Confidence*100))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
