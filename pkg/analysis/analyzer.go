/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer.go
Description: Analysis registry for Mercy. Maps protocol names (defang, identify, crack,
language, email) to text analyzers that turn an input string into a display result.
*/

package analysis

import (
	"context"
	"sort"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// MsgUnableToAnalyze is returned for unregistered analysis protocols
const MsgUnableToAnalyze = "Unable to analyze the input provided"

// AnalyzeFunc turns input into a display result. The error return is reserved
// for environment failures.
type AnalyzeFunc func(ctx context.Context, input string) (interfaces.TransformResult, error)

// Registry maps protocol names to analyzers
type Registry struct {
	analyzers map[string]AnalyzeFunc
}

// NewRegistry creates the registry with every built-in analyzer
func NewRegistry() *Registry {
	identifier := NewIdentifier()
	cracker := NewCracker()
	headers := NewHeaderParser()

	return &Registry{
		analyzers: map[string]AnalyzeFunc{
			"defang": func(_ context.Context, in string) (interfaces.TransformResult, error) {
				return interfaces.Ok(Defang(in)), nil
			},
			"identify": func(_ context.Context, in string) (interfaces.TransformResult, error) {
				return identifier.Describe(in), nil
			},
			"crack": func(_ context.Context, in string) (interfaces.TransformResult, error) {
				return cracker.Describe(in), nil
			},
			"language": func(_ context.Context, in string) (interfaces.TransformResult, error) {
				return DescribeLanguage(in), nil
			},
			"email": func(_ context.Context, in string) (interfaces.TransformResult, error) {
				return headers.Parse(in)
			},
		},
	}
}

// Analyze runs the named analyzer
func (r *Registry) Analyze(ctx context.Context, protocol, input string) (interfaces.TransformResult, error) {
	fn, ok := r.analyzers[strings.ToLower(protocol)]
	if !ok {
		return interfaces.Unsupported(MsgUnableToAnalyze), nil
	}
	return fn(ctx, input)
}

// Protocols lists the registered analyzer names in sorted order
func (r *Registry) Protocols() []string {
	out := make([]string, 0, len(r.analyzers))
	for k := range r.analyzers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Defang replaces every '.' with "[.]". Dots that are already bracketed are
// left alone, so defanging twice is the same as defanging once.
func Defang(input string) string {
	var b strings.Builder
	b.Grow(len(input) + 8)
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '.' && !(i > 0 && input[i-1] == '[' && i+1 < len(input) && input[i+1] == ']') {
			b.WriteString("[.]")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
