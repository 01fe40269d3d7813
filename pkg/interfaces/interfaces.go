/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared types and capability interfaces for Mercy. Defines the transform
categories, request/result types, domain candidates, and the collaborator interfaces
(system information, address resolution, network lookups) used across packages to
break import cycles and keep the dispatcher testable without real I/O.
*/

package interfaces

import (
	"context"
	"iter"
	"slices"
	"strings"
)

// Category is the closed set of transform families the dispatcher understands
type Category int

const (
	CategoryUnknown Category = iota
	CategoryDecode
	CategoryEncode
	CategoryHash
	CategoryHexDump
	CategoryMutate
	CategoryInfo
	CategoryLookup
	CategoryAnalyze
)

// categoryNames maps every accepted method name to its category.
// The short aliases are the legacy single-word method names.
var categoryNames = map[string]Category{
	"decode":  CategoryDecode,
	"encode":  CategoryEncode,
	"hash":    CategoryHash,
	"hexdump": CategoryHexDump,
	"hex":     CategoryHexDump,
	"mutate":  CategoryMutate,
	"info":    CategoryInfo,
	"sys":     CategoryInfo,
	"ip":      CategoryInfo,
	"lookup":  CategoryLookup,
	"who":     CategoryLookup,
	"mal":     CategoryLookup,
	"analyze": CategoryAnalyze,
	"extra":   CategoryAnalyze,
	"d":       CategoryAnalyze,
	"id":      CategoryAnalyze,
}

// ParseCategory resolves a method name (case-insensitive) into a Category
func ParseCategory(method string) (Category, bool) {
	c, ok := categoryNames[strings.ToLower(strings.TrimSpace(method))]
	return c, ok
}

// Categories returns every known category in declaration order
func Categories() []Category {
	return []Category{
		CategoryDecode,
		CategoryEncode,
		CategoryHash,
		CategoryHexDump,
		CategoryMutate,
		CategoryInfo,
		CategoryLookup,
		CategoryAnalyze,
	}
}

// Aliases returns every method name that resolves to the category, sorted
func (c Category) Aliases() []string {
	var out []string
	for name, cat := range categoryNames {
		if cat == c && name != c.String() {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// String returns the canonical method name of the category
func (c Category) String() string {
	switch c {
	case CategoryDecode:
		return "decode"
	case CategoryEncode:
		return "encode"
	case CategoryHash:
		return "hash"
	case CategoryHexDump:
		return "hexdump"
	case CategoryMutate:
		return "mutate"
	case CategoryInfo:
		return "info"
	case CategoryLookup:
		return "lookup"
	case CategoryAnalyze:
		return "analyze"
	default:
		return "unknown"
	}
}

// TransformRequest is a single dispatch request. Protocol is not validated until dispatch.
type TransformRequest struct {
	Category Category `json:"category"` // Transform family
	Protocol string   `json:"protocol"` // Algorithm or capability name within the family
	Payload  string   `json:"payload"`  // Raw input text, file path, or seed
}

// TransformResult carries exactly one of a successful value or an explanatory sentinel
type TransformResult struct {
	value  string
	reason string
	ok     bool
}

// Ok wraps a successful transform output
func Ok(value string) TransformResult {
	return TransformResult{value: value, ok: true}
}

// Unsupported wraps a handled failure with its sentinel text
func Unsupported(reason string) TransformResult {
	if reason == "" {
		reason = "unsupported"
	}
	return TransformResult{reason: reason}
}

// IsOk reports whether the transform produced a value
func (r TransformResult) IsOk() bool { return r.ok }

// Value returns the successful output, or "" for an unsupported result
func (r TransformResult) Value() string { return r.value }

// Reason returns the sentinel text, or "" for a successful result
func (r TransformResult) Reason() string { return r.reason }

// String renders the result for display
func (r TransformResult) String() string {
	if r.ok {
		return r.value
	}
	return r.reason
}

// DomainCandidate is a mutated string that still ends in a known extension
type DomainCandidate struct {
	Text      string `json:"text"`                // Mutated domain
	Extension string `json:"extension,omitempty"` // Matched extension, empty when none matched
	Position  int    `json:"position"`            // Byte index that was flipped
	Bit       int    `json:"bit"`                 // Bit index that was flipped
}

// DomainMutator enumerates permutations of a seed string
type DomainMutator interface {
	Candidates(seed string) iter.Seq[DomainCandidate]
	Name() string
	Description() string
}

// SystemInfoProvider exposes host metadata
type SystemInfoProvider interface {
	Hostname(ctx context.Context) (string, error)
	CPUCores(ctx context.Context) (int, error)
	CPUSpeed(ctx context.Context) (uint64, error) // MHz
	OSRelease(ctx context.Context) (string, error)
	ProcessCount(ctx context.Context) (uint64, error)
}

// AddressResolver discovers the local interface address used for outbound traffic
type AddressResolver interface {
	InternalIP(ctx context.Context) (string, error)
}

// Classification is a domain reputation verdict
type Classification string

const (
	ClassificationNone       Classification = ""
	ClassificationMalicious  Classification = "MALICIOUS"
	ClassificationSuspicious Classification = "SUSPICIOUS"
	ClassificationUnknown    Classification = "UNKNOWN"
)

// ParseClassification normalizes a reputation verdict; unrecognized values are absent
func ParseClassification(s string) Classification {
	switch Classification(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassificationMalicious:
		return ClassificationMalicious
	case ClassificationSuspicious:
		return ClassificationSuspicious
	case ClassificationUnknown:
		return ClassificationUnknown
	default:
		return ClassificationNone
	}
}

// NetworkLookup performs blocking lookups against remote services.
// Timeouts and retries belong to the implementation.
type NetworkLookup interface {
	Whois(ctx context.Context, domain string) (string, error)
	Reputation(ctx context.Context, domain string) (Classification, error)
	Resolve(ctx context.Context, host string) ([]string, error)
}
