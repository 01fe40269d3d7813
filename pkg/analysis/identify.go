/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: identify.go
Description: String identification for Mercy. Matches an unknown string against an
ordered set of patterns (hashes, encodings, network identifiers, platform IDs) and
reports every plausible interpretation.
*/

package analysis

import (
	"encoding/base64"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/kleascm/mercy/pkg/interfaces"
	"golang.org/x/net/publicsuffix"
)

// MsgUnidentified is returned when nothing matches
const MsgUnidentified = "Unable to identify the string provided"

// Matcher reports whether a string looks like one kind of value
type Matcher interface {
	Name() string
	Match(s string) bool
}

// RegexMatcher implements Matcher with a compiled pattern
type RegexMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// NewRegexMatcher creates a RegexMatcher; pattern must compile
func NewRegexMatcher(name, pattern string) *RegexMatcher {
	return &RegexMatcher{name: name, pattern: regexp.MustCompile(pattern)}
}

func (m *RegexMatcher) Name() string        { return m.name }
func (m *RegexMatcher) Match(s string) bool { return m.pattern.MatchString(s) }

// FuncMatcher implements Matcher with a predicate
type FuncMatcher struct {
	name string
	fn   func(string) bool
}

func (m FuncMatcher) Name() string        { return m.name }
func (m FuncMatcher) Match(s string) bool { return m.fn(s) }

// Identifier runs every matcher in order
type Identifier struct {
	matchers []Matcher
}

// NewIdentifier creates an identifier with the built-in matchers
func NewIdentifier() *Identifier {
	return &Identifier{
		matchers: []Matcher{
			NewRegexMatcher("MD5 hash", `^[a-fA-F0-9]{32}$`),
			NewRegexMatcher("SHA-1 hash", `^[a-fA-F0-9]{40}$`),
			NewRegexMatcher("SHA-256 hash", `^[a-fA-F0-9]{64}$`),
			NewRegexMatcher("SHA-512 hash", `^[a-fA-F0-9]{128}$`),
			NewRegexMatcher("bcrypt hash", `^\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}$`),
			FuncMatcher{"UUID", isUUID},
			FuncMatcher{"IPv4 address", isIPv4},
			FuncMatcher{"IPv6 address", isIPv6},
			NewRegexMatcher("MAC address", `^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`),
			FuncMatcher{"Email address", isEmail},
			FuncMatcher{"URL", isURL},
			FuncMatcher{"Domain name", isDomain},
			NewRegexMatcher("YouTube channel ID", `^UC[A-Za-z0-9_-]{22}$`),
			NewRegexMatcher("YouTube video ID", `^[A-Za-z0-9_-]{11}$`),
			NewRegexMatcher("AWS access key ID", `^(AKIA|ASIA)[A-Z0-9]{16}$`),
			NewRegexMatcher("JSON Web Token", `^eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*$`),
			NewRegexMatcher("Hexadecimal string", `^(0x)?[a-fA-F0-9]+$`),
			FuncMatcher{"Base64 string", isBase64},
		},
	}
}

// Identify returns the names of every matcher that accepts s
func (id *Identifier) Identify(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, m := range id.matchers {
		if m.Match(s) {
			out = append(out, m.Name())
		}
	}
	return out
}

// Describe renders Identify as a display result
func (id *Identifier) Describe(s string) interfaces.TransformResult {
	names := id.Identify(s)
	if len(names) == 0 {
		return interfaces.Unsupported(MsgUnidentified)
	}
	return interfaces.Ok("Possible identification: " + strings.Join(names, ", "))
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Contains(s, ".")
}

func isIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

func isDomain(s string) bool {
	s = strings.ToLower(strings.TrimSuffix(s, "."))
	if !strings.Contains(s, ".") || len(s) > 253 || net.ParseIP(s) != nil {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if !labelPattern.MatchString(label) {
			return false
		}
	}
	_, icann := publicsuffix.PublicSuffix(s)
	return icann
}

func isBase64(s string) bool {
	if len(s) < 4 || len(s)%4 != 0 {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
