/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy shared by every Mercy component. Sentinel errors classify
failures so callers can decide whether to recover locally or surface them.
*/

package interfaces

import "errors"

// Sentinel errors for broad classification
var (
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrDecodeFailure       = errors.New("decode failure")
	ErrEnvironment         = errors.New("environment failure")
)

// ErrorKind is a coarse-grained categorization for errors
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindUnsupportedProtocol ErrorKind = "unsupported_protocol"
	KindResourceNotFound    ErrorKind = "resource_not_found"
	KindDecodeFailure       ErrorKind = "decode_failure"
	KindEnvironment         ErrorKind = "environment_failure"
	KindUnknown             ErrorKind = "unknown"
)

// KindOf classifies an error against the sentinel set
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnsupportedProtocol):
		return KindUnsupportedProtocol
	case errors.Is(err, ErrResourceNotFound):
		return KindResourceNotFound
	case errors.Is(err, ErrDecodeFailure):
		return KindDecodeFailure
	case errors.Is(err, ErrEnvironment):
		return KindEnvironment
	default:
		return KindUnknown
	}
}

// IsRecoverable reports whether an error is an ordinary input mistake that
// should be folded into a sentinel result instead of surfaced
func IsRecoverable(err error) bool {
	switch KindOf(err) {
	case KindUnsupportedProtocol, KindResourceNotFound, KindDecodeFailure:
		return true
	default:
		return false
	}
}
