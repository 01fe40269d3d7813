/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: email.go
Description: Email header parsing. Reads an RFC 5322 message from a file and
summarizes the routing and identity headers.
*/

package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// Sentinel texts returned for handled failures
const (
	MsgEmailNotFound   = "Unable to locate the file specified"
	MsgUnableToParseEm = "Unable to parse email headers"
)

// summaryHeaders are rendered in this order when present
var summaryHeaders = []string{
	"From", "To", "Cc", "Reply-To", "Return-Path", "Subject", "Date", "Message-Id",
	"Authentication-Results", "Received-Spf", "Dkim-Signature", "X-Originating-Ip",
}

// HeaderParser reads message headers from files
type HeaderParser struct {
	readFile func(string) ([]byte, error)
}

// NewHeaderParser creates a parser over the host file system
func NewHeaderParser() *HeaderParser {
	return &HeaderParser{readFile: os.ReadFile}
}

// Parse reads path and renders a header summary. Missing files and malformed
// messages are handled results; other read failures are environment errors.
func (p *HeaderParser) Parse(path string) (interfaces.TransformResult, error) {
	raw, err := p.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return interfaces.Unsupported(MsgEmailNotFound), nil
		}
		return interfaces.TransformResult{}, fmt.Errorf("%w: read %s: %v", interfaces.ErrEnvironment, path, err)
	}
	return ParseHeaders(raw), nil
}

// ParseHeaders summarizes the headers of a raw message
func ParseHeaders(raw []byte) interfaces.TransformResult {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil || len(msg.Header) == 0 {
		return interfaces.Unsupported(MsgUnableToParseEm)
	}

	var lines []string
	for _, key := range summaryHeaders {
		if v := msg.Header.Get(key); v != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", key, v))
		}
	}

	received := msg.Header["Received"]
	lines = append(lines, fmt.Sprintf("Hops: %d", len(received)))
	for i := len(received) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("  %d. %s", len(received)-i, collapse(received[i])))
	}

	return interfaces.Ok(strings.Join(lines, "\n"))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
