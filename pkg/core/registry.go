/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Protocol tables for the dispatcher. Each category owns a table mapping
protocol names (and their aliases) to typed handlers plus the sentinel returned for
unregistered protocols.
*/

package core

import (
	"context"
	"slices"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// Handler runs one protocol of a category. The error return is reserved for
// environment failures.
type Handler func(ctx context.Context, payload string) (interfaces.TransformResult, error)

// ProtocolTable maps protocol names to handlers for one category
type ProtocolTable struct {
	unknown  string
	handlers map[string]Handler
	aliases  map[string]string
}

// NewProtocolTable creates an empty table returning unknown for unregistered protocols
func NewProtocolTable(unknown string) *ProtocolTable {
	return &ProtocolTable{
		unknown:  unknown,
		handlers: make(map[string]Handler),
		aliases:  make(map[string]string),
	}
}

// Register adds a handler under name and any aliases
func (t *ProtocolTable) Register(name string, h Handler, aliases ...string) *ProtocolTable {
	t.handlers[name] = h
	for _, a := range aliases {
		t.aliases[a] = name
	}
	return t
}

// Resolve returns the canonical protocol name for name or an alias
func (t *ProtocolTable) Resolve(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := t.handlers[name]; ok {
		return name, true
	}
	canonical, ok := t.aliases[name]
	return canonical, ok
}

// Run invokes the handler for protocol or returns the table's sentinel
func (t *ProtocolTable) Run(ctx context.Context, protocol, payload string) (interfaces.TransformResult, error) {
	name, ok := t.Resolve(protocol)
	if !ok {
		return interfaces.Unsupported(t.unknown), nil
	}
	return t.handlers[name](ctx, payload)
}

// Protocols lists canonical protocol names in sorted order
func (t *ProtocolTable) Protocols() []string {
	out := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Unknown returns the sentinel for unregistered protocols
func (t *ProtocolTable) Unknown() string {
	return t.unknown
}

// Capability describes one category for listings
type Capability struct {
	Category  interfaces.Category
	Aliases   []string
	Protocols []string
}
