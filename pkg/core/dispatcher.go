/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dispatcher.go
Description: Command dispatcher for Mercy. Resolves a method name into a closed Category,
routes the protocol to the owning registry or protocol table, and always produces a
display string. Only environment failures from collaborators escape as errors.
*/

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kleascm/mercy/pkg/analysis"
	"github.com/kleascm/mercy/pkg/codec"
	"github.com/kleascm/mercy/pkg/digest"
	"github.com/kleascm/mercy/pkg/hexdump"
	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/kleascm/mercy/pkg/strategies"
	"github.com/kleascm/mercy/pkg/sysinfo"
	"github.com/sirupsen/logrus"
)

// Sentinel texts returned for handled failures
const (
	MsgUnableToParse    = "Unable to parse provided arguments"
	MsgUnableToMutate   = "Unable to mutate the input provided"
	MsgUnableToInform   = "Unable to provide the information you requested"
	MsgUnableToLookup   = "Unable to complete the lookup requested"
	MsgNoClassification = "No classification available"
	MsgNoRecords        = "No records found"
)

// Dispatcher routes requests to transforms and collaborators.
// It is read-only after construction and safe for concurrent use.
type Dispatcher struct {
	codecs    *codec.Registry
	digests   *digest.Registry
	inspector *hexdump.Inspector
	analyzers *analysis.Registry
	mutator   interfaces.DomainMutator

	system  interfaces.SystemInfoProvider
	address interfaces.AddressResolver
	network interfaces.NetworkLookup

	mutate *ProtocolTable
	info   *ProtocolTable
	lookup *ProtocolTable

	logger    logrus.FieldLogger
	reporters []Reporter
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch events
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithInspector replaces the byte inspector
func WithInspector(i *hexdump.Inspector) Option {
	return func(d *Dispatcher) { d.inspector = i }
}

// WithMutator replaces the domain mutator
func WithMutator(m interfaces.DomainMutator) Option {
	return func(d *Dispatcher) { d.mutator = m }
}

// WithSystemInfo sets the system metadata provider
func WithSystemInfo(p interfaces.SystemInfoProvider) Option {
	return func(d *Dispatcher) { d.system = p }
}

// WithAddressResolver sets the internal IP resolver
func WithAddressResolver(r interfaces.AddressResolver) Option {
	return func(d *Dispatcher) { d.address = r }
}

// WithNetworkLookup sets the WHOIS/reputation/DNS collaborator
func WithNetworkLookup(n interfaces.NetworkLookup) Option {
	return func(d *Dispatcher) { d.network = n }
}

// WithReporter registers an additional dispatch reporter
func WithReporter(r Reporter) Option {
	return func(d *Dispatcher) { d.reporters = append(d.reporters, r) }
}

// NewDispatcher creates a dispatcher with the built-in registries. System info
// and the address probe default to host-backed implementations; network lookups
// are disabled until WithNetworkLookup is given.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		codecs:    codec.NewRegistry(),
		digests:   digest.NewRegistry(),
		inspector: hexdump.NewInspector(),
		analyzers: analysis.NewRegistry(),
		mutator:   strategies.NewBitFlipMutator(),
		system:    sysinfo.NewProvider(),
		address:   sysinfo.NewUDPProbe(sysinfo.DefaultProbeAddress),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reporters = append([]Reporter{NewLoggerReporter(d.logger)}, d.reporters...)

	d.mutate = NewProtocolTable(MsgUnableToMutate).
		Register("domain", d.mutateDomain, "bitsquat")
	d.info = NewProtocolTable(MsgUnableToInform).
		Register("system_info", d.systemInfo).
		Register("internal_ip", d.internalIP)
	d.lookup = NewProtocolTable(MsgUnableToLookup).
		Register("whois", d.whois).
		Register("status", d.status).
		Register("resolve", d.resolve)

	return d
}

// Dispatch parses method into a category and executes the request, returning
// the display string. An unknown method yields MsgUnableToParse.
func (d *Dispatcher) Dispatch(ctx context.Context, method, protocol, payload string) (string, error) {
	category, ok := interfaces.ParseCategory(method)
	if !ok {
		d.logger.WithField("method", method).Debug("DISPATCH unknown method")
		return MsgUnableToParse, nil
	}

	res, err := d.Execute(ctx, interfaces.TransformRequest{
		Category: category,
		Protocol: protocol,
		Payload:  payload,
	})
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Execute runs a typed request. Recoverable failures are folded into the
// category sentinel; environment failures are returned wrapped in ErrEnvironment.
func (d *Dispatcher) Execute(ctx context.Context, req interfaces.TransformRequest) (interfaces.TransformResult, error) {
	start := time.Now()
	res, err := d.execute(ctx, req)

	if err != nil {
		if interfaces.IsRecoverable(err) {
			res, err = interfaces.Unsupported(d.sentinel(req.Category)), nil
		} else if !errors.Is(err, interfaces.ErrEnvironment) {
			err = fmt.Errorf("%w: %s/%s: %v", interfaces.ErrEnvironment, req.Category, req.Protocol, err)
		}
	}

	event := DispatchEvent{Request: req, Result: res, Err: err, Duration: time.Since(start)}
	for _, r := range d.reporters {
		r.OnDispatched(event)
	}

	if err != nil {
		return interfaces.TransformResult{}, err
	}
	return res, nil
}

func (d *Dispatcher) execute(ctx context.Context, req interfaces.TransformRequest) (interfaces.TransformResult, error) {
	switch req.Category {
	case interfaces.CategoryDecode:
		return d.codecs.Decode(req.Protocol, req.Payload), nil
	case interfaces.CategoryEncode:
		return d.codecs.Encode(req.Protocol, req.Payload), nil
	case interfaces.CategoryHash:
		return d.digests.Hash(req.Protocol, req.Payload), nil
	case interfaces.CategoryHexDump:
		return d.inspector.Inspect(req.Protocol, req.Payload)
	case interfaces.CategoryMutate:
		return d.mutate.Run(ctx, req.Protocol, req.Payload)
	case interfaces.CategoryInfo:
		return d.info.Run(ctx, req.Protocol, req.Payload)
	case interfaces.CategoryLookup:
		return d.lookup.Run(ctx, req.Protocol, req.Payload)
	case interfaces.CategoryAnalyze:
		return d.analyzers.Analyze(ctx, req.Protocol, req.Payload)
	case interfaces.CategoryUnknown:
		return interfaces.Unsupported(MsgUnableToParse), nil
	default:
		return interfaces.Unsupported(MsgUnableToParse), nil
	}
}

// sentinel is the handled-failure text for a category
func (d *Dispatcher) sentinel(c interfaces.Category) string {
	switch c {
	case interfaces.CategoryDecode:
		return codec.MsgUnableToDecode
	case interfaces.CategoryEncode:
		return codec.MsgUnableToEncode
	case interfaces.CategoryHash:
		return digest.MsgUnableToHash
	case interfaces.CategoryHexDump:
		return hexdump.MsgUnableToDump
	case interfaces.CategoryMutate:
		return MsgUnableToMutate
	case interfaces.CategoryInfo:
		return MsgUnableToInform
	case interfaces.CategoryLookup:
		return MsgUnableToLookup
	case interfaces.CategoryAnalyze:
		return analysis.MsgUnableToAnalyze
	default:
		return MsgUnableToParse
	}
}

// Capabilities lists every category with its aliases and protocols
func (d *Dispatcher) Capabilities() []Capability {
	var out []Capability
	for _, c := range interfaces.Categories() {
		var protocols []string
		switch c {
		case interfaces.CategoryDecode:
			protocols = d.codecs.DecodeProtocols()
		case interfaces.CategoryEncode:
			protocols = d.codecs.EncodeProtocols()
		case interfaces.CategoryHash:
			protocols = d.digests.Protocols()
		case interfaces.CategoryHexDump:
			protocols = []string{hexdump.DefaultProtocol}
		case interfaces.CategoryMutate:
			protocols = d.mutate.Protocols()
		case interfaces.CategoryInfo:
			protocols = d.info.Protocols()
		case interfaces.CategoryLookup:
			protocols = d.lookup.Protocols()
		case interfaces.CategoryAnalyze:
			protocols = d.analyzers.Protocols()
		}
		out = append(out, Capability{Category: c, Aliases: c.Aliases(), Protocols: protocols})
	}
	return out
}

// Mutator exposes the domain mutator for streaming callers
func (d *Dispatcher) Mutator() interfaces.DomainMutator {
	return d.mutator
}

func (d *Dispatcher) mutateDomain(_ context.Context, seed string) (interfaces.TransformResult, error) {
	var lines []string
	for c := range d.mutator.Candidates(seed) {
		lines = append(lines, c.Text)
	}
	d.logger.WithFields(logrus.Fields{"seed": seed, "candidates": len(lines)}).Debug("MUTATE complete")
	return interfaces.Ok(strings.Join(lines, "\n")), nil
}

func (d *Dispatcher) systemInfo(ctx context.Context, field string) (interfaces.TransformResult, error) {
	if d.system == nil {
		return interfaces.TransformResult{}, fmt.Errorf("%w: no system information provider", interfaces.ErrEnvironment)
	}
	return sysinfo.NewReporter(d.system).Report(ctx, field)
}

func (d *Dispatcher) internalIP(ctx context.Context, _ string) (interfaces.TransformResult, error) {
	if d.address == nil {
		return interfaces.TransformResult{}, fmt.Errorf("%w: no address resolver", interfaces.ErrEnvironment)
	}
	ip, err := d.address.InternalIP(ctx)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	return interfaces.Ok(ip), nil
}

// networkLookup returns the lookup collaborator for target. A blank target is
// an input mistake and is reported as recoverable.
func (d *Dispatcher) networkLookup(target string) (interfaces.NetworkLookup, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: empty lookup target", interfaces.ErrResourceNotFound)
	}
	if d.network == nil {
		return nil, fmt.Errorf("%w: network lookups are not configured", interfaces.ErrEnvironment)
	}
	return d.network, nil
}

func (d *Dispatcher) whois(ctx context.Context, domain string) (interfaces.TransformResult, error) {
	n, err := d.networkLookup(domain)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	d.logger.WithField("domain", domain).Debug("LOOKUP whois")
	text, err := n.Whois(ctx, domain)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	if text == "" {
		return interfaces.Unsupported(MsgUnableToLookup), nil
	}
	return interfaces.Ok(text), nil
}

func (d *Dispatcher) status(ctx context.Context, domain string) (interfaces.TransformResult, error) {
	n, err := d.networkLookup(domain)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	d.logger.WithField("domain", domain).Debug("LOOKUP status")
	verdict, err := n.Reputation(ctx, domain)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	return interfaces.Ok(DescribeClassification(verdict)), nil
}

func (d *Dispatcher) resolve(ctx context.Context, host string) (interfaces.TransformResult, error) {
	n, err := d.networkLookup(host)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	d.logger.WithField("host", host).Debug("LOOKUP resolve")
	addrs, err := n.Resolve(ctx, host)
	if err != nil {
		return interfaces.TransformResult{}, err
	}
	if len(addrs) == 0 {
		return interfaces.Ok(MsgNoRecords), nil
	}
	return interfaces.Ok(strings.Join(addrs, "\n")), nil
}

// DescribeClassification renders a reputation verdict as a display line
func DescribeClassification(c interfaces.Classification) string {
	switch c {
	case interfaces.ClassificationMalicious:
		return "Classification: MALICIOUS (known malicious domain)"
	case interfaces.ClassificationSuspicious:
		return "Classification: SUSPICIOUS (domain shows suspicious activity)"
	case interfaces.ClassificationUnknown:
		return "Classification: UNKNOWN (domain has not been assessed)"
	default:
		return MsgNoClassification
	}
}
