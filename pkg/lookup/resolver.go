/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: resolver.go
Description: DNS resolution against a configured recursive server. Returns A and
AAAA addresses; NXDOMAIN is an empty answer rather than an error.
*/

package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// Resolve returns the A and AAAA addresses of host
func (c *Client) Resolve(ctx context.Context, host string) ([]string, error) {
	host = NormalizeHost(host)
	if host == "" {
		return nil, fmt.Errorf("resolve: %w", ErrEmptyTarget)
	}

	v, err := c.cached(ctx, "resolve:"+host, func(ctx context.Context) (string, error) {
		var addrs []string
		for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
			found, err := c.query(ctx, host, qtype)
			if err != nil {
				return "", err
			}
			addrs = append(addrs, found...)
		}
		return strings.Join(addrs, "\n"), nil
	})
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	return strings.Split(v, "\n"), nil
}

func (c *Client) query(ctx context.Context, host string, qtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), qtype)

	resp, _, err := c.dns.ExchangeContext(ctx, msg, c.cfg.DNSServer)
	if err != nil {
		return nil, fmt.Errorf("dns %s %s: %w", dns.TypeToString[qtype], host, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, nil
	default:
		return nil, fmt.Errorf("dns %s %s: rcode %s", dns.TypeToString[qtype], host, dns.RcodeToString[resp.Rcode])
	}

	var out []string
	for _, rr := range resp.Answer {
		switch rec := rr.(type) {
		case *dns.A:
			out = append(out, rec.A.String())
		case *dns.AAAA:
			out = append(out, rec.AAAA.String())
		}
	}
	return out, nil
}
