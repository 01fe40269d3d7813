/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: whois.go
Description: WHOIS lookups. Queries are issued for the registrable domain so that
subdomains and URLs resolve to the record that actually exists.
*/

package lookup

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// Whois returns the raw WHOIS text for domain (or IP address)
func (c *Client) Whois(ctx context.Context, domain string) (string, error) {
	target := NormalizeHost(domain)
	if net.ParseIP(target) == nil {
		target = RegistrableDomain(target)
	}
	if target == "" {
		return "", fmt.Errorf("whois: %w", ErrEmptyTarget)
	}

	return c.cached(ctx, "whois:"+target, func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		c.logger.WithField("target", target).Debug("LOOKUP whois query")
		text, err := c.whois.Whois(target)
		if err != nil {
			return "", fmt.Errorf("whois %s: %w", target, err)
		}
		return strings.TrimSpace(text), nil
	})
}
