/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: client.go
Description: Network lookup collaborator for Mercy. Client implements WHOIS, domain
reputation, and DNS resolution behind one rate limiter and one LRU result cache.
Each lookup blocks until the remote service answers or the configured timeout hits.
*/

package lookup

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kleascm/mercy/pkg/config"
	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/likexian/whois"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// ErrEmptyTarget is returned when a lookup input normalizes to nothing
var ErrEmptyTarget = fmt.Errorf("%w: empty lookup target", interfaces.ErrResourceNotFound)

// WhoisQuerier is the WHOIS capability the client depends on
type WhoisQuerier interface {
	Whois(domain string, servers ...string) (string, error)
}

// Client performs rate-limited, cached network lookups
type Client struct {
	cfg     config.LookupConfig
	whois   WhoisQuerier
	http    *http.Client
	dns     *dns.Client
	limiter *rate.Limiter
	cache   *lru.Cache[string, string]
	logger  logrus.FieldLogger
}

// Option customizes a Client
type Option func(*Client)

// WithWhois replaces the WHOIS querier
func WithWhois(q WhoisQuerier) Option {
	return func(c *Client) { c.whois = q }
}

// WithHTTPClient replaces the HTTP client used for reputation lookups
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a lookup client from configuration
func NewClient(cfg config.LookupConfig, opts ...Option) (*Client, error) {
	cache, err := lru.New[string, string](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}

	c := &Client{
		cfg:     cfg,
		whois:   whois.NewClient().SetTimeout(cfg.Timeout),
		http:    &http.Client{Timeout: cfg.Timeout},
		dns:     &dns.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		cache:   cache,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// cached returns the cached value for key or runs fetch under the rate limiter
func (c *Client) cached(ctx context.Context, key string, fetch func(context.Context) (string, error)) (string, error) {
	if v, ok := c.cache.Get(key); ok {
		c.logger.WithField("key", key).Debug("LOOKUP cache hit")
		return v, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	v, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, v)
	return v, nil
}

// NormalizeHost reduces a URL or host[:port] to a lowercase host name
func NormalizeHost(input string) string {
	s := strings.TrimSpace(input)
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
			s = u.Hostname()
		}
	} else {
		if i := strings.IndexAny(s, "/?#"); i >= 0 {
			s = s[:i]
		}
		if h, _, err := net.SplitHostPort(s); err == nil {
			s = h
		}
	}
	return strings.TrimSuffix(strings.ToLower(s), ".")
}

// RegistrableDomain returns the eTLD+1 of host, or host itself when it has none
func RegistrableDomain(host string) string {
	host = NormalizeHost(host)
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return apex
}

var _ interfaces.NetworkLookup = (*Client)(nil)
