/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reputation.go
Description: Domain reputation lookups over HTTP. The endpoint is a URL template with
a {domain} placeholder (or a query parameter is appended). The verdict is read from
the JSON response at a configurable gjson path.
*/

package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/tidwall/gjson"
)

// ErrReputationUnconfigured is returned when no reputation endpoint is set
var ErrReputationUnconfigured = errors.New("reputation endpoint not configured (set lookup.reputation_url)")

const maxReputationBody = 1 << 20

// Reputation classifies domain using the configured endpoint. A missing
// verdict (or a 404) is ClassificationNone, not an error.
func (c *Client) Reputation(ctx context.Context, domain string) (interfaces.Classification, error) {
	if c.cfg.ReputationURL == "" {
		return interfaces.ClassificationNone, ErrReputationUnconfigured
	}
	host := NormalizeHost(domain)
	if host == "" {
		return interfaces.ClassificationNone, fmt.Errorf("reputation: %w", ErrEmptyTarget)
	}

	v, err := c.cached(ctx, "reputation:"+host, func(ctx context.Context) (string, error) {
		return c.fetchReputation(ctx, host)
	})
	if err != nil {
		return interfaces.ClassificationNone, err
	}
	return interfaces.ParseClassification(v), nil
}

func (c *Client) fetchReputation(ctx context.Context, host string) (string, error) {
	endpoint := reputationEndpoint(c.cfg.ReputationURL, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("endpoint", endpoint).Debug("LOOKUP reputation query")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call reputation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reputation API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReputationBody))
	if err != nil {
		return "", fmt.Errorf("failed to read reputation response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("reputation API returned invalid JSON")
	}

	verdict := gjson.GetBytes(body, c.cfg.ReputationPath)
	if !verdict.Exists() {
		return "", nil
	}
	return verdict.String(), nil
}

func reputationEndpoint(template, host string) string {
	if strings.Contains(template, "{domain}") {
		return strings.ReplaceAll(template, "{domain}", url.PathEscape(host))
	}
	sep := "?"
	if strings.Contains(template, "?") {
		sep = "&"
	}
	return template + sep + "domain=" + url.QueryEscape(host)
}
