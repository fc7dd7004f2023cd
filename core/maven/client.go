package maven

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Client queries the repository for latest versions and downloads archives.
// It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	versions   *cache.Cache
	sf         singleflight.Group
}

// searchResponse is the subset of the search API response we rely on.
type searchResponse struct {
	Response struct {
		NumFound int `json:"numFound"`
		Docs     []struct {
			Group    string `json:"g"`
			Artifact string `json:"a"`
			Version  string `json:"v"`
		} `json:"docs"`
	} `json:"response"`
}

// NewClient creates a repository client. Zero values in cfg fall back to DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.SearchURL == "" {
		cfg.SearchURL = def.SearchURL
	}
	if cfg.RepoURL == "" {
		cfg.RepoURL = def.RepoURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = def.DownloadTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	cfg.RepoURL = strings.TrimSuffix(cfg.RepoURL, "/")

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Transport: transport},
		limiter:    rate.NewLimiter(limit, 1),
	}
	if cfg.CacheTTL > 0 {
		c.versions = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c
}

// HTTPClient exposes the underlying HTTP client (used by tests to install mock transports).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// LatestVersion returns the newest version the repository reports for coord.
// All failures wrap one of ErrNotFound, ErrNetwork or ErrParse.
func (c *Client) LatestVersion(ctx context.Context, coord Coordinate) (string, error) {
	key := coord.String()
	if c.versions != nil {
		if v, ok := c.versions.Get(key); ok {
			return v.(string), nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		v, err := c.search(ctx, coord)
		if err != nil {
			return "", err
		}
		if c.versions != nil {
			c.versions.SetDefault(key, v)
		}
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// InvalidateCache drops every cached lookup.
func (c *Client) InvalidateCache() {
	if c.versions != nil {
		c.versions.Flush()
	}
}

// SearchURL returns the query URL used for coord.
func (c *Client) SearchURL(coord Coordinate) string {
	q := url.Values{}
	q.Set("q", fmt.Sprintf(`g:"%s" AND a:"%s"`, coord.Group, coord.Artifact))
	q.Set("core", "gav")
	q.Set("rows", "1")
	q.Set("wt", "json")
	return c.cfg.SearchURL + "?" + q.Encode()
}

func (c *Client) search(ctx context.Context, coord Coordinate) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("lookup %s: %w: %w", coord, ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(coord), nil)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w: %w", coord, ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w: %w", coord, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup %s: %w: HTTP %d", coord, ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w: %w", coord, ErrNetwork, err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("lookup %s: %w: %w", coord, ErrParse, err)
	}
	if len(parsed.Response.Docs) == 0 {
		return "", fmt.Errorf("lookup %s: %w", coord, ErrNotFound)
	}

	v := strings.TrimSpace(parsed.Response.Docs[0].Version)
	if v == "" {
		return "", fmt.Errorf("lookup %s: %w: empty version field", coord, ErrParse)
	}
	return v, nil
}
