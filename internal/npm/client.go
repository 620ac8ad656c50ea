package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stylegen-labs/stylegen/internal/branding"
)

// ErrResolution is returned when the latest version of a package cannot be
// determined.
var ErrResolution = errors.New("dependency resolution failed")

// Resolver looks up the latest published version of a package.
type Resolver interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Client resolves versions against an npm-compatible registry.
type Client struct {
	registry   string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRegistry sets the registry base URL.
func WithRegistry(registry string) Option {
	return func(cl *Client) {
		if registry != "" {
			cl.registry = strings.TrimRight(registry, "/")
		}
	}
}

// WithTimeout bounds every individual lookup.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient creates a registry client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		registry:   strings.TrimRight(branding.DefaultRegistry(), "/"),
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry base URL.
func (c *Client) Registry() string {
	return c.registry
}

type distTag struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Latest returns the version tagged "latest" for name.
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty package name", ErrResolution)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/%s/latest", c.registry, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: creating request: %v", ErrResolution, name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	// Support an auth token for private registries.
	if token := os.Getenv(branding.EnvVar("NPM_TOKEN")); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrResolution, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s: package not found in %s", ErrResolution, name, c.registry)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: %s: registry returned status %d", ErrResolution, name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %s: reading response body: %v", ErrResolution, name, err)
	}

	var tag distTag
	if err := json.Unmarshal(body, &tag); err != nil {
		return "", fmt.Errorf("%w: %s: parsing registry response: %v", ErrResolution, name, err)
	}

	v, err := ParseVersion(tag.Version)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrResolution, name, err)
	}

	c.logger.Debug().Str("package", name).Str("version", v.String()).Msg("resolved latest version")
	return v.String(), nil
}
