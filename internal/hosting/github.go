package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/repograb/repograb/internal/locator"
)

// Client fetches repository metadata from the GitHub REST API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	userAgent  string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a metadata client. token may be empty for anonymous
// access; apiURL is the API base (e.g. https://api.github.com).
func NewClient(apiURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		apiURL:    apiURL,
		token:     token,
		userAgent: "repograb/0.1",
		timeout:   timeout,
		logger:    logger,
	}
}

// repoPayload mirrors the fields of the repository-info endpoint we consume.
type repoPayload struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description      *string   `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	PushedAt         time.Time `json:"pushed_at"`
	Size             int64     `json:"size"` // KB
	StargazersCount  int       `json:"stargazers_count"`
	ForksCount       int       `json:"forks_count"`
	SubscribersCount int       `json:"subscribers_count"`
	Language         *string   `json:"language"`
	License          *struct {
		SpdxID string `json:"spdx_id"`
		Name   string `json:"name"`
	} `json:"license"`
	Private bool `json:"private"`
	Fork    bool `json:"fork"`
	Parent  *struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"parent"`
}

// FetchMetadata performs a single synchronous call to the repository-info
// endpoint. It distinguishes not-found from transport failures so callers
// can report a specific message. No retry, no caching.
func (c *Client) FetchMetadata(ctx context.Context, ref locator.Ref) (*Metadata, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, ref.Owner, ref.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Ref: ref}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			Err: fmt.Errorf("unexpected status %s: %s", resp.Status, string(body)),
		}
	}

	var payload repoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	c.logger.Debug("fetched repository metadata", "repo", ref.String(), "duration", time.Since(start))

	md := &Metadata{
		Owner:       payload.Owner.Login,
		Name:        payload.Name,
		CreatedAt:   payload.CreatedAt,
		UpdatedAt:   payload.UpdatedAt,
		PushedAt:    payload.PushedAt,
		DiskUsageKB: payload.Size,
		Stars:       payload.StargazersCount,
		Forks:       payload.ForksCount,
		Watchers:    payload.SubscribersCount,
		Private:     payload.Private,
		IsFork:      payload.Fork,
	}
	if payload.Description != nil {
		md.Description = *payload.Description
	}
	if payload.Language != nil {
		md.PrimaryLanguage = *payload.Language
	}
	if payload.License != nil {
		md.License = payload.License.SpdxID
		if md.License == "" || md.License == "NOASSERTION" {
			md.License = payload.License.Name
		}
	}
	if payload.Parent != nil {
		md.Parent = &locator.Ref{
			Owner: payload.Parent.Owner.Login,
			Name:  payload.Parent.Name,
		}
	}

	return md, nil
}
