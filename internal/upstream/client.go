// Package upstream talks to the external auth API that owns user
// permissions and the navigation tree.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

var (
	ErrMissingToken = errors.New("missing auth token")
	ErrUnsuccessful = errors.New("upstream reported failure")
)

// Client fetches permission data on behalf of a signed-in user.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type permissionsEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Permissions []permission.Record `json:"permissions"`
	} `json:"data"`
}

// FetchPermissions returns the permission records of the token's owner.
func (c *Client) FetchPermissions(ctx context.Context, token string) ([]permission.Record, error) {
	var env permissionsEnvelope
	if err := c.get(ctx, "/permissions", token, &env); err != nil {
		return nil, fmt.Errorf("fetching permissions: %w", err)
	}

	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("fetching permissions: %w: %s", ErrUnsuccessful, env.Message)
		}

		return nil, fmt.Errorf("fetching permissions: %w", ErrUnsuccessful)
	}

	if env.Data.Permissions == nil {
		return []permission.Record{}, nil
	}

	return env.Data.Permissions, nil
}

// FetchNavigation returns the full, unfiltered sidebar tree.
func (c *Client) FetchNavigation(ctx context.Context, token string) ([]permission.NavItem, error) {
	var items []permission.NavItem
	if err := c.get(ctx, "/navigation", token, &items); err != nil {
		return nil, fmt.Errorf("fetching navigation: %w", err)
	}

	if items == nil {
		return []permission.NavItem{}, nil
	}

	return items, nil
}

func (c *Client) get(ctx context.Context, path, token string, dst any) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
