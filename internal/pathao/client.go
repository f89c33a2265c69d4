package pathao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Credentials for the Pathao merchant API password grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Client talks to the Pathao courier API. It owns a single cached access
// token; concurrent refreshes collapse into one upstream call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	refresh singleflight.Group
	now     func() time.Time
}

func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		now:        time.Now,
	}
}

// UpstreamError carries a courier API error response. Status and body are
// relayed to the caller unchanged.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pathao upstream error: status %d", e.StatusCode)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) cachedToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, true
	}
	return "", false
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if token, ok := c.cachedToken(); ok {
		return token, nil
	}

	value, err, _ := c.refresh.Do("token", func() (interface{}, error) {
		// a concurrent caller may have refreshed while we waited
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     c.creds.ClientID,
		"client_secret": c.creds.ClientSecret,
		"grant_type":    "password",
		"username":      c.creds.Username,
		"password":      c.creds.Password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aladdin/api/v1/issue-token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("pathao issue-token returned no access_token")
	}

	c.mu.Lock()
	c.token = tr.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	c.mu.Unlock()

	return tr.AccessToken, nil
}

// Get proxies a GET request to the courier API. The upstream status, body and
// content type are returned verbatim, including error responses; a failed
// token fetch surfaces as the upstream's own status and body. No retries.
func (c *Client) Get(ctx context.Context, path string) (int, []byte, string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			return upstream.StatusCode, upstream.Body, "application/json", nil
		}
		return 0, nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", err
	}

	return resp.StatusCode, body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) CityList(ctx context.Context) (int, []byte, string, error) {
	return c.Get(ctx, "/aladdin/api/v1/city-list")
}

func (c *Client) ZoneList(ctx context.Context, cityID string) (int, []byte, string, error) {
	return c.Get(ctx, "/aladdin/api/v1/cities/"+cityID+"/zone-list")
}

func (c *Client) AreaList(ctx context.Context, zoneID string) (int, []byte, string, error) {
	return c.Get(ctx, "/aladdin/api/v1/zones/"+zoneID+"/area-list")
}
