package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client fetches native responses from the upstream providers. It is a pure
// boundary adapter: no normalization, no retries.
type Client struct {
	httpClient    *http.Client
	userAgent     string
	nasaAPIKey    string
	neoWsURL      string
	launchLibURL  string
	openNotifyURL string
	almanac       *Almanac
}

type ClientOptions struct {
	UserAgent     string
	NasaAPIKey    string
	NeoWsURL      string
	LaunchLibURL  string
	OpenNotifyURL string
}

func NewClient(httpClient *http.Client, almanac *Almanac, opts ClientOptions) *Client {
	return &Client{
		httpClient:    httpClient,
		userAgent:     opts.UserAgent,
		nasaAPIKey:    opts.NasaAPIKey,
		neoWsURL:      opts.NeoWsURL,
		launchLibURL:  opts.LaunchLibURL,
		openNotifyURL: opts.OpenNotifyURL,
		almanac:       almanac,
	}
}

// FetchNearEarthObjects queries the NeoWs feed for close approaches between
// start and end (inclusive, bare dates).
func (c *Client) FetchNearEarthObjects(ctx context.Context, start, end time.Time) (*NeoFeedResponse, error) {
	params := url.Values{}
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))
	params.Set("api_key", c.nasaAPIKey)

	requestURL := fmt.Sprintf("%s/neo/rest/v1/feed?%s", c.neoWsURL, params.Encode())

	var feed NeoFeedResponse
	if err := c.getJSON(ctx, requestURL, &feed); err != nil {
		return nil, fmt.Errorf("neo feed: %w", err)
	}

	return &feed, nil
}

// FetchUpcomingLaunches queries the Launch Library upcoming-launch schedule.
func (c *Client) FetchUpcomingLaunches(ctx context.Context, limit int) (*LaunchListResponse, error) {
	requestURL := fmt.Sprintf("%s/launch/upcoming/?limit=%d", c.launchLibURL, limit)

	var list LaunchListResponse
	if err := c.getJSON(ctx, requestURL, &list); err != nil {
		return nil, fmt.Errorf("launch schedule: %w", err)
	}

	return &list, nil
}

// MeteorShowers returns almanac rows whose peak falls within the next 12
// months from now. Not a network call.
func (c *Client) MeteorShowers(now time.Time) []MeteorShower {
	return c.almanac.MeteorShowers(now)
}

// PlanetaryConjunctions returns almanac rows whose date falls within the
// next six months from now. Not a network call.
func (c *Client) PlanetaryConjunctions(now time.Time) []Conjunction {
	return c.almanac.PlanetaryConjunctions(now)
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
