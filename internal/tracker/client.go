package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"crescendo/internal/services"
)

// Artist is one credited artist on a release group.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MusicInfo carries the artist credits for a release group.
type MusicInfo struct {
	Artists []Artist `json:"artists"`
}

// Group describes the release group a torrent belongs to.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	MusicInfo MusicInfo `json:"musicInfo"`
}

// Torrent describes a single torrent inside a group.
type Torrent struct {
	ID                  int64  `json:"id"`
	Media               string `json:"media"`
	Format              string `json:"format"`
	Encoding            string `json:"encoding"`
	Scene               bool   `json:"scene"`
	LossyMasterApproved *bool  `json:"lossyMasterApproved"`
	LossyWebApproved    *bool  `json:"lossyWebApproved"`
	RemasterTitle       string `json:"remasterTitle"`
	RemasterYear        int    `json:"remasterYear"`
	FilePath            string `json:"filePath"`
	FileCount           int    `json:"fileCount"`
	Size                int64  `json:"size"`
}

// TorrentResponse is the payload of a torrent metadata fetch.
type TorrentResponse struct {
	Group   Group   `json:"group"`
	Torrent Torrent `json:"torrent"`
}

type envelope struct {
	Status   string          `json:"status"`
	Error    string          `json:"error"`
	Response json.RawMessage `json:"response"`
}

// API defines the tracker operations the verification engine consumes.
type API interface {
	Torrent(ctx context.Context, id int64) (*TorrentResponse, error)
	DownloadTorrent(ctx context.Context, id int64) ([]byte, error)
}

// Client talks to a Gazelle-style tracker API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a tracker client.
func New(baseURL, apiKey, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tracker base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tracker api key required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = "crescendo/dev"
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		// Gazelle permits ten requests per ten seconds.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Torrent fetches metadata for one torrent by tracker id.
func (c *Client) Torrent(ctx context.Context, id int64) (*TorrentResponse, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrValidation, "tracker", "torrent", "torrent id must be positive", nil)
	}
	body, err := c.get(ctx, "torrent", id)
	if err != nil {
		return nil, err
	}

	var outer envelope
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", "torrent", "decode response", err)
	}
	if outer.Status != "success" {
		return nil, services.Wrap(services.ErrNotFound, "tracker", "torrent", fmt.Sprintf("id %d: %s", id, outer.Error), nil)
	}
	var payload TorrentResponse
	if err := json.Unmarshal(outer.Response, &payload); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", "torrent", "decode payload", err)
	}
	return &payload, nil
}

// TorrentGroup fetches the release group a torrent belongs to, including
// the sibling torrents used to work out which formats already exist.
func (c *Client) TorrentGroup(ctx context.Context, groupID int64) (*GroupResponse, error) {
	if groupID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "tracker", "torrentgroup", "group id must be positive", nil)
	}
	body, err := c.get(ctx, "torrentgroup", groupID)
	if err != nil {
		return nil, err
	}

	var outer envelope
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", "torrentgroup", "decode response", err)
	}
	if outer.Status != "success" {
		return nil, services.Wrap(services.ErrNotFound, "tracker", "torrentgroup", fmt.Sprintf("id %d: %s", groupID, outer.Error), nil)
	}
	var payload GroupResponse
	if err := json.Unmarshal(outer.Response, &payload); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", "torrentgroup", "decode payload", err)
	}
	return &payload, nil
}

// DownloadTorrent retrieves the raw torrent descriptor for the hash check.
func (c *Client) DownloadTorrent(ctx context.Context, id int64) ([]byte, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrValidation, "tracker", "download", "torrent id must be positive", nil)
	}
	body, err := c.get(ctx, "download", id)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, services.Wrap(services.ErrNetwork, "tracker", "download", fmt.Sprintf("id %d: empty descriptor", id), nil)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, action string, id int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", action, "rate limiter", err)
	}

	endpoint, err := url.Parse(c.baseURL + "/ajax.php")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "tracker", action, "parse base url", err)
	}
	params := url.Values{}
	params.Set("action", action)
	params.Set("id", strconv.FormatInt(id, 10))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", action, "build request", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", action, "execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrNetwork, "tracker", action, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "tracker", action, "read body", err)
	}
	return body, nil
}
