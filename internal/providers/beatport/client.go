package beatport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cadence/internal/catalog"
	"cadence/internal/providers"
)

// track models one track object in Beatport API responses.
type track struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	MixName string `json:"mix_name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	BPM int `json:"bpm"`
	Key struct {
		Name string `json:"name"`
	} `json:"key"`
	LengthMS int64 `json:"length_ms"`
	Genre    struct {
		Name string `json:"name"`
	} `json:"genre"`
	Release struct {
		Name  string `json:"name"`
		Image struct {
			URI string `json:"uri"`
		} `json:"image"`
		Label struct {
			Name string `json:"name"`
		} `json:"label"`
	} `json:"release"`
	PublishDate   string `json:"publish_date"`
	CatalogNumber string `json:"catalog_number"`
	ISRC          string `json:"isrc"`
}

// searchResponse models the paginated track search payload.
type searchResponse struct {
	Tracks []track `json:"tracks"`
	Count  int     `json:"count"`
}

// Client provides access to the Beatport API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var (
	_ providers.Searcher = (*Client)(nil)
	_ providers.Detailer = (*Client)(nil)
)

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

// New creates a Beatport client. The token is optional; when present it is
// sent as a bearer credential.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("beatport base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: providers.DefaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Source identifies this client's catalog.
func (c *Client) Source() catalog.Source {
	return catalog.SourceBeatport
}

// Search queries the track search endpoint. No results is an empty slice,
// not an error.
func (c *Client) Search(ctx context.Context, title, artist string) ([]catalog.RawCandidate, error) {
	query := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(artist))
	if query == "" {
		return nil, nil
	}
	endpoint, err := url.Parse(c.baseURL + "/catalog/search")
	if err != nil {
		return nil, providers.Classify(providers.ErrNetwork, "parse beatport url", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "tracks")
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}

	candidates := make([]catalog.RawCandidate, 0, len(payload.Tracks))
	for _, t := range payload.Tracks {
		candidates = append(candidates, t.toCandidate())
	}
	return candidates, nil
}

// GetFullDetails fetches one track record by native id.
func (c *Client) GetFullDetails(ctx context.Context, nativeID string) (catalog.RawCandidate, error) {
	nativeID = strings.TrimSpace(nativeID)
	if nativeID == "" {
		return catalog.RawCandidate{}, providers.Classify(providers.ErrNotFound, "empty beatport track id", nil)
	}
	var payload track
	if err := c.getJSON(ctx, c.baseURL+"/catalog/tracks/"+url.PathEscape(nativeID), &payload); err != nil {
		return catalog.RawCandidate{}, err
	}
	return payload.toCandidate(), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return providers.Classify(providers.ErrNetwork, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Classify(providers.ErrNetwork, "execute beatport request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providers.StatusError("beatport", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return providers.Classify(providers.ErrParse, "decode beatport response", err)
	}
	return nil
}

func (t track) toCandidate() catalog.RawCandidate {
	names := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		if name := strings.TrimSpace(artist.Name); name != "" {
			names = append(names, name)
		}
	}
	return catalog.RawCandidate{
		Source:        catalog.SourceBeatport,
		NativeID:      strconv.FormatInt(t.ID, 10),
		Title:         t.Name,
		MixName:       t.MixName,
		Artist:        strings.Join(names, ", "),
		Album:         t.Release.Name,
		BPM:           t.BPM,
		Key:           t.Key.Name,
		Duration:      int(t.LengthMS / 1000),
		ArtworkURL:    t.Release.Image.URI,
		Genre:         t.Genre.Name,
		Label:         t.Release.Label.Name,
		ReleaseDate:   t.PublishDate,
		CatalogNumber: t.CatalogNumber,
		ISRC:          t.ISRC,
	}
}
