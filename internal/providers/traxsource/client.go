package traxsource

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

// track models one track object in Traxsource API responses.
type track struct {
	TrackID int64  `json:"track_id"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	BPM      int    `json:"bpm"`
	KeySig   string `json:"key"`
	Duration string `json:"duration"`
	Genre    string `json:"genre"`
	Release  struct {
		Title string `json:"title"`
	} `json:"release"`
	Label struct {
		Name string `json:"name"`
	} `json:"label"`
	ReleaseDate string `json:"r_date"`
	Catalog     string `json:"catalog"`
	Artwork     string `json:"artwork"`
}

// searchResponse models the envelope around search results.
type searchResponse struct {
	Data []track `json:"data"`
}

// Client provides access to the Traxsource API.
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

// New creates a Traxsource client. The token is optional.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("traxsource base url required")
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
	return catalog.SourceTraxsource
}

// Search queries the track search endpoint. No results is an empty slice,
// not an error.
func (c *Client) Search(ctx context.Context, title, artist string) ([]catalog.RawCandidate, error) {
	term := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(artist))
	if term == "" {
		return nil, nil
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, providers.Classify(providers.ErrNetwork, "parse traxsource url", err)
	}
	params := url.Values{}
	params.Set("term", term)
	params.Set("type", "track")
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}

	candidates := make([]catalog.RawCandidate, 0, len(payload.Data))
	for _, t := range payload.Data {
		candidates = append(candidates, t.toCandidate())
	}
	return candidates, nil
}

// GetFullDetails fetches one track record by native id.
func (c *Client) GetFullDetails(ctx context.Context, nativeID string) (catalog.RawCandidate, error) {
	nativeID = strings.TrimSpace(nativeID)
	if nativeID == "" {
		return catalog.RawCandidate{}, providers.Classify(providers.ErrNotFound, "empty traxsource track id", nil)
	}
	var payload struct {
		Data []track `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/tracks/"+url.PathEscape(nativeID), &payload); err != nil {
		return catalog.RawCandidate{}, err
	}
	if len(payload.Data) == 0 {
		return catalog.RawCandidate{}, providers.Classify(providers.ErrNotFound, "traxsource track "+nativeID, nil)
	}
	return payload.Data[0].toCandidate(), nil
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
		return providers.Classify(providers.ErrNetwork, "execute traxsource request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providers.StatusError("traxsource", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return providers.Classify(providers.ErrParse, "decode traxsource response", err)
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
		Source:        catalog.SourceTraxsource,
		NativeID:      strconv.FormatInt(t.TrackID, 10),
		Title:         t.Title,
		MixName:       t.Version,
		Artist:        strings.Join(names, ", "),
		Album:         t.Release.Title,
		BPM:           t.BPM,
		Key:           t.KeySig,
		Duration:      parseDuration(t.Duration),
		ArtworkURL:    t.Artwork,
		Genre:         t.Genre,
		Label:         t.Label.Name,
		ReleaseDate:   t.ReleaseDate,
		CatalogNumber: t.Catalog,
	}
}

// parseDuration converts "m:ss" or "h:mm:ss" clock strings to seconds.
// Unparseable input yields zero, which scoring treats as unknown.
func parseDuration(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
