package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// DefaultEndpoint is the posts API of a locally running whispers site.
const DefaultEndpoint = "http://localhost:3000/api/posts"

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed: GET %s: %s", e.URL, e.Status)
}

// HTTPConfig controls an HTTPSource.
type HTTPConfig struct {
	Endpoint string
	Interval time.Duration
	Timeout  time.Duration
}

// HTTPSource polls a JSON posts endpoint.
type HTTPSource struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPSource returns a source for cfg. A nil client uses one with
// cfg.Timeout.
func NewHTTPSource(cfg HTTPConfig, client *http.Client) *HTTPSource {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPSource{cfg: cfg, client: client}
}

// Name returns the endpoint URL.
func (s *HTTPSource) Name() string { return s.cfg.Endpoint }

// Interval returns the configured poll interval.
func (s *HTTPSource) Interval() time.Duration { return s.cfg.Interval }

// Fetch GETs the endpoint and decodes the published whispers.
func (s *HTTPSource) Fetch(ctx context.Context) ([]whisper.Whisper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: GET %s: %w", s.cfg.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &StatusError{URL: s.cfg.Endpoint, Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("feed: read body: %w", err)
	}
	return decodePosts(body)
}

// post is the wire shape of one entry. Published is a pointer so that a
// missing field counts as published.
type post struct {
	whisper.Whisper
	Published *bool `json:"published,omitempty"`
}

// decodePosts accepts either a bare JSON array or an object with a "posts"
// array, drops unpublished entries and sorts newest first.
func decodePosts(body []byte) ([]whisper.Whisper, error) {
	body = bytes.TrimSpace(body)
	var posts []post
	switch {
	case len(body) == 0:
		return nil, fmt.Errorf("feed: empty response")
	case body[0] == '[':
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("feed: decode posts: %w", err)
		}
	default:
		var env struct {
			Posts []post `json:"posts"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("feed: decode posts: %w", err)
		}
		posts = env.Posts
	}

	out := make([]whisper.Whisper, 0, len(posts))
	for _, p := range posts {
		if p.Published != nil && !*p.Published {
			continue
		}
		out = append(out, p.Whisper)
	}
	sortNewestFirst(out)
	return out, nil
}
