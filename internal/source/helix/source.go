package helix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stream_finder/internal/domain"
)

const (
	SourceID   = "helix"
	SourceName = "Twitch Helix"

	maxErrorBody = 512
)

// escapeQuery percent-encodes controls, space, non-ASCII bytes and the
// characters `"#<>'` in a query value. Everything else, including & and =,
// is passed through as typed.
func escapeQuery(term string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(term))
	for i := 0; i < len(term); i++ {
		c := term[i]
		if c < 0x21 || c >= 0x7F || strings.IndexByte(`"#<>'`, c) >= 0 {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Config holds Helix source configuration.
type Config struct {
	BaseURL  string
	ClientID string
	Token    string
	PageSize int
	Timeout  time.Duration
}

// Source implements service.Source for the Twitch Helix API.
type Source struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	token      string
	pageSize   int
	now        func() time.Time
	logger     *slog.Logger
}

// New creates a new Helix source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		now:      time.Now,
		logger:   logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// FetchCategories looks up categories by name, or lists the top categories
// when term is empty. Only the first page is read.
func (s *Source) FetchCategories(ctx context.Context, term string) ([]domain.Category, error) {
	url := s.baseURL + "/games/top"
	if term != "" {
		url = s.baseURL + "/search/categories?query=" + escapeQuery(term)
	}

	env, err := s.Fetch(ctx, "", url)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	records, err := env.Records()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	categories := make([]domain.Category, 0, len(records))
	for i, rec := range records {
		c, err := toCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		categories = append(categories, c)
	}

	s.logger.Debug("fetched categories", "term", term, "count", len(categories))

	return categories, nil
}

// FetchStreams fetches one page of live streams in the given category.
func (s *Source) FetchStreams(ctx context.Context, cursor, categoryID string) (*domain.Page, error) {
	url := s.baseURL + "/streams?first=" + strconv.Itoa(s.pageSize) + "&game_id=" + categoryID

	env, err := s.Fetch(ctx, cursor, url)
	if err != nil {
		return nil, fmt.Errorf("fetch streams: %w", err)
	}

	records, err := env.Records()
	if err != nil {
		return nil, err
	}

	entries, err := s.transform(records)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		Entries: entries,
		Cursor:  env.Cursor(),
	}

	s.logger.Debug("fetched page",
		"cursor", cursor,
		"entries", len(entries),
		"has_next", page.HasNext(),
	)

	return page, nil
}

// Fetch issues an authenticated GET against baseURL, appending the cursor as
// the after parameter when one is given.
func (s *Source) Fetch(ctx context.Context, cursor, baseURL string) (*Envelope, error) {
	url := baseURL
	if cursor != "" {
		url = baseURL + "&after=" + cursor
	}
	return s.doRequest(ctx, url)
}

func (s *Source) doRequest(ctx context.Context, url string) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Client-Id", s.clientID)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &env, nil
}

func (s *Source) transform(records []map[string]json.RawMessage) ([]domain.StreamEntry, error) {
	entries := make([]domain.StreamEntry, 0, len(records))
	now := s.now()

	for i, rec := range records {
		entry, err := toEntry(rec, now)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}

		if entry.LiveDuration == "" {
			s.logger.Debug("failed to parse started_at",
				"broadcaster_id", entry.BroadcasterID,
			)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func toCategory(rec map[string]json.RawMessage) (domain.Category, error) {
	var c domain.Category
	var err error

	if c.Name, err = field[string](rec, "name"); err != nil {
		return c, err
	}
	if c.ID, err = field[string](rec, "id"); err != nil {
		return c, err
	}
	return c, nil
}

func toEntry(rec map[string]json.RawMessage, now time.Time) (domain.StreamEntry, error) {
	var e domain.StreamEntry
	var err error

	if e.Language, err = field[string](rec, "language"); err != nil {
		return e, err
	}
	if e.DisplayName, err = field[string](rec, "user_name"); err != nil {
		return e, err
	}
	if e.Title, err = field[string](rec, "title"); err != nil {
		return e, err
	}
	if e.CategoryID, err = field[string](rec, "game_id"); err != nil {
		return e, err
	}
	if e.ViewerCount, err = field[int64](rec, "viewer_count"); err != nil {
		return e, err
	}
	startedAt, err := field[string](rec, "started_at")
	if err != nil {
		return e, err
	}
	e.LiveDuration = LiveDuration(startedAt, now)
	if e.BroadcasterID, err = field[string](rec, "id"); err != nil {
		return e, err
	}
	e.Tags = rawText(rec, "tags")

	return e, nil
}
