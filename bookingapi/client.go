// Package bookingapi talks to the remote booking API. Responses are decoded
// into the generic JSON tree understood by package payload.
package bookingapi

import (
	"bytes"
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

	"venuedesk/payload"

	"go.uber.org/zap"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "venuedesk/1.0"
	dateLayout       = "2006-01-02"
)

// ErrNotFound is returned when the upstream API answers 404.
var ErrNotFound = errors.New("booking api: not found")

// APIError is a non-2xx upstream answer.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api: request failed: %d %s: %s", e.Status, http.StatusText(e.Status), e.Body)
}

// Keys under which list endpoints wrap their arrays.
var listKeys = []string{"data", "items", "results", "events", "rooms", "content"}

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string
	Cache     Cache
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   baseURL,
		APIKey:    apiKey,
		UserAgent: defaultUserAgent,
		Logger:    zap.NewNop(),
	}
}

// ListEvents returns the events overlapping [from, to]. Zero times leave the
// bound open.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]map[string]any, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("startDate", from.Format(dateLayout))
	}
	if !to.IsZero() {
		q.Set("endDate", to.Format(dateLayout))
	}
	var body any
	if err := c.get(ctx, "/events", q, &body); err != nil {
		return nil, err
	}
	return ExtractList(body), nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (map[string]any, error) {
	var body any
	if err := c.get(ctx, eventPath(id), nil, &body); err != nil {
		return nil, err
	}
	return unwrapObject(body), nil
}

// GetEventQuote returns the quote of an event. An event without a quote yields
// a nil map and no error.
func (c *Client) GetEventQuote(ctx context.Context, id string) (map[string]any, error) {
	var body any
	err := c.get(ctx, eventPath(id)+"/quote", nil, &body)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return unwrapObject(body), nil
}

// UpdateEvent sends an edit payload for the event and drops its cached reads.
func (c *Client) UpdateEvent(ctx context.Context, id string, update any) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("booking api: encode update: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, eventPath(id), nil, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if _, err := c.do(req); err != nil {
		return err
	}
	if c.Cache != nil {
		keys := []string{cacheKey(eventPath(id), nil), cacheKey(eventPath(id)+"/quote", nil)}
		if err := c.Cache.Delete(ctx, keys...); err != nil {
			c.Logger.Warn("booking api: cache invalidation failed", zap.String("event", id), zap.Error(err))
		}
	}
	return nil
}

func (c *Client) ListRooms(ctx context.Context) ([]map[string]any, error) {
	var body any
	if err := c.get(ctx, "/rooms", nil, &body); err != nil {
		return nil, err
	}
	return ExtractList(body), nil
}

// Ping checks that the upstream API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/events", url.Values{"limit": {"1"}}, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// ExtractList returns the objects of a list response, either a bare array or
// an object wrapping it under one of the usual keys.
func ExtractList(body any) []map[string]any {
	if items := payload.List(body); items != nil {
		return payload.Objects(items)
	}
	obj, ok := payload.Object(body)
	if !ok {
		return nil
	}
	for _, k := range listKeys {
		if items := payload.List(obj[k]); items != nil {
			return payload.Objects(items)
		}
		if inner, ok := payload.Object(obj[k]); ok {
			if nested := ExtractList(inner); nested != nil {
				return nested
			}
		}
	}
	return nil
}

var envelopeKeys = map[string]bool{"data": true, "success": true, "message": true, "status": true, "code": true, "meta": true}

// unwrapObject strips a {"data": {...}} envelope when every other top-level
// key is envelope metadata.
func unwrapObject(body any) map[string]any {
	obj, ok := payload.Object(body)
	if !ok {
		return nil
	}
	inner, ok := payload.Object(obj["data"])
	if !ok {
		return obj
	}
	for k := range obj {
		if !envelopeKeys[k] {
			return obj
		}
	}
	return inner
}

// eventPath builds the unescaped path of an event; url.URL escapes it when
// the request is rendered.
func eventPath(id string) string {
	return "/events/" + strings.ReplaceAll(id, "/", "")
}

func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return "GET " + path
	}
	return "GET " + path + "?" + query.Encode()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	key := cacheKey(path, query)
	if c.Cache != nil {
		if data, ok, err := c.Cache.Get(ctx, key); err != nil {
			c.Logger.Warn("booking api: cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			if err := json.Unmarshal(data, dest); err == nil {
				return nil
			}
		}
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("booking api: decode %s: %w", path, err)
	}
	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, data, c.CacheTTL); err != nil {
			c.Logger.Warn("booking api: cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("booking api: bad base url: %w", err)
	}
	base.Path = strings.TrimSuffix(base.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if query != nil {
		base.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("booking api: read body: %w", err)
	}
	c.Logger.Debug("booking api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

// EventID returns the identity of an event as used in API paths.
func EventID(event map[string]any) string {
	for _, k := range []string{"idEvent", "id", "eventId"} {
		switch v := event[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}
