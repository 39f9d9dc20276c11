package bookingapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestListEventsUnwrapsAndSendsRange(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"data":{"items":[{"idEvent":1,"title":"A"},"junk",{"idEvent":2}]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", "secret", time.Second)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	events, err := c.ListEvents(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 || events[0]["title"] != "A" {
		t.Fatalf("events = %v", events)
	}
	if gotQuery != "endDate=2026-03-31&startDate=2026-03-01" {
		t.Errorf("query = %s", gotQuery)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q", gotAuth)
	}
}

func TestGetEventQuoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	q, err := c.GetEventQuote(context.Background(), "7")
	if err != nil || q != nil {
		t.Errorf("GetEventQuote = %v, %v; want nil, nil", q, err)
	}
	if _, err := c.GetEvent(context.Background(), "7"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEvent err = %v, want ErrNotFound", err)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, " upstream down ")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).ListRooms(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Body != "upstream down" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestGetUsesCacheAndUpdateInvalidates(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.Method+" "+r.URL.Path]++
		mu.Unlock()
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"title":"New"}` {
				t.Errorf("update body = %s", body)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		io.WriteString(w, `{"data":{"idEvent":5,"title":"Old"},"success":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	c.Cache = newMemCache()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ev, err := c.GetEvent(ctx, "5")
		if err != nil {
			t.Fatalf("GetEvent: %v", err)
		}
		if ev["title"] != "Old" {
			t.Fatalf("event not unwrapped: %v", ev)
		}
	}
	if hits["GET /events/5"] != 1 {
		t.Errorf("upstream GETs = %d, want 1", hits["GET /events/5"])
	}

	if err := c.UpdateEvent(ctx, "5", map[string]string{"title": "New"}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if _, err := c.GetEvent(ctx, "5"); err != nil {
		t.Fatal(err)
	}
	if hits["GET /events/5"] != 2 {
		t.Errorf("upstream GETs after update = %d, want 2", hits["GET /events/5"])
	}
}

func TestExtractList(t *testing.T) {
	tests := []struct {
		name string
		body any
		want int
	}{
		{"bare array", []any{map[string]any{}, map[string]any{}}, 2},
		{"events key", map[string]any{"events": []any{map[string]any{}}}, 1},
		{"nested content", map[string]any{"data": map[string]any{"content": []any{map[string]any{}}}}, 1},
		{"not a list", map[string]any{"title": "x"}, 0},
		{"scalar", "x", 0},
	}
	for _, tt := range tests {
		if got := len(ExtractList(tt.body)); got != tt.want {
			t.Errorf("%s: len = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestUnwrapObjectKeepsRealEvents(t *testing.T) {
	ev := map[string]any{"idEvent": 1.0, "data": map[string]any{"x": 1.0}}
	if got := unwrapObject(ev); got["idEvent"] != 1.0 {
		t.Errorf("event with a data field was unwrapped: %v", got)
	}
}

func TestEventID(t *testing.T) {
	tests := []struct {
		in   map[string]any
		want string
	}{
		{map[string]any{"idEvent": 42.0}, "42"},
		{map[string]any{"id": " ev-9 "}, "ev-9"},
		{map[string]any{"eventId": "x", "idEvent": ""}, "x"},
		{map[string]any{}, ""},
	}
	for _, tt := range tests {
		if got := EventID(tt.in); got != tt.want {
			t.Errorf("EventID(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
