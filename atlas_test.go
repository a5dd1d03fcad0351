package atlas

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// === HELPERs ===

// newServer starts a fake Atlas API and points the package at it.
func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	prevUrl, prevKey := GetAPIBaseUrl(), GetKey()
	t.Cleanup(func() {
		SetAPIBaseUrl(prevUrl)
		SetKey(prevKey)
	})
	SetAPIBaseUrl(ts.URL)
	SetKey("test-key")
	return ts
}

// lastPath records the path of the last request the server saw.
type lastPath struct{ atomic.Value }

func (p *lastPath) get() string {
	s, _ := p.Load().(string)
	return s
}

func respond(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		io.WriteString(w, body)
	}
}

func mustBuild(t *testing.T, b *RequestBuilder) *Request {
	t.Helper()
	req, err := b.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return req
}

// === TESTs ===

func TestRunOutput(t *testing.T) {
	var path lastPath
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"status":"OK","output":{"x":1}}`)
	})

	req := mustBuild(t, NewRequestBuilder("coffee"))
	out, err := req.Volume()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if path.get() != "/volume" {
		t.Errorf("Expected path /volume, got %s", path.get())
	}
	if out.Get("x").Int() != 1 {
		t.Errorf("Expected output.x to be 1, got %v", out.Get("x"))
	}

	node, err := req.Run(ENDPOINT_VOLUME, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if node.Get("status").Str() != "OK" {
		t.Errorf("Expected status OK, got %v", node.Get("status"))
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		kind     error
		contains string
	}{
		{"status not OK", 200, `{"status":"ERROR","status_message":"bad query"}`, ErrServer, "bad query"},
		{"not found", 404, `{"status_message":"not found"}`, ErrRequest, "not found"},
		{"unauthorized without message", 401, `nope`, ErrRequest, "Invalid API Key"},
		{"server error with message", 500, `{"status":"ERROR","status_message":"db down"}`, ErrServer, "db down"},
		{"server error with text", 502, `upstream exploded`, ErrServer, "upstream exploded"},
		{"server error with broken JSON", 500, `{oops internal crash trace`, ErrServer, "oops internal crash trace"},
		{"invalid JSON", 200, `{"status":`, ErrServer, "can't be parsed as JSON"},
		{"not an object", 200, `[1, 2, 3]`, ErrServer, "isn't a JSON object"},
		{"no status", 200, `{"output":{}}`, ErrServer, "no status"},
		{"status not a string", 200, `{"status":true}`, ErrServer, "bad status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newServer(t, respond(tt.code, tt.body))
			req := mustBuild(t, NewRequestBuilder("coffee"))

			_, err := req.Run(ENDPOINT_VOLUME, false)
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("Expected %v, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error to mention %q, got %q", tt.contains, err.Error())
			}
			if _, ok := req.cache[ENDPOINT_VOLUME]; ok {
				t.Errorf("Expected failed response not to be cached")
			}
		})
	}
}

func TestErrorStatusCode(t *testing.T) {
	newServer(t, respond(http.StatusNotFound, `{"status_message":"not found"}`))
	req := mustBuild(t, NewRequestBuilder("coffee"))

	_, err := req.Fetch("nope", false)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusNotFound || reqErr.Message != "not found" {
		t.Errorf("Expected 404 not found, got %d %s", reqErr.StatusCode, reqErr.Message)
	}
}

func TestURIRequiresKey(t *testing.T) {
	newServer(t, respond(200, `{"status":"OK"}`))
	SetKey("")

	req := mustBuild(t, NewRequestBuilder("coffee"))
	if _, err := req.URI(ENDPOINT_VOLUME); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
	if _, err := req.Volume(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestCache(t *testing.T) {
	var hits atomic.Int32
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		fmt.Fprintf(w, `{"status":"OK","output":{"call":%d}}`, n)
	})
	req := mustBuild(t, NewRequestBuilder("coffee"))

	first, err := req.Sentiment()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := req.Sentiment()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 network call, got %d", hits.Load())
	}
	if first.Get("call").Int() != 1 || second.Get("call").Int() != 1 {
		t.Errorf("Expected both calls to see call 1, got %v and %v", first, second)
	}

	node, err := req.Run(ENDPOINT_SENTIMENT, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("Expected 2 network calls, got %d", hits.Load())
	}
	if node.Get("output").Get("call").Int() != 2 {
		t.Errorf("Expected call 2, got %v", node.Get("output"))
	}

	// Cache now holds the refreshed response
	third, _ := req.Sentiment()
	if hits.Load() != 2 || third.Get("call").Int() != 2 {
		t.Errorf("Expected cached call 2 without network, got %v after %d calls", third, hits.Load())
	}

	// Other endpoints have their own entry
	if _, err := req.Topics(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("Expected 3 network calls, got %d", hits.Load())
	}
}

func TestFetchResultDoesNotAliasCache(t *testing.T) {
	var hits atomic.Int32
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, `{"status":"OK","output":{"x":1}}`)
	})
	req := mustBuild(t, NewRequestBuilder("coffee"))

	raw, err := req.Fetch(ENDPOINT_VOLUME, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	raw["output"] = "overwritten"
	delete(raw, "status")

	node, err := req.Run(ENDPOINT_VOLUME, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 network call, got %d", hits.Load())
	}
	if node.Get("output").Get("x").Int() != 1 || node.Get("status").Str() != "OK" {
		t.Errorf("Expected the cached envelope to be untouched, got %v", node.Get("output"))
	}
}

func TestCacheIsPerRequest(t *testing.T) {
	var hits atomic.Int32
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, `{"status":"OK","output":[]}`)
	})

	builder := NewRequestBuilder("coffee")
	a, b := mustBuild(t, builder), mustBuild(t, builder)
	a.Volume()
	b.Volume()
	if hits.Load() != 2 {
		t.Errorf("Expected 2 network calls, got %d", hits.Load())
	}
}

func TestMeta(t *testing.T) {
	var path lastPath
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		io.WriteString(w, `{"status":"OK","output":{"x":1},"query_meta":{"total_documents":42,"query":"coffee"}}`)
	})
	req := mustBuild(t, NewRequestBuilder("coffee"))

	meta, err := req.Meta()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if path.get() != "/volume" {
		t.Errorf("Expected meta to query /volume, got %s", path.get())
	}
	if meta.Get("total_documents").Int() != 42 {
		t.Errorf("Expected total_documents 42, got %v", meta)
	}
	if meta.Get("x").Kind() != KindNull {
		t.Errorf("Expected meta not to be the output, got %v", meta)
	}
}

func TestEndpointAccessors(t *testing.T) {
	var path lastPath
	newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		fmt.Fprintf(w, `{"status":"OK","output":{"endpoint":[%q]}}`, strings.TrimPrefix(r.URL.Path, "/"))
	})
	req := mustBuild(t, NewRequestBuilder("coffee"))

	accessors := map[string]func() (Value, error){
		ENDPOINT_VOLUME:                 req.Volume,
		ENDPOINT_POSTS:                  req.Posts,
		ENDPOINT_TOPICS:                 req.Topics,
		ENDPOINT_POSITIVE_TOPICS:        req.PositiveTopics,
		ENDPOINT_NEGATIVE_TOPICS:        req.NegativeTopics,
		ENDPOINT_BRANDS:                 req.Brands,
		ENDPOINT_HASHTAGS:               req.Hashtags,
		ENDPOINT_TOPIC_CLUSTERS:         req.TopicClusters,
		ENDPOINT_HEADLINES:              req.Headlines,
		ENDPOINT_SENTIMENT:              req.Sentiment,
		ENDPOINT_POSITIVE_KEYWORDS:      req.PositiveKeywords,
		ENDPOINT_NEGATIVE_KEYWORDS:      req.NegativeKeywords,
		ENDPOINT_LINGUISTICS_STATS:      req.LinguisticsStats,
		ENDPOINT_THEMES:                 req.Themes,
		ENDPOINT_EMOTIONS:               req.Emotions,
		ENDPOINT_LANGUAGES:              req.Languages,
		ENDPOINT_TIMEOFDAY:              req.TimeOfDay,
		ENDPOINT_CHANNELS:               req.Channels,
		ENDPOINT_GENDER:                 req.Gender,
		ENDPOINT_STATES:                 req.States,
		ENDPOINT_COUNTRIES:              req.Countries,
		ENDPOINT_HOME_OWNERSHIP:         req.HomeOwnership,
		ENDPOINT_INCOME:                 req.Income,
		ENDPOINT_HOUSEHOLD_VALUE:        req.HouseholdValue,
		ENDPOINT_EDUCATION:              req.Education,
		ENDPOINT_DEMOGRAPHICS:           req.Demographics,
		ENDPOINT_AGES:                   req.Ages,
		ENDPOINT_INFLUENCE_DISTRIBUTION: req.InfluenceDistribution,
		ENDPOINT_INFLUENCERS:            req.Influencers,
		ENDPOINT_INTERESTS:              req.Interests,
		ENDPOINT_POST_INTERESTS:         req.PostInterests,
		ENDPOINT_QUERY_TEST:             req.QueryTest,
		ENDPOINT_EVENTS:                 req.Events,
		ENDPOINT_STORIES:                req.Stories,
	}
	if len(accessors) != len(Endpoints()) {
		t.Fatalf("Expected an accessor per endpoint, got %d for %d", len(accessors), len(Endpoints()))
	}

	for endpoint, accessor := range accessors {
		out, err := accessor()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", endpoint, err)
		}
		if path.get() != "/"+endpoint {
			t.Errorf("Expected path /%s, got %s", endpoint, path.get())
		}
		if got := out.Get("endpoint").Array(); len(got) != 1 || got[0].Str() != endpoint {
			t.Errorf("Expected output of %s, got %v", endpoint, out)
		}
	}
}

func TestEndpoints(t *testing.T) {
	endpoints := Endpoints()
	if len(endpoints) != 34 {
		t.Errorf("Expected 34 endpoints, got %d", len(endpoints))
	}
	for i := 1; i < len(endpoints); i++ {
		if endpoints[i-1] >= endpoints[i] {
			t.Errorf("Expected sorted endpoints, got %s before %s", endpoints[i-1], endpoints[i])
		}
	}
	if !IsEndpoint("query-test") || IsEndpoint("query_test") {
		t.Errorf("Expected query-test to be the only known spelling")
	}
}

func TestUnknownEndpointStillRuns(t *testing.T) {
	newServer(t, respond(200, `{"status":"OK","output":"fresh"}`))
	req := mustBuild(t, NewRequestBuilder("coffee"))

	node, err := req.Run("brand-new-endpoint", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if node.Get("output").Str() != "fresh" {
		t.Errorf("Expected output fresh, got %v", node.Get("output"))
	}
}

func TestRedactKey(t *testing.T) {
	newServer(t, respond(200, `{"status":"OK"}`))
	SetKey("s3cr3t")

	req := mustBuild(t, NewRequestBuilder("coffee"))
	uri, _ := req.URI(ENDPOINT_VOLUME)
	if redacted := redactKey(uri); strings.Contains(redacted, "s3cr3t") {
		t.Errorf("Expected key to be redacted, got %s", redacted)
	}
}
