package atlas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"
)

// Request is a built query. Its cache is not safe for concurrent use.
type Request struct {
	params map[string]any
	// Decoded envelopes by endpoint
	cache  map[string]map[string]any
	client *http.Client
	logger *slog.Logger
}

// Query returns the primary query string.
func (r *Request) Query() string {
	query, _ := r.params[queryParam].(string)
	return query
}

// URI builds the full GET url for endpoint, API key included.
func (r *Request) URI(endpoint string) (string, error) {
	key := GetKey()
	if key == "" {
		return "", &ConfigurationError{
			Message: "you must set an Atlas API key before use, such as: atlas.SetKey(\"YOUR_KEY_HERE\")",
		}
	}
	if !IsEndpoint(endpoint) {
		r.logger.Warn("unknown atlas endpoint", "endpoint", endpoint)
	}

	return GetAPIBaseUrl() + endpoint + "?" + apiKeyParam + "=" + url.QueryEscape(key) + encodeParams(r.params), nil
}

// Fetch returns the decoded envelope of endpoint, from the cache unless
// skipCache is set. Only envelopes with status "OK" are returned and cached.
// The returned map is a shallow copy: replacing its keys does not touch the
// cache, but nested maps and slices are shared with it.
func (r *Request) Fetch(endpoint string, skipCache bool) (map[string]any, error) {
	if cached, ok := r.cache[endpoint]; ok && !skipCache {
		r.logger.Debug("atlas cache hit", "endpoint", endpoint)
		return maps.Clone(cached), nil
	}

	uri, err := r.URI(endpoint)
	if err != nil {
		return nil, err
	}
	r.logger.Debug(fmt.Sprintf("GET %s", redactKey(uri)))

	resp, err := r.client.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("atlas: GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s response: %w", endpoint, err)
	}

	if resp.StatusCode >= 400 {
		r.logger.Error(fmt.Sprintf("%d %s", resp.StatusCode, endpoint), "details", httpStatusMap[resp.StatusCode])
		return nil, statusError(resp.StatusCode, body)
	}

	raw, err := decodeEnvelope(resp.StatusCode, body)
	if err != nil {
		return nil, err
	}

	r.cache[endpoint] = raw
	return maps.Clone(raw), nil
}

// Run fetches endpoint and maps the envelope. Mapping is redone on every
// call, the network is only hit again with skipCache.
func (r *Request) Run(endpoint string, skipCache bool) (*Node, error) {
	raw, err := r.Fetch(endpoint, skipCache)
	if err != nil {
		return nil, err
	}
	return MapNode(raw), nil
}

// ========================= AUXILIARY FUNC =========================

func statusError(code int, body []byte) error {
	message, parsed := statusMessage(body)
	if message == "" {
		if details, ok := httpStatusMap[code]; ok {
			message = details
		} else {
			message = http.StatusText(code)
		}
	}

	if code < 500 {
		return &RequestError{StatusCode: code, Message: message}
	}
	if !parsed && len(bytes.TrimSpace(body)) > 0 {
		message = string(body)
	}
	return &ServerError{StatusCode: code, Message: message}
}

// statusMessage extracts status_message from a JSON body. parsed is false
// when body is not JSON.
func statusMessage(body []byte) (message string, parsed bool) {
	var envelope struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	return envelope.StatusMessage, true
}

func decodeEnvelope(code int, body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, &ServerError{StatusCode: code, Message: "returned something that can't be parsed as JSON"}
	}
	if dec.More() {
		return nil, &ServerError{StatusCode: code, Message: "returned trailing data after the JSON value"}
	}

	raw, ok := decoded.(map[string]any)
	if !ok {
		return nil, &ServerError{StatusCode: code, Message: "returned something that isn't a JSON object"}
	}
	status, ok := raw["status"]
	if !ok {
		return nil, &ServerError{StatusCode: code, Message: "returned an object with no status"}
	}
	if s, _ := status.(string); s != "OK" {
		message, _ := raw["status_message"].(string)
		return nil, &ServerError{
			StatusCode: code,
			Message:    fmt.Sprintf("bad status. Status: %v, Status message: %s", status, message),
		}
	}
	return raw, nil
}

func redactKey(uri string) string {
	key := GetKey()
	if key == "" {
		return uri
	}
	return strings.Replace(uri, apiKeyParam+"="+url.QueryEscape(key), apiKeyParam+"=REDACTED", 1)
}
