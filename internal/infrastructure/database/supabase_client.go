package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultTimeoutMS = 3000

// SupabaseClient is a thin client for the Supabase REST interface (PostgREST).
//
// Every call is bounded by the configured timeout; a call that exceeds it is
// indistinguishable from an explicit failure for the caller, which is exactly
// what the storage fallback needs.
type SupabaseClient struct {
	hc      *http.Client
	baseURL string
	apiKey  string
}

// ConnectSupabase creates a client using environment variables.
//
// Supported env vars:
//   - SUPABASE_URL (e.g. https://xyz.supabase.co)
//   - SUPABASE_API_KEY
//   - SUPABASE_TIMEOUT_MS (default: 3000)
func ConnectSupabase() *SupabaseClient {
	timeout := defaultTimeoutMS
	if v := os.Getenv("SUPABASE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = ms
		}
	}
	return NewSupabaseClient(
		os.Getenv("SUPABASE_URL"),
		os.Getenv("SUPABASE_API_KEY"),
		time.Duration(timeout)*time.Millisecond,
	)
}

func NewSupabaseClient(baseURL, apiKey string, timeout time.Duration) *SupabaseClient {
	return &SupabaseClient{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Do performs one REST call against /rest/v1/<path>. The response body is
// decoded into out when out is non-nil and the body is non-empty.
func (c *SupabaseClient) Do(ctx context.Context, method, path string, query url.Values, prefer string, body, out any) (int, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("supabase: SUPABASE_URL is empty")
	}

	u := c.baseURL + "/rest/v1/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
