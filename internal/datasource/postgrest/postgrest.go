// Package postgrest downloads the OpenAPI description a PostgREST (Supabase)
// endpoint serves at its REST root, so it can be translated into DDL.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"schemagen/internal/apischema"
	"schemagen/internal/datasource/httpds"
)

// RESTPath is appended to the project URL to reach the OpenAPI document.
const RESTPath = "/rest/v1/"

// maxBody caps the downloaded document size.
const maxBody = 64 << 20

// Fetcher retrieves API documents from one project.
type Fetcher struct {
	client  *httpds.Client
	baseURL string
	apiKey  string
}

// NewFetcher returns a Fetcher for the project at baseURL (e.g.
// https://<ref>.supabase.co). apiKey is sent both as the "apikey" header and
// as a bearer token; it may be empty for endpoints without auth.
func NewFetcher(client *httpds.Client, baseURL, apiKey string) *Fetcher {
	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// URL returns the document URL.
func (f *Fetcher) URL() string {
	return f.baseURL + RESTPath
}

// Fetch downloads the document and checks that it decodes. It returns the
// raw body together with the decoded document.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, *apischema.Document, error) {
	hdr := http.Header{}
	hdr.Set("Accept", "application/openapi+json, application/json")
	if f.apiKey != "" {
		hdr.Set("apikey", f.apiKey)
		hdr.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Get(ctx, f.URL(), hdr)
	if err != nil {
		return nil, nil, fmt.Errorf("postgrest: fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, nil, fmt.Errorf("postgrest: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("postgrest: GET %s: status %d: %s", f.URL(), resp.StatusCode, snippet(body))
	}

	doc, err := apischema.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("postgrest: %w", err)
	}
	return body, doc, nil
}

// Save writes body to path as two-space indented JSON, creating parent
// directories as needed. Key order is kept.
func Save(path string, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("postgrest: indent: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("postgrest: save: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("postgrest: save: %w", err)
	}
	return nil
}

func snippet(b []byte) string {
	const n = 200
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
