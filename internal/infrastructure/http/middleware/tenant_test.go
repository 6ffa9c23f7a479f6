package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractSignals(t *testing.T) {
	t.Run("bearer and host", func(t *testing.T) {
		r := httptest.NewRequest("POST", "http://acme.feedback.example.com/api/v1/posts/list", nil)
		r.Header.Set("Authorization", "Bearer tok123")
		sig := ExtractSignals(r)
		if sig.BearerToken != "tok123" || sig.Host != "acme.feedback.example.com" {
			t.Errorf("got %+v", sig)
		}
	})

	t.Run("api key from body beats query subdomain rules", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/posts/list?apiKey=of_query", strings.NewReader(`{"apiKey":"of_body","subdomain":"acme"}`))
		r.Header.Set("Content-Type", "application/json")
		sig := ExtractSignals(r)
		if sig.APIKey != "of_body" {
			t.Errorf("apiKey = %q, want body value", sig.APIKey)
		}
		if sig.SubdomainOverride != "acme" {
			t.Errorf("subdomain = %q", sig.SubdomainOverride)
		}
	})

	t.Run("query api key without body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/posts/list?apiKey=of_query", nil)
		sig := ExtractSignals(r)
		if sig.APIKey != "of_query" {
			t.Errorf("apiKey = %q", sig.APIKey)
		}
	})

	t.Run("subdomain header is the weakest override", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/posts/list?subdomain=fromquery", nil)
		r.Header.Set("X-Company-Subdomain", "fromheader")
		sig := ExtractSignals(r)
		if sig.SubdomainOverride != "fromquery" {
			t.Errorf("override = %q, want query to beat header", sig.SubdomainOverride)
		}

		r = httptest.NewRequest("POST", "/api/v1/posts/list", nil)
		r.Header.Set("X-Company-Subdomain", "fromheader")
		sig = ExtractSignals(r)
		if sig.SubdomainOverride != "fromheader" {
			t.Errorf("override = %q", sig.SubdomainOverride)
		}
	})

	t.Run("body is restored for downstream handlers", func(t *testing.T) {
		const payload = `{"apiKey":"of_abc","limit":2}`
		r := httptest.NewRequest("POST", "/api/v1/posts/list", strings.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		sig := ExtractSignals(r)
		if sig.APIKey != "of_abc" {
			t.Fatalf("apiKey = %q", sig.APIKey)
		}
		rest, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(rest) != payload {
			t.Errorf("body after extraction = %q, want original", rest)
		}
	})

	t.Run("non-json body is left alone", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/upload", strings.NewReader("raw bytes"))
		r.Header.Set("Content-Type", "application/octet-stream")
		sig := ExtractSignals(r)
		if sig.APIKey != "" {
			t.Errorf("apiKey = %q", sig.APIKey)
		}
		rest, _ := io.ReadAll(r.Body)
		if string(rest) != "raw bytes" {
			t.Errorf("body = %q", rest)
		}
	})
}
