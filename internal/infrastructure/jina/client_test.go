package jina

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsingest/internal/config"
)

func TestFetchBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/https://example.com/story") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"content": "Extracted article body."}}`))
	}))
	defer server.Close()

	client := NewClient(config.JinaConfig{BaseURL: server.URL, APIKey: "test-key"}, nil)

	body, err := client.FetchBody(context.Background(), "https://example.com/story")
	if err != nil {
		t.Fatalf("FetchBody returned error: %v", err)
	}
	if body != "Extracted article body." {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestFetchBodyWithoutKeyReturnsEmpty(t *testing.T) {
	client := NewClient(config.JinaConfig{BaseURL: "https://r.example.com"}, nil)

	body, err := client.FetchBody(context.Background(), "https://example.com/story")
	if err != nil {
		t.Fatalf("expected nil error without key, got %v", err)
	}
	if body != "" {
		t.Fatalf("expected empty body without key, got %q", body)
	}
}

func TestFetchBodyHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer server.Close()

	client := NewClient(config.JinaConfig{BaseURL: server.URL, APIKey: "k"}, nil)

	_, err := client.FetchBody(context.Background(), "https://example.com/story")
	if err == nil {
		t.Fatalf("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry response detail, got %v", err)
	}
}

func TestFetchBodyBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(config.JinaConfig{BaseURL: server.URL, APIKey: "k"}, nil)

	if _, err := client.FetchBody(context.Background(), "https://example.com/story"); err == nil {
		t.Fatalf("expected decode error")
	}
}
