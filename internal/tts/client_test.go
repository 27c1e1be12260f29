package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSynthesize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key-123" {
			t.Errorf("missing api key header")
		}
		var in synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Text == "" {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(synthesizeResponse{AudioContent: "QUJD"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123", 5*time.Second)
	audio, err := c.Synthesize(context.Background(), "habari", "sw")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if audio != "QUJD" {
		t.Fatalf("audio = %q", audio)
	}
}

func TestSynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.Synthesize(context.Background(), "hello", "en"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSynthesize_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Synthesize(ctx, "hello", "en"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on timeout, got %v", err)
	}
}

func TestSynthesize_Disabled(t *testing.T) {
	c := NewClient("", "", 0)
	if c.Enabled() {
		t.Fatalf("client with no endpoint reports enabled")
	}
	if _, err := c.Synthesize(context.Background(), "hello", "en"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
