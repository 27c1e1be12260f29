// Package tts proxies speech synthesis to an external provider. The rest
// of the system never depends on it being up: failures surface as a
// recoverable upstream error on the one route that uses it.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrDisabled = errors.New("tts: no endpoint configured")
	// ErrUpstream covers provider failures and timeouts.
	ErrUpstream = errors.New("tts: upstream failure")
)

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool { return c.endpoint != "" }

type synthesizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize returns base64 audio for the given text. The call is bounded
// by both the client timeout and ctx.
func (c *Client) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	body, err := json.Marshal(synthesizeRequest{Text: text, Lang: lang})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}
	var out synthesizeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if out.AudioContent == "" {
		return "", fmt.Errorf("%w: empty audio", ErrUpstream)
	}
	return out.AudioContent, nil
}
