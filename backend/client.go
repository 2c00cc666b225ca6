// Package backend talks to the EduMind study backend over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"edumind/config"
)

const (
	// FallbackResponse is shown as a normal assistant reply whenever the
	// backend cannot be reached or answers with an error. The chat never
	// surfaces a broken state, only a degraded reply.
	FallbackResponse = "Sorry, there was an error connecting to the server. Please try again later."

	// EmptyResponseFallback covers a well-formed reply with no answer text.
	EmptyResponseFallback = "I'm sorry, I couldn't process that request."
)

const DefaultHost = "http://localhost:5000"

// DefaultTimeout bounds every request so a dead backend cannot wedge the
// pending flag indefinitely.
const DefaultTimeout = 60 * time.Second

// Client is a stateless HTTP client for the EduMind backend. Methods are
// safe for concurrent use; single-flight for chat is enforced upstream by
// the conversation controller.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultHost
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// Ask sends one question to the backend and returns the answer text.
// Every failure mode (transport error, timeout, non-2xx status, malformed
// payload) degrades to FallbackResponse; Ask never returns an error.
func (c *Client) Ask(ctx context.Context, question string) string {
	body, err := json.Marshal(chatRequest{Question: question})
	if err != nil {
		return FallbackResponse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return FallbackResponse
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[backend] chat request failed: %v", err)
		}
		return FallbackResponse
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[backend] chat returned status %d", resp.StatusCode)
		}
		return FallbackResponse
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[backend] chat payload malformed: %v", err)
		}
		return FallbackResponse
	}
	if out.Response == "" {
		return EmptyResponseFallback
	}
	return out.Response
}

// Health pings the backend's health endpoint with a short deadline.
// Used as a startup check; the chat itself degrades gracefully either way.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// get issues a GET request and decodes a JSON payload into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// post issues a POST request with a JSON body and decodes the reply into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
