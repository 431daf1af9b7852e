package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/phrazzld/cardflow/internal/api"
	"github.com/phrazzld/cardflow/internal/api/shared"
	"github.com/phrazzld/cardflow/internal/intent"
)

// client talks to the intake API.
type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(opts *options) *client {
	return &client{
		baseURL: strings.TrimRight(opts.serverURL, "/"),
		token:   opts.token,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// submit posts a request intent and returns the server acknowledgement.
func (c *client) submit(ctx context.Context, t intent.Type, payload interface{}) (*api.SubmitIntentResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	body, err := json.Marshal(api.SubmitIntentRequest{Type: t, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var ack api.SubmitIntentResponse
	if err := c.do(ctx, http.MethodPost, "/api/intents", bytes.NewReader(body), &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// get decodes the JSON response of a read endpoint into out.
func (c *client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e shared.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
