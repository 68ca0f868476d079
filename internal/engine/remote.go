package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Response is the JSON body of the /execute endpoint.
type Response struct {
	Stack []string `json:"stack"`
	Error string   `json:"error,omitempty"`
}

// Remote posts the source to a stack server's /execute endpoint.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote returns an engine talking to the server at endpoint
// (scheme://host[:port]). A nil client uses http.DefaultClient.
func NewRemote(endpoint string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}
}

// Run sends source and decodes the result stack. A non-2xx status reports the
// server's error text.
func (r *Remote) Run(ctx context.Context, source string) ([]Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/execute", strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode >= 300 {
			return nil, errors.New(strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if out.Error == "" {
			out.Error = resp.Status
		}
		return nil, errors.New(out.Error)
	}

	vs := make([]Value, len(out.Stack))
	for i, s := range out.Stack {
		vs[i] = Text(s)
	}
	return vs, nil
}
