package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the interview engine over HTTP. It is stateless: the
// session identifier is held by the caller and passed per request.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the engine at baseURL.
// A zero timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Start begins a new interview and returns the session assignment and
// first question. role and mode must be non-empty and n at least 1;
// violations fail locally without touching the network.
func (c *Client) Start(ctx context.Context, role, mode string, n int) (*StartResponse, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(mode) == "" {
		return nil, &Error{Op: "start", Kind: KindPrecondition, Message: "role and mode are required"}
	}
	if n < 1 {
		return nil, &Error{Op: "start", Kind: KindPrecondition, Message: "question count must be at least 1"}
	}

	var resp StartResponse
	err := c.post(ctx, "start", "/start_interview", StartRequest{
		Role:         role,
		Mode:         mode,
		NumQuestions: n,
	}, "Failed to start interview", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit sends an answer for scoring. An empty sessionID is a
// precondition failure; no request is sent.
func (c *Client) Submit(ctx context.Context, sessionID, answer string) (*SubmitResponse, error) {
	if sessionID == "" {
		return nil, &Error{Op: "submit", Kind: KindPrecondition, Message: "no active interview session"}
	}

	var resp SubmitResponse
	err := c.post(ctx, "submit", "/submit_answer", SubmitRequest{
		SessionID: sessionID,
		Answer:    strings.TrimSpace(answer),
	}, "Failed to submit answer", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary fetches the end-of-session report for sessionID.
func (c *Client) Summary(ctx context.Context, sessionID string) (*SummaryPayload, error) {
	if sessionID == "" {
		return nil, &Error{Op: "summary", Kind: KindPrecondition, Message: "no active interview session"}
	}

	var resp SummaryPayload
	err := c.get(ctx, "summary", "/get_summary/"+url.PathEscape(sessionID), "Failed to get interview summary", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the engine's liveness endpoint. It does not depend on
// any session state.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, &Error{Op: "health", Kind: KindTransport, Message: "Backend service is not available", Err: err}
	}

	raw, err := c.do("health", req, "Backend service is not available")
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, &Error{Op: "health", Kind: KindDecode, Message: "Backend service is not available", Err: err}
	}
	status.Raw = raw
	return &status, nil
}

// post issues a JSON POST and decodes the success body into out.
func (c *Client) post(ctx context.Context, op, path string, body any, fallbackMsg string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: op, Kind: KindDecode, Message: fallbackMsg, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Message: fallbackMsg, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(op, req, fallbackMsg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Message: fallbackMsg, Err: err}
	}
	return nil
}

// get issues a GET and decodes the success body into out.
func (c *Client) get(ctx context.Context, op, path, fallbackMsg string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Message: fallbackMsg, Err: err}
	}

	raw, err := c.do(op, req, fallbackMsg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Message: fallbackMsg, Err: err}
	}
	return nil
}

// do executes the request and returns the response body on 2xx. Non-2xx
// responses surface the engine's {error} string verbatim when present.
// Failures are never retried here; retrying is the caller's decision.
func (c *Client) do(op string, req *http.Request, fallbackMsg string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Message: fallbackMsg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Message: fallbackMsg, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallbackMsg
		var body errorBody
		if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
			msg = body.Error
		}
		return nil, &Error{
			Op:      op,
			Kind:    KindTransport,
			Message: msg,
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	return raw, nil
}
