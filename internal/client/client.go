// Package client contains the HTTP/JSON clients for the externally owned
// seat, ticket, payment and event-catalog services. Each client takes its
// base address from the injected configuration; errors are classified into
// kinds so orchestrators can tell a lost conditional update (retry with a
// different candidate) from a missing resource (surface) or a transient
// upstream failure (retry with backoff).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ticketing-orchestrator/internal/pkg/config"
)

type ErrorKind string

const (
	KindInvalid     ErrorKind = "INVALID"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConflict    ErrorKind = "CONFLICT"
	KindDeclined    ErrorKind = "DECLINED"
	KindUnavailable ErrorKind = "UNAVAILABLE"
)

// Error is a classified collaborator failure. Status is zero when the
// request never produced a response.
type Error struct {
	Service   string
	Operation string
	Status    int
	Kind      ErrorKind
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s (%d): %s", e.Service, e.Operation, e.Kind, e.Status, e.Message)
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusPaymentRequired:
		return KindDeclined
	case status >= 400 && status < 500:
		return KindInvalid
	default:
		return KindUnavailable
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// httpClient wraps the shared request/response plumbing.
type httpClient struct {
	service string
	baseURL string
	apiKey  string
	http    *http.Client
}

func newHTTPClient(service, baseURL string, cfg config.CollaboratorConfig) httpClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpClient{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// doJSON issues the request and decodes a 2xx response into out (when out is
// non-nil). Non-2xx responses and transport failures come back as *Error.
func (c httpClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Service: c.service, Operation: path, Kind: KindInvalid, Message: err.Error()}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Service: c.service, Operation: path, Kind: KindInvalid, Message: err.Error()}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Service: c.service, Operation: path, Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		msg := resp.Status
		if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb); decodeErr == nil {
			if eb.Error != "" {
				msg = eb.Error
			} else if eb.Message != "" {
				msg = eb.Message
			}
		}
		return &Error{
			Service:   c.service,
			Operation: path,
			Status:    resp.StatusCode,
			Kind:      classify(resp.StatusCode),
			Message:   msg,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Service: c.service, Operation: path, Status: resp.StatusCode, Kind: KindUnavailable, Message: "malformed response: " + err.Error()}
	}
	return nil
}
