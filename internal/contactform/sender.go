package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	contactPath    = "/api/contact"
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 64 << 10
)

// Sender delivers the form to the server and returns the server's message.
type Sender interface {
	Send(ctx context.Context, f Fields) (string, error)
}

// ResponseError is a non-2xx answer from the server.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return StatusSendFailed
}

// NetworkError covers transport failures and unreadable responses.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return StatusUnknownFail
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPSender posts JSON to a running server.
type HTTPSender struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSender targets baseURL, e.g. http://localhost:8080. A nil client
// gets a default with a bounded timeout.
func NewHTTPSender(baseURL string, client *http.Client) *HTTPSender {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPSender{
		endpoint: strings.TrimRight(baseURL, "/") + contactPath,
		client:   client,
	}
}

type serverReply struct {
	Message string `json:"message"`
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, f Fields) (string, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var reply serverReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&reply); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", &ResponseError{StatusCode: resp.StatusCode}
		}
		return "", &NetworkError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: reply.Message}
	}
	return reply.Message, nil
}
