// Package api implements the client for the two remote messenger endpoints:
// the accounts endpoint (identities, authentication, profile edits) and the
// conversations endpoint (chats, messages, membership). Both are plain HTTP
// JSON request/response services; the client holds no state beyond the
// endpoint URLs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"courier/internal/configuration"
	"courier/internal/debug"
)

// Error is an application-level rejection: the endpoint answered with a
// non-2xx status and, usually, a server-supplied reason.
type Error struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("request rejected with status %d", e.StatusCode)
}

// Client talks to the accounts and conversations endpoints.
type Client struct {
	httpClient  *http.Client
	accountsURL string
	chatsURL    string
	log         *slog.Logger
}

// New instantiates a client from configuration. A request_timeout of 0
// leaves requests without a deadline.
func New(config *configuration.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeout) * time.Second,
		},
		accountsURL: config.AccountsURL,
		chatsURL:    config.ChatsURL,
		log:         debug.GetLogger(),
	}
}

// get issues a GET request and decodes the response body into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	return c.do(request, out)
}

// post issues a POST request carrying the given JSON body and decodes the
// response body into out. A nil out discards the response body.
func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshaling request body")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	request.Header.Set("Content-Type", "application/json")
	return c.do(request, out)
}

func (c *Client) do(request *http.Request, out any) error {
	requestID := uuid.New().String()
	request.Header.Set("X-Request-Id", requestID)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}
	c.log.Debug("request completed",
		"method", request.Method, "url", request.URL.String(),
		"status", response.StatusCode, "request_id", requestID,
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiError := &Error{StatusCode: response.StatusCode}
		var reason struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(responseBytes, &reason); err == nil {
			apiError.Reason = reason.Error
		}
		return apiError
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBytes, out); err != nil {
		return errors.Wrap(err, "unmarshaling response body")
	}
	return nil
}
