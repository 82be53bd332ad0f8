package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oshokin/logship/internal/config"
	"github.com/oshokin/logship/internal/dispatcher"
	http_transport "github.com/oshokin/logship/internal/transport/http"
)

// HTTPSender delivers dispatched requests over net/http.
// It implements the dispatcher.Sender interface.
type HTTPSender struct {
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
}

// contentTypeJSON is the media type of every shipped body.
const contentTypeJSON = "application/json"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates a non-success HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
)

// NewHTTPSender creates and returns a new instance of HTTPSender.
// The client's transport is decorated with debug request/response dumping
// and User-Agent injection, and bounded by the configured timeout.
func NewHTTPSender(cfg *config.Config) *HTTPSender {
	timeout := cfg.ParsedRequestTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	return &HTTPSender{
		httpClient: &http.Client{
			Transport: http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(http.DefaultTransport, cfg.ParsedMaxLogLength),
				cfg.UserAgent),
			Timeout: timeout,
		},
	}
}

// Send delivers one request and returns the endpoint's response.
// Transport-level failures and non-2xx statuses are returned as errors;
// the dispatcher decides what to do with them (it swallows both).
func (s *HTTPSender) Send(ctx context.Context, request *dispatcher.Request) (*dispatcher.Response, error) {
	body, err := json.Marshal(request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, request.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Content-Type", contentTypeJSON)

	for name, value := range request.Headers {
		httpRequest.Header.Set(name, value)
	}

	httpResponse, err := s.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}

	defer httpResponse.Body.Close() //nolint:errcheck // Error on close is not critical here.

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}

	response := &dispatcher.Response{
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       responseBody,
	}

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return response, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, httpResponse.StatusCode)
	}

	return response, nil
}
