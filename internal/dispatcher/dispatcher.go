package dispatcher

//go:generate $MOCKGEN -source=dispatcher.go -destination=mocks/dispatcher_mock.go

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/logship/internal/config"
)

// Request is the outgoing request derived from one dispatched record.
// It is built fresh per call, never persisted, and exists only for the
// duration of one delivery. Headers is nil when no static headers and no
// auth are configured.
type Request struct {
	// Method is the HTTP verb: POST or PUT.
	Method string
	// URL is the resolved destination.
	URL string
	// Headers holds assembled static and auth headers, if any.
	Headers map[string]string
	// Body is the record with body addons merged in.
	Body Record
}

// Response is the endpoint's answer as seen by the delivery layer.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the raw response body.
	Body []byte
}

// Sender is the HTTP collaborator that performs the actual network I/O.
type Sender interface {
	// Send delivers one request and returns the endpoint's response,
	// or an error for transport-level and non-success-status failures.
	Send(ctx context.Context, request *Request) (*Response, error)
}

// Hooks are optional observation points. Both default to nil, which keeps
// the dispatcher fully silent.
type Hooks struct {
	// OnAccepted fires off the caller's stack once per dispatched record.
	// It only acknowledges hand-off, not delivery.
	OnAccepted func(record Record)
	// OnOutcome fires once per delivery attempt with its result.
	// It is diagnostics only and never influences control flow.
	OnOutcome func(outcome Outcome)
}

// Dispatcher ships log records to the configured endpoint.
type Dispatcher interface {
	// Dispatch transforms one record into a request and hands it to the
	// delivery layer without waiting for the network. The done callback is
	// invoked exactly once before Dispatch returns, independent of outcome.
	Dispatch(ctx context.Context, record Record, done func())
	// Endpoint returns the resolved destination URL.
	Endpoint() string
	// RecentFailures returns the retained failed outcomes, oldest first.
	RecentFailures() []Outcome
	// Wait blocks until all in-flight deliveries have completed.
	Wait()
}

// DispatcherImpl implements the Dispatcher interface.
// Configuration is read-only after construction, so concurrent Dispatch
// calls share no mutable state.
type DispatcherImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the resolved destination base.
	baseURL string
	// method is the resolved HTTP verb.
	method string
	// sender performs the actual network I/O.
	sender Sender
	// hooks are the optional observation callbacks.
	hooks Hooks
	// recorder retains recent failed outcomes.
	recorder *outcomeRecorder
	// inflight tracks detached deliveries for Wait.
	inflight sync.WaitGroup
}

// Static error definitions for better error handling.
var (
	// ErrDeliveryPanic wraps a panic recovered from the delivery path.
	ErrDeliveryPanic = errors.New("delivery panicked")
)

// NewDispatcher creates and returns a new instance of DispatcherImpl.
// The base URL is resolved once here (url wins over the deprecated host
// alias, falling back to a local placeholder) and is not validated:
// malformed destinations surface as delivery failures.
func NewDispatcher(cfg *config.Config, sender Sender, hooks Hooks) (Dispatcher, error) {
	method := cfg.Method
	if method == "" {
		method = http.MethodPost
	}

	recorderSize := int(cfg.RecentFailuresSize)
	if recorderSize <= 0 {
		recorderSize = config.DefaultRecentFailuresSize
	}

	recorder, err := newOutcomeRecorder(recorderSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create outcome recorder: %w", err)
	}

	return &DispatcherImpl{
		cfg:      cfg,
		baseURL:  cfg.BaseURL(),
		method:   method,
		sender:   sender,
		hooks:    hooks,
		recorder: recorder,
	}, nil
}

// Dispatch transforms one record into a request and hands it to the
// delivery layer. The cheap transformation steps run synchronously;
// the network call is detached. The done callback fires exactly once
// before Dispatch returns, whatever happens to the delivery.
func (d *DispatcherImpl) Dispatch(ctx context.Context, record Record, done func()) {
	// Acceptance is signaled off the caller's stack and carries no
	// delivery-success meaning.
	if d.hooks.OnAccepted != nil {
		go d.hooks.OnAccepted(record)
	}

	body := record
	if len(d.cfg.BodyAddons) > 0 {
		body = MergeRightWins(record, d.cfg.BodyAddons)
	}

	request := &Request{
		Method:  d.method,
		URL:     resolveEndpoint(d.baseURL, d.cfg.Path),
		Headers: d.buildHeaders(),
		Body:    body,
	}

	d.inflight.Add(1)

	// Caller-side cancellation must not abort an accepted record;
	// the sender's own timeout still bounds the attempt.
	go d.deliver(context.WithoutCancel(ctx), request)

	if done != nil {
		done()
	}
}

// Endpoint returns the resolved destination URL.
func (d *DispatcherImpl) Endpoint() string {
	return resolveEndpoint(d.baseURL, d.cfg.Path)
}

// RecentFailures returns the retained failed outcomes, oldest first.
func (d *DispatcherImpl) RecentFailures() []Outcome {
	return d.recorder.snapshot()
}

// Wait blocks until all in-flight deliveries have completed.
// Library callers that want pure fire-and-forget semantics may ignore it;
// the CLI uses it to flush before exit.
func (d *DispatcherImpl) Wait() {
	d.inflight.Wait()
}

// buildHeaders assembles the per-request header mapping from the configured
// static headers and the computed auth header. When auth is configured, any
// caller header named "authorization" (case-insensitive) is dropped first:
// the generated auth header always wins for that key. Returns nil when
// nothing is configured so the request carries no headers field at all.
func (d *DispatcherImpl) buildHeaders() map[string]string {
	hasAuth := d.cfg.Auth != ""

	headers := make(map[string]string, len(d.cfg.Headers)+1)

	for name, value := range d.cfg.Headers {
		if hasAuth && strings.EqualFold(name, authorizationHeader) {
			continue
		}

		headers[name] = value
	}

	if hasAuth {
		headers[authorizationHeader] = authorizationValue(AuthType(d.cfg.AuthType), d.cfg.Auth)
	}

	if len(headers) == 0 {
		return nil
	}

	return headers
}

// deliver performs one detached delivery attempt. Every outcome, success or
// failure, is swallowed here: nothing propagates back to the logging path.
func (d *DispatcherImpl) deliver(ctx context.Context, request *Request) {
	defer d.inflight.Done()

	outcome := Outcome{
		DispatchID: uuid.New().String(),
		URL:        request.URL,
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("%w: %v", ErrDeliveryPanic, r)
			outcome.Delivered = false
		}

		d.observe(outcome)
	}()

	startTime := time.Now()
	response, err := d.sender.Send(ctx, request)
	outcome.Duration = time.Since(startTime)

	if response != nil {
		outcome.StatusCode = response.StatusCode
	}

	if err != nil {
		outcome.Err = err

		return
	}

	outcome.Delivered = true
}

// observe records the outcome and notifies the optional hook.
func (d *DispatcherImpl) observe(outcome Outcome) {
	// A panicking outcome hook must not take down the host process.
	defer func() {
		_ = recover()
	}()

	d.recorder.record(outcome)

	if d.hooks.OnOutcome != nil {
		d.hooks.OnOutcome(outcome)
	}
}
