/*
Copyright 2026 the ServeRest API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/onsi/ginkgo/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/serverest-qa/api-tests/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/sets"
)

//nolint:gochecknoglobals
var (
	// loadSchema parses the embedded document once for every client.
	loadSchema = sync.OnceValues(func() (*openapi.Validator, error) {
		return openapi.NewValidator(context.Background())
	})

	validate = validator.New(validator.WithRequiredStructEnabled())
)

type APIClient struct {
	baseURL    string
	client     Doer
	authToken  string
	config     *TestConfig
	endpoints  *Endpoints
	traceState trace.TraceState
}

// Option customises a client.
type Option func(*APIClient)

// WithHTTPClient replaces the transport.
func WithHTTPClient(client Doer) Option {
	return func(c *APIClient) {
		c.client = client
	}
}

// NewAPIClient loads configuration from the environment, baseURL overrides
// the configured target when set.
func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return NewAPIClientWithConfig(config)
}

func NewAPIClientWithConfig(config *TestConfig, options ...Option) (*APIClient, error) {
	traceState, err := trace.ParseTraceState(config.TraceState)
	if err != nil {
		return nil, fmt.Errorf("parsing trace state %q: %w", config.TraceState, err)
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:     config,
		endpoints:  NewEndpoints(),
		traceState: traceState,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// SetAuthToken sets the credential sent by default, with or without the
// Bearer prefix.
func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

type requestOptions struct {
	accept        sets.Set[int]
	authorization *string
	skipSchema    bool
}

// RequestOption alters a single request.
type RequestOption func(*requestOptions)

// ExpectStatus restricts the accepted status codes, any other is an error.
// Without it every status is returned to the caller.
func ExpectStatus(codes ...int) RequestOption {
	return func(o *requestOptions) {
		o.accept = o.accept.Insert(codes...)
	}
}

// WithAuthorization overrides the client credential for one request. An
// empty value sends no Authorization header at all.
func WithAuthorization(token string) RequestOption {
	return func(o *requestOptions) {
		o.authorization = &token
	}
}

// WithoutSchemaValidation accepts whatever the server answers, for calls
// whose outcome depends on the deployment.
func WithoutSchemaValidation() RequestOption {
	return func(o *requestOptions) {
		o.skipSchema = true
	}
}

// Response is a fully read response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Decode unmarshals the body, then applies any validate tags when v is a struct.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w (trace ID: %s)", r.Method, r.Path, err, r.TraceID)
	}

	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validating %s %s response: %w (trace ID: %s)", r.Method, r.Path, err, r.TraceID)
	}

	return nil
}

// Object decodes the body as a generic JSON object.
func (r *Response) Object() (map[string]any, error) {
	var object map[string]any

	if err := r.Decode(&object); err != nil {
		return nil, err
	}

	return object, nil
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expected sets.Set[int], actualStatus int, body, traceParent string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%v got=%d body=%s traceparent=%s\n", method, path, sets.List(expected), actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, options ...RequestOption) (*Response, error) {
	o := &requestOptions{
		accept: sets.New[int](),
	}

	for _, option := range options {
		option(o)
	}

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		if c.config.DebugLogging {
			ginkgo.GinkgoWriter.Printf("[%s %s] request body: %s\n", method, path, string(data))
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := injectTraceContext(ctx, req.Header, c.traceState)
	traceID := extractTraceID(traceParent)

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authorization := c.authToken
	if o.authorization != nil {
		authorization = *o.authorization
	}

	if authorization != "" {
		req.Header.Set("Authorization", BearerToken(authorization))
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w (trace ID: %s)", err, traceID)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w (trace ID: %s)", err, traceID)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	response := &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}

	if o.accept.Len() > 0 && !o.accept.Has(resp.StatusCode) {
		c.logUnexpectedStatus(method, path, o.accept, resp.StatusCode, string(respBody), traceParent)
		return response, fmt.Errorf("unexpected status code: expected %v, got %d, body: %s (trace ID: %s)", sets.List(o.accept), resp.StatusCode, string(respBody), traceID)
	}

	if c.config.ValidateSchema && !o.skipSchema {
		schema, err := loadSchema()
		if err != nil {
			return response, fmt.Errorf("loading response schema: %w", err)
		}

		if err := schema.ValidateResponse(ctx, req, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "schema validation")
			return response, fmt.Errorf("%w (trace ID: %s)", err, traceID)
		}
	}

	return response, nil
}

// CreateUser registers a user.
func (c *APIClient) CreateUser(ctx context.Context, payload openapi.UserWrite, options ...RequestOption) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Users(), payload, options...)
	if err != nil {
		return resp, fmt.Errorf("creating user: %w", err)
	}

	return resp, nil
}

// ListUsers lists users, optionally filtered.
func (c *APIClient) ListUsers(ctx context.Context, query *openapi.UserQuery, options ...RequestOption) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListUsers(query.Values()), nil, options...)
	if err != nil {
		return resp, fmt.Errorf("listing users: %w", err)
	}

	return resp, nil
}

// GetUser reads a single user.
func (c *APIClient) GetUser(ctx context.Context, userID string, options ...RequestOption) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.User(userID), nil, options...)
	if err != nil {
		return resp, fmt.Errorf("getting user '%s': %w", userID, err)
	}

	return resp, nil
}

// UpdateUser replaces a user.
func (c *APIClient) UpdateUser(ctx context.Context, userID string, payload openapi.UserWrite, options ...RequestOption) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, c.endpoints.User(userID), payload, options...)
	if err != nil {
		return resp, fmt.Errorf("updating user '%s': %w", userID, err)
	}

	return resp, nil
}

// DeleteUser removes a user.
func (c *APIClient) DeleteUser(ctx context.Context, userID string, options ...RequestOption) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.User(userID), nil, options...)
	if err != nil {
		return resp, fmt.Errorf("deleting user '%s': %w", userID, err)
	}

	return resp, nil
}

// Login exchanges credentials for an authorization value.
func (c *APIClient) Login(ctx context.Context, email, password string, options ...RequestOption) (*Response, error) {
	body := &openapi.Login{
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Login(), body, options...)
	if err != nil {
		return resp, fmt.Errorf("logging in as '%s': %w", email, err)
	}

	return resp, nil
}
