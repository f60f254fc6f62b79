/*
Copyright 2026 the TeamCity API Tests Authors.

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

// Package client is the HTTP layer the API tests drive the CI server with.
//
// Requests carry W3C trace context headers so a failing request can be found
// in the server logs, and unexpected statuses are logged with their trace ID.
package client

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
)

const traceParentHeader = "Traceparent"

// Client issues requests under a single set of credentials.
type Client struct {
	http         *resty.Client
	credentials  auth.Credentials
	log          logr.Logger
	logRequests  bool
	logResponses bool
}

// Option configures a Client.
type Option func(c *Client)

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithLogger sets where requests and failures are logged.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRequestLogging logs every request and, optionally, every response body.
func WithRequestLogging(requests, responses bool) Option {
	return func(c *Client) {
		c.logRequests = requests
		c.logResponses = responses
	}
}

// New returns a client for the server at baseURL.
func New(baseURL string, credentials auth.Credentials, options ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetBasicAuth(credentials.Username, credentials.Password).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json"),
		credentials: credentials,
		log:         logr.Discard(),
	}

	for _, o := range options {
		o(c)
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(traceParentHeader, createTraceParent())
		r.SetHeader("Tracestate", "test-automation=ginkgo")

		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		c.logResponse(r)
		return nil
	})

	c.http.OnError(func(r *resty.Request, err error) {
		traceParent := r.Header.Get(traceParentHeader)
		c.log.Error(err, "http request failed", "method", r.Method, "url", r.URL, "traceparent", traceParent)
		c.logTraceContext(traceParent)
	})

	return c
}

// Credentials returns the credentials requests are made with.
func (c *Client) Credentials() auth.Credentials {
	return c.credentials
}

func (c *Client) logResponse(r *resty.Response) {
	if !c.logRequests {
		return
	}

	traceParent := r.Request.Header.Get(traceParentHeader)

	c.log.Info("request", "method", r.Request.Method, "url", r.Request.URL, "status", r.StatusCode(), "duration", r.Time().String(), "traceparent", traceParent, "as", c.credentials.Level.String())

	if c.logResponses && len(r.Body()) > 0 {
		c.log.Info("response body", "method", r.Request.Method, "url", r.Request.URL, "body", r.String())
	}
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *Client) logUnexpectedStatus(r *resty.Response, expected []int) {
	traceParent := r.Request.Header.Get(traceParentHeader)

	c.log.Info("UNEXPECTED STATUS", "method", r.Request.Method, "url", r.Request.URL, "expected", expected, "got", r.StatusCode(), "body", r.String(), "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *Client) logTraceContext(traceParent string) {
	c.log.Info(fmt.Sprintf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request", extractTraceID(traceParent)))
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request lets an error be found in the server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}
