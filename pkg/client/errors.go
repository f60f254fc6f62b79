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

package client

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnexpectedStatus matches every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrNoCredentials is returned when no client exists for a privilege level.
	ErrNoCredentials = errors.New("no credentials for authorization level")
)

// StatusError is returned by checked requests when the server answers with
// a status other than the expected one.
type StatusError struct {
	Method   string
	URL      string
	Expected []int
	Status   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: expected %v, got %d, body: %s (trace ID: %s)", e.Method, e.URL, e.Expected, e.Status, e.Body, e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// NotFound tells whether the server reported the resource missing.
func (e *StatusError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// expectStatus checks the response status against the accepted ones.
func (c *Client) expectStatus(r *resty.Response, expected ...int) error {
	if slices.Contains(expected, r.StatusCode()) {
		return nil
	}

	c.logUnexpectedStatus(r, expected)

	return &StatusError{
		Method:   r.Request.Method,
		URL:      r.Request.URL,
		Expected: expected,
		Status:   r.StatusCode(),
		Body:     r.String(),
		TraceID:  extractTraceID(r.Request.Header.Get(traceParentHeader)),
	}
}
