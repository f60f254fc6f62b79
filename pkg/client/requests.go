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
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// Recorder is told about every entity a checked request creates.
type Recorder interface {
	RecordEntity(category models.Category, m models.Model) error
}

// UncheckedRequest performs CRUD requests against one category and returns
// the raw response, whatever its status.  Negative tests use it.
type UncheckedRequest struct {
	client   *Client
	category models.Category
}

// Unchecked returns the unchecked requests for a category.
func (c *Client) Unchecked(category models.Category) *UncheckedRequest {
	return &UncheckedRequest{
		client:   c,
		category: category,
	}
}

func (u *UncheckedRequest) Create(ctx context.Context, body any) (*resty.Response, error) {
	return u.client.http.R().SetContext(ctx).SetBody(body).Post(u.category.Path())
}

func (u *UncheckedRequest) Read(ctx context.Context, identity string) (*resty.Response, error) {
	return u.client.http.R().SetContext(ctx).Get(u.category.ItemPath(identity))
}

func (u *UncheckedRequest) Update(ctx context.Context, identity string, body any) (*resty.Response, error) {
	return u.client.http.R().SetContext(ctx).SetBody(body).Put(u.category.ItemPath(identity))
}

func (u *UncheckedRequest) Delete(ctx context.Context, identity string) (*resty.Response, error) {
	return u.client.http.R().SetContext(ctx).Delete(u.category.ItemPath(identity))
}

// CheckedRequest performs CRUD requests that must succeed, decoding the
// response into M.  Entities it creates are reported to the recorder.
type CheckedRequest[M any, PM interface {
	*M
	models.Model
}] struct {
	unchecked *UncheckedRequest
	recorder  Recorder
}

// Checked returns the checked requests for a category.  The recorder may be
// nil when created entities are cleaned up some other way.
func Checked[M any, PM interface {
	*M
	models.Model
}](c *Client, category models.Category, recorder Recorder) *CheckedRequest[M, PM] {
	return &CheckedRequest[M, PM]{
		unchecked: c.Unchecked(category),
		recorder:  recorder,
	}
}

func (r *CheckedRequest[M, PM]) decode(resp *resty.Response) (PM, error) {
	var m M

	if err := json.Unmarshal(resp.Body(), &m); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", r.unchecked.category, err)
	}

	return PM(&m), nil
}

// Create creates the entity and returns the server's view of it.
func (r *CheckedRequest[M, PM]) Create(ctx context.Context, body PM) (PM, error) {
	//nolint:bodyclose // resty reads and closes the body
	resp, err := r.unchecked.Create(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.unchecked.category, err)
	}

	if err := r.unchecked.client.expectStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.unchecked.category, err)
	}

	created, err := r.decode(resp)
	if err != nil {
		return nil, err
	}

	if r.recorder != nil {
		if err := r.recorder.RecordEntity(r.unchecked.category, created); err != nil {
			return nil, err
		}
	}

	return created, nil
}

func (r *CheckedRequest[M, PM]) Read(ctx context.Context, identity string) (PM, error) {
	//nolint:bodyclose // resty reads and closes the body
	resp, err := r.unchecked.Read(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.unchecked.category, err)
	}

	if err := r.unchecked.client.expectStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.unchecked.category, err)
	}

	return r.decode(resp)
}

func (r *CheckedRequest[M, PM]) Update(ctx context.Context, identity string, body PM) (PM, error) {
	//nolint:bodyclose // resty reads and closes the body
	resp, err := r.unchecked.Update(ctx, identity, body)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", r.unchecked.category, err)
	}

	if err := r.unchecked.client.expectStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("updating %s: %w", r.unchecked.category, err)
	}

	return r.decode(resp)
}

func (r *CheckedRequest[M, PM]) Delete(ctx context.Context, identity string) error {
	//nolint:bodyclose // resty reads and closes the body
	resp, err := r.unchecked.Delete(ctx, identity)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.unchecked.category, err)
	}

	if err := r.unchecked.client.expectStatus(resp, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("deleting %s: %w", r.unchecked.category, err)
	}

	return nil
}
