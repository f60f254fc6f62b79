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
	"fmt"
	"net/http"
	"sync"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// Pool hands out one client per set of credentials against a single server.
// It is the administrative client the creation registry deletes through.
type Pool struct {
	lock      sync.Mutex
	baseURL   string
	superUser auth.Credentials
	options   []Option
	clients   map[auth.Credentials]*Client
}

// NewPool returns a pool for the server at baseURL.
func NewPool(baseURL string, superUser auth.Credentials, options ...Option) *Pool {
	return &Pool{
		baseURL:   baseURL,
		superUser: superUser,
		options:   options,
		clients:   map[auth.Credentials]*Client{},
	}
}

// As returns the client for a set of credentials.
func (p *Pool) As(credentials auth.Credentials) *Client {
	p.lock.Lock()
	defer p.lock.Unlock()

	if c, ok := p.clients[credentials]; ok {
		return c
	}

	c := New(p.baseURL, credentials, p.options...)
	p.clients[credentials] = c

	return c
}

// SuperUser returns the client with elevated privileges.
func (p *Pool) SuperUser() *Client {
	return p.As(p.superUser)
}

// Delete removes an entity.  Only super user deletions are supported since
// the pool does not know which user created what.  An entity that is
// already gone counts as deleted.
func (p *Pool) Delete(ctx context.Context, level auth.Level, category models.Category, identity string) error {
	if level != auth.SuperUser {
		return fmt.Errorf("%w: %s", ErrNoCredentials, level)
	}

	c := p.SuperUser()

	//nolint:bodyclose // resty reads and closes the body
	resp, err := c.Unchecked(category).Delete(ctx, identity)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", category, identity, err)
	}

	if err := c.expectStatus(resp, http.StatusOK, http.StatusNoContent, http.StatusNotFound); err != nil {
		return err
	}

	// Deleting a project takes its subprojects and build types with it.
	if resp.StatusCode() == http.StatusNotFound {
		c.log.V(1).Info("entity already deleted", "category", category, "identity", identity)
	}

	return nil
}
