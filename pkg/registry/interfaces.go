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

package registry

import (
	"context"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

// Client is the API surface used to remove tracked entities.
type Client interface {
	// Delete removes a single entity under the given authorization level.
	Delete(ctx context.Context, level auth.Level, category models.Category, identity string) error
}

// Journal persists tracked entities beyond the life of the process so that
// anything a session failed to delete can be removed later.
type Journal interface {
	Add(entry Entry) error
	Remove(entry Entry) error
	Entries() ([]Entry, error)
	Close() error
}
