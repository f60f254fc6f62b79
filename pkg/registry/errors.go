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
	"errors"
	"fmt"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

var (
	// ErrIdentityResolution matches every IdentityResolutionError.
	ErrIdentityResolution = errors.New("entity has no identity")

	// ErrDeletion matches every DeletionError.
	ErrDeletion = errors.New("deletion failed")
)

// IdentityResolutionError is returned when an entity reported as created has
// neither an id nor a locator.
type IdentityResolutionError struct {
	Category models.Category
	Kind     models.Kind
}

func (e *IdentityResolutionError) Error() string {
	return fmt.Sprintf("cannot track %s entity of kind %q: neither id nor locator is set", e.Category, e.Kind)
}

func (e *IdentityResolutionError) Is(target error) bool {
	return target == ErrIdentityResolution
}

// DeletionError records a tracked entity that could not be removed.
type DeletionError struct {
	Entry Entry
	Err   error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("deleting %s %s: %v", e.Entry.Category, e.Entry.Identity, e.Err)
}

func (e *DeletionError) Is(target error) bool {
	return target == ErrDeletion
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}
