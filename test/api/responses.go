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

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

type responseSpec struct {
	Status int
	Body   string
}

func (r responseSpec) String() string {
	if r.Body == "" {
		return fmt.Sprintf("status %d", r.Status)
	}

	return fmt.Sprintf("status %d with body containing %q", r.Status, r.Body)
}

func matchResponse(spec responseSpec) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *resty.Response) (bool, error) {
		if resp == nil {
			return false, errors.New("expected a response, got nil")
		}

		return resp.StatusCode() == spec.Status && strings.Contains(resp.String(), spec.Body), nil
	}).WithTemplate("Expected response:\n{{.To}} have {{.Data}}\ngot status {{.Actual.StatusCode}} with body:\n{{.Actual.String}}", spec)
}

// HaveStatus matches a response with the given status code.
func HaveStatus(status int) types.GomegaMatcher {
	return matchResponse(responseSpec{Status: status})
}

// BeUnauthorized matches a request rejected for missing or bad credentials.
func BeUnauthorized() types.GomegaMatcher {
	return matchResponse(responseSpec{Status: http.StatusUnauthorized})
}

// BeForbidden matches a request the caller lacks permission for.
func BeForbidden() types.GomegaMatcher {
	return matchResponse(responseSpec{Status: http.StatusForbidden})
}

// BeProjectNotFound matches a reference to an unknown project.
func BeProjectNotFound(id string) types.GomegaMatcher {
	return matchResponse(responseSpec{
		Status: http.StatusNotFound,
		Body:   fmt.Sprintf("Project cannot be found by external id '%s'", id),
	})
}

// BeDuplicateProjectName matches a project created with a sibling's name.
func BeDuplicateProjectName(name string) types.GomegaMatcher {
	return matchResponse(responseSpec{
		Status: http.StatusBadRequest,
		Body:   fmt.Sprintf("Project with this name already exists: %s", name),
	})
}

// BeEmptyProjectName matches a project created without a name.
func BeEmptyProjectName() types.GomegaMatcher {
	return matchResponse(responseSpec{
		Status: http.StatusBadRequest,
		Body:   "Project name cannot be empty.",
	})
}

// BeInvalidProjectID matches a project whose ID does not start with a letter.
// The server reports this as an internal error.
func BeInvalidProjectID(id string) types.GomegaMatcher {
	// An empty ID is reported as starting with a space.
	first, _ := utf8.DecodeRuneInString(id + " ")

	return matchResponse(responseSpec{
		Status: http.StatusInternalServerError,
		Body:   fmt.Sprintf("Project ID \"%s\" is invalid: starts with non-letter character '%c'.", id, first),
	})
}

// BeBuildTypeNotFound matches a read of an unknown build configuration.
func BeBuildTypeNotFound(id string) types.GomegaMatcher {
	return matchResponse(responseSpec{
		Status: http.StatusNotFound,
		Body:   fmt.Sprintf("No build type nor template is found by id '%s'.", id),
	})
}

// BeUserNotFound matches a read of an unknown user.
func BeUserNotFound(locator string) types.GomegaMatcher {
	dimension, value, _ := strings.Cut(locator, ":")

	return matchResponse(responseSpec{
		Status: http.StatusNotFound,
		Body:   fmt.Sprintf("No user can be found by %s '%s'.", dimension, value),
	})
}
