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

package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Category identifies the remote resource collection an entity lives in.
type Category string

const (
	Projects   Category = "projects"
	BuildTypes Category = "buildTypes"
	Users      Category = "users"
)

// Categories returns every known resource category.
func Categories() []Category {
	return []Category{Projects, BuildTypes, Users}
}

// Path returns the collection path for the category.
func (c Category) Path() string {
	return fmt.Sprintf("/app/rest/%s", url.PathEscape(string(c)))
}

// ItemPath returns the path of a single entity.  Plain identities are
// addressed with an id locator, identities that already are locators are used
// verbatim.
func (c Category) ItemPath(identity string) string {
	return fmt.Sprintf("%s/%s", c.Path(), url.PathEscape(Locator(identity)))
}

// Locator turns an identity into a locator expression.
func Locator(identity string) string {
	if strings.Contains(identity, ":") {
		return identity
	}

	return "id:" + identity
}
