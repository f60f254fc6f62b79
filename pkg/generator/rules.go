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

package generator

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/teamcity-api-tests/apitests/pkg/models"

	"k8s.io/utils/ptr"
)

const (
	// DefaultPrefix marks everything created by the suites.
	DefaultPrefix = "test_"

	// tokenLength random letters give ample headroom against collisions
	// within a session.
	tokenLength = 10
)

// Rule produces a random value for a semantic type.
type Rule func(f *gofakeit.Faker) any

func defaultRules(prefix func() string) map[models.Semantic]Rule {
	token := func(f *gofakeit.Faker) string {
		return prefix() + f.LetterN(tokenLength)
	}

	return map[models.Semantic]Rule{
		models.SemanticIdentifier: func(f *gofakeit.Faker) any {
			return token(f)
		},
		models.SemanticName: func(f *gofakeit.Faker) any {
			return token(f)
		},
		models.SemanticUsername: func(f *gofakeit.Faker) any {
			return token(f)
		},
		models.SemanticPassword: func(f *gofakeit.Faker) any {
			return f.Password(true, true, true, false, false, 16)
		},
		models.SemanticEmail: func(f *gofakeit.Faker) any {
			return strings.ToLower(token(f)) + "@example.com"
		},
		models.SemanticLocator: func(f *gofakeit.Faker) any {
			return models.Locator(token(f))
		},
		models.SemanticFlag: func(f *gofakeit.Faker) any {
			return ptr.To(f.Bool())
		},
		models.SemanticRoles: func(_ *gofakeit.Faker) any {
			return &models.Roles{
				Role: []models.UserRole{
					{RoleID: "SYSTEM_ADMIN", Scope: "g"},
				},
			}
		},
	}
}
