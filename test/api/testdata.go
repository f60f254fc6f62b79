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
	"fmt"

	"github.com/teamcity-api-tests/apitests/pkg/generator"
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// TestData is the set of entities a single test works with. The build type
// belongs to the project.
type TestData struct {
	Project   *models.Project
	User      *models.User
	BuildType *models.BuildType
}

// testDataKinds is the generation order, later kinds referring to earlier ones.
//
//nolint:gochecknoglobals
var testDataKinds = []models.Kind{
	models.KindProject,
	models.KindUser,
	models.KindBuildType,
}

// NewTestData generates a fresh, unsaved TestData bundle.
func NewTestData(g *generator.Generator) (*TestData, error) {
	bundle, err := g.GenerateBundle(testDataKinds...)
	if err != nil {
		return nil, err
	}

	td := &TestData{}

	for _, m := range bundle {
		switch t := m.(type) {
		case *models.Project:
			td.Project = t
		case *models.User:
			td.User = t
		case *models.BuildType:
			td.BuildType = t
		default:
			return nil, fmt.Errorf("%w: unexpected %s in test data bundle", generator.ErrGeneration, m.Kind())
		}
	}

	return td, nil
}
