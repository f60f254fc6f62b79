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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/teamcity-api-tests/apitests/pkg/client"
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// GenerateTestData generates a fresh bundle, failing the test on error.
func (s *Session) GenerateTestData() *TestData {
	GinkgoHelper()

	td, err := NewTestData(s.Generator)
	Expect(err).NotTo(HaveOccurred())

	return td
}

// Projects returns a checked project requester for c. Created projects are
// recorded for cleanup.
func (s *Session) Projects(c *client.Client) *client.CheckedRequest[models.Project, *models.Project] {
	return client.Checked[models.Project](c, models.Projects, s.Registry)
}

// BuildTypes returns a checked build type requester for c.
func (s *Session) BuildTypes(c *client.Client) *client.CheckedRequest[models.BuildType, *models.BuildType] {
	return client.Checked[models.BuildType](c, models.BuildTypes, s.Registry)
}

// Users returns a checked user requester for c.
func (s *Session) Users(c *client.Client) *client.CheckedRequest[models.User, *models.User] {
	return client.Checked[models.User](c, models.Users, s.Registry)
}

// CreateProject creates the project as the super user. It is deleted when
// the session closes.
func (s *Session) CreateProject(ctx context.Context, project *models.Project) *models.Project {
	GinkgoHelper()

	created, err := s.Projects(s.SuperUser()).Create(ctx, project)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created project with ID: %s\n", created.ID)

	return created
}

// CreateBuildType creates the build type as the super user.
func (s *Session) CreateBuildType(ctx context.Context, buildType *models.BuildType) *models.BuildType {
	GinkgoHelper()

	created, err := s.BuildTypes(s.SuperUser()).Create(ctx, buildType)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created build type with ID: %s\n", created.ID)

	return created
}

// CreateUser creates the user and returns a client authenticated as them.
func (s *Session) CreateUser(ctx context.Context, user *models.User) *client.Client {
	GinkgoHelper()

	created, err := s.Users(s.SuperUser()).Create(ctx, user)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created user %s with ID: %d\n", created.Username, created.ID)

	return s.As(user)
}

// CreateTestData creates the project, then the build type, as the super user.
func (s *Session) CreateTestData(ctx context.Context, td *TestData) {
	GinkgoHelper()

	td.Project = s.CreateProject(ctx, td.Project)
	td.BuildType.Project = td.Project
	td.BuildType = s.CreateBuildType(ctx, td.BuildType)
}

// VerifyBuildTypes checks the project lists exactly the named build types.
func VerifyBuildTypes(project *models.Project, names ...string) {
	GinkgoHelper()

	Expect(project.BuildTypes).NotTo(BeNil())
	Expect(project.BuildTypes.Count).To(Equal(len(names)))

	actual := make([]string, len(project.BuildTypes.BuildType))
	for i, buildType := range project.BuildTypes.BuildType {
		actual[i] = buildType.Name
	}

	Expect(actual).To(ConsistOf(names))
}
