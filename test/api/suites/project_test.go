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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/teamcity-api-tests/apitests/pkg/generator"
	"github.com/teamcity-api-tests/apitests/pkg/models"
	"github.com/teamcity-api-tests/apitests/test/api"
)

var _ = Describe("Project Management", func() {
	var td *api.TestData

	BeforeEach(func() {
		td = session.GenerateTestData()
	})

	Context("When creating a project", func() {
		Describe("Given a valid generated project", func() {
			It("should create the project under the root project", func() {
				created := session.CreateProject(ctx, td.Project)

				Expect(created.ID).To(Equal(td.Project.ID))
				Expect(created.Name).To(Equal(td.Project.Name))
				Expect(created.ParentProject).NotTo(BeNil())
				Expect(created.ParentProject.ID).To(Equal("_Root"))

				read, err := session.Projects(session.SuperUser()).Read(ctx, created.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(read.Name).To(Equal(td.Project.Name))
			})

			It("should create the project as a user with a role", func() {
				userClient := session.CreateUser(ctx, td.User)

				created, err := session.Projects(userClient).Create(ctx, td.Project)
				Expect(err).NotTo(HaveOccurred())
				Expect(created.ID).To(Equal(td.Project.ID))
			})
		})

		Describe("Given a parent project", func() {
			It("should nest the project under the parent", func() {
				parent := session.CreateProject(ctx, td.Project)

				child, err := generator.One[*models.Project](session.Generator, nil)
				Expect(err).NotTo(HaveOccurred())

				created := session.CreateProject(ctx, api.NewProjectPayload(child).WithParent(parent.ID).Build())

				Expect(created.ParentProject).NotTo(BeNil())
				Expect(created.ParentProject.ID).To(Equal(parent.ID))
			})

			It("should reject an unknown parent project", func() {
				missing := td.Project.ID + "_missing"

				resp, err := session.SuperUser().Unchecked(models.Projects).Create(ctx,
					api.NewProjectPayload(td.Project).WithParent(missing).Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeProjectNotFound(missing))
			})
		})

		Describe("Given a source project", func() {
			It("should copy the build configurations of the source", func() {
				session.CreateTestData(ctx, td)

				copied, err := generator.One[*models.Project](session.Generator, nil)
				Expect(err).NotTo(HaveOccurred())

				created := session.CreateProject(ctx, api.NewProjectPayload(copied).WithSource(td.Project.ID).Build())

				api.VerifyBuildTypes(created, td.BuildType.Name)
			})

			It("should reject an unknown source project", func() {
				missing := td.Project.ID + "_missing"

				resp, err := session.SuperUser().Unchecked(models.Projects).Create(ctx,
					api.NewProjectPayload(td.Project).WithSource(missing).Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeProjectNotFound(missing))
			})
		})

		Describe("Given invalid project data", func() {
			It("should reject a duplicate name", func() {
				session.CreateProject(ctx, td.Project)

				resp, err := session.SuperUser().Unchecked(models.Projects).Create(ctx,
					api.NewProjectPayload(td.Project).WithID(td.Project.ID+"_copy").Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeDuplicateProjectName(td.Project.Name))
			})

			It("should reject an empty name", func() {
				resp, err := session.SuperUser().Unchecked(models.Projects).Create(ctx,
					api.NewProjectPayload(td.Project).WithName("").Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeEmptyProjectName())
			})

			It("should reject an ID starting with a digit", func() {
				id := "2" + td.Project.ID

				resp, err := session.SuperUser().Unchecked(models.Projects).Create(ctx,
					api.NewProjectPayload(td.Project).WithID(id).Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeInvalidProjectID(id))
			})
		})
	})

	Context("When authenticating", func() {
		It("should reject unknown credentials", func() {
			resp, err := session.As(td.User).Unchecked(models.Projects).Create(ctx, td.Project)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.BeUnauthorized())
		})

		It("should forbid project creation to a user without roles", func() {
			td.User.Roles = nil
			userClient := session.CreateUser(ctx, td.User)

			resp, err := userClient.Unchecked(models.Projects).Create(ctx, td.Project)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.BeForbidden())
		})
	})
})
