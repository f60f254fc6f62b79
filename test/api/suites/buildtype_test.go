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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/teamcity-api-tests/apitests/pkg/models"
	"github.com/teamcity-api-tests/apitests/test/api"
)

var _ = Describe("Build Configuration Management", func() {
	var td *api.TestData

	BeforeEach(func() {
		td = session.GenerateTestData()
	})

	Context("When creating a build configuration", func() {
		Describe("Given an existing project", func() {
			BeforeEach(func() {
				td.Project = session.CreateProject(ctx, td.Project)
			})

			It("should create the build configuration in the project", func() {
				created := session.CreateBuildType(ctx, api.NewBuildTypePayload(td.BuildType).WithProject(td.Project.ID).Build())

				Expect(created.ID).To(Equal(td.BuildType.ID))
				Expect(created.Project).NotTo(BeNil())
				Expect(created.Project.ID).To(Equal(td.Project.ID))

				project, err := session.Projects(session.SuperUser()).Read(ctx, td.Project.ID)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBuildTypes(project, td.BuildType.Name)
			})

			It("should keep the build steps", func() {
				created := session.CreateBuildType(ctx, api.NewBuildTypePayload(td.BuildType).
					WithProject(td.Project.ID).
					WithCommandLineStep("hello", "echo 'Hello World!'").
					Build())

				read, err := session.BuildTypes(session.SuperUser()).Read(ctx, created.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(read.Steps).NotTo(BeNil())
				Expect(read.Steps.Step).To(HaveLen(1))
				Expect(read.Steps.Step[0].Name).To(Equal("hello"))
			})

			It("should reject a duplicate name within the project", func() {
				session.CreateBuildType(ctx, api.NewBuildTypePayload(td.BuildType).WithProject(td.Project.ID).Build())

				duplicate := api.NewBuildTypePayload(td.BuildType).WithProject(td.Project.ID).Build()
				duplicate.ID += "_copy"

				resp, err := session.SuperUser().Unchecked(models.BuildTypes).Create(ctx, duplicate)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
			})

			It("should reject an empty name", func() {
				resp, err := session.SuperUser().Unchecked(models.BuildTypes).Create(ctx,
					api.NewBuildTypePayload(td.BuildType).WithProject(td.Project.ID).WithName("").Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
			})
		})

		Describe("Given no usable project", func() {
			It("should reject an unknown project", func() {
				resp, err := session.SuperUser().Unchecked(models.BuildTypes).Create(ctx, td.BuildType)

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.BeProjectNotFound(td.Project.ID))
			})

			It("should reject a request without a project", func() {
				resp, err := session.SuperUser().Unchecked(models.BuildTypes).Create(ctx,
					api.NewBuildTypePayload(td.BuildType).WithoutProject().Build())

				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
			})
		})
	})

	Context("When reading a build configuration", func() {
		It("should report an unknown build configuration", func() {
			resp, err := session.SuperUser().Unchecked(models.BuildTypes).Read(ctx, td.BuildType.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.BeBuildTypeNotFound(td.BuildType.ID))
		})
	})
})
