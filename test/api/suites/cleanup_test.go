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

	"github.com/teamcity-api-tests/apitests/pkg/client"
	"github.com/teamcity-api-tests/apitests/pkg/generator"
	"github.com/teamcity-api-tests/apitests/pkg/models"
	"github.com/teamcity-api-tests/apitests/pkg/registry"
	"github.com/teamcity-api-tests/apitests/test/api"
	"github.com/teamcity-api-tests/apitests/test/fakeserver"
)

var _ = Describe("Created Entity Cleanup", func() {
	var (
		td       *api.TestData
		tracking *registry.Registry
	)

	BeforeEach(func() {
		if session.Server == nil {
			Skip("cleanup is only observable against the fake server")
		}

		td = session.GenerateTestData()
		tracking = registry.New(session.Pool,
			registry.WithLogger(GinkgoLogr.WithName("cleanup")),
			registry.WithRetries(0),
		)
	})

	It("should delete every created entity with super user credentials", func() {
		userClient := session.CreateUser(ctx, td.User)

		project, err := client.Checked[models.Project](userClient, models.Projects, tracking).Create(ctx, td.Project)
		Expect(err).NotTo(HaveOccurred())

		td.BuildType.Project = project

		buildType, err := client.Checked[models.BuildType](userClient, models.BuildTypes, tracking).Create(ctx, td.BuildType)
		Expect(err).NotTo(HaveOccurred())

		Expect(tracking.Len()).To(Equal(2))

		report := tracking.DeleteAll(ctx)

		Expect(report.Failed).To(BeEmpty())
		Expect(report.Deleted).To(ConsistOf(
			registry.Entry{Category: models.Projects, Identity: project.ID},
			registry.Entry{Category: models.BuildTypes, Identity: buildType.ID},
		))
		Expect(tracking.Len()).To(BeZero())

		Expect(session.Server.Exists(models.Projects, project.ID)).To(BeFalse())
		Expect(session.Server.Deletions()).To(ContainElements(
			fakeserver.Deletion{Category: models.BuildTypes, Identity: buildType.ID},
			fakeserver.Deletion{Category: models.Projects, Identity: project.ID},
		))
	})

	It("should keep deleting after a failure", func() {
		project, err := client.Checked[models.Project](session.SuperUser(), models.Projects, tracking).Create(ctx, td.Project)
		Expect(err).NotTo(HaveOccurred())

		// The root project can never be deleted.
		tracking.Record(models.Projects, fakeserver.RootProjectID)

		report := tracking.DeleteAll(ctx)

		Expect(report.Deleted).To(ConsistOf(registry.Entry{Category: models.Projects, Identity: project.ID}))
		Expect(report.Failed).To(HaveLen(1))
		Expect(report.Failed[0].Entry.Identity).To(Equal(fakeserver.RootProjectID))
		Expect(report.Failed[0]).To(MatchError(registry.ErrDeletion))
		Expect(report.Failed[0]).To(MatchError(client.ErrUnexpectedStatus))

		Expect(tracking.Len()).To(BeZero())
		Expect(tracking.State()).To(Equal(registry.Active))
	})

	It("should count subprojects removed with their parent as deleted", func() {
		projects := client.Checked[models.Project](session.SuperUser(), models.Projects, tracking)

		parent, err := projects.Create(ctx, td.Project)
		Expect(err).NotTo(HaveOccurred())

		child, err := generator.One[*models.Project](session.Generator, nil)
		Expect(err).NotTo(HaveOccurred())

		child, err = projects.Create(ctx, api.NewProjectPayload(child).WithParent(parent.ID).Build())
		Expect(err).NotTo(HaveOccurred())

		report := tracking.DeleteAll(ctx)

		Expect(report.Failed).To(BeEmpty())
		Expect(report.Deleted).To(ConsistOf(
			registry.Entry{Category: models.Projects, Identity: parent.ID},
			registry.Entry{Category: models.Projects, Identity: child.ID},
		))
		Expect(session.Server.Exists(models.Projects, child.ID)).To(BeFalse())
	})
})
