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

var _ = Describe("User Management", func() {
	var td *api.TestData

	BeforeEach(func() {
		td = session.GenerateTestData()
	})

	Context("When creating a user", func() {
		It("should create the user without echoing the password", func() {
			created, err := session.Users(session.SuperUser()).Create(ctx, td.User)
			Expect(err).NotTo(HaveOccurred())

			Expect(created.ID).NotTo(BeZero())
			Expect(created.Username).To(Equal(td.User.Username))
			Expect(created.Password).To(BeEmpty())
		})

		It("should find the user by username", func() {
			session.CreateUser(ctx, td.User)

			read, err := session.Users(session.SuperUser()).Read(ctx, "username:"+td.User.Username)
			Expect(err).NotTo(HaveOccurred())
			Expect(read.Username).To(Equal(td.User.Username))
		})

		It("should reject a duplicate username", func() {
			session.CreateUser(ctx, td.User)

			resp, err := session.SuperUser().Unchecked(models.Users).Create(ctx, td.User)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.HaveStatus(http.StatusBadRequest))
		})

		It("should forbid user creation to a user who is not an administrator", func() {
			td.User.Roles = &models.Roles{Role: []models.UserRole{{RoleID: "PROJECT_DEVELOPER", Scope: "g"}}}
			userClient := session.CreateUser(ctx, td.User)

			other := session.GenerateTestData()

			resp, err := userClient.Unchecked(models.Users).Create(ctx, other.User)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.BeForbidden())
		})
	})

	Context("When reading a user", func() {
		It("should report an unknown user", func() {
			locator := "username:" + td.User.Username

			resp, err := session.SuperUser().Unchecked(models.Users).Read(ctx, locator)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(api.BeUserNotFound(locator))
		})
	})
})
