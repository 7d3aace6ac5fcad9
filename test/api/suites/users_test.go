/*
Copyright 2026 Nscale.

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

	"github.com/unikorn-cloud/teamcity-testing/pkg/generators"
	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/test/api"
)

var _ = Describe("User Management", func() {
	Context("When the super user creates a user", func() {
		It("should assign an id and never return the password", func() {
			created := api.MustCreate(ctx, fixture.SuperUser, models.KindUser, fixture.Data.User)

			Expect(created.ID).NotTo(BeZero())
			Expect(created.Password).To(BeEmpty())
			Expect(created.Roles.Has(models.RoleSystemAdmin, models.GlobalScope)).To(BeTrue())
		})

		It("should let the user read their own profile", func() {
			user := fixture.AuthAs(ctx, fixture.Data.User)

			self := api.MustRead[*models.User](ctx, user, models.KindUser, fixture.Data.User.Username)
			Expect(self.Email).To(Equal(fixture.Data.User.Email))
		})

		It("should reject a duplicate username", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindUser, fixture.Data.User)

			duplicate := generators.GenerateUser(generators.UserOptions{Username: fixture.Data.User.Username})

			request, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindUser)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Create(ctx, duplicate)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("When a project viewer manages users", func() {
		It("should not be able to create users", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

			viewer := api.CreateProjectRoleUser(fixture.Data.Project, models.RoleProjectViewer)
			fixture.AuthAs(ctx, viewer)

			request, err := fixture.Unchecked(env.Builder.AuthSpec(viewer)).Request(models.KindUser)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Create(ctx, generators.GenerateUser(generators.UserOptions{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
		})
	})
})
