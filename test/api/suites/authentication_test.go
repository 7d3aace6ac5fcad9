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

var _ = Describe("Authentication", func() {
	Context("When no credentials are presented", func() {
		DescribeTable("should refuse to create",
			func(kind models.Kind, entity func() models.Entity) {
				request, err := fixture.Unchecked(env.Builder.UnauthSpec()).Request(kind)
				Expect(err).NotTo(HaveOccurred())

				resp, err := request.Create(ctx, entity())
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			},
			Entry("a user", models.KindUser, func() models.Entity { return fixture.Data.User }),
			Entry("a project", models.KindProject, func() models.Entity { return fixture.Data.Project }),
			Entry("a build configuration", models.KindBuildType, func() models.Entity { return fixture.Data.BuildType }),
		)

		It("should not leave anything behind", func() {
			request, err := fixture.Unchecked(env.Builder.UnauthSpec()).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			_, err = request.Create(ctx, fixture.Data.Project)
			Expect(err).NotTo(HaveOccurred())

			projects, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			resp, err := projects.Read(ctx, fixture.Data.Project.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("When wrong credentials are presented", func() {
		It("should refuse the request", func() {
			stranger := generators.GenerateUser(generators.UserOptions{})

			request, err := fixture.Unchecked(env.Builder.AuthSpec(stranger)).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Create(ctx, fixture.Data.Project)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("When a user is deleted", func() {
		It("should no longer authenticate", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindUser, fixture.Data.User)

			users, err := fixture.SuperUser.Request(models.KindUser)
			Expect(err).NotTo(HaveOccurred())

			_, err = users.Delete(ctx, fixture.Data.User.Username)
			Expect(err).NotTo(HaveOccurred())

			request, err := fixture.Unchecked(env.Builder.AuthSpec(fixture.Data.User)).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Read(ctx, models.RootProjectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})
})
