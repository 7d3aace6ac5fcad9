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

var _ = Describe("Build Configuration Management", func() {
	Context("When a user creates a build configuration", func() {
		Describe("Given a system administrator", func() {
			It("should create the build configuration in their project", func() {
				user := fixture.AuthAs(ctx, fixture.Data.User)

				api.MustCreate(ctx, user, models.KindProject, fixture.Data.Project)
				api.MustCreate(ctx, user, models.KindBuildType, fixture.Data.BuildType)

				buildType := api.MustRead[*models.BuildType](ctx, user, models.KindBuildType, fixture.Data.BuildType.ID)

				Expect(buildType.Name).To(Equal(fixture.Data.BuildType.Name))
				Expect(buildType.OwnerID()).To(Equal(fixture.Data.Project.ID))
			})

			It("should reject a build configuration with a duplicate id", func() {
				user := fixture.AuthAs(ctx, fixture.Data.User)

				api.MustCreate(ctx, user, models.KindProject, fixture.Data.Project)
				api.MustCreate(ctx, user, models.KindBuildType, fixture.Data.BuildType)

				duplicate, err := generators.GenerateBuildType(
					[]models.Entity{fixture.Data.Project},
					generators.BuildTypeOptions{ID: fixture.Data.BuildType.ID},
				)
				Expect(err).NotTo(HaveOccurred())

				request, err := fixture.Unchecked(env.Builder.AuthSpec(fixture.Data.User)).Request(models.KindBuildType)
				Expect(err).NotTo(HaveOccurred())

				resp, err := request.Create(ctx, duplicate)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(resp.String()).To(ContainSubstring(
					"The build configuration / template ID \"%s\" is already used by another configuration or template",
					fixture.Data.BuildType.ID,
				))
			})
		})

		Describe("Given a project administrator", func() {
			It("should create a build configuration in their own project", func() {
				api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

				user := fixture.AuthAs(ctx, api.CreateProjectRoleUser(fixture.Data.Project, models.RoleProjectAdmin))

				created := api.MustCreate(ctx, user, models.KindBuildType, fixture.Data.BuildType)

				Expect(created.ID).To(Equal(fixture.Data.BuildType.ID))
				Expect(created.OwnerID()).To(Equal(fixture.Data.Project.ID))
			})

			It("should not create a build configuration in another project", func() {
				api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

				other := generators.GenerateProject(generators.ProjectOptions{})
				api.MustCreate(ctx, fixture.SuperUser, models.KindProject, other)

				admin := api.CreateProjectRoleUser(fixture.Data.Project, models.RoleProjectAdmin)
				fixture.AuthAs(ctx, admin)

				buildType, err := generators.GenerateBuildType([]models.Entity{other}, generators.BuildTypeOptions{})
				Expect(err).NotTo(HaveOccurred())

				request, err := fixture.Unchecked(env.Builder.AuthSpec(admin)).Request(models.KindBuildType)
				Expect(err).NotTo(HaveOccurred())

				resp, err := request.Create(ctx, buildType)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
				Expect(resp.String()).To(ContainSubstring("You do not have enough permissions to edit project with id: %s", other.ID))
			})
		})

		Describe("Given an unknown project", func() {
			It("should reject the build configuration", func() {
				request, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindBuildType)
				Expect(err).NotTo(HaveOccurred())

				resp, err := request.Create(ctx, fixture.Data.BuildType)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				Expect(resp.String()).To(ContainSubstring("No project found by locator 'id:%s'.", fixture.Data.Project.ID))
			})
		})
	})

	Context("When managing an existing build configuration", func() {
		BeforeEach(func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)
			api.MustCreate(ctx, fixture.SuperUser, models.KindBuildType, fixture.Data.BuildType)
		})

		It("should update the build configuration name", func() {
			update := *fixture.Data.BuildType
			update.Name = generators.RandomName("renamed")

			request, err := fixture.SuperUser.Request(models.KindBuildType)
			Expect(err).NotTo(HaveOccurred())

			_, err = request.Update(ctx, update.ID, &update)
			Expect(err).NotTo(HaveOccurred())

			buildType := api.MustRead[*models.BuildType](ctx, fixture.SuperUser, models.KindBuildType, update.ID)
			Expect(buildType.Name).To(Equal(update.Name))
		})

		It("should delete the build configuration", func() {
			request, err := fixture.SuperUser.Request(models.KindBuildType)
			Expect(err).NotTo(HaveOccurred())

			_, err = request.Delete(ctx, fixture.Data.BuildType.ID)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Unchecked().Read(ctx, fixture.Data.BuildType.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})
})
