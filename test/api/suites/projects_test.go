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
	"github.com/unikorn-cloud/teamcity-testing/pkg/requests"
	"github.com/unikorn-cloud/teamcity-testing/test/api"
)

var _ = Describe("Project Management", func() {
	Context("When creating a project", func() {
		It("should read back what was created", func() {
			created := api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

			project := api.MustRead[*models.Project](ctx, fixture.SuperUser, models.KindProject, created.ID)

			Expect(project.ID).To(Equal(fixture.Data.Project.ID))
			Expect(project.Name).To(Equal(fixture.Data.Project.Name))
			Expect(project.ParentID()).To(Equal(models.RootProjectID))
		})

		It("should create a subproject", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

			child := generators.GenerateProject(generators.ProjectOptions{ParentID: fixture.Data.Project.ID})
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, child)

			project := api.MustRead[*models.Project](ctx, fixture.SuperUser, models.KindProject, child.ID)
			Expect(project.ParentID()).To(Equal(fixture.Data.Project.ID))
		})

		It("should reject a duplicate project id", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

			duplicate := generators.GenerateProject(generators.ProjectOptions{ID: fixture.Data.Project.ID})

			request, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Create(ctx, duplicate)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(resp.String()).To(ContainSubstring("Project ID \"%s\" is already used by another project", duplicate.ID))
		})

		It("should reject an id starting with a digit", func() {
			project := generators.GenerateProject(generators.ProjectOptions{ID: "1" + generators.RandomID()})
			Expect(models.ValidExternalID(project.ID)).To(BeFalse())

			request, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			resp, err := request.Create(ctx, project)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("When updating a project", func() {
		It("should rename the project", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)

			update := *fixture.Data.Project
			update.Name = generators.RandomName("renamed")

			request, err := fixture.SuperUser.Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			updated, err := requests.As[*models.Project](request.Update(ctx, update.ID, &update))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal(update.Name))
			Expect(updated.ParentID()).To(Equal(models.RootProjectID))
		})
	})

	Context("When deleting a project", func() {
		It("should delete its build configurations", func() {
			api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)
			api.MustCreate(ctx, fixture.SuperUser, models.KindBuildType, fixture.Data.BuildType)

			request, err := fixture.SuperUser.Request(models.KindProject)
			Expect(err).NotTo(HaveOccurred())

			_, err = request.Delete(ctx, fixture.Data.Project.ID)
			Expect(err).NotTo(HaveOccurred())

			buildTypes, err := fixture.Unchecked(env.Builder.SuperUserSpec()).Request(models.KindBuildType)
			Expect(err).NotTo(HaveOccurred())

			resp, err := buildTypes.Read(ctx, fixture.Data.BuildType.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})
})
