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

var _ = Describe("Build Configuration Parameters", func() {
	var parent requests.Option

	BeforeEach(func() {
		api.MustCreate(ctx, fixture.SuperUser, models.KindProject, fixture.Data.Project)
		api.MustCreate(ctx, fixture.SuperUser, models.KindBuildType, fixture.Data.BuildType)

		parent = requests.WithParent(fixture.Data.BuildType.ID)
	})

	It("should create and read a parameter", func() {
		parameter := generators.GenerateParameter(generators.ParameterOptions{})

		api.MustCreate(ctx, fixture.SuperUser, models.KindBuildTypeParameter, parameter, parent)

		read := api.MustRead[*models.Property](ctx, fixture.SuperUser, models.KindBuildTypeParameter, parameter.Name, parent)
		Expect(read).To(Equal(parameter))

		buildType := api.MustRead[*models.BuildType](ctx, fixture.SuperUser, models.KindBuildType, fixture.Data.BuildType.ID)
		value, ok := buildType.Parameters.Get(parameter.Name)
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(parameter.Value))
	})

	It("should update a parameter value", func() {
		parameter := generators.GenerateParameter(generators.ParameterOptions{})
		api.MustCreate(ctx, fixture.SuperUser, models.KindBuildTypeParameter, parameter, parent)

		request, err := fixture.SuperUser.Request(models.KindBuildTypeParameter, parent)
		Expect(err).NotTo(HaveOccurred())

		parameter.Value = "updated"

		updated, err := requests.As[*models.Property](request.Update(ctx, parameter.Name, parameter))
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Value).To(Equal("updated"))
	})

	It("should delete a parameter", func() {
		parameter := generators.GenerateParameter(generators.ParameterOptions{})
		api.MustCreate(ctx, fixture.SuperUser, models.KindBuildTypeParameter, parameter, parent)

		request, err := fixture.SuperUser.Request(models.KindBuildTypeParameter, parent)
		Expect(err).NotTo(HaveOccurred())

		_, err = request.Delete(ctx, parameter.Name)
		Expect(err).NotTo(HaveOccurred())

		resp, err := request.Unchecked().Read(ctx, parameter.Name)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
	})
})
