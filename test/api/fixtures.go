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


//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/teamcity-testing/pkg/generators"
	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/requests"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

// Fixture is the per scenario state, fresh test data and a record of
// everything created so it can be deleted afterwards.
type Fixture struct {
	Env     *Environment
	Storage *requests.TestDataStorage
	// SuperUser makes checked requests as the super user.
	SuperUser *requests.CheckedRequests
	// Data is generated but not yet created on the server.
	Data *generators.TestData
}

// NewFixture creates a fixture and schedules cleanup of whatever the scenario
// creates, this runs whether the scenario passes or fails.
func NewFixture(env *Environment) *Fixture {
	f := &Fixture{
		Env:     env,
		Storage: requests.NewTestDataStorage(),
		Data:    generators.GenerateTestData(),
	}

	f.SuperUser = f.Checked(env.Builder.SuperUserSpec())

	DeferCleanup(func() {
		records := f.Storage.Records()

		if err := f.Storage.DeleteAll(context.Background(), env.Builder.SuperUserSpec(), env.Options()...); err != nil {
			GinkgoWriter.Printf("Warning: failed to clean up test data: %v\n", err)
			return
		}

		GinkgoWriter.Printf("Cleaned up %d resources\n", len(records))
	})

	return f
}

// Checked returns checked requests made with the specification, anything
// they create is cleaned up with the fixture.
func (f *Fixture) Checked(spec *specification.Specification) *requests.CheckedRequests {
	return requests.NewCheckedRequests(spec, append(f.Env.Options(), requests.WithStorage(f.Storage))...)
}

// Unchecked returns unchecked requests made with the specification.
func (f *Fixture) Unchecked(spec *specification.Specification) *requests.UncheckedRequests {
	return requests.NewUncheckedRequests(spec, f.Env.Options()...)
}

// AuthAs creates the user with the super user and returns checked requests
// authenticated as them.
func (f *Fixture) AuthAs(ctx context.Context, user *models.User) *requests.CheckedRequests {
	MustCreate(ctx, f.SuperUser, models.KindUser, user)

	return f.Checked(f.Env.Builder.AuthSpec(user))
}

// MustCreate creates an entity with a checked request and returns the
// server's representation of it, failing the scenario on error.
func MustCreate[T models.Entity](ctx context.Context, checked *requests.CheckedRequests, kind models.Kind, entity T, extra ...requests.Option) T {
	request, err := checked.Request(kind, extra...)
	Expect(err).NotTo(HaveOccurred())

	created, err := requests.As[T](request.Create(ctx, entity))
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created %s: %s\n", kind, created.Identity())

	return created
}

// MustRead reads an entity with a checked request, failing the scenario on
// error.
func MustRead[T models.Entity](ctx context.Context, checked *requests.CheckedRequests, kind models.Kind, id string, extra ...requests.Option) T {
	request, err := checked.Request(kind, extra...)
	Expect(err).NotTo(HaveOccurred())

	entity, err := requests.As[T](request.Read(ctx, id))
	Expect(err).NotTo(HaveOccurred())

	return entity
}

// CreateProjectRoleUser generates a user holding the role on the project.
func CreateProjectRoleUser(project *models.Project, roleID string) *models.User {
	roles, err := generators.GenerateProjectRole([]models.Entity{project}, roleID)
	Expect(err).NotTo(HaveOccurred())

	return generators.GenerateUser(generators.UserOptions{Roles: roles})
}
