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

package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"

	"k8s.io/utils/ptr"
)

func TestRoleScopes(t *testing.T) {
	t.Parallel()

	global := models.Role{RoleID: models.RoleSystemAdmin, Scope: models.GlobalScope}
	assert.True(t, global.Global())

	_, ok := global.ProjectID()
	assert.False(t, ok)

	scoped := models.Role{RoleID: models.RoleProjectAdmin, Scope: models.ProjectScope("Foo_Bar")}
	assert.False(t, scoped.Global())
	assert.Equal(t, "p:Foo_Bar", scoped.Scope)

	projectID, ok := scoped.ProjectID()
	require.True(t, ok)
	assert.Equal(t, "Foo_Bar", projectID)
}

func TestRolesHas(t *testing.T) {
	t.Parallel()

	var empty *models.Roles
	assert.False(t, empty.Has(models.RoleSystemAdmin, models.GlobalScope))

	roles := &models.Roles{
		Role: []models.Role{
			{RoleID: models.RoleProjectAdmin, Scope: models.ProjectScope("A")},
		},
	}

	assert.True(t, roles.Has(models.RoleProjectAdmin, "p:A"))
	assert.False(t, roles.Has(models.RoleProjectAdmin, "p:B"))
	assert.Equal(t, "PROJECT_ADMIN@p:A", roles.Identity())
}

func TestBuildTypeOwner(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", (&models.BuildType{ProjectID: "A"}).OwnerID())
	assert.Equal(t, "B", (&models.BuildType{ProjectID: "A", Project: &models.ProjectRef{ID: "B"}}).OwnerID())
}

func TestProjectParent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.RootProjectID, (&models.Project{ID: "A"}).ParentID())
	assert.Equal(t, "B", (&models.Project{ID: "A", ParentProject: &models.Locator{Locator: "B"}}).ParentID())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := &models.Project{
		ID:                        "test_0123abcd",
		Name:                      "test project",
		ParentProject:             &models.Locator{Locator: models.RootProjectID},
		CopyAllAssociatedSettings: ptr.To(true),
	}
	require.NoError(t, models.Validate(valid))

	require.Error(t, models.Validate(&models.Project{ID: "0starts_with_digit", Name: "x"}))
	require.Error(t, models.Validate(&models.Project{ID: "has-dash", Name: "x"}))
	require.Error(t, models.Validate(&models.Project{ID: "missing_name"}))

	require.NoError(t, models.Validate(&models.User{Username: "jdoe", Email: "jdoe@example.com"}))
	require.Error(t, models.Validate(&models.User{Username: "jdoe", Email: "not an email"}))

	require.Error(t, models.Validate(&models.BuildType{
		ID:   "test_bt",
		Name: "bt",
		Steps: &models.Steps{
			Step: []models.Step{{Name: "no type"}},
		},
	}))
}

func TestValidExternalID(t *testing.T) {
	t.Parallel()

	assert.True(t, models.ValidExternalID("a"))
	assert.True(t, models.ValidExternalID("Test_123"))
	assert.False(t, models.ValidExternalID(""))
	assert.False(t, models.ValidExternalID("_Root"))
	assert.False(t, models.ValidExternalID("a b"))
}

func TestPropertiesGet(t *testing.T) {
	t.Parallel()

	var empty *models.Properties

	_, ok := empty.Get("x")
	assert.False(t, ok)

	props := &models.Properties{Property: []models.Property{{Name: "env.FOO", Value: "bar"}}}

	value, ok := props.Get("env.FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", value)
}
