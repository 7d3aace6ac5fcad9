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

// Package generators produces randomized but valid test data.  Each kind has
// its own generator taking an options structure that lists exactly the fields
// that may be overridden; zero valued options are randomized.  Generators are
// pure factories and never talk to a server.
package generators

import (
	"fmt"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"

	"k8s.io/utils/ptr"
)

const (
	// DefaultStepType is the command line runner.
	DefaultStepType = "simpleRunner"
)

// ProjectOptions overrides generated project fields.
type ProjectOptions struct {
	ID       string
	Name     string
	ParentID string
}

// GenerateProject returns a new top level project unless a parent is given.
func GenerateProject(options ProjectOptions) *models.Project {
	project := &models.Project{
		ID:                        RandomID(),
		Name:                      RandomName("project"),
		ParentProject:             &models.Locator{Locator: models.RootProjectID},
		CopyAllAssociatedSettings: ptr.To(true),
	}

	if options.ID != "" {
		project.ID = options.ID
	}

	if options.Name != "" {
		project.Name = options.Name
	}

	if options.ParentID != "" {
		project.ParentProject.Locator = options.ParentID
	}

	return project
}

// BuildTypeOptions overrides generated build configuration fields.
type BuildTypeOptions struct {
	ID   string
	Name string
	// ProjectID takes precedence over a project in the dependency list.
	ProjectID string
	// Steps replaces the default single command line step.
	Steps []models.Step
}

// GenerateBuildType returns a new build configuration owned by the project
// supplied in the options or, failing that, the first project in deps.
func GenerateBuildType(deps []models.Entity, options BuildTypeOptions) (*models.BuildType, error) {
	projectID := options.ProjectID

	if projectID == "" {
		project, ok := findProject(deps)
		if !ok {
			return nil, &MissingDependencyError{Kind: models.KindBuildType, Requires: models.KindProject}
		}

		projectID = project.ID
	}

	steps := options.Steps
	if steps == nil {
		steps = []models.Step{
			{
				Name: RandomName("step"),
				Type: DefaultStepType,
				Properties: &models.Properties{
					Property: []models.Property{
						{Name: "script.content", Value: "echo 'Hello World!'"},
						{Name: "use.custom.script", Value: "true"},
					},
				},
			},
		}
	}

	buildType := &models.BuildType{
		ID:        RandomID(),
		Name:      RandomName("buildType"),
		ProjectID: projectID,
		Project:   &models.ProjectRef{ID: projectID},
		Steps: &models.Steps{
			Count: len(steps),
			Step:  steps,
		},
	}

	if options.ID != "" {
		buildType.ID = options.ID
	}

	if options.Name != "" {
		buildType.Name = options.Name
	}

	return buildType, nil
}

// UserOptions overrides generated user fields.
type UserOptions struct {
	Username string
	Password string
	Email    string
	// Roles replaces the default global system administrator role.
	Roles *models.Roles
}

// GenerateUser returns a new user, by default a global system administrator.
func GenerateUser(options UserOptions) *models.User {
	username := RandomName("user")

	user := &models.User{
		Username: username,
		Password: RandomName("password"),
		Name:     username,
		Email:    username + "@example.com",
		Roles:    GenerateRoles(RoleOptions{}),
	}

	if options.Username != "" {
		user.Username = options.Username
	}

	if options.Password != "" {
		user.Password = options.Password
	}

	if options.Email != "" {
		user.Email = options.Email
	}

	if options.Roles != nil {
		user.Roles = options.Roles
	}

	return user
}

// RoleOptions overrides the generated role.
type RoleOptions struct {
	RoleID string
	Scope  string
}

// GenerateRoles returns a single role set, by default a global system
// administrator.
func GenerateRoles(options RoleOptions) *models.Roles {
	role := models.Role{
		RoleID: models.RoleSystemAdmin,
		Scope:  models.GlobalScope,
	}

	if options.RoleID != "" {
		role.RoleID = options.RoleID
	}

	if options.Scope != "" {
		role.Scope = options.Scope
	}

	return &models.Roles{
		Role: []models.Role{role},
	}
}

// GenerateProjectRole returns a role set scoped to the first project in deps.
func GenerateProjectRole(deps []models.Entity, roleID string) (*models.Roles, error) {
	project, ok := findProject(deps)
	if !ok {
		return nil, &MissingDependencyError{Kind: models.KindRole, Requires: models.KindProject}
	}

	return GenerateRoles(RoleOptions{RoleID: roleID, Scope: models.ProjectScope(project.ID)}), nil
}

// ParameterOptions overrides the generated parameter.
type ParameterOptions struct {
	Name  string
	Value string
}

// GenerateParameter returns a new build configuration parameter.
func GenerateParameter(options ParameterOptions) *models.Property {
	parameter := &models.Property{
		Name:  "env." + RandomName("param"),
		Value: randomToken(),
	}

	if options.Name != "" {
		parameter.Name = options.Name
	}

	if options.Value != "" {
		parameter.Value = options.Value
	}

	return parameter
}

// Generate returns a new entity of the given kind with default options.
func Generate(kind models.Kind, deps []models.Entity) (models.Entity, error) {
	switch kind {
	case models.KindProject:
		return GenerateProject(ProjectOptions{}), nil
	case models.KindBuildType:
		buildType, err := GenerateBuildType(deps, BuildTypeOptions{})
		if err != nil {
			return nil, err
		}

		return buildType, nil
	case models.KindUser:
		return GenerateUser(UserOptions{}), nil
	case models.KindRole:
		return GenerateRoles(RoleOptions{}), nil
	case models.KindBuildTypeParameter:
		return GenerateParameter(ParameterOptions{}), nil
	}

	return nil, fmt.Errorf("generating %q: unsupported kind", kind)
}

// TestData is the per test data bundle, a user, a project and a build
// configuration in that project.
type TestData struct {
	User      *models.User      `json:"user" yaml:"user"`
	Project   *models.Project   `json:"project" yaml:"project"`
	BuildType *models.BuildType `json:"buildType" yaml:"buildType"`
}

// GenerateTestData returns a wired bundle.
func GenerateTestData() *TestData {
	project := GenerateProject(ProjectOptions{})

	buildType, err := GenerateBuildType([]models.Entity{project}, BuildTypeOptions{})
	if err != nil {
		// The project dependency is always satisfied above.
		panic(err)
	}

	return &TestData{
		User:      GenerateUser(UserOptions{}),
		Project:   project,
		BuildType: buildType,
	}
}
