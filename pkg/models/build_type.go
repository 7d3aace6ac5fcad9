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

package models

// ProjectRef references the project owning a build configuration.
type ProjectRef struct {
	ID string `json:"id" yaml:"id" validate:"required"`
}

// Step is a single build step.
type Step struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Type       string      `json:"type" yaml:"type" validate:"required"`
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Steps is the ordered list of build steps.
type Steps struct {
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
	Step  []Step `json:"step" yaml:"step" validate:"dive"`
}

// BuildType is a TeamCity build configuration.
type BuildType struct {
	ID         string      `json:"id" yaml:"id" validate:"required,extid"`
	Name       string      `json:"name" yaml:"name" validate:"required"`
	ProjectID  string      `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Project    *ProjectRef `json:"project,omitempty" yaml:"project,omitempty"`
	Steps      *Steps      `json:"steps,omitempty" yaml:"steps,omitempty"`
	Parameters *Properties `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Identity implements Entity.
func (b *BuildType) Identity() string {
	return b.ID
}

// OwnerID returns the id of the project the build configuration belongs to.
func (b *BuildType) OwnerID() string {
	if b.Project != nil && b.Project.ID != "" {
		return b.Project.ID
	}

	return b.ProjectID
}
