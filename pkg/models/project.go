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

// RootProjectID is the implicit parent of all top level projects.
const RootProjectID = "_Root"

// Locator references another resource by server locator string.
type Locator struct {
	Locator string `json:"locator" yaml:"locator"`
}

// Project is a TeamCity project.
type Project struct {
	ID                        string   `json:"id" yaml:"id" validate:"required,extid"`
	Name                      string   `json:"name" yaml:"name" validate:"required"`
	ParentProject             *Locator `json:"parentProject,omitempty" yaml:"parentProject,omitempty"`
	CopyAllAssociatedSettings *bool    `json:"copyAllAssociatedSettings,omitempty" yaml:"copyAllAssociatedSettings,omitempty"`
	Archived                  *bool    `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// Identity implements Entity.
func (p *Project) Identity() string {
	return p.ID
}

// ParentID returns the id of the parent project, the root project if unset.
func (p *Project) ParentID() string {
	if p.ParentProject == nil || p.ParentProject.Locator == "" {
		return RootProjectID
	}

	return p.ParentProject.Locator
}
