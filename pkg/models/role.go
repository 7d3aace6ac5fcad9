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

import (
	"strings"
)

const (
	// GlobalScope applies a role to the whole server.
	GlobalScope = "g"

	projectScopePrefix = "p:"
)

const (
	RoleSystemAdmin      = "SYSTEM_ADMIN"
	RoleProjectAdmin     = "PROJECT_ADMIN"
	RoleProjectDeveloper = "PROJECT_DEVELOPER"
	RoleProjectViewer    = "PROJECT_VIEWER"
)

// ProjectScope returns the scope limiting a role to the given project.
func ProjectScope(projectID string) string {
	return projectScopePrefix + projectID
}

// Role is a role assignment.
type Role struct {
	RoleID string `json:"roleId" yaml:"roleId" validate:"required"`
	Scope  string `json:"scope" yaml:"scope" validate:"required"`
}

// Global reports whether the role applies server wide.
func (r Role) Global() bool {
	return r.Scope == GlobalScope
}

// ProjectID returns the project a project scoped role refers to.
func (r Role) ProjectID() (string, bool) {
	if !strings.HasPrefix(r.Scope, projectScopePrefix) {
		return "", false
	}

	return strings.TrimPrefix(r.Scope, projectScopePrefix), true
}

// Roles is the role collection attached to a user.
type Roles struct {
	Role []Role `json:"role" yaml:"role" validate:"dive"`
}

// Identity implements Entity, a role set is identified by its scopes.
func (r *Roles) Identity() string {
	scopes := make([]string, len(r.Role))

	for i, role := range r.Role {
		scopes[i] = role.RoleID + "@" + role.Scope
	}

	return strings.Join(scopes, ",")
}

// Has reports whether the set contains the role in the given scope.
func (r *Roles) Has(roleID, scope string) bool {
	if r == nil {
		return false
	}

	for _, role := range r.Role {
		if role.RoleID == roleID && role.Scope == scope {
			return true
		}
	}

	return false
}
