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

package fakeserver

import (
	"context"
	"net/http"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

type principalKey struct{}

// principal is the authenticated identity of a request.
type principal struct {
	superUser bool
	username  string
	roles     *models.Roles
}

func (p *principal) systemAdmin() bool {
	return p.superUser || p.roles.Has(models.RoleSystemAdmin, models.GlobalScope)
}

func principalFromContext(ctx context.Context) *principal {
	//nolint:forcetypeassert // always set by authenticate
	return ctx.Value(principalKey{}).(*principal)
}

// authenticate resolves basic authentication credentials to a principal.  The
// super user has an empty username and uses the token as its password.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required\nTo login manually go to \"/login.html\" page")
			return
		}

		p, ok := s.lookupPrincipal(username, password)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Incorrect username or password.")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

func (s *Server) lookupPrincipal(username, password string) (*principal, bool) {
	if username == "" {
		if password != s.token {
			return nil, false
		}

		return &principal{superUser: true}, true
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	user, ok := s.state.users[username]
	if !ok || user.Password != password {
		return nil, false
	}

	return &principal{username: username, roles: user.Roles}, true
}

// hasProjectRole reports whether the principal holds one of the roles on the
// project or any of its ancestors.  Callers must hold the state lock.
func (s *Server) hasProjectRole(p *principal, projectID string, roleIDs ...string) bool {
	if p.systemAdmin() {
		return true
	}

	// Bounded by the number of projects in case of a parent cycle.
	for range len(s.state.projects) + 1 {
		for _, roleID := range roleIDs {
			if p.roles.Has(roleID, models.ProjectScope(projectID)) {
				return true
			}
		}

		project, ok := s.state.projects[projectID]
		if !ok {
			return false
		}

		projectID = project.ParentID()
	}

	return false
}

func (s *Server) canViewProject(p *principal, projectID string) bool {
	return s.hasProjectRole(p, projectID, models.RoleProjectAdmin, models.RoleProjectDeveloper, models.RoleProjectViewer)
}

func (s *Server) canEditBuildTypes(p *principal, projectID string) bool {
	return s.hasProjectRole(p, projectID, models.RoleProjectAdmin, models.RoleProjectDeveloper)
}

func (s *Server) canAdministerProject(p *principal, projectID string) bool {
	return s.hasProjectRole(p, projectID, models.RoleProjectAdmin)
}
