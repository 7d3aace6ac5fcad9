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
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// userView returns a copy of the user safe to return to clients.
func userView(user *models.User) *models.User {
	out := *user
	out.Password = ""

	return &out
}

// findUser resolves a user locator.  Callers must hold the state lock.
func (s *Server) findUser(l locator) (*models.User, error) {
	switch l.dimension {
	case "username":
		if user, ok := s.state.users[l.value]; ok {
			return user, nil
		}
	case "id":
		id, err := l.userID()
		if err != nil {
			return nil, err
		}

		for _, user := range s.state.users {
			if user.ID == id {
				return user, nil
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported dimension %q", errInvalidLocator, l.dimension)
	}

	return nil, fmt.Errorf("%w: no user can be found by locator '%s'", errNotFound, l)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	var user models.User

	if err := s.schemas.decode(r, schemaUser, &user); err != nil {
		writeBadRequest(w, err)
		return
	}

	if !p.systemAdmin() {
		writeForbidden(w, "You do not have \"Create / delete user accounts\" permission.")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if _, ok := s.state.users[user.Username]; ok {
		writeBadRequest(w, fmt.Errorf("cannot create user as user with the same username %q already exists", user.Username))
		return
	}

	s.state.nextUserID++
	user.ID = s.state.nextUserID

	s.state.users[user.Username] = &user

	writeJSON(w, http.StatusOK, userView(&user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "username")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	user, err := s.findUser(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !p.systemAdmin() && p.username != user.Username {
		writeForbidden(w, "You do not have \"View user profiles\" permission.")
		return
	}

	writeJSON(w, http.StatusOK, userView(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "username")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var update models.User

	if err := s.schemas.decode(r, schemaUser, &update); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	user, err := s.findUser(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	admin := p.systemAdmin()

	if !admin && p.username != user.Username {
		writeForbidden(w, "You do not have \"Modify user profiles\" permission.")
		return
	}

	if update.Username != user.Username {
		writeBadRequest(w, fmt.Errorf("username %q cannot be changed", user.Username))
		return
	}

	update.ID = user.ID

	if update.Password == "" {
		update.Password = user.Password
	}

	// Only administrators can change role assignments.
	if !admin || update.Roles == nil {
		update.Roles = user.Roles
	}

	s.state.users[user.Username] = &update

	writeJSON(w, http.StatusOK, userView(&update))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "username")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	if !p.systemAdmin() {
		writeForbidden(w, "You do not have \"Create / delete user accounts\" permission.")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	user, err := s.findUser(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	delete(s.state.users, user.Username)

	w.WriteHeader(http.StatusNoContent)
}
