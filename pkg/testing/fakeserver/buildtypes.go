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
	"errors"
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

var errNoProjectNode = errors.New("Build type creation request should contain project node.")

// findBuildType resolves a build configuration locator.  Callers must hold
// the state lock.
func (s *Server) findBuildType(l locator) (*models.BuildType, error) {
	if l.dimension != "id" {
		return nil, fmt.Errorf("%w: unsupported dimension %q", errInvalidLocator, l.dimension)
	}

	buildType, ok := s.state.buildTypes[l.value]
	if !ok {
		return nil, fmt.Errorf("%w: No build type nor template is found by id '%s'.", errNotFound, l.value)
	}

	return buildType, nil
}

// normalizeBuildType fills in the owning project in both forms and the
// collection counts the server reports.
func normalizeBuildType(buildType *models.BuildType, projectID string) {
	buildType.ProjectID = projectID
	buildType.Project = &models.ProjectRef{ID: projectID}

	if buildType.Steps != nil {
		buildType.Steps.Count = len(buildType.Steps.Step)
	}

	if buildType.Parameters != nil {
		buildType.Parameters.Count = len(buildType.Parameters.Property)
	}
}

func (s *Server) handleCreateBuildType(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	var buildType models.BuildType

	if err := s.schemas.decode(r, schemaBuildType, &buildType); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := models.Validate(&buildType); err != nil {
		writeBadRequest(w, err)
		return
	}

	projectID := buildType.OwnerID()
	if projectID == "" {
		writeBadRequest(w, errNoProjectNode)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if _, ok := s.state.projects[projectID]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No project found by locator 'id:%s'.", projectID))
		return
	}

	if !s.canEditBuildTypes(p, projectID) {
		writeForbidden(w, "You do not have enough permissions to edit project with id: "+projectID)
		return
	}

	if _, ok := s.state.buildTypes[buildType.ID]; ok {
		writeBadRequest(w, fmt.Errorf("The build configuration / template ID %q is already used by another configuration or template", buildType.ID))
		return
	}

	normalizeBuildType(&buildType, projectID)

	s.state.buildTypes[buildType.ID] = &buildType

	writeJSON(w, http.StatusOK, &buildType)
}

func (s *Server) handleGetBuildType(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	buildType, err := s.findBuildType(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !s.canViewProject(p, buildType.OwnerID()) {
		writeForbidden(w, "You do not have \"View project\" permission in project with id: "+buildType.OwnerID())
		return
	}

	writeJSON(w, http.StatusOK, buildType)
}

func (s *Server) handleUpdateBuildType(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var update models.BuildType

	if err := s.schemas.decode(r, schemaBuildType, &update); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	buildType, err := s.findBuildType(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	projectID := buildType.OwnerID()

	if !s.canEditBuildTypes(p, projectID) {
		writeForbidden(w, "You do not have enough permissions to edit project with id: "+projectID)
		return
	}

	if update.ID != buildType.ID {
		writeBadRequest(w, fmt.Errorf("build configuration id %q cannot be changed", buildType.ID))
		return
	}

	if owner := update.OwnerID(); owner != "" && owner != projectID {
		writeBadRequest(w, fmt.Errorf("build configuration %q cannot be moved to project %q", buildType.ID, owner))
		return
	}

	normalizeBuildType(&update, projectID)

	s.state.buildTypes[buildType.ID] = &update

	writeJSON(w, http.StatusOK, &update)
}

func (s *Server) handleDeleteBuildType(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	buildType, err := s.findBuildType(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !s.canEditBuildTypes(p, buildType.OwnerID()) {
		writeForbidden(w, "You do not have enough permissions to edit project with id: "+buildType.OwnerID())
		return
	}

	delete(s.state.buildTypes, buildType.ID)

	w.WriteHeader(http.StatusNoContent)
}
