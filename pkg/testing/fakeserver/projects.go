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

// findProject resolves a project locator.  Callers must hold the state lock.
func (s *Server) findProject(l locator) (*models.Project, error) {
	if l.dimension != "id" {
		return nil, fmt.Errorf("%w: unsupported dimension %q", errInvalidLocator, l.dimension)
	}

	project, ok := s.state.projects[l.value]
	if !ok {
		return nil, fmt.Errorf("%w: No project found by locator '%s'.", errNotFound, l)
	}

	return project, nil
}

// projectExists reports whether the id names a known project or the root.
// Callers must hold the state lock.
func (s *Server) projectExists(id string) bool {
	if id == models.RootProjectID {
		return true
	}

	_, ok := s.state.projects[id]

	return ok
}

// deleteProject removes a project, its build configurations and all its
// descendants.  Callers must hold the state lock.
func (s *Server) deleteProject(id string) {
	for childID, child := range s.state.projects {
		if child.ParentID() == id {
			s.deleteProject(childID)
		}
	}

	for buildTypeID, buildType := range s.state.buildTypes {
		if buildType.OwnerID() == id {
			delete(s.state.buildTypes, buildTypeID)
		}
	}

	delete(s.state.projects, id)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	var project models.Project

	if err := s.schemas.decode(r, schemaProject, &project); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := models.Validate(&project); err != nil {
		writeBadRequest(w, err)
		return
	}

	parentID := project.ParentID()
	project.ParentProject = &models.Locator{Locator: parentID}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !s.projectExists(parentID) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No project found by locator 'id:%s'.", parentID))
		return
	}

	if !s.canAdministerProject(p, parentID) {
		writeForbidden(w, "You do not have \"Create subproject\" permission in project with id: "+parentID)
		return
	}

	if _, ok := s.state.projects[project.ID]; ok || project.ID == models.RootProjectID {
		writeBadRequest(w, fmt.Errorf("Project ID %q is already used by another project", project.ID))
		return
	}

	for _, sibling := range s.state.projects {
		if sibling.ParentID() == parentID && sibling.Name == project.Name {
			writeBadRequest(w, fmt.Errorf("Project with this name already exists: %s", project.Name))
			return
		}
	}

	s.state.projects[project.ID] = &project

	writeJSON(w, http.StatusOK, &project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	project, err := s.findProject(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !s.canViewProject(p, project.ID) {
		writeForbidden(w, "You do not have \"View project\" permission in project with id: "+project.ID)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var update models.Project

	if err := s.schemas.decode(r, schemaProject, &update); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	project, err := s.findProject(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !s.canAdministerProject(p, project.ID) {
		writeForbidden(w, "You do not have \"Edit project\" permission in project with id: "+project.ID)
		return
	}

	if update.ID != project.ID {
		writeBadRequest(w, fmt.Errorf("project id %q cannot be changed", project.ID))
		return
	}

	// Moving projects is not supported.
	update.ParentProject = project.ParentProject

	s.state.projects[project.ID] = &update

	writeJSON(w, http.StatusOK, &update)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	project, err := s.findProject(l)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if !s.canAdministerProject(p, project.ID) {
		writeForbidden(w, "You do not have \"Delete project\" permission in project with id: "+project.ID)
		return
	}

	s.deleteProject(project.ID)

	w.WriteHeader(http.StatusNoContent)
}
