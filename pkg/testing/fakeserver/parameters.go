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
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// parameterTarget resolves the build configuration addressed by the request
// and checks the principal may view or edit it.  On failure the response has
// been written and nil is returned.  Callers must hold the state lock.
func (s *Server) parameterTarget(w http.ResponseWriter, r *http.Request, edit bool) *models.BuildType {
	p := principalFromContext(r.Context())

	l, err := parseLocator(r, "locator", "id")
	if err != nil {
		writeBadRequest(w, err)
		return nil
	}

	buildType, err := s.findBuildType(l)
	if err != nil {
		writeLookupError(w, err)
		return nil
	}

	projectID := buildType.OwnerID()

	if edit && !s.canEditBuildTypes(p, projectID) {
		writeForbidden(w, "You do not have enough permissions to edit project with id: "+projectID)
		return nil
	}

	if !edit && !s.canViewProject(p, projectID) {
		writeForbidden(w, "You do not have \"View project\" permission in project with id: "+projectID)
		return nil
	}

	return buildType
}

func parameterName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidLocator, err)
	}

	return name, nil
}

// setParameter adds or replaces a parameter.
func setParameter(buildType *models.BuildType, parameter models.Property) {
	if buildType.Parameters == nil {
		buildType.Parameters = &models.Properties{}
	}

	properties := buildType.Parameters

	index := slices.IndexFunc(properties.Property, func(p models.Property) bool {
		return p.Name == parameter.Name
	})

	if index < 0 {
		properties.Property = append(properties.Property, parameter)
	} else {
		properties.Property[index] = parameter
	}

	properties.Count = len(properties.Property)
}

func (s *Server) handleCreateParameter(w http.ResponseWriter, r *http.Request) {
	var parameter models.Property

	if err := s.schemas.decode(r, schemaProperty, &parameter); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	buildType := s.parameterTarget(w, r, true)
	if buildType == nil {
		return
	}

	setParameter(buildType, parameter)

	writeJSON(w, http.StatusOK, &parameter)
}

func (s *Server) handleGetParameter(w http.ResponseWriter, r *http.Request) {
	name, err := parameterName(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	buildType := s.parameterTarget(w, r, false)
	if buildType == nil {
		return
	}

	value, ok := buildType.Parameters.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No parameter with name '%s' is found.", name))
		return
	}

	writeJSON(w, http.StatusOK, &models.Property{Name: name, Value: value})
}

func (s *Server) handleUpdateParameter(w http.ResponseWriter, r *http.Request) {
	name, err := parameterName(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var parameter models.Property

	if err := s.schemas.decode(r, schemaProperty, &parameter); err != nil {
		writeBadRequest(w, err)
		return
	}

	if parameter.Name != name {
		writeBadRequest(w, fmt.Errorf("parameter %q cannot be renamed to %q", name, parameter.Name))
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	buildType := s.parameterTarget(w, r, true)
	if buildType == nil {
		return
	}

	setParameter(buildType, parameter)

	writeJSON(w, http.StatusOK, &parameter)
}

func (s *Server) handleDeleteParameter(w http.ResponseWriter, r *http.Request) {
	name, err := parameterName(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	buildType := s.parameterTarget(w, r, true)
	if buildType == nil {
		return
	}

	if _, ok := buildType.Parameters.Get(name); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No parameter with name '%s' is found.", name))
		return
	}

	buildType.Parameters.Property = slices.DeleteFunc(buildType.Parameters.Property, func(p models.Property) bool {
		return p.Name == name
	})
	buildType.Parameters.Count = len(buildType.Parameters.Property)

	w.WriteHeader(http.StatusNoContent)
}
