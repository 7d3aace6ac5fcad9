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

// Package fakeserver provides an in-memory stand-in for the TeamCity REST API.
// It implements the users, projects, build configuration and build
// configuration parameter endpoints with TeamCity's role model so scenario
// suites can run without a real server.
package fakeserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// DefaultSuperUserToken is used when no token is configured.
const DefaultSuperUserToken = "fake-superuser-token"

// Options configures the fake server.
type Options struct {
	// SuperUserToken authenticates the super user, which has an empty
	// username.
	SuperUserToken string
	// Logger logs requests at V(1).
	Logger logr.Logger
}

// state is the server's data, guarded by mu.
type state struct {
	mu         sync.RWMutex
	nextUserID int64
	users      map[string]*models.User
	projects   map[string]*models.Project
	buildTypes map[string]*models.BuildType
}

// Server is a fake TeamCity server.
type Server struct {
	*httptest.Server

	token   string
	logger  logr.Logger
	schemas *schemas
	state   *state
}

// New starts a fake server, call Close when finished with it.
func New(ctx context.Context, options Options) (*Server, error) {
	schemas, err := loadSchemas(ctx)
	if err != nil {
		return nil, err
	}

	token := options.SuperUserToken
	if token == "" {
		token = DefaultSuperUserToken
	}

	logger := options.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	s := &Server{
		token:   token,
		logger:  logger,
		schemas: schemas,
		state: &state{
			users:      map[string]*models.User{},
			projects:   map[string]*models.Project{},
			buildTypes: map[string]*models.BuildType{},
		},
	}

	s.Server = httptest.NewServer(s.router())

	return s, nil
}

// SuperUserToken returns the token the super user authenticates with.
func (s *Server) SuperUserToken() string {
	return s.token
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.logging)
	r.Use(s.authenticate)

	r.Route("/app/rest", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{locator}", s.handleGetUser)
		r.Put("/users/{locator}", s.handleUpdateUser)
		r.Delete("/users/{locator}", s.handleDeleteUser)

		r.Post("/projects", s.handleCreateProject)
		r.Get("/projects/{locator}", s.handleGetProject)
		r.Put("/projects/{locator}", s.handleUpdateProject)
		r.Delete("/projects/{locator}", s.handleDeleteProject)

		r.Post("/buildTypes", s.handleCreateBuildType)
		r.Get("/buildTypes/{locator}", s.handleGetBuildType)
		r.Put("/buildTypes/{locator}", s.handleUpdateBuildType)
		r.Delete("/buildTypes/{locator}", s.handleDeleteBuildType)

		r.Post("/buildTypes/{locator}/parameters", s.handleCreateParameter)
		r.Get("/buildTypes/{locator}/parameters/{name}", s.handleGetParameter)
		r.Put("/buildTypes/{locator}/parameters/{name}", s.handleUpdateParameter)
		r.Delete("/buildTypes/{locator}/parameters/{name}", s.handleDeleteParameter)
	})

	return r
}

// logging logs every request with its response status.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.V(1).Info("fake server request", "method", r.Method, "url", r.URL.String(), "status", ww.Status(), "duration", time.Since(start))
	})
}
