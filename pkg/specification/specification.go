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

// Package specification builds the connection and authentication context
// requests are issued with.  Building a Specification never performs I/O,
// credentials are only checked by the server when a request is made.
package specification

import (
	"net/http"
	"strings"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// CredentialMode defines how requests are authenticated.
type CredentialMode int

const (
	// None sends no credentials.
	None CredentialMode = iota
	// SuperUser authenticates as the server's privileged system identity.
	SuperUser
	// Basic authenticates as a regular user.
	Basic
)

func (m CredentialMode) String() string {
	switch m {
	case None:
		return "none"
	case SuperUser:
		return "superuser"
	case Basic:
		return "basic"
	}

	return "unknown"
}

// Specification is an immutable request context.
type Specification struct {
	baseURL  string
	mode     CredentialMode
	username string
	password string
	header   http.Header
}

// BaseURL returns the server URL without a trailing slash.
func (s *Specification) BaseURL() string {
	return s.baseURL
}

// Mode returns the credential mode.
func (s *Specification) Mode() CredentialMode {
	return s.mode
}

// Username returns the user requests are made as, empty for the super user
// and unauthenticated specifications.
func (s *Specification) Username() string {
	return s.username
}

// Header returns a copy of the default request headers.
func (s *Specification) Header() http.Header {
	return s.header.Clone()
}

// URL joins the base URL and an API path.
func (s *Specification) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// Apply sets the headers and credentials on a request.
func (s *Specification) Apply(r *http.Request) {
	for key, values := range s.header {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}

	// The super user has no username, it authenticates with its token
	// as the password.
	if s.mode != None {
		r.SetBasicAuth(s.username, s.password)
	}
}

// Builder creates specifications for a single server.
type Builder struct {
	baseURL        string
	superUserToken string
}

// NewBuilder returns a builder for the server at baseURL.
func NewBuilder(baseURL, superUserToken string) *Builder {
	return &Builder{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		superUserToken: superUserToken,
	}
}

func (b *Builder) newSpecification(mode CredentialMode, username, password string) *Specification {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/json")

	return &Specification{
		baseURL:  b.baseURL,
		mode:     mode,
		username: username,
		password: password,
		header:   header,
	}
}

// SuperUserSpec returns a specification authenticated as the super user,
// used for setup such as creating arbitrary users.
func (b *Builder) SuperUserSpec() *Specification {
	return b.newSpecification(SuperUser, "", b.superUserToken)
}

// AuthSpec returns a specification authenticated with the user's own
// username and password.
func (b *Builder) AuthSpec(user *models.User) *Specification {
	if user == nil {
		return b.newSpecification(Basic, "", "")
	}

	return b.newSpecification(Basic, user.Username, user.Password)
}

// UnauthSpec returns a specification with no credentials.
func (b *Builder) UnauthSpec() *Specification {
	return b.newSpecification(None, "", "")
}
