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

// Package endpoints maps resource kinds to the REST paths they are served on
// and to the model they decode into.  The registry is populated once at
// package initialization and is read only thereafter, so the request layer
// can be written once for every resource kind.
package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

var (
	// ErrUnknownEndpoint is matched by any UnknownEndpointError.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrParentRequired is returned when resolving a nested path without a parent.
	ErrParentRequired = errors.New("parent id required")
)

// UnknownEndpointError is returned when a kind has no registered descriptor.
type UnknownEndpointError struct {
	Kind models.Kind
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("%s: no descriptor registered for kind %q", ErrUnknownEndpoint, e.Kind)
}

func (e *UnknownEndpointError) Is(target error) bool {
	return target == ErrUnknownEndpoint
}

// decodeFunc unmarshals a response body into a new model.
type decodeFunc func([]byte) (models.Entity, error)

// Descriptor describes how a resource kind is addressed.
type Descriptor struct {
	// Kind is the resource kind.
	Kind models.Kind
	// Path is the collection path for top level kinds, or the sub-resource
	// segment appended to the parent item path for nested kinds.
	Path string
	// Locator is prefixed to ids in item paths e.g. "id:".
	Locator string
	// Parent is the owning kind for nested resources.
	Parent models.Kind

	decode decodeFunc
}

// Nested reports whether the resource lives under a parent item.
func (d Descriptor) Nested() bool {
	return d.Parent != ""
}

// Decode unmarshals a response body into the model for this kind.
func (d Descriptor) Decode(data []byte) (models.Entity, error) {
	entity, err := d.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", d.Kind, err)
	}

	return entity, nil
}

// CollectionPath returns the path new resources are posted to.
func (d Descriptor) CollectionPath(parentID string) (string, error) {
	if !d.Nested() {
		return d.Path, nil
	}

	if parentID == "" {
		return "", fmt.Errorf("%w: %s is nested under %s", ErrParentRequired, d.Kind, d.Parent)
	}

	parent, err := Lookup(d.Parent)
	if err != nil {
		return "", err
	}

	parentPath, err := parent.ItemPath("", parentID)
	if err != nil {
		return "", err
	}

	return parentPath + "/" + d.Path, nil
}

// ItemPath returns the path of an individual resource.
func (d Descriptor) ItemPath(parentID, id string) (string, error) {
	collection, err := d.CollectionPath(parentID)
	if err != nil {
		return "", err
	}

	return collection + "/" + url.PathEscape(d.Locator+id), nil
}

func decoder[T any, PT interface {
	*T
	models.Entity
}]() decodeFunc {
	return func(data []byte) (models.Entity, error) {
		var v T

		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}

		return PT(&v), nil
	}
}

//nolint:gochecknoglobals
var registry = map[models.Kind]Descriptor{
	models.KindUser: {
		Kind:    models.KindUser,
		Path:    "/app/rest/users",
		Locator: "username:",
		decode:  decoder[models.User](),
	},
	models.KindProject: {
		Kind:    models.KindProject,
		Path:    "/app/rest/projects",
		Locator: "id:",
		decode:  decoder[models.Project](),
	},
	models.KindBuildType: {
		Kind:    models.KindBuildType,
		Path:    "/app/rest/buildTypes",
		Locator: "id:",
		decode:  decoder[models.BuildType](),
	},
	models.KindBuildTypeParameter: {
		Kind:   models.KindBuildTypeParameter,
		Path:   "parameters",
		Parent: models.KindBuildType,
		decode: decoder[models.Property](),
	},
}

// Lookup returns the descriptor for a resource kind.
func Lookup(kind models.Kind) (Descriptor, error) {
	descriptor, ok := registry[kind]
	if !ok {
		return Descriptor{}, &UnknownEndpointError{Kind: kind}
	}

	return descriptor, nil
}

// Kinds returns all registered kinds in a stable order.
func Kinds() []models.Kind {
	kinds := make([]models.Kind, 0, len(registry))

	for kind := range registry {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}
