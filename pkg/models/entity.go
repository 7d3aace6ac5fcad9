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

// Package models contains the TeamCity REST resources the test harness creates,
// reads, updates and deletes.  Models are plain values: relationships between
// resources are expressed as string references, never by embedding the related
// resource, so any generated graph serializes as-is.
package models

// Kind identifies a resource type.
type Kind string

const (
	KindUser               Kind = "users"
	KindProject            Kind = "projects"
	KindBuildType          Kind = "buildTypes"
	KindBuildTypeParameter Kind = "buildTypeParameters"
	// KindRole is only meaningful to the data generator, roles are
	// attached to a user and are not addressable on their own.
	KindRole Kind = "roles"
)

// Entity is implemented by every model.
type Entity interface {
	// Identity returns the value the server locates the resource by.
	Identity() string
}
