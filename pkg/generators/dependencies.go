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

package generators

import (
	"errors"
	"fmt"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// ErrMissingDependency is matched by any MissingDependencyError.
var ErrMissingDependency = errors.New("missing dependency")

// MissingDependencyError is returned when an entity references a kind that is
// neither present in the dependency list nor supplied as an override.
type MissingDependencyError struct {
	Kind     models.Kind
	Requires models.Kind
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: generating %s requires %s", ErrMissingDependency, e.Kind, e.Requires)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// findProject returns the first project in the dependency list.
func findProject(deps []models.Entity) (*models.Project, bool) {
	for _, dep := range deps {
		if project, ok := dep.(*models.Project); ok && project != nil {
			return project, true
		}
	}

	return nil, false
}
