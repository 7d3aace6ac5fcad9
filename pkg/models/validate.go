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

package models

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// externalIDRegex matches TeamCity external ids, which must start with a latin
// letter and contain only latin letters, digits and underscores.
var externalIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,224}$`)

//nolint:gochecknoglobals
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails for an empty tag or nil function.
		_ = validate.RegisterValidation("extid", func(fl validator.FieldLevel) bool {
			return externalIDRegex.MatchString(fl.Field().String())
		})
	})

	return validate
}

// ValidExternalID reports whether the id is accepted by the server as a
// project or build configuration id.
func ValidExternalID(id string) bool {
	return externalIDRegex.MatchString(id)
}

// Validate checks an entity is syntactically valid before it is sent.
func Validate(e Entity) error {
	if err := getValidator().Struct(e); err != nil {
		return fmt.Errorf("invalid %T %q: %w", e, e.Identity(), err)
	}

	return nil
}
