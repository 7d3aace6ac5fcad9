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
	"strings"

	"github.com/google/uuid"
)

const (
	// Prefix marks every generated identifier so leftovers on a shared
	// server are easily recognised.
	Prefix = "test_"

	tokenLength = 16
)

// randomToken returns 16 lower case hex characters taken from a version 4
// UUID.  The version nibble is fixed, leaving 60 random bits.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

// RandomID returns an identifier acceptable as a project or build
// configuration id.
func RandomID() string {
	return Prefix + randomToken()
}

// RandomName returns a random name with the given qualifier.
func RandomName(qualifier string) string {
	return Prefix + qualifier + "_" + randomToken()
}
