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

// User is a TeamCity user account.
type User struct {
	// ID is assigned by the server.
	ID       int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username" yaml:"username" validate:"required,max=255"`
	// Password is write only, the server never returns it.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Roles    *Roles `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Identity implements Entity, users are located by username.
func (u *User) Identity() string {
	return u.Username
}
