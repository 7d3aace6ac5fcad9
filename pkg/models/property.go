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

// Property is a name/value pair, used for build parameters and step settings.
type Property struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Value string `json:"value" yaml:"value"`
}

// Identity implements Entity, parameters are addressed by name.
func (p *Property) Identity() string {
	return p.Name
}

// Properties is a property collection.
type Properties struct {
	Count    int        `json:"count,omitempty" yaml:"count,omitempty"`
	Property []Property `json:"property" yaml:"property" validate:"dive"`
}

// Get returns the value of the named property.
func (p *Properties) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}

	for _, property := range p.Property {
		if property.Name == name {
			return property.Value, true
		}
	}

	return "", false
}
