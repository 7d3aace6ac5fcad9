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
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	schemaUser      = "User"
	schemaProject   = "Project"
	schemaBuildType = "BuildType"
	schemaProperty  = "Property"
)

var (
	//go:embed schema.yaml
	schemaDocument []byte

	// errInvalidBody is returned for any request body the server cannot accept.
	errInvalidBody = errors.New("invalid request body")
)

// schemas validates request bodies against the embedded OpenAPI document.
type schemas struct {
	schemas openapi3.Schemas
}

func loadSchemas(ctx context.Context) (*schemas, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(schemaDocument)
	if err != nil {
		return nil, fmt.Errorf("loading schema document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating schema document: %w", err)
	}

	for _, name := range []string{schemaUser, schemaProject, schemaBuildType, schemaProperty} {
		if ref, ok := doc.Components.Schemas[name]; !ok || ref.Value == nil {
			return nil, fmt.Errorf("schema document is missing %s", name)
		}
	}

	return &schemas{
		schemas: doc.Components.Schemas,
	}, nil
}

// decode reads a JSON request body, validates it against the named schema
// and unmarshals it into v.
func (s *schemas) decode(r *http.Request, name string, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	var raw any

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	if err := s.schemas[name].Value.VisitJSON(raw); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	return nil
}
