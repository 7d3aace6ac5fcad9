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

package requests

import (
	"context"
	"net/http"
	"slices"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

// Success statuses per operation.
//
//nolint:gochecknoglobals
var (
	createStatus = []int{http.StatusOK, http.StatusCreated}
	readStatus   = []int{http.StatusOK}
	updateStatus = []int{http.StatusOK}
	deleteStatus = []int{http.StatusOK, http.StatusNoContent}
)

// Checked issues requests expected to succeed.
type Checked struct {
	unchecked *Unchecked
}

// Ensure the interface is implemented.
var _ CrudInterface[models.Entity] = &Checked{}

// NewChecked returns a checked request for the kind's endpoint.
func NewChecked(spec *specification.Specification, kind models.Kind, opts ...Option) (*Checked, error) {
	unchecked, err := NewUnchecked(spec, kind, opts...)
	if err != nil {
		return nil, err
	}

	return &Checked{
		unchecked: unchecked,
	}, nil
}

// Unchecked returns the underlying unchecked request.
func (c *Checked) Unchecked() *Unchecked {
	return c.unchecked
}

func (c *Checked) check(resp *Response, expected []int) error {
	if slices.Contains(expected, resp.StatusCode) {
		return nil
	}

	c.unchecked.options.logger.Info("unexpected status",
		"method", resp.Method, "path", resp.Path, "expected", expected, "status", resp.StatusCode, "body", resp.String(), "traceID", resp.TraceID)

	return &UnexpectedStatusError{
		Method:     resp.Method,
		Path:       resp.Path,
		Expected:   expected,
		StatusCode: resp.StatusCode,
		Body:       resp.String(),
		TraceID:    resp.TraceID,
	}
}

func (c *Checked) decode(resp *Response, expected []int) (models.Entity, error) {
	if err := c.check(resp, expected); err != nil {
		return nil, err
	}

	return c.unchecked.descriptor.Decode(resp.Body)
}

// Create posts a new resource and returns the server's representation of it.
func (c *Checked) Create(ctx context.Context, entity models.Entity) (models.Entity, error) {
	resp, err := c.unchecked.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	created, err := c.decode(resp, createStatus)
	if err != nil {
		return nil, err
	}

	id := created.Identity()
	if id == "" && entity != nil {
		id = entity.Identity()
	}

	c.unchecked.options.storage.Add(Record{
		Kind:     c.unchecked.descriptor.Kind,
		ParentID: c.unchecked.options.parentID,
		ID:       id,
	})

	return created, nil
}

// Read gets a resource.
func (c *Checked) Read(ctx context.Context, id string) (models.Entity, error) {
	resp, err := c.unchecked.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.decode(resp, readStatus)
}

// Update replaces a resource and returns the server's representation of it.
func (c *Checked) Update(ctx context.Context, id string, entity models.Entity) (models.Entity, error) {
	resp, err := c.unchecked.Update(ctx, id, entity)
	if err != nil {
		return nil, err
	}

	return c.decode(resp, updateStatus)
}

// Delete removes a resource, the returned entity is always nil.
func (c *Checked) Delete(ctx context.Context, id string) (models.Entity, error) {
	resp, err := c.unchecked.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.check(resp, deleteStatus); err != nil {
		return nil, err
	}

	c.unchecked.options.storage.Remove(Record{
		Kind:     c.unchecked.descriptor.Kind,
		ParentID: c.unchecked.options.parentID,
		ID:       id,
	})

	return nil, nil
}
