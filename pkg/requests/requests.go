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

// Package requests issues CRUD requests against any registered endpoint.
//
// Two interchangeable implementations share one contract.  Unchecked returns
// the raw response for the caller to assert on and is used for negative
// tests.  Checked delegates to Unchecked, fails with an UnexpectedStatusError
// unless the server responded with the operation's success status and decodes
// the body into the model registered for the endpoint.
//
// Requests are stateless, each call is a single request with no retries.
package requests

import (
	"context"
	"fmt"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

// CrudInterface is the operation set shared by checked and unchecked requests.
type CrudInterface[T any] interface {
	Create(ctx context.Context, entity models.Entity) (T, error)
	Read(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, entity models.Entity) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// As narrows an entity returned by a checked request to its model type e.g.
//
//	buildType, err := requests.As[*models.BuildType](checked.Read(ctx, id))
func As[T models.Entity](entity models.Entity, err error) (T, error) {
	var zero T

	if err != nil {
		return zero, err
	}

	typed, ok := entity.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %T", ErrUnexpectedType, entity, zero)
	}

	return typed, nil
}

// CheckedRequests hands out checked requests sharing a specification and
// options.
type CheckedRequests struct {
	spec    *specification.Specification
	options []Option
}

// NewCheckedRequests returns a checked request set.
func NewCheckedRequests(spec *specification.Specification, opts ...Option) *CheckedRequests {
	return &CheckedRequests{
		spec:    spec,
		options: opts,
	}
}

// Specification returns the specification requests are made with.
func (r *CheckedRequests) Specification() *specification.Specification {
	return r.spec
}

// Request returns a checked request for the kind, extra options are applied
// after the set's own.
func (r *CheckedRequests) Request(kind models.Kind, extra ...Option) (*Checked, error) {
	return NewChecked(r.spec, kind, append(append([]Option{}, r.options...), extra...)...)
}

// UncheckedRequests hands out unchecked requests sharing a specification and
// options.
type UncheckedRequests struct {
	spec    *specification.Specification
	options []Option
}

// NewUncheckedRequests returns an unchecked request set.
func NewUncheckedRequests(spec *specification.Specification, opts ...Option) *UncheckedRequests {
	return &UncheckedRequests{
		spec:    spec,
		options: opts,
	}
}

// Request returns an unchecked request for the kind.
func (r *UncheckedRequests) Request(kind models.Kind, extra ...Option) (*Unchecked, error) {
	return NewUnchecked(r.spec, kind, append(append([]Option{}, r.options...), extra...)...)
}
