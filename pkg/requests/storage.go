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
	"errors"
	"net/http"
	"slices"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

// Record identifies a resource created during a test.
type Record struct {
	Kind     models.Kind
	ParentID string
	ID       string
}

// TestDataStorage remembers what a test created so it can be torn down
// afterwards.  It belongs to a single test and is not safe for concurrent use.
type TestDataStorage struct {
	records []Record
}

// NewTestDataStorage returns an empty storage.
func NewTestDataStorage() *TestDataStorage {
	return &TestDataStorage{}
}

// Add records a created resource, recording the same resource twice is a no-op.
func (s *TestDataStorage) Add(record Record) {
	if s == nil || slices.Contains(s.records, record) {
		return
	}

	s.records = append(s.records, record)
}

// Remove forgets a resource that has already been deleted.
func (s *TestDataStorage) Remove(record Record) {
	if s == nil {
		return
	}

	s.records = slices.DeleteFunc(s.records, func(r Record) bool {
		return r == record
	})
}

// Records returns the recorded resources in creation order.
func (s *TestDataStorage) Records() []Record {
	if s == nil {
		return nil
	}

	return slices.Clone(s.records)
}

// DeleteAll deletes every recorded resource newest first, so dependents go
// before what they depend on.  Resources that are already gone are ignored,
// those that could not be deleted stay recorded so cleanup can be retried.
func (s *TestDataStorage) DeleteAll(ctx context.Context, spec *specification.Specification, opts ...Option) error {
	if s == nil {
		return nil
	}

	var (
		errs   []error
		failed []Record
	)

	for _, record := range slices.Backward(s.records) {
		request, err := NewUnchecked(spec, record.Kind, append(slices.Clone(opts), WithParent(record.ParentID))...)
		if err != nil {
			errs = append(errs, err)
			failed = append(failed, record)

			continue
		}

		resp, err := request.Delete(ctx, record.ID)
		if err != nil {
			errs = append(errs, err)
			failed = append(failed, record)

			continue
		}

		expected := append(slices.Clone(deleteStatus), http.StatusNotFound)

		if !slices.Contains(expected, resp.StatusCode) {
			errs = append(errs, &UnexpectedStatusError{
				Method:     resp.Method,
				Path:       resp.Path,
				Expected:   expected,
				StatusCode: resp.StatusCode,
				Body:       resp.String(),
				TraceID:    resp.TraceID,
			})
			failed = append(failed, record)
		}
	}

	// Restore creation order.
	slices.Reverse(failed)

	s.records = failed

	return errors.Join(errs...)
}
