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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unikorn-cloud/teamcity-testing/pkg/endpoints"
	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

// Response is a raw server response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// String returns the response body.
func (r *Response) String() string {
	return string(r.Body)
}

// JSON decodes the response body.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", r.Method, r.Path, err)
	}

	return nil
}

// Unchecked issues requests and hands back the raw response whatever the
// status, it is used where a test expects the server to refuse a request.
type Unchecked struct {
	spec       *specification.Specification
	descriptor endpoints.Descriptor
	collection string
	options    *options
}

// Ensure the interface is implemented.
var _ CrudInterface[*Response] = &Unchecked{}

// NewUnchecked returns a request for the kind's endpoint made with the given
// specification.
func NewUnchecked(spec *specification.Specification, kind models.Kind, opts ...Option) (*Unchecked, error) {
	descriptor, err := endpoints.Lookup(kind)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)

	collection, err := descriptor.CollectionPath(o.parentID)
	if err != nil {
		return nil, err
	}

	u := &Unchecked{
		spec:       spec,
		descriptor: descriptor,
		collection: collection,
		options:    o,
	}

	return u, nil
}

// Descriptor returns the endpoint the request is bound to.
func (u *Unchecked) Descriptor() endpoints.Descriptor {
	return u.descriptor
}

func (u *Unchecked) itemPath(id string) (string, error) {
	return u.descriptor.ItemPath(u.options.parentID, id)
}

// Create posts a new resource.
func (u *Unchecked) Create(ctx context.Context, entity models.Entity) (*Response, error) {
	return u.do(ctx, http.MethodPost, u.collection, entity)
}

// Read gets a resource by id.
func (u *Unchecked) Read(ctx context.Context, id string) (*Response, error) {
	path, err := u.itemPath(id)
	if err != nil {
		return nil, err
	}

	return u.do(ctx, http.MethodGet, path, nil)
}

// Update replaces a resource.
func (u *Unchecked) Update(ctx context.Context, id string, entity models.Entity) (*Response, error) {
	path, err := u.itemPath(id)
	if err != nil {
		return nil, err
	}

	return u.do(ctx, http.MethodPut, path, entity)
}

// Delete removes a resource.
func (u *Unchecked) Delete(ctx context.Context, id string) (*Response, error) {
	path, err := u.itemPath(id)
	if err != nil {
		return nil, err
	}

	return u.do(ctx, http.MethodDelete, path, nil)
}

func (u *Unchecked) do(ctx context.Context, method, path string, entity models.Entity) (*Response, error) {
	logger := u.options.logger.WithValues("kind", u.descriptor.Kind, "method", method, "path", path)

	var body io.Reader

	if entity != nil {
		data, err := json.Marshal(entity)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body: %w", u.descriptor.Kind, err)
		}

		logger.V(2).Info("request body", "body", string(data))

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.spec.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	u.spec.Apply(req)

	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	start := time.Now()
	resp, err := u.options.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		u.options.metrics.observe(u.descriptor.Kind, method, 0, duration)
		logger.Error(err, "http request failed", "duration", duration, "traceID", traceID)

		return nil, fmt.Errorf("%s %s: http request failed: %w", method, path, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error(err, "reading response body", "status", resp.StatusCode, "traceID", traceID)

		return nil, fmt.Errorf("%s %s: reading response body: %w", method, path, err)
	}

	u.options.metrics.observe(u.descriptor.Kind, method, resp.StatusCode, duration)

	logger.V(1).Info("request complete", "status", resp.StatusCode, "duration", duration, "traceID", traceID, "mode", u.spec.Mode().String())

	if len(respBody) > 0 {
		logger.V(2).Info("response body", "body", string(respBody))
	}

	response := &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}

	return response, nil
}
