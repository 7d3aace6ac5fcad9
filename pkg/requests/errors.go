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
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is matched by any UnexpectedStatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrUnexpectedType is returned by As when an entity is not of the
	// requested model type.
	ErrUnexpectedType = errors.New("unexpected entity type")
)

// UnexpectedStatusError is returned by checked requests when the server
// responds with anything but the documented success status.
type UnexpectedStatusError struct {
	Method     string
	Path       string
	Expected   []int
	StatusCode int
	Body       string
	TraceID    string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s: %s: expected %v, got %d, body: %s (trace ID: %s)", e.Method, e.Path, ErrUnexpectedStatus, e.Expected, e.StatusCode, e.Body, e.TraceID)
}

func (e *UnexpectedStatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
