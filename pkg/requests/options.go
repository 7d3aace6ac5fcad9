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
	"net/http"

	"github.com/go-logr/logr"
)

type options struct {
	client   Doer
	logger   logr.Logger
	parentID string
	metrics  *Metrics
	storage  *TestDataStorage
}

// Option configures a request.
type Option func(*options)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client Doer) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithLogger logs requests at V(1) and bodies at V(2), failures are
// always logged.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithParent scopes a nested resource request to its parent item.
func WithParent(id string) Option {
	return func(o *options) {
		o.parentID = id
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithStorage records everything created by a checked request so it can be
// deleted when the test finishes.
func WithStorage(storage *TestDataStorage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		client: http.DefaultClient,
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
