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


package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/onsi/ginkgo/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unikorn-cloud/teamcity-testing/pkg/requests"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
	"github.com/unikorn-cloud/teamcity-testing/pkg/testing/fakeserver"
)

// Environment is the server under test and everything shared by the
// scenarios run against it.
type Environment struct {
	Config  *TestConfig
	Builder *specification.Builder
	Logger  logr.Logger

	registry *prometheus.Registry
	metrics  *requests.Metrics
	client   *http.Client
	server   *fakeserver.Server
}

// NewLogger returns a logger writing to the Ginkgo output, which is only shown
// for failed specs unless run verbosely.
func NewLogger(config *TestConfig) logr.Logger {
	write := func(prefix, args string) {
		if prefix != "" {
			ginkgo.GinkgoWriter.Println(prefix, args)
			return
		}

		ginkgo.GinkgoWriter.Println(args)
	}

	return funcr.New(write, funcr.Options{
		LogTimestamp: true,
		Verbosity:    config.Verbosity(),
	})
}

// NewEnvironment connects to the configured server, or starts a fake one.
func NewEnvironment(ctx context.Context, config *TestConfig) (*Environment, error) {
	logger := NewLogger(config)

	registry := prometheus.NewRegistry()

	metrics, err := requests.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	env := &Environment{
		Config:   config,
		Logger:   logger,
		registry: registry,
		metrics:  metrics,
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}

	if config.External() {
		env.Builder = specification.NewBuilder(config.BaseURL, config.SuperUserToken)

		return env, nil
	}

	server, err := fakeserver.New(ctx, fakeserver.Options{
		SuperUserToken: config.SuperUserToken,
		Logger:         logger.WithName("fakeserver"),
	})
	if err != nil {
		return nil, fmt.Errorf("starting fake server: %w", err)
	}

	logger.Info("started fake server", "url", server.URL)

	env.server = server
	env.Builder = specification.NewBuilder(server.URL, server.SuperUserToken())

	return env, nil
}

// Options returns the request options every scenario uses.
func (e *Environment) Options() []requests.Option {
	return []requests.Option{
		requests.WithHTTPClient(e.client),
		requests.WithLogger(e.Logger),
		requests.WithMetrics(e.metrics),
	}
}

// Summary returns the number of requests made per kind, method and status.
func (e *Environment) Summary() (string, error) {
	families, err := e.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string

	for _, family := range families {
		if family.GetName() != "teamcity_api_requests_total" {
			continue
		}

		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))

			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}

			lines = append(lines, fmt.Sprintf("%s %v", strings.Join(labels, " "), metric.GetCounter().GetValue()))
		}
	}

	return strings.Join(lines, "\n"), nil
}

// Close stops the fake server if one was started.
func (e *Environment) Close() {
	if e.server != nil {
		e.server.Close()
	}
}
