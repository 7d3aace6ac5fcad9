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
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
)

// Metrics counts requests made against the server under test.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates request metrics and registers them.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamcity_api_requests_total",
			Help: "Requests made to the TeamCity REST API.",
		}, []string{"kind", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "teamcity_api_request_duration_seconds",
			Help:    "TeamCity REST API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "method"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observe records a request, a zero code means no response was received.
func (m *Metrics) observe(kind models.Kind, method string, code int, duration time.Duration) {
	if m == nil {
		return
	}

	label := "none"
	if code != 0 {
		label = strconv.Itoa(code)
	}

	m.requests.WithLabelValues(string(kind), method, label).Inc()
	m.duration.WithLabelValues(string(kind), method).Observe(duration.Seconds())
}
