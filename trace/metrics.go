// Copyright 2025 The Routekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trace

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics wires a Tracer's lifecycle events into Prometheus collectors.
// It is optional: a Tracer functions fully without one.
type Metrics struct {
	tracesTotal   *prometheus.CounterVec
	spansTotal    *prometheus.CounterVec
	spanDuration  *prometheus.HistogramVec
	unsubscribe   func()
}

// NewMetrics registers collectors on reg (or the default registerer when
// reg is nil) and subscribes to tracer so every span:end and trace:end
// event updates them. Call Close to unsubscribe.
func NewMetrics(tracer *Tracer, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		tracesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routekit",
			Subsystem: "trace",
			Name:      "traces_total",
			Help:      "Completed traces, labeled by route pattern.",
		}, []string{"route_pattern"}),
		spansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routekit",
			Subsystem: "trace",
			Name:      "spans_total",
			Help:      "Completed spans, labeled by layer and status.",
		}, []string{"layer", "status"}),
		spanDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "routekit",
			Subsystem: "trace",
			Name:      "span_duration_seconds",
			Help:      "Span duration in seconds, labeled by layer.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"layer"}),
	}

	reg.MustRegister(m.tracesTotal, m.spansTotal, m.spanDuration)

	m.unsubscribe = tracer.Subscribe(func(ev Event) {
		switch ev.Type {
		case EventSpanEnd:
			m.spansTotal.WithLabelValues(string(ev.Span.Layer()), string(ev.Span.Status())).Inc()
			m.spanDuration.WithLabelValues(string(ev.Span.Layer())).Observe(ev.Span.Duration().Seconds())
		case EventTraceEnd:
			m.tracesTotal.WithLabelValues(ev.Trace.Metadata().RoutePattern).Inc()
		}
	})

	return m
}

// Close unsubscribes from the tracer. Collectors remain registered.
func (m *Metrics) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
