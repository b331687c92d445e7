/*
 Copyright 2023 NanaFS Authors.

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

package search

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchOperationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_operation_latency_seconds",
			Help:    "The latency of search backend operation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"backend", "operation"},
	)
	searchOperationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_operation_errors",
			Help: "This count of search backend encountering errors",
		},
		[]string{"backend", "operation"},
	)
)

func init() {
	prometheus.MustRegister(
		searchOperationLatency,
		searchOperationErrorCounter,
	)
}

func logOperationLatency(backend, operation string, startAt time.Time) {
	searchOperationLatency.WithLabelValues(backend, operation).Observe(time.Since(startAt).Seconds())
}

func logOperationError(backend, operation string, err error) {
	if err != nil && err != context.Canceled {
		searchOperationErrorCounter.WithLabelValues(backend, operation).Inc()
	}
}
