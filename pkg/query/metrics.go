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

package query

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	decomposeLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_decompose_latency_seconds",
			Help:    "The latency of decomposing one query.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		},
	)
	segmentationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_segmentations_total",
			Help: "This count of segmentations emitted by decomposed queries.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		decomposeLatency,
		segmentationCounter,
	)
}

func logLatency(startAt time.Time) {
	decomposeLatency.Observe(time.Since(startAt).Seconds())
}
