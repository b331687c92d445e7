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

package tokenizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	tokenizeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tokenizer_tokenize_latency_seconds",
			Help:    "The latency of tokenizing one text.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		},
		[]string{"tokenizer"},
	)
	encodingErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenizer_encoding_errors",
			Help: "This count of texts rejected for invalid utf-8.",
		},
		[]string{"tokenizer"},
	)
)

func init() {
	prometheus.MustRegister(
		tokenizeLatency,
		encodingErrorCounter,
	)
}

func logLatency(tokenizer string, startAt time.Time) {
	tokenizeLatency.WithLabelValues(tokenizer).Observe(time.Since(startAt).Seconds())
}
