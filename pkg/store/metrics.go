// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_store_operations_total",
			Help: "Total number of storage operations",
		},
		[]string{"operation", "result"},
	)

	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipes_store_operation_duration_seconds",
			Help:    "Duration of storage operations in seconds, including the full file rewrite",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	storeRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipes_store_records",
			Help: "Number of records seen in the backing file on the last read",
		},
	)
)

func observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeOperationsTotal.WithLabelValues(op, result).Inc()
	storeOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
