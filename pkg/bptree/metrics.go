// Copyright 2026 TiKV Project Authors.
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

package bptree

import "github.com/prometheus/client_golang/prometheus"

var (
	treeOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bptree",
			Subsystem: "tree",
			Name:      "operations_total",
			Help:      "Counter of point operations served by the tree.",
		}, []string{"type"})

	structuralChangeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bptree",
			Subsystem: "tree",
			Name:      "structural_changes_total",
			Help:      "Counter of node splits, merges, borrows and root changes.",
		}, []string{"type"})
)

var (
	insertCounter     = treeOperationCounter.WithLabelValues("insert")
	updateCounter     = treeOperationCounter.WithLabelValues("update")
	deleteCounter     = treeOperationCounter.WithLabelValues("delete")
	deleteMissCounter = treeOperationCounter.WithLabelValues("delete_miss")
	getCounter        = treeOperationCounter.WithLabelValues("get")
	getMissCounter    = treeOperationCounter.WithLabelValues("get_miss")

	splitCounter        = structuralChangeCounter.WithLabelValues("split")
	mergeCounter        = structuralChangeCounter.WithLabelValues("merge")
	borrowCounter       = structuralChangeCounter.WithLabelValues("borrow")
	rootPromoteCounter  = structuralChangeCounter.WithLabelValues("root_promote")
	rootCollapseCounter = structuralChangeCounter.WithLabelValues("root_collapse")
)

func init() {
	prometheus.MustRegister(treeOperationCounter)
	prometheus.MustRegister(structuralChangeCounter)
}
