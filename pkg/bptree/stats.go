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

// Stats is a snapshot of the tree shape and of the structural changes made
// since the tree was created or last reset.
type Stats struct {
	Fanout         int    `json:"fanout"`
	Keys           int    `json:"keys"`
	Height         int    `json:"height"`
	Nodes          int    `json:"nodes"`
	Leaves         int    `json:"leaves"`
	Internals      int    `json:"internals"`
	Splits         uint64 `json:"splits"`
	Merges         uint64 `json:"merges"`
	Borrows        uint64 `json:"borrows"`
	RootPromotions uint64 `json:"root-promotions"`
	RootCollapses  uint64 `json:"root-collapses"`
}

// Stats returns the current Stats.
func (t *Tree) Stats() Stats {
	s := Stats{
		Fanout:         t.fanout,
		Keys:           t.length,
		Height:         t.Height(),
		Nodes:          t.arena.Len(),
		Splits:         t.counts.splits,
		Merges:         t.counts.merges,
		Borrows:        t.counts.borrows,
		RootPromotions: t.counts.rootPromotions,
		RootCollapses:  t.counts.rootCollapses,
	}
	for i := range t.arena.nodes {
		if t.arena.nodes[i].IsLeaf() {
			s.Leaves++
		} else {
			s.Internals++
		}
	}
	return s
}
