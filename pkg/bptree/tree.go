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

import "github.com/tikv/bplustree/pkg/errs"

// MinFanout is the smallest fanout New accepts.
const MinFanout = 2

// Tree is an in-memory B+-tree mapping string keys to string values.
//
// Tree is not safe for concurrent use; callers sharing a Tree must serialize
// access themselves (see kv.BPTreeKV).
type Tree struct {
	fanout int
	root   Index
	arena  *Arena
	length int
	counts structuralCounts
}

type structuralCounts struct {
	splits         uint64
	merges         uint64
	borrows        uint64
	rootPromotions uint64
	rootCollapses  uint64
}

// New creates an empty tree whose nodes hold at most fanout keys.
func New(fanout int) (*Tree, error) {
	if fanout < MinFanout {
		return nil, errs.ErrBPTreeInvalidFanout.FastGenByArgs(fanout, MinFanout)
	}
	t := &Tree{fanout: fanout}
	t.Reset()
	return t, nil
}

// Reset drops every key, leaving a single empty leaf as root.
func (t *Tree) Reset() {
	if t.arena == nil {
		t.arena = NewArena()
	} else {
		t.arena.Reset()
	}
	t.root = t.arena.Allocate(newLeaf(noIndex))
	t.length = 0
	t.counts = structuralCounts{}
}

// Fanout returns the maximum number of keys per node.
func (t *Tree) Fanout() int { return t.fanout }

// SplitThreshold is the key count a node may reach before it splits.
func (t *Tree) SplitThreshold() int { return t.fanout }

// MergeThreshold is the combined key count at or below which two adjacent
// siblings merge. It is also the minimum occupancy of a non-root node.
func (t *Tree) MergeThreshold() int { return t.fanout / 2 }

// Len returns the number of keys in the tree.
func (t *Tree) Len() int { return t.length }

// Root returns the index of the root node.
func (t *Tree) Root() Index { return t.root }

// Height returns the number of levels, 1 for a lone leaf root.
func (t *Tree) Height() int {
	h := 1
	for n := t.arena.MustGet(t.root); !n.IsLeaf(); n = t.arena.MustGet(n.children[0]) {
		h++
	}
	return h
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (string, bool) {
	leaf := t.leafAt(t.locateLeaf(key))
	if pos, ok := leaf.search(key); ok {
		getCounter.Inc()
		return leaf.values[pos], true
	}
	getMissCounter.Inc()
	return "", false
}

// Has reports whether key is present.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Insert stores value under key. An existing key has its value replaced in
// place and the previous value is returned with replaced set.
func (t *Tree) Insert(key, value string) (old string, replaced bool) {
	idx := t.locateLeaf(key)
	leaf := t.leafAt(idx)
	pos, ok := leaf.search(key)
	if ok {
		old = leaf.values[pos]
		leaf.values[pos] = value
		updateCounter.Inc()
		return old, true
	}
	leaf.insertAt(pos, key, value)
	t.length++
	insertCounter.Inc()
	if leaf.Len() > t.SplitThreshold() {
		t.split(idx)
	}
	return "", false
}

// Delete removes key and returns its value. Deleting a missing key is a no-op.
func (t *Tree) Delete(key string) (old string, deleted bool) {
	idx := t.locateLeaf(key)
	leaf := t.leafAt(idx)
	pos, ok := leaf.search(key)
	if !ok {
		deleteMissCounter.Inc()
		return "", false
	}
	old = leaf.values[pos]
	leaf.removeAt(pos)
	t.length--
	deleteCounter.Inc()
	if !leaf.IsRoot() {
		t.checkMerge(leaf.parent)
	}
	return old, true
}

// locateLeaf descends from the root to the leaf whose key range covers key.
func (t *Tree) locateLeaf(key string) Index {
	idx := t.root
	for {
		n := t.arena.MustGet(idx)
		if n.IsLeaf() {
			return idx
		}
		idx = n.children[n.childPos(key)]
	}
}

func (t *Tree) leafAt(idx Index) *Node {
	n := t.arena.MustGet(idx)
	if !n.IsLeaf() {
		panic(errs.ErrBPTreeUnexpectedInternal.FastGenByArgs(idx))
	}
	return n
}

// removeNode frees a detached node and keeps the root index current.
func (t *Tree) removeNode(i Index) Index {
	if i == t.root {
		panic(errs.ErrBPTreeRemoveRoot.FastGenByArgs(i))
	}
	moved := t.arena.Remove(i)
	t.root = relocate(t.root, i, moved)
	return moved
}
