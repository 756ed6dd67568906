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

import (
	"sort"

	"github.com/tikv/bplustree/pkg/errs"
)

// Arena is the dense, index-addressed owner of every tree node.
//
// Pointers handed out by Get, MustGet and BorrowThree stay valid until the
// next Allocate, which may move the backing storage.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of live slots.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Reset drops every slot but keeps the backing storage for reuse.
func (a *Arena) Reset() {
	for i := range a.nodes {
		a.nodes[i] = Node{}
	}
	a.nodes = a.nodes[:0]
}

// Allocate appends n and returns its index, always Len()-1 after the call.
func (a *Arena) Allocate(n Node) Index {
	a.nodes = append(a.nodes, n)
	return Index(len(a.nodes) - 1)
}

// Get returns the node at i, or ErrArenaInvalidIndex.
func (a *Arena) Get(i Index) (*Node, error) {
	if i < 0 || int(i) >= len(a.nodes) {
		return nil, errs.ErrArenaInvalidIndex.FastGenByArgs(i, len(a.nodes))
	}
	return &a.nodes[i], nil
}

// MustGet is Get for indices that must be valid. An invalid index means the
// tree is corrupted and panics.
func (a *Arena) MustGet(i Index) *Node {
	n, err := a.Get(i)
	if err != nil {
		panic(err)
	}
	return n
}

// BorrowThree returns exclusive views of three distinct slots in the order
// requested. The storage is cut into disjoint windows at the sorted indices,
// so no two returned pointers can share a slot; overlapping indices panic.
func (a *Arena) BorrowThree(i, j, k Index) (*Node, *Node, *Node) {
	if i == j || j == k || i == k {
		panic(errs.ErrArenaAliasedBorrow.FastGenByArgs(i, j, k))
	}
	sorted := [3]Index{i, j, k}
	for _, idx := range sorted {
		if idx < 0 || int(idx) >= len(a.nodes) {
			panic(errs.ErrArenaInvalidIndex.FastGenByArgs(idx, len(a.nodes)))
		}
	}
	sort.Slice(sorted[:], func(x, y int) bool { return sorted[x] < sorted[y] })

	var (
		views [3]*Node
		rest  = a.nodes
		base  Index
	)
	for n, idx := range sorted {
		head := rest[:idx-base+1]
		views[n] = &head[len(head)-1]
		rest, base = rest[idx-base+1:], idx+1
	}
	pick := func(idx Index) *Node {
		for n := range sorted {
			if sorted[n] == idx {
				return views[n]
			}
		}
		return nil
	}
	return pick(i), pick(j), pick(k)
}

// Remove deletes slot i by moving the last slot into it and rewriting every
// parent and child reference to the moved slot. It returns the former index
// of the moved node, or -1 when i was the last slot.
//
// Callers must have detached i first: a surviving reference to i panics with
// ErrArenaDanglingReference.
func (a *Arena) Remove(i Index) Index {
	a.MustGet(i)
	for idx := range a.nodes {
		if Index(idx) != i && a.nodes[idx].references(i) {
			panic(errs.ErrArenaDanglingReference.FastGenByArgs(idx, i))
		}
	}

	last := Index(len(a.nodes) - 1)
	moved := noIndex
	if i != last {
		a.nodes[i] = a.nodes[last]
		moved = last
	}
	a.nodes[last] = Node{}
	a.nodes = a.nodes[:last]

	if moved != noIndex {
		for idx := range a.nodes {
			a.nodes[idx].replaceReferences(moved, i)
		}
	}
	return moved
}

// relocate translates an index held across a Remove(removed) that returned moved.
func relocate(idx, removed, moved Index) Index {
	if moved != noIndex && idx == moved {
		return removed
	}
	return idx
}
