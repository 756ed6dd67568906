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

	"golang.org/x/exp/slices"
)

// Index addresses a node slot in an Arena.
type Index int

// noIndex marks a missing parent (the root) or a missing relocation.
const noIndex Index = -1

// NodeKind tags the payload a Node carries.
type NodeKind uint8

const (
	// LeafNode holds keys and their values.
	LeafNode NodeKind = iota
	// InternalNode holds separator keys and child indices.
	InternalNode
)

func (k NodeKind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case InternalNode:
		return "internal"
	}
	return "unknown"
}

// Node is a single tree node owned by an Arena.
//
// Leaves keep len(values) == len(keys). Internal nodes keep
// len(children) == len(keys)+1, where children[i] holds every key k with
// keys[i-1] <= k < keys[i].
type Node struct {
	parent   Index
	kind     NodeKind
	keys     []string
	children []Index
	values   []string
}

func newLeaf(parent Index) Node {
	return Node{parent: parent, kind: LeafNode}
}

func newInternal(parent Index, keys []string, children []Index) Node {
	return Node{parent: parent, kind: InternalNode, keys: keys, children: children}
}

// Parent returns the parent index, or -1 for the root.
func (n *Node) Parent() Index { return n.parent }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == noIndex }

// Kind returns the payload tag.
func (n *Node) Kind() NodeKind { return n.kind }

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.kind == LeafNode }

// Len returns the number of resident keys.
func (n *Node) Len() int { return len(n.keys) }

// Keys returns the node's keys. The slice must not be modified.
func (n *Node) Keys() []string { return n.keys }

// Values returns a leaf's values. The slice must not be modified.
func (n *Node) Values() []string { return n.values }

// Children returns an internal node's child indices. The slice must not be modified.
func (n *Node) Children() []Index { return n.children }

// search returns the position of key, or the position it would be inserted at.
func (n *Node) search(key string) (int, bool) {
	i := sort.SearchStrings(n.keys, key)
	return i, i < len(n.keys) && n.keys[i] == key
}

// childPos returns the child slot covering key: the first separator strictly
// greater than key, or the last child.
func (n *Node) childPos(key string) int {
	return sort.Search(len(n.keys), func(i int) bool {
		return n.keys[i] > key
	})
}

// childPosOf returns the slot holding child, or -1.
func (n *Node) childPosOf(child Index) int {
	return slices.Index(n.children, child)
}

func (n *Node) insertAt(pos int, key, value string) {
	n.keys = slices.Insert(n.keys, pos, key)
	n.values = slices.Insert(n.values, pos, value)
}

func (n *Node) removeAt(pos int) {
	n.keys = slices.Delete(n.keys, pos, pos+1)
	n.values = slices.Delete(n.values, pos, pos+1)
}

func (n *Node) references(i Index) bool {
	return n.parent == i || slices.Contains(n.children, i)
}

func (n *Node) replaceReferences(from, to Index) {
	if n.parent == from {
		n.parent = to
	}
	for pos, c := range n.children {
		if c == from {
			n.children[pos] = to
		}
	}
}
