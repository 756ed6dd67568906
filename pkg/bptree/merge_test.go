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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tikv/bplustree/pkg/utils/testutil"
)

func TestMergeAdjacentWithinThreshold(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := mustNew(re, 2)
	for _, k := range []string{"a", "b", "c"} {
		tree.Insert(k, "v"+k)
	}
	re.Equal([][]string{{"a", "b"}, {"c"}}, leafKeys(tree))
	tree.Delete("a")
	re.Equal([][]string{{"b"}, {"c"}}, leafKeys(tree))
	re.Zero(tree.Stats().Merges)

	// [b] and [] fit within the merge threshold together.
	tree.Delete("c")
	s := tree.Stats()
	re.Equal(uint64(1), s.Merges)
	re.Equal(uint64(1), s.RootCollapses)
	re.Equal(1, s.Nodes)
	re.Equal([][]string{{"b"}}, leafKeys(tree))
	re.NoError(tree.Verify())
}

func TestMergeUnderflowIntoSibling(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := mustNew(re, 3)
	for _, k := range []string{"a", "b", "c", "d"} {
		tree.Insert(k, "v"+k)
	}
	re.Equal([][]string{{"a", "b"}, {"c", "d"}}, leafKeys(tree))
	tree.Delete("a")
	re.Zero(tree.Stats().Merges)
	tree.Delete("b")
	re.Equal(uint64(1), tree.Stats().Merges)
	re.Equal(1, tree.Height())
	re.Equal([][]string{{"c", "d"}}, leafKeys(tree))
	v, ok := tree.Get("d")
	re.True(ok)
	re.Equal("vd", v)
}

func TestBorrowFromLeftLeaf(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := mustNew(re, 4)
	for _, k := range []string{"a", "b", "c", "d", "e", "bb"} {
		tree.Insert(k, "v"+k)
	}
	re.Equal([][]string{{"a", "b", "bb", "c"}, {"d", "e"}}, leafKeys(tree))

	tree.Delete("e")
	re.Equal(uint64(1), tree.Stats().Borrows)
	re.Zero(tree.Stats().Merges)
	re.Equal([][]string{{"a", "b", "bb"}, {"c", "d"}}, leafKeys(tree))
	re.Equal([]string{"c"}, tree.arena.MustGet(tree.Root()).Keys())
	v, ok := tree.Get("c")
	re.True(ok)
	re.Equal("vc", v)
	re.NoError(tree.Verify())
}

func TestBorrowFromRightLeaf(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := mustNew(re, 4)
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		tree.Insert(k, "v"+k)
	}
	re.Equal([][]string{{"a", "b", "c"}, {"d", "e", "f", "g"}}, leafKeys(tree))

	tree.Delete("a")
	tree.Delete("b")
	re.Equal(uint64(1), tree.Stats().Borrows)
	re.Equal([][]string{{"c", "d"}, {"e", "f", "g"}}, leafKeys(tree))
	re.Equal([]string{"e"}, tree.arena.MustGet(tree.Root()).Keys())
	re.NoError(tree.Verify())
}

func TestRebalanceInternalLevels(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := rand.New(rand.NewSource(11))
	for _, fanout := range []int{4, 5} {
		tree := mustNew(re, fanout)
		keys := testutil.RandomKeys(r, 1000, 6)
		for _, k := range keys {
			tree.Insert(k, k)
		}
		re.GreaterOrEqual(tree.Height(), 4)
		for i, k := range keys[:990] {
			tree.Delete(k)
			if i%50 == 0 {
				re.NoError(tree.Verify())
			}
		}
		re.NoError(tree.Verify())
		s := tree.Stats()
		re.NotZero(s.Merges)
		re.NotZero(s.Borrows)
		re.NotZero(s.RootCollapses)
		for _, k := range keys[990:] {
			re.True(tree.Has(k))
		}
	}
}

// siblingsTree builds an internal root at 0 with children 1 and 2 of the given kinds.
func siblingsTree(left, right NodeKind) *Tree {
	t := &Tree{fanout: 4, arena: NewArena()}
	t.root = t.arena.Allocate(newInternal(noIndex, []string{"m"}, nil))
	for _, kind := range []NodeKind{left, right} {
		n := Node{parent: t.root, kind: kind}
		if kind == LeafNode {
			n.insertAt(0, "x", "vx")
		}
		c := t.arena.Allocate(n)
		r := t.arena.MustGet(t.root)
		r.children = append(r.children, c)
	}
	return t
}

func TestMergeRejectsMismatchedNodes(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := siblingsTree(LeafNode, InternalNode)
	re.Panics(func() { tree.merge(1, 2) })

	tree = siblingsTree(LeafNode, LeafNode)
	// Reversed order: 2 is not the left neighbour of 1.
	re.Panics(func() { tree.merge(2, 1) })
	re.Panics(func() { tree.merge(0, 1) })

	tree.arena.MustGet(2).parent = 5
	re.Panics(func() { tree.merge(1, 2) })
}

func TestRemoveRootPanics(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	tree := mustNew(re, 3)
	re.Panics(func() { tree.removeNode(tree.Root()) })
}
