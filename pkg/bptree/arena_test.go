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
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
	"github.com/tikv/bplustree/pkg/errs"
)

func leafWithKeys(parent Index, keys ...string) Node {
	n := newLeaf(parent)
	for i, k := range keys {
		n.insertAt(i, k, "v"+k)
	}
	return n
}

func TestArenaAllocateAndGet(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := NewArena()
	re.Equal(0, a.Len())
	for i := 0; i < 3; i++ {
		re.Equal(Index(i), a.Allocate(leafWithKeys(noIndex, "k")))
		re.Equal(i+1, a.Len())
	}

	n, err := a.Get(2)
	re.NoError(err)
	re.Equal([]string{"k"}, n.Keys())

	_, err = a.Get(3)
	re.Error(err)
	re.True(errors.ErrorEqual(err, errs.ErrArenaInvalidIndex.FastGenByArgs(3, 3)))
	_, err = a.Get(-1)
	re.Error(err)
	re.Panics(func() { a.MustGet(10) })
}

func TestArenaReset(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := NewArena()
	for i := 0; i < 4; i++ {
		a.Allocate(leafWithKeys(noIndex, "k"))
	}
	a.Reset()
	re.Equal(0, a.Len())
	re.GreaterOrEqual(cap(a.nodes), 4)
	re.Empty(a.nodes[:4][0].Keys())
	_, err := a.Get(0)
	re.Error(err)

	re.Equal(Index(0), a.Allocate(leafWithKeys(noIndex, "fresh")))
	re.Equal([]string{"fresh"}, a.MustGet(0).Keys())
}

func TestArenaBorrowThree(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := NewArena()
	for _, k := range []string{"n0", "n1", "n2", "n3", "n4"} {
		a.Allocate(leafWithKeys(noIndex, k))
	}

	testCases := [][3]Index{
		{0, 1, 2},
		{3, 0, 4},
		{4, 2, 1},
		{2, 4, 0},
	}
	for _, tc := range testCases {
		x, y, z := a.BorrowThree(tc[0], tc[1], tc[2])
		re.Same(a.MustGet(tc[0]), x)
		re.Same(a.MustGet(tc[1]), y)
		re.Same(a.MustGet(tc[2]), z)
		re.NotSame(x, y)
		re.NotSame(y, z)
		re.NotSame(x, z)
	}

	x, y, z := a.BorrowThree(4, 0, 2)
	x.keys[0], y.keys[0], z.keys[0] = "x", "y", "z"
	re.Equal("y", a.MustGet(0).keys[0])
	re.Equal("n1", a.MustGet(1).keys[0])
	re.Equal("z", a.MustGet(2).keys[0])
	re.Equal("x", a.MustGet(4).keys[0])

	re.Panics(func() { a.BorrowThree(1, 1, 2) })
	re.Panics(func() { a.BorrowThree(1, 2, 2) })
	re.Panics(func() { a.BorrowThree(3, 2, 3) })
	re.Panics(func() { a.BorrowThree(0, 1, 5) })
	re.Panics(func() { a.BorrowThree(-1, 1, 2) })
}

// newFamily builds an internal root at 0 with leaf children 1..n.
func newFamily(n int) *Arena {
	a := NewArena()
	root := a.Allocate(newInternal(noIndex, nil, nil))
	for i := 1; i <= n; i++ {
		c := a.Allocate(leafWithKeys(root, string(rune('a'+i))))
		r := a.MustGet(root)
		r.children = append(r.children, c)
		if i > 1 {
			r.keys = append(r.keys, string(rune('a'+i)))
		}
	}
	return a
}

func TestArenaRemoveSwapsLast(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := newFamily(3)
	root := a.MustGet(0)
	re.Equal([]Index{1, 2, 3}, root.children)

	// Detach slot 1 first, as merge does.
	root.keys = root.keys[1:]
	root.children = root.children[1:]
	moved := a.Remove(1)
	re.Equal(Index(3), moved)
	re.Equal(3, a.Len())

	root = a.MustGet(0)
	re.Equal([]Index{2, 1}, root.children)
	re.Equal([]string{"d"}, a.MustGet(1).keys)
	re.Equal(Index(0), a.MustGet(1).parent)
	re.Equal([]string{"c"}, a.MustGet(2).keys)
}

func TestArenaRemoveLast(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := newFamily(2)
	root := a.MustGet(0)
	root.keys = nil
	root.children = root.children[:1]
	re.Equal(noIndex, a.Remove(2))
	re.Equal(2, a.Len())
	re.Equal([]Index{1}, a.MustGet(0).children)
}

func TestArenaRemoveReparentsMovedChildren(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := NewArena()
	root := a.Allocate(newInternal(noIndex, []string{"m"}, nil))
	gone := a.Allocate(leafWithKeys(noIndex))
	left := a.Allocate(leafWithKeys(root, "a"))
	inner := a.Allocate(newInternal(root, []string{"x"}, nil))
	l1 := a.Allocate(leafWithKeys(inner, "m"))
	l2 := a.Allocate(leafWithKeys(inner, "x"))
	a.MustGet(root).children = []Index{left, inner}
	a.MustGet(inner).children = []Index{l1, l2}

	// The last slot (l2) moves into gone's slot.
	moved := a.Remove(gone)
	re.Equal(l2, moved)
	re.Equal([]Index{l1, gone}, a.MustGet(inner).children)
	re.Equal(inner, a.MustGet(gone).parent)
	re.Equal([]string{"x"}, a.MustGet(gone).keys)
}

func TestArenaRemoveDanglingPanics(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	a := newFamily(2)
	re.Panics(func() { a.Remove(1) })
	re.Panics(func() { a.Remove(7) })
	// The failed removal must not have changed anything.
	re.Equal(3, a.Len())
	re.Equal([]Index{1, 2}, a.MustGet(0).children)
}

func TestRelocate(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	re.Equal(Index(2), relocate(5, 2, 5))
	re.Equal(Index(4), relocate(4, 2, 5))
	re.Equal(Index(5), relocate(5, 2, noIndex))
}
