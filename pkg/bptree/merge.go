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
	"github.com/pingcap/log"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/tikv/bplustree/pkg/utils/logutil"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// checkMerge rebalances the children of internal node p after one of them
// lost an entry, then propagates to the grandparent when p itself shrank.
//
// The first adjacent pair whose combined size is within MergeThreshold is
// merged. Any child still below MergeThreshold afterwards is merged with or
// borrows from a neighbour, so every non-root node stays within
// [MergeThreshold, SplitThreshold].
func (t *Tree) checkMerge(p Index) {
	parent := t.arena.MustGet(p)
	if parent.IsLeaf() {
		return
	}
	shrank := false
	for i := 0; i+1 < len(parent.children); i++ {
		left, right := parent.children[i], parent.children[i+1]
		if t.arena.MustGet(left).Len()+t.arena.MustGet(right).Len() <= t.MergeThreshold() {
			_, p = t.merge(left, right)
			shrank = true
			break
		}
	}
	var repaired bool
	p, repaired = t.repairUnderflow(p)
	shrank = shrank || repaired

	parent = t.arena.MustGet(p)
	if parent.IsRoot() {
		if parent.Len() == 0 {
			t.collapseRoot()
		}
		return
	}
	if shrank {
		t.checkMerge(parent.parent)
	}
}

// repairUnderflow fixes children of p holding fewer than MergeThreshold keys.
// It returns p's index after any merges and whether p lost a separator.
func (t *Tree) repairUnderflow(p Index) (Index, bool) {
	merged := false
	for {
		parent := t.arena.MustGet(p)
		if len(parent.children) < 2 {
			return p, merged
		}
		pos := -1
		for i, c := range parent.children {
			if t.arena.MustGet(c).Len() < t.MergeThreshold() {
				pos = i
				break
			}
		}
		if pos < 0 {
			return p, merged
		}
		sib := pos - 1
		if pos == 0 {
			sib = 1
		}
		left, right := parent.children[min(pos, sib)], parent.children[max(pos, sib)]
		if t.fits(left, right) {
			_, p = t.merge(left, right)
			merged = true
			continue
		}
		t.borrow(p, pos, sib)
	}
}

// fits reports whether two siblings can live in a single node.
func (t *Tree) fits(left, right Index) bool {
	l, r := t.arena.MustGet(left), t.arena.MustGet(right)
	total := l.Len() + r.Len()
	if !l.IsLeaf() {
		// The separator comes down with them.
		total++
	}
	return total <= t.SplitThreshold()
}

// merge folds left into its right sibling and removes left from the arena.
// The separator between them leaves the parent along with the pointer to
// left. It returns the post-removal indices of right and of the parent.
func (t *Tree) merge(left, right Index) (Index, Index) {
	p := t.arena.MustGet(left).parent
	if p == noIndex {
		panic(errs.ErrBPTreeNotSiblings.FastGenByArgs(left, right, p))
	}
	l, r, parent := t.arena.BorrowThree(left, right, p)
	if r.parent != p {
		panic(errs.ErrBPTreeNotSiblings.FastGenByArgs(left, right, p))
	}
	if l.kind != r.kind {
		panic(errs.ErrBPTreeKindMismatch.FastGenByArgs(l.kind, left, r.kind, right))
	}
	if parent.IsLeaf() {
		panic(errs.ErrBPTreeUnexpectedLeaf.FastGenByArgs(p))
	}
	pos := parent.childPosOf(left)
	if pos < 0 || pos+1 >= len(parent.children) || parent.children[pos+1] != right {
		panic(errs.ErrBPTreeNotSiblings.FastGenByArgs(left, right, p))
	}
	separator := parent.keys[pos]
	parent.keys = slices.Delete(parent.keys, pos, pos+1)
	parent.children = slices.Delete(parent.children, pos, pos+1)

	keys := make([]string, 0, l.Len()+r.Len()+1)
	keys = append(keys, l.keys...)
	if l.IsLeaf() {
		values := make([]string, 0, len(l.values)+len(r.values))
		values = append(values, l.values...)
		r.values = append(values, r.values...)
	} else {
		keys = append(keys, separator)
		children := make([]Index, 0, len(l.children)+len(r.children))
		children = append(children, l.children...)
		r.children = append(children, r.children...)
		for _, c := range l.children {
			t.arena.MustGet(c).parent = right
		}
	}
	r.keys = append(keys, r.keys...)
	*l = Node{parent: noIndex}

	t.counts.merges++
	mergeCounter.Inc()
	log.Debug("merge nodes",
		zap.Int("left", int(left)),
		zap.Int("right", int(right)),
		zap.Int("parent", int(p)),
		zap.Stringer("kind", r.kind),
		logutil.ZapRedactString("separator", separator))

	moved := t.removeNode(left)
	return relocate(right, left, moved), relocate(p, left, moved)
}

// borrow moves one entry from the sibling at slot sib into the underflowing
// child at slot pos, rotating the separator through parent p.
func (t *Tree) borrow(p Index, pos, sib int) {
	parent := t.arena.MustGet(p)
	idx, sibIdx := parent.children[pos], parent.children[sib]
	n, s, parent := t.arena.BorrowThree(idx, sibIdx, p)
	fromLeft := sib < pos

	var moved Index = noIndex
	switch {
	case n.IsLeaf() && fromLeft:
		last := s.Len() - 1
		n.insertAt(0, s.keys[last], s.values[last])
		s.removeAt(last)
		parent.keys[sib] = n.keys[0]
	case n.IsLeaf():
		n.insertAt(n.Len(), s.keys[0], s.values[0])
		s.removeAt(0)
		parent.keys[pos] = s.keys[0]
	case fromLeft:
		last := s.Len() - 1
		moved = s.children[last+1]
		n.keys = slices.Insert(n.keys, 0, parent.keys[sib])
		n.children = slices.Insert(n.children, 0, moved)
		parent.keys[sib] = s.keys[last]
		s.keys = s.keys[:last]
		s.children = s.children[:last+1]
	default:
		moved = s.children[0]
		n.keys = append(n.keys, parent.keys[pos])
		n.children = append(n.children, moved)
		parent.keys[pos] = s.keys[0]
		s.keys = slices.Delete(s.keys, 0, 1)
		s.children = slices.Delete(s.children, 0, 1)
	}
	if moved != noIndex {
		t.arena.MustGet(moved).parent = idx
	}

	t.counts.borrows++
	borrowCounter.Inc()
	log.Debug("borrow from sibling",
		zap.Int("node", int(idx)),
		zap.Int("sibling", int(sibIdx)),
		zap.Int("parent", int(p)),
		zap.Bool("from-left", fromLeft),
		zap.Stringer("kind", n.kind))
}

// collapseRoot replaces an internal root left without separators by its only
// child, shrinking the tree by one level.
func (t *Tree) collapseRoot() {
	old := t.root
	r := t.arena.MustGet(old)
	child := r.children[0]
	r.children = nil
	t.arena.MustGet(child).parent = noIndex
	t.root = child
	t.removeNode(old)
	t.counts.rootCollapses++
	rootCollapseCounter.Inc()
	log.Debug("collapse root",
		zap.Int("old-root", int(old)),
		zap.Int("root", int(t.root)))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
