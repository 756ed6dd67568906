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

// promotionPos returns where a node of the given kind is cut. Leaves keep
// every entry, so the right half starts with a copy of the promoted key.
// Internal nodes hand their median separator up to the parent.
func (t *Tree) promotionPos(kind NodeKind) int {
	if kind == LeafNode {
		return (t.fanout + 2) / 2
	}
	return t.fanout / 2
}

// split moves the upper half of an overflowing node into a new right sibling
// and inserts the promoted key into the parent, cascading upwards and
// growing a new root when the root itself splits. It is a no-op for nodes
// within the split threshold.
func (t *Tree) split(idx Index) {
	n := t.arena.MustGet(idx)
	if n.Len() <= t.SplitThreshold() {
		return
	}
	m := t.promotionPos(n.kind)
	promoted := n.keys[m]
	parent := n.parent

	sibling := Node{parent: parent, kind: n.kind}
	if n.IsLeaf() {
		sibling.keys = slices.Clone(n.keys[m:])
		sibling.values = slices.Clone(n.values[m:])
		n.keys = slices.Clip(n.keys[:m])
		n.values = slices.Clip(n.values[:m])
	} else {
		sibling.keys = slices.Clone(n.keys[m+1:])
		sibling.children = slices.Clone(n.children[m+1:])
		n.keys = slices.Clip(n.keys[:m])
		n.children = slices.Clip(n.children[:m+1])
	}
	// n is invalid from here on: Allocate may move the arena storage.
	newIdx := t.arena.Allocate(sibling)
	for _, c := range sibling.children {
		t.arena.MustGet(c).parent = newIdx
	}
	t.counts.splits++
	splitCounter.Inc()
	log.Debug("split node",
		zap.Int("node", int(idx)),
		zap.Int("sibling", int(newIdx)),
		zap.Stringer("kind", sibling.kind),
		logutil.ZapRedactString("promoted-key", promoted),
		logutil.ZapRedactStrings("sibling-keys", sibling.keys))

	if parent == noIndex {
		t.promoteRoot(idx, newIdx, promoted)
		return
	}
	p := t.arena.MustGet(parent)
	if p.IsLeaf() {
		panic(errs.ErrBPTreeUnexpectedLeaf.FastGenByArgs(parent))
	}
	pos := p.childPosOf(idx)
	if pos < 0 {
		panic(errs.ErrBPTreeNotSiblings.FastGenByArgs(idx, newIdx, parent))
	}
	p.keys = slices.Insert(p.keys, pos, promoted)
	p.children = slices.Insert(p.children, pos+1, newIdx)
	t.split(parent)
}

// promoteRoot grows the tree by one level above the split root.
func (t *Tree) promoteRoot(left, right Index, separator string) {
	root := t.arena.Allocate(newInternal(noIndex, []string{separator}, []Index{left, right}))
	t.arena.MustGet(left).parent = root
	t.arena.MustGet(right).parent = root
	t.root = root
	t.counts.rootPromotions++
	rootPromoteCounter.Inc()
	log.Debug("promote new root",
		zap.Int("root", int(root)),
		zap.Int("left", int(left)),
		zap.Int("right", int(right)),
		logutil.ZapRedactString("separator", separator))
}
