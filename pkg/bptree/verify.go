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
	"fmt"

	"github.com/tikv/bplustree/pkg/errs"
)

// Verify checks the structural invariants of the whole tree and returns
// ErrBPTreeInvariant describing the first violation found.
//
// It checks: a single parentless node which is the root; parent pointers
// matching child lists; strictly ascending keys; keys within the separator
// bounds of their subtree; payload arity; node occupancy; uniform leaf depth;
// every arena slot reachable; the key count matching Len.
func (t *Tree) Verify() error {
	v := &verifier{
		t:         t,
		seen:      make([]bool, t.arena.Len()),
		leafDepth: -1,
	}
	if err := v.check(); err != nil {
		return errs.ErrBPTreeInvariant.FastGenByArgs(err.Error())
	}
	return nil
}

type verifier struct {
	t         *Tree
	seen      []bool
	leafDepth int
	keys      int
}

func (v *verifier) check() error {
	roots := 0
	for i := range v.t.arena.nodes {
		if v.t.arena.nodes[i].IsRoot() {
			roots++
			if Index(i) != v.t.root {
				return fmt.Errorf("node %d has no parent but root is %d", i, v.t.root)
			}
		}
	}
	if roots != 1 {
		return fmt.Errorf("found %d parentless nodes", roots)
	}
	if err := v.walk(v.t.root, noIndex, 0, nil, nil); err != nil {
		return err
	}
	for i, ok := range v.seen {
		if !ok {
			return fmt.Errorf("node %d is unreachable from root %d", i, v.t.root)
		}
	}
	if v.keys != v.t.length {
		return fmt.Errorf("leaves hold %d keys but length is %d", v.keys, v.t.length)
	}
	return nil
}

// walk checks the subtree at idx whose keys must lie in [lo, hi); nil bounds are open.
func (v *verifier) walk(idx, parent Index, depth int, lo, hi *string) error {
	n, err := v.t.arena.Get(idx)
	if err != nil {
		return err
	}
	if v.seen[idx] {
		return fmt.Errorf("node %d reached twice", idx)
	}
	v.seen[idx] = true
	if n.parent != parent {
		return fmt.Errorf("node %d has parent %d, expected %d", idx, n.parent, parent)
	}
	for i := 1; i < len(n.keys); i++ {
		if n.keys[i-1] >= n.keys[i] {
			return fmt.Errorf("node %d keys not strictly ascending at %d", idx, i)
		}
	}
	if len(n.keys) > 0 {
		if lo != nil && n.keys[0] < *lo {
			return fmt.Errorf("node %d key %q below separator %q", idx, n.keys[0], *lo)
		}
		if hi != nil && n.keys[len(n.keys)-1] >= *hi {
			return fmt.Errorf("node %d key %q not below separator %q", idx, n.keys[len(n.keys)-1], *hi)
		}
	}
	if n.Len() > v.t.SplitThreshold() {
		return fmt.Errorf("node %d holds %d keys, above split threshold %d", idx, n.Len(), v.t.SplitThreshold())
	}
	if idx != v.t.root && n.Len() < v.t.MergeThreshold() {
		return fmt.Errorf("node %d holds %d keys, below merge threshold %d", idx, n.Len(), v.t.MergeThreshold())
	}

	if n.IsLeaf() {
		if len(n.values) != len(n.keys) || len(n.children) != 0 {
			return fmt.Errorf("leaf %d has %d keys, %d values, %d children", idx, len(n.keys), len(n.values), len(n.children))
		}
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return fmt.Errorf("leaf %d at depth %d, expected %d", idx, depth, v.leafDepth)
		}
		v.keys += n.Len()
		return nil
	}

	if len(n.children) != len(n.keys)+1 || len(n.values) != 0 {
		return fmt.Errorf("internal %d has %d keys, %d children, %d values", idx, len(n.keys), len(n.children), len(n.values))
	}
	if n.Len() == 0 {
		return fmt.Errorf("internal %d has no separator", idx)
	}
	for i, c := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		if err := v.walk(c, idx, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}
