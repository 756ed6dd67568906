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

import "golang.org/x/exp/slices"

// NodeView is a detached copy of one node, handed out by Walk.
type NodeView struct {
	Index    Index
	Parent   Index
	Depth    int
	Kind     NodeKind
	Keys     []string
	Values   []string
	Children []Index
}

// IsRoot reports whether the viewed node is the root.
func (v NodeView) IsRoot() bool { return v.Parent == noIndex }

// Walk visits every node in depth-first pre-order, children left to right,
// until fn returns false. It is a structural visitor for dumps and
// diagnostics; the tree must not be modified while walking.
func (t *Tree) Walk(fn func(v NodeView) bool) {
	type frame struct {
		idx   Index
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.arena.MustGet(f.idx)
		v := NodeView{
			Index:    f.idx,
			Parent:   n.parent,
			Depth:    f.depth,
			Kind:     n.kind,
			Keys:     slices.Clone(n.keys),
			Values:   slices.Clone(n.values),
			Children: slices.Clone(n.children),
		}
		if !fn(v) {
			return
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.children[i], f.depth + 1})
		}
	}
}
