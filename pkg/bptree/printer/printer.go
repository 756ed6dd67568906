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

// Package printer renders the node structure of a bptree.Tree for debugging.
package printer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tikv/bplustree/pkg/bptree"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/xlab/treeprint"
)

// Walker is anything that can visit tree nodes in pre-order.
type Walker interface {
	Walk(fn func(v bptree.NodeView) bool)
}

// Option configures rendering.
type Option func(*options)

type options struct {
	values bool
}

// WithValues renders leaf values next to their keys.
func WithValues() Option {
	return func(o *options) { o.values = true }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Text renders one line per node, indented by depth:
//
//	internal#2 [d]
//	├── leaf#0 [a b c]
//	└── leaf#1 [d e f]
func Text(w Walker, opts ...Option) string {
	o := newOptions(opts)
	var (
		root     treeprint.Tree
		branches []treeprint.Tree
	)
	w.Walk(func(v bptree.NodeView) bool {
		label := Label(v)
		if v.Depth == 0 {
			root = treeprint.NewWithRoot(label)
			branches = append(branches[:0], root)
		} else {
			parent := branches[v.Depth-1]
			if v.Kind == bptree.LeafNode && !o.values {
				parent.AddNode(label)
				return true
			}
			branches = append(branches[:v.Depth], parent.AddBranch(label))
		}
		if v.Kind == bptree.LeafNode && o.values {
			for i, k := range v.Keys {
				branches[v.Depth].AddNode(fmt.Sprintf("%s: %s", k, v.Values[i]))
			}
		}
		return true
	})
	if root == nil {
		return ""
	}
	return root.String()
}

// Label renders a single node as "<kind>#<index> [k1 k2 ...]".
func Label(v bptree.NodeView) string {
	return fmt.Sprintf("%s#%d [%s]", v.Kind, v.Index, strings.Join(v.Keys, " "))
}

// Node is the JSON form of a tree node.
type Node struct {
	Index    int      `json:"index"`
	Kind     string   `json:"kind"`
	Keys     []string `json:"keys"`
	Values   []string `json:"values,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Build converts the walked structure into nested Nodes.
func Build(w Walker, opts ...Option) *Node {
	o := newOptions(opts)
	var (
		root  *Node
		stack []*Node
	)
	w.Walk(func(v bptree.NodeView) bool {
		n := &Node{Index: int(v.Index), Kind: v.Kind.String(), Keys: v.Keys}
		if n.Keys == nil {
			n.Keys = []string{}
		}
		if o.values {
			n.Values = v.Values
		}
		if v.Depth == 0 {
			root = n
		} else {
			parent := stack[v.Depth-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack[:v.Depth], n)
		return true
	})
	return root
}

// JSON renders the tree as indented JSON.
func JSON(w Walker, opts ...Option) ([]byte, error) {
	data, err := json.MarshalIndent(Build(w, opts...), "", "  ")
	if err != nil {
		return nil, errs.ErrJSONMarshal.Wrap(err).GenWithStackByCause()
	}
	return data, nil
}
