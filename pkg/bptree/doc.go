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

// Package bptree implements an in-memory B+-tree over string keys.
//
// Every node lives in a single Arena and is addressed by an integer Index:
// parents and children refer to each other by index rather than by pointer.
// Internal nodes hold separator keys and child indices; leaves hold the keys
// and their values. A node may hold up to Fanout keys. Inserting past that
// splits the node and pushes a separator into the parent, possibly growing a
// new root. Deleting below Fanout/2 keys merges the node with a neighbour or
// borrows an entry from it, possibly collapsing the root.
//
// Removing a node from the arena moves the last slot into the freed one and
// rewrites every reference to it, so indices are only stable between
// structural changes.
//
// Structural invariant violations are programming errors and panic with a
// normalized error from package errs. Looking up or deleting a missing key
// is not an error.
//
// A Tree is not safe for concurrent use.
package bptree
