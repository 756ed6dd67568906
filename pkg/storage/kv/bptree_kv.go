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

package kv

import (
	"context"

	"github.com/pingcap/failpoint"
	"github.com/pingcap/log"
	"github.com/tikv/bplustree/pkg/bptree"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/tikv/bplustree/pkg/utils/syncutil"
	"go.uber.org/zap"
)

// BPTreeKV serves a bptree.Tree to concurrent callers: one writer or many
// readers at a time.
type BPTreeKV struct {
	syncutil.RWMutex
	tree *bptree.Tree
}

// NewBPTreeKV returns an empty BPTreeKV whose tree has the given fanout.
func NewBPTreeKV(fanout int) (*BPTreeKV, error) {
	tree, err := bptree.New(fanout)
	if err != nil {
		return nil, err
	}
	return &BPTreeKV{tree: tree}, nil
}

// Load gets a value for a given key.
func (kv *BPTreeKV) Load(key string) (string, error) {
	kv.RLock()
	defer kv.RUnlock()
	v, _ := kv.tree.Get(key)
	return v, nil
}

// Save stores a key-value pair.
func (kv *BPTreeKV) Save(key, value string) error {
	kv.Lock()
	defer kv.Unlock()
	kv.tree.Insert(key, value)
	return nil
}

// Remove deletes a key-value pair for a given key.
func (kv *BPTreeKV) Remove(key string) error {
	kv.Lock()
	defer kv.Unlock()
	kv.tree.Delete(key)
	return nil
}

// Get returns the value stored under key and whether it exists.
func (kv *BPTreeKV) Get(key string) (string, bool) {
	kv.RLock()
	defer kv.RUnlock()
	return kv.tree.Get(key)
}

// Insert stores value under key and returns the replaced value, if any.
func (kv *BPTreeKV) Insert(key, value string) (string, bool) {
	kv.Lock()
	defer kv.Unlock()
	return kv.tree.Insert(key, value)
}

// Delete removes key and returns its value, if it existed.
func (kv *BPTreeKV) Delete(key string) (string, bool) {
	kv.Lock()
	defer kv.Unlock()
	return kv.tree.Delete(key)
}

// Len returns the number of stored keys.
func (kv *BPTreeKV) Len() int {
	kv.RLock()
	defer kv.RUnlock()
	return kv.tree.Len()
}

// Stats returns the tree statistics.
func (kv *BPTreeKV) Stats() bptree.Stats {
	kv.RLock()
	defer kv.RUnlock()
	return kv.tree.Stats()
}

// Verify checks the tree invariants.
func (kv *BPTreeKV) Verify() error {
	kv.RLock()
	defer kv.RUnlock()
	return kv.tree.Verify()
}

// Walk visits the tree nodes under the read lock. fn must not call back
// into kv for writing.
func (kv *BPTreeKV) Walk(fn func(v bptree.NodeView) bool) {
	kv.RLock()
	defer kv.RUnlock()
	kv.tree.Walk(fn)
}

// bptreeTxn implements kv.Txn.
type bptreeTxn struct {
	opBuffer
	kv *BPTreeKV
}

// RunInTxn runs the user provided function f in a transaction. The buffered
// writes are applied under a single write lock, so readers never observe a
// partially applied transaction.
func (kv *BPTreeKV) RunInTxn(ctx context.Context, f func(txn Txn) error) error {
	txn := &bptreeTxn{kv: kv}
	if err := f(txn); err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}
	failpoint.Inject("bptreeCommitFail", func() {
		failpoint.Return(errs.ErrKVTxnCommit.FastGenByArgs())
	})
	kv.Lock()
	defer kv.Unlock()
	txn.replay(
		func(key, value string) { kv.tree.Insert(key, value) },
		func(key string) { kv.tree.Delete(key) },
	)
	log.Debug("bptree txn committed",
		zap.Int("ops", len(txn.ops)),
		zap.Int("keys", kv.tree.Len()))
	return nil
}

// Load executes base's load directly.
func (txn *bptreeTxn) Load(key string) (string, error) {
	return txn.kv.Load(key)
}
