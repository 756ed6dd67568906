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

	"github.com/google/btree"
	"github.com/pingcap/errors"
	"github.com/pingcap/failpoint"
	"github.com/tikv/bplustree/pkg/utils/syncutil"
)

// MemoryKV is an ordered in-memory kv backed by google/btree. It serves as
// the reference the B+-tree backend is checked against.
type MemoryKV struct {
	syncutil.RWMutex
	tree *btree.BTreeG[memoryKVItem]
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		tree: btree.NewG(2, func(i, j memoryKVItem) bool {
			return i.Less(&j)
		}),
	}
}

type memoryKVItem struct {
	key, value string
}

func (s *memoryKVItem) Less(than *memoryKVItem) bool {
	return s.key < than.key
}

// Load gets a value for a given key.
func (kv *MemoryKV) Load(key string) (string, error) {
	kv.RLock()
	defer kv.RUnlock()
	item, ok := kv.tree.Get(memoryKVItem{key, ""})
	if !ok {
		return "", nil
	}
	return item.value, nil
}

// LoadRange gets a range of value for a given key range.
func (kv *MemoryKV) LoadRange(key, endKey string, limit int) ([]string, []string, error) {
	failpoint.Inject("withRangeLimit", func(val failpoint.Value) {
		rangeLimit, ok := val.(int)
		if ok && limit > rangeLimit {
			failpoint.Return(nil, nil, errors.Errorf("limit %d exceed max rangeLimit %d", limit, rangeLimit))
		}
	})
	kv.RLock()
	defer kv.RUnlock()
	var keys, values []string
	visit := func(item memoryKVItem) bool {
		keys = append(keys, item.key)
		values = append(values, item.value)
		if limit > 0 {
			return len(keys) < limit
		}
		return true
	}
	if endKey == "" {
		kv.tree.AscendGreaterOrEqual(memoryKVItem{key, ""}, visit)
	} else {
		kv.tree.AscendRange(memoryKVItem{key, ""}, memoryKVItem{endKey, ""}, visit)
	}
	return keys, values, nil
}

// Save stores a key-value pair.
func (kv *MemoryKV) Save(key, value string) error {
	kv.Lock()
	defer kv.Unlock()
	kv.tree.ReplaceOrInsert(memoryKVItem{key, value})
	return nil
}

// Remove deletes a key-value pair for a given key.
func (kv *MemoryKV) Remove(key string) error {
	kv.Lock()
	defer kv.Unlock()
	kv.tree.Delete(memoryKVItem{key, ""})
	return nil
}

// Len returns the number of stored keys.
func (kv *MemoryKV) Len() int {
	kv.RLock()
	defer kv.RUnlock()
	return kv.tree.Len()
}

// memTxn implements kv.Txn.
type memTxn struct {
	opBuffer
	kv *MemoryKV
}

// RunInTxn runs the user provided function f in a transaction.
// If user provided function returns error, then transaction will not be committed.
func (kv *MemoryKV) RunInTxn(ctx context.Context, f func(txn Txn) error) error {
	txn := &memTxn{kv: kv}
	if err := f(txn); err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}
	// Hold the write lock so the batch applies atomically.
	kv.Lock()
	defer kv.Unlock()
	txn.replay(
		func(key, value string) { kv.tree.ReplaceOrInsert(memoryKVItem{key, value}) },
		func(key string) { kv.tree.Delete(memoryKVItem{key, ""}) },
	)
	return nil
}

// Load executes base's load directly.
func (txn *memTxn) Load(key string) (string, error) {
	return txn.kv.Load(key)
}
