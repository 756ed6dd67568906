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

	"github.com/tikv/bplustree/pkg/utils/syncutil"
)

// opBuffer records the writes of a transaction until commit.
type opBuffer struct {
	// mu protects ops.
	mu  syncutil.Mutex
	ops []op
}

// op represents an Operation that a buffered transaction can execute.
type op struct {
	t   opType
	key string
	val string
}

type opType int

const (
	tPut opType = iota
	tDelete
)

// Save appends a save operation to ops.
func (b *opBuffer) Save(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, op{t: tPut, key: key, val: value})
	return nil
}

// Remove appends a remove operation to ops.
func (b *opBuffer) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, op{t: tDelete, key: key})
	return nil
}

// replay executes the recorded operations in order. The caller holds the
// backend write lock.
func (b *opBuffer) replay(put func(key, value string), del func(key string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, op := range b.ops {
		switch op.t {
		case tPut:
			put(op.key, op.val)
		case tDelete:
			del(op.key)
		}
	}
}

// checkContext makes sure the transaction was not cancelled before commit.
func checkContext(ctx context.Context) error {
	select {
	default:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
