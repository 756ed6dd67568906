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

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/tikv/bplustree/pkg/storage/kv"
	"github.com/tikv/bplustree/pkg/utils/logutil"
	"github.com/tikv/bplustree/tools/bptree-bench/config"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// oracle is the reference backend the tree is compared with.
type oracle interface {
	kv.Base
	kv.Ranger
}

type bench struct {
	cfg      *config.Config
	tree     *kv.BPTreeKV
	oracle   oracle
	closeFn  func()
	r        *rand.Rand
	universe []string

	reads      atomic.Int64
	writes     atomic.Int64
	mismatches atomic.Int64
}

func newBench(cfg *config.Config) (*bench, error) {
	tree, err := kv.NewBPTreeKV(cfg.Fanout)
	if err != nil {
		return nil, err
	}
	b := &bench{
		cfg:     cfg,
		tree:    tree,
		closeFn: func() {},
		r:       rand.New(rand.NewSource(cfg.Seed)),
	}
	switch cfg.Oracle {
	case config.OracleLevelDB:
		dir, cleanup := cfg.DataDir, func() {}
		if dir == "" {
			if dir, err = os.MkdirTemp("", "bptree-bench-"); err != nil {
				return nil, errors.WithStack(err)
			}
			cleanup = func() { os.RemoveAll(dir) }
		}
		db, err := kv.NewLevelDBKV(dir)
		if err != nil {
			cleanup()
			return nil, err
		}
		b.oracle = db
		b.closeFn = func() {
			if err := db.Close(); err != nil {
				log.Warn("close leveldb failed", errs.ZapError(err))
			}
			cleanup()
		}
	default:
		b.oracle = kv.NewMemoryKV()
	}
	b.universe = b.randomKeys(cfg.KeyCount, cfg.KeyLength)
	return b, nil
}

func (b *bench) close() {
	b.closeFn()
}

// randomKeys returns n distinct keys of the given length.
func (b *bench) randomKeys(n, length int) []string {
	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	buf := make([]byte, length)
	for len(keys) < n {
		for i := range buf {
			buf[i] = config.KeyAlphabet[b.r.Intn(len(config.KeyAlphabet))]
		}
		k := string(buf)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

type write struct {
	key    string
	value  string
	remove bool
}

func (b *bench) genWrites(round int) []write {
	ws := make([]write, b.cfg.KeyCount)
	for i := range ws {
		k := b.universe[b.r.Intn(len(b.universe))]
		if b.r.Float64() < b.cfg.DeleteRatio {
			ws[i] = write{key: k, remove: true}
			continue
		}
		ws[i] = write{key: k, value: k + "@" + strconv.Itoa(round)}
	}
	return ws
}

func applyWrites(ws []write) func(txn kv.Txn) error {
	return func(txn kv.Txn) error {
		for _, w := range ws {
			var err error
			if w.remove {
				err = txn.Remove(w.key)
			} else {
				err = txn.Save(w.key, w.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// read loads random keys until ctx is done. A value is either absent or
// was written for the key it is stored under.
func (b *bench) read(ctx context.Context, wg *sync.WaitGroup, seed int64) {
	defer wg.Done()
	r := rand.New(rand.NewSource(seed))
	for ctx.Err() == nil {
		k := b.universe[r.Intn(len(b.universe))]
		v, err := b.tree.Load(k)
		b.reads.Inc()
		if err != nil || (v != "" && !strings.HasPrefix(v, k+"@")) {
			b.mismatches.Inc()
			log.Error("unexpected read",
				logutil.ZapRedactString("key", k),
				logutil.ZapRedactString("value", v),
				errs.ZapError(err))
		}
	}
}

func (b *bench) run(ctx context.Context) error {
	start := time.Now()
	for round := 1; round <= b.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		roundStart := time.Now()
		ws := b.genWrites(round)

		readCtx, stopReaders := context.WithCancel(ctx)
		wg := &sync.WaitGroup{}
		for i := 0; i < b.cfg.Readers; i++ {
			wg.Add(1)
			go b.read(readCtx, wg, b.cfg.Seed+int64(round*b.cfg.Readers+i))
		}
		err := b.tree.RunInTxn(ctx, applyWrites(ws))
		if err == nil {
			err = b.oracle.RunInTxn(ctx, applyWrites(ws))
		}
		stopReaders()
		wg.Wait()
		if err != nil {
			return err
		}
		b.writes.Add(int64(len(ws)))

		size, err := b.check()
		if err != nil {
			return err
		}
		stats := b.tree.Stats()
		log.Info("round finished",
			zap.Int("round", round),
			zap.Int("keys", stats.Keys),
			zap.Int("height", stats.Height),
			zap.Int("nodes", stats.Nodes),
			zap.String("data-size", units.HumanSize(float64(size))),
			zap.Duration("cost", time.Since(roundStart)))
	}
	if n := b.mismatches.Load(); n > 0 {
		return errors.Errorf("%d reads observed unexpected values", n)
	}

	stats := b.tree.Stats()
	since := time.Since(start)
	log.Info("bench finished",
		zap.Int("rounds", b.cfg.Rounds),
		zap.Int64("writes", b.writes.Load()),
		zap.Int64("reads", b.reads.Load()),
		zap.String("write-ops", fmt.Sprintf("%.1f/s", float64(b.writes.Load())/since.Seconds())),
		zap.Uint64("splits", stats.Splits),
		zap.Uint64("merges", stats.Merges),
		zap.Uint64("borrows", stats.Borrows),
		zap.Uint64("root-promotions", stats.RootPromotions),
		zap.Uint64("root-collapses", stats.RootCollapses),
		zap.Duration("cost", since))
	return nil
}

// check compares every key of the universe between the tree and the oracle
// and verifies the tree. It returns the total size of the live pairs.
func (b *bench) check() (int64, error) {
	if err := b.tree.Verify(); err != nil {
		return 0, err
	}
	keys, values, err := b.oracle.LoadRange("", "", 0)
	if err != nil {
		return 0, err
	}
	if len(keys) != b.tree.Len() {
		return 0, errors.Errorf("tree holds %d keys, oracle holds %d", b.tree.Len(), len(keys))
	}
	var size int64
	for i, k := range keys {
		v, ok := b.tree.Get(k)
		if !ok || v != values[i] {
			return 0, errors.Errorf("key %s: tree has %q (present %v), oracle has %q",
				logutil.RedactString(k), logutil.RedactString(v), ok, logutil.RedactString(values[i]))
		}
		size += int64(len(k) + len(v))
	}
	return size, nil
}
