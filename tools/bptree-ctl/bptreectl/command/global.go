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

package command

import (
	"github.com/spf13/cobra"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/tikv/bplustree/pkg/storage/kv"
	"github.com/tikv/bplustree/pkg/utils/syncutil"
)

// DefaultFanout is the fanout of a session created without --fanout.
const DefaultFanout = 4

// The session tree lives for the whole process so that every REPL line and
// every sourced line operates on the same data.
var (
	sessionMu syncutil.Mutex
	session   *kv.BPTreeKV
)

// InitSession creates the session tree unless one already exists, and
// returns the fanout of the session in use.
func InitSession(fanout int) (int, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if session != nil {
		return session.Stats().Fanout, nil
	}
	s, err := kv.NewBPTreeKV(fanout)
	if err != nil {
		return 0, err
	}
	session = s
	return fanout, nil
}

// ResetSession replaces the session tree with an empty one.
func ResetSession(fanout int) error {
	s, err := kv.NewBPTreeKV(fanout)
	if err != nil {
		return err
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()
	session = s
	return nil
}

func getSession() *kv.BPTreeKV {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if session == nil {
		// DefaultFanout is always valid.
		session, _ = kv.NewBPTreeKV(DefaultFanout)
	}
	return session
}

// checkArgs prints the usage and returns false when args does not hold
// exactly n arguments.
func checkArgs(cmd *cobra.Command, args []string, n int) bool {
	if len(args) == n {
		return true
	}
	cmd.Println(errs.ErrCtlArgs.FastGenByArgs(cmd.Name(), n, len(args)))
	cmd.Println(cmd.UsageString())
	return false
}
