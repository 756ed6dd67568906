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

package errs

import "github.com/pingcap/errors"

// tree errors
var (
	ErrBPTreeInvalidFanout      = errors.Normalize("invalid fanout %d, must be at least %d", errors.RFCCodeText("BPTree:bptree:ErrBPTreeInvalidFanout"))
	ErrBPTreeUnexpectedInternal = errors.Normalize("descent reached internal node %d where a leaf was expected", errors.RFCCodeText("BPTree:bptree:ErrBPTreeUnexpectedInternal"))
	ErrBPTreeUnexpectedLeaf     = errors.Normalize("node %d is a leaf but was used as a parent", errors.RFCCodeText("BPTree:bptree:ErrBPTreeUnexpectedLeaf"))
	ErrBPTreeKindMismatch       = errors.Normalize("cannot merge %s node %d with %s node %d", errors.RFCCodeText("BPTree:bptree:ErrBPTreeKindMismatch"))
	ErrBPTreeNotSiblings        = errors.Normalize("nodes %d and %d are not adjacent children of node %d", errors.RFCCodeText("BPTree:bptree:ErrBPTreeNotSiblings"))
	ErrBPTreeRemoveRoot         = errors.Normalize("cannot remove root node %d", errors.RFCCodeText("BPTree:bptree:ErrBPTreeRemoveRoot"))
	ErrBPTreeInvariant          = errors.Normalize("invariant violated: %s", errors.RFCCodeText("BPTree:bptree:ErrBPTreeInvariant"))
)

// arena errors
var (
	ErrArenaInvalidIndex      = errors.Normalize("arena index %d out of range [0, %d)", errors.RFCCodeText("BPTree:arena:ErrArenaInvalidIndex"))
	ErrArenaAliasedBorrow     = errors.Normalize("arena borrow of non-distinct slots %d, %d, %d", errors.RFCCodeText("BPTree:arena:ErrArenaAliasedBorrow"))
	ErrArenaDanglingReference = errors.Normalize("node %d still references removed slot %d", errors.RFCCodeText("BPTree:arena:ErrArenaDanglingReference"))
)

// kv errors
var (
	ErrKVTxnCommit = errors.Normalize("commit transaction failed", errors.RFCCodeText("BPTree:kv:ErrKVTxnCommit"))
)

// config errors
var (
	ErrConfigLoad       = errors.Normalize("load config file %s failed", errors.RFCCodeText("BPTree:config:ErrConfigLoad"))
	ErrConfigValidation = errors.Normalize("invalid config: %s", errors.RFCCodeText("BPTree:config:ErrConfigValidation"))
)

// log errors
var (
	ErrInitLogger = errors.Normalize("init logger error", errors.RFCCodeText("BPTree:log:ErrInitLogger"))
)

// ctl errors
var (
	ErrCtlArgs        = errors.Normalize("%s requires %d argument(s), got %d", errors.RFCCodeText("BPTree:ctl:ErrCtlArgs"))
	ErrCtlSourceLine  = errors.Normalize("%s:%d: %v", errors.RFCCodeText("BPTree:ctl:ErrCtlSourceLine"))
	ErrCtlSourceDepth = errors.Normalize("source %s: nested deeper than %d levels", errors.RFCCodeText("BPTree:ctl:ErrCtlSourceDepth"))
)

// The third-party project error.
// leveldb errors
var (
	ErrLevelDBOpen = errors.Normalize("leveldb open file error", errors.RFCCodeText("BPTree:leveldb:ErrLevelDBOpen"))
)

// file errors
var (
	ErrReadFile = errors.Normalize("read file %s failed", errors.RFCCodeText("BPTree:file:ErrReadFile"))
)

// json errors
var (
	ErrJSONMarshal = errors.Normalize("failed to marshal json", errors.RFCCodeText("BPTree:json:ErrJSONMarshal"))
)
