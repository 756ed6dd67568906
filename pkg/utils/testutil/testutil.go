// Copyright 2016 TiKV Project Authors.
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

package testutil

import (
	"fmt"
	"math/rand"
	"sort"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomKey returns a random lowercase alphanumeric key of the given length.
func RandomKey(r *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = keyAlphabet[r.Intn(len(keyAlphabet))]
	}
	return string(b)
}

// RandomKeys returns n distinct random keys of the given length in random order.
// length must be large enough for n distinct keys to exist.
func RandomKeys(r *rand.Rand, n, length int) []string {
	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		k := RandomKey(r, length)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// SequentialKeys returns n zero-padded keys that sort in numeric order,
// e.g. key-0000, key-0001, ...
func SequentialKeys(prefix string, n int) []string {
	width := len(fmt.Sprint(n))
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%0*d", prefix, width, i)
	}
	return keys
}

// SortedCopy returns a sorted copy of keys.
func SortedCopy(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}
