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

package bptreectl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newCommand(usage, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   usage,
		Short: short,
	}
	return cmd
}

func TestGenCompleter(t *testing.T) {
	re := require.New(t)
	var subCommand = []string{"testa", "testb", "testc", "testdef"}

	rootCmd := &cobra.Command{
		Use:   "roottest",
		Short: "test root cmd",
	}

	cmdA := newCommand("testa", "test a command")
	cmdB := newCommand("testb <key>", "test b command")
	cmdC := newCommand("testc", "test c command")
	cmdDEF := newCommand("testdef", "test def command")

	rootCmd.AddCommand(cmdA, cmdB, cmdC, cmdDEF)

	pc := genCompleter(rootCmd)
	names := make([]string, 0, len(pc))
	for _, v := range pc {
		// Completion items carry a trailing space.
		names = append(names, strings.TrimSpace(string(v.GetName())))
	}
	re.ElementsMatch(subCommand, names)
}

func TestGenCompleterFlags(t *testing.T) {
	re := require.New(t)
	var dump *cobra.Command
	for _, c := range GetRootCmd().Commands() {
		if c.Name() == "dump" {
			dump = c
		}
	}
	re.NotNil(dump)
	root := &cobra.Command{Use: "root"}
	root.AddCommand(dump)
	pc := genCompleter(root)
	re.Len(pc, 1)
	var flags []string
	for _, child := range pc[0].GetChildren() {
		flags = append(flags, strings.TrimSpace(string(child.GetName())))
	}
	re.ElementsMatch([]string{"--json", "--values"}, flags)
}

// run executes one command line against the shared session.
func run(re *require.Assertions, args ...string) string {
	var buf bytes.Buffer
	rootCmd := GetRootCmd()
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	re.NoError(rootCmd.Execute())
	return buf.String()
}

func TestCommands(t *testing.T) {
	re := require.New(t)
	re.Equal("reset with fanout 5\n", run(re, "reset", "--fanout", "5"))
	for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
		re.Equal("inserted \""+k+"\"\n", run(re, "insert", k, "v"+k))
	}
	re.Equal("updated \"a\" (was \"va\")\n", run(re, "insert", "a", "new"))
	re.Equal("new\n", run(re, "get", "a"))
	re.Equal("\"zz\" not found\n", run(re, "get", "zz"))

	out := run(re, "dump")
	re.Contains(out, "internal#2 [d]")
	re.Contains(out, "leaf#0 [a b c]")
	re.Contains(out, "leaf#1 [d e f]")
	re.Contains(run(re, "dump", "--values"), "a: new")
	re.Contains(run(re, "dump", "--json"), `"kind": "internal"`)

	out = run(re, "stats")
	re.Contains(out, `"keys": 6`)
	re.Contains(out, `"height": 2`)
	re.Equal("ok\n", run(re, "verify"))

	re.Equal("deleted \"b\" (was \"vb\")\n", run(re, "delete", "b"))
	re.Equal("\"b\" not found\n", run(re, "delete", "b"))
	re.Contains(run(re, "insert", "only-key"), "insert requires 2 argument(s), got 1")

	re.Equal("reset with fanout 5\n", run(re, "reset"))
	re.Contains(run(re, "stats"), `"keys": 0`)
	re.Contains(run(re, "reset", "--fanout", "1"), "invalid fanout 1")
}

func TestSource(t *testing.T) {
	re := require.New(t)
	run(re, "reset", "--fanout", "3")
	dir := t.TempDir()
	script := filepath.Join(dir, "script.txt")
	content := strings.Join([]string{
		"# seed a few keys",
		"insert k1 'first value'",
		"",
		"insert k2 v2",
		"insert k3 v3",
		"insert k4 v4",
		"delete k2",
		"get k1",
	}, "\n")
	re.NoError(os.WriteFile(script, []byte(content), 0o600))

	out := run(re, "source", script)
	re.Contains(out, "inserted \"k4\"")
	re.Contains(out, "deleted \"k2\" (was \"v2\")")
	re.Contains(out, "first value")
	re.Contains(run(re, "stats"), `"keys": 3`)

	bad := filepath.Join(dir, "bad.txt")
	re.NoError(os.WriteFile(bad, []byte("insert k5 v5\ninsert 'unterminated\ninsert k6 v6\n"), 0o600))
	out = run(re, "source", bad)
	re.Contains(out, "bad.txt:2:")
	re.Equal("\"k6\" not found\n", run(re, "get", "k6"))
	re.Equal("v5\n", run(re, "get", "k5"))

	re.Contains(run(re, "source", filepath.Join(dir, "missing.txt")), "missing.txt")

	long := filepath.Join(dir, "long.txt")
	re.NoError(os.WriteFile(long, []byte("insert k7 v7\ninsert big "+strings.Repeat("x", 70*1024)+"\ninsert k8 v8\n"), 0o600))
	out = run(re, "source", long)
	re.Contains(out, "long.txt:2:")
	re.Contains(out, "token too long")
	re.Equal("v7\n", run(re, "get", "k7"))
	re.Equal("\"k8\" not found\n", run(re, "get", "k8"))
}

func TestSourceRecursion(t *testing.T) {
	re := require.New(t)
	run(re, "reset", "--fanout", "3")
	self := filepath.Join(t.TempDir(), "self.txt")
	re.NoError(os.WriteFile(self, []byte("insert loop yes\nsource "+self+"\n"), 0o600))

	out := run(re, "source", self)
	re.Contains(out, "nested deeper than 16 levels")
	re.Equal(1, strings.Count(out, "nested deeper"))
	re.Equal("yes\n", run(re, "get", "loop"))

	// The depth is released once the outermost source returns.
	plain := filepath.Join(t.TempDir(), "plain.txt")
	re.NoError(os.WriteFile(plain, []byte("insert after yes\n"), 0o600))
	re.NotContains(run(re, "source", plain), "nested deeper")
	re.Equal("yes\n", run(re, "get", "after"))
}

func TestFanoutOnExistingSession(t *testing.T) {
	re := require.New(t)
	run(re, "reset", "--fanout", "3")
	re.Equal("inserted \"x\"\n", run(re, "insert", "x", "1"))

	out := run(re, "get", "x", "--fanout", "7")
	re.Contains(out, "session keeps fanout 3, --fanout 7 is ignored")
	re.Contains(out, "1\n")
	re.Equal("1\n", run(re, "get", "x", "--fanout", "3"))
	re.Contains(run(re, "stats"), `"fanout": 3`)

	re.Equal("reset with fanout 7\n", run(re, "reset", "--fanout", "7"))
	re.Contains(run(re, "stats"), `"fanout": 7`)
}
