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
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/tikv/bplustree/pkg/errs"
	"go.uber.org/atomic"
)

// maxSourceDepth bounds nested source commands, including a file sourcing itself.
const maxSourceDepth = 16

var sourceDepth atomic.Int32

// NewSourceCommand returns a source subcommand of rootCmd. Each line of the
// file is run through a fresh root command built by newRoot.
func NewSourceCommand(newRoot func() *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "source <file>",
		Short: "run the commands listed in a file, one per line",
		Run: func(cmd *cobra.Command, args []string) {
			sourceCommandFunc(cmd, args, newRoot)
		},
	}
}

func sourceCommandFunc(cmd *cobra.Command, args []string, newRoot func() *cobra.Command) {
	if !checkArgs(cmd, args, 1) {
		return
	}
	path := args[0]
	if depth := sourceDepth.Inc(); depth > maxSourceDepth {
		sourceDepth.Dec()
		cmd.Println(errs.ErrCtlSourceDepth.FastGenByArgs(path, maxSourceDepth))
		return
	}
	defer sourceDepth.Dec()
	content, err := os.ReadFile(path)
	if err != nil {
		cmd.Println(errs.ErrReadFile.Wrap(err).GenWithStackByArgs(path))
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellwords.Parse(line)
		if err != nil {
			cmd.Println(errs.ErrCtlSourceLine.FastGenByArgs(path, lineNo, err))
			return
		}
		root := newRoot()
		root.SetOut(cmd.OutOrStdout())
		root.SetArgs(words)
		if err := root.Execute(); err != nil {
			cmd.Println(errs.ErrCtlSourceLine.FastGenByArgs(path, lineNo, err))
			return
		}
	}
	if err := scanner.Err(); err != nil {
		cmd.Println(errs.ErrCtlSourceLine.FastGenByArgs(path, lineNo+1, err))
	}
}
