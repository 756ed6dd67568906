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
)

// NewInsertCommand returns an insert subcommand of rootCmd
func NewInsertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <key> <value>",
		Short: "insert a key, replacing the value of an existing one",
		Run:   insertCommandFunc,
	}
}

func insertCommandFunc(cmd *cobra.Command, args []string) {
	if !checkArgs(cmd, args, 2) {
		return
	}
	old, replaced := getSession().Insert(args[0], args[1])
	if replaced {
		cmd.Printf("updated %q (was %q)\n", args[0], old)
		return
	}
	cmd.Printf("inserted %q\n", args[0])
}

// NewGetCommand returns a get subcommand of rootCmd
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "show the value of a key",
		Run:   getCommandFunc,
	}
}

func getCommandFunc(cmd *cobra.Command, args []string) {
	if !checkArgs(cmd, args, 1) {
		return
	}
	v, ok := getSession().Get(args[0])
	if !ok {
		cmd.Printf("%q not found\n", args[0])
		return
	}
	cmd.Println(v)
}

// NewDeleteCommand returns a delete subcommand of rootCmd
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "delete a key",
		Run:   deleteCommandFunc,
	}
}

func deleteCommandFunc(cmd *cobra.Command, args []string) {
	if !checkArgs(cmd, args, 1) {
		return
	}
	old, ok := getSession().Delete(args[0])
	if !ok {
		cmd.Printf("%q not found\n", args[0])
		return
	}
	cmd.Printf("deleted %q (was %q)\n", args[0], old)
}

// NewResetCommand returns a reset subcommand of rootCmd
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [--fanout N]",
		Short: "drop every key, keeping the current fanout unless --fanout is given",
		Run:   resetCommandFunc,
	}
}

func resetCommandFunc(cmd *cobra.Command, args []string) {
	fanout := getSession().Stats().Fanout
	if cmd.Flags().Changed("fanout") {
		fanout, _ = cmd.Flags().GetInt("fanout")
	}
	if err := ResetSession(fanout); err != nil {
		cmd.Println(err)
		return
	}
	cmd.Printf("reset with fanout %d\n", fanout)
}
