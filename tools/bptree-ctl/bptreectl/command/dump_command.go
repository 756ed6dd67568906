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
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/tikv/bplustree/pkg/bptree/printer"
	"github.com/tikv/bplustree/pkg/errs"
)

// NewDumpCommand returns a dump subcommand of rootCmd
func NewDumpCommand() *cobra.Command {
	d := &cobra.Command{
		Use:   "dump [--values] [--json]",
		Short: "print the node structure of the tree",
		Run:   dumpCommandFunc,
	}
	d.Flags().Bool("values", false, "show leaf values")
	d.Flags().Bool("json", false, "print as json")
	return d
}

func dumpCommandFunc(cmd *cobra.Command, args []string) {
	var opts []printer.Option
	if v, _ := cmd.Flags().GetBool("values"); v {
		opts = append(opts, printer.WithValues())
	}
	if v, _ := cmd.Flags().GetBool("json"); v {
		data, err := printer.JSON(getSession(), opts...)
		if err != nil {
			cmd.Println(err)
			return
		}
		cmd.Println(string(data))
		return
	}
	cmd.Print(printer.Text(getSession(), opts...))
}

// NewStatsCommand returns a stats subcommand of rootCmd
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "show the shape of the tree and its structural change counters",
		Run:   statsCommandFunc,
	}
}

func statsCommandFunc(cmd *cobra.Command, args []string) {
	data, err := json.MarshalIndent(getSession().Stats(), "", "  ")
	if err != nil {
		cmd.Println(errs.ErrJSONMarshal.Wrap(err).GenWithStackByCause())
		return
	}
	cmd.Println(string(data))
}

// NewVerifyCommand returns a verify subcommand of rootCmd
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "check the structural invariants of the tree",
		Run:   verifyCommandFunc,
	}
}

func verifyCommandFunc(cmd *cobra.Command, args []string) {
	if err := getSession().Verify(); err != nil {
		cmd.Println(err)
		return
	}
	cmd.Println("ok")
}
