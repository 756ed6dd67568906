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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tikv/bplustree/pkg/utils/logutil"
	"github.com/tikv/bplustree/pkg/versioninfo"
	"github.com/tikv/bplustree/tools/bptree-ctl/bptreectl/command"
	"go.uber.org/zap"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// GetRootCmd is exposed for integration tests. But it can be embedded into another suite, too.
func GetRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bptree-ctl",
		Short: "B+-tree playground",
	}

	rootCmd.PersistentFlags().Int("fanout", command.DefaultFanout, "maximum number of keys per node of a new session tree; an existing session keeps its fanout until reset")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error, fatal")

	rootCmd.AddCommand(
		command.NewInsertCommand(),
		command.NewGetCommand(),
		command.NewDeleteCommand(),
		command.NewDumpCommand(),
		command.NewStatsCommand(),
		command.NewVerifyCommand(),
		command.NewSourceCommand(GetRootCmd),
		command.NewResetCommand(),
		command.NewExitCommand(),
	)

	rootCmd.Flags().ParseErrorsWhitelist.UnknownFlags = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		fanout, err := cmd.Flags().GetInt("fanout")
		if err != nil {
			return err
		}
		current, err := command.InitSession(fanout)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("fanout") && current != fanout && cmd.Name() != "reset" {
			cmd.Printf("session keeps fanout %d, --fanout %d is ignored; use reset to change it\n", current, fanout)
		}
		return nil
	}

	return rootCmd
}

// MainStart start main command
func MainStart(args []string) {
	rootCmd := GetRootCmd()

	rootCmd.Flags().BoolP("interact", "i", false, "Run bptree-ctl with readline.")
	rootCmd.Flags().BoolP("version", "V", false, "Print version information and exit.")

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			versioninfo.Print(cmd.OutOrStdout())
			return
		}
		if v, err := cmd.Flags().GetBool("interact"); err == nil && v {
			readlineCompleter := readline.NewPrefixCompleter(genCompleter(cmd)...)
			loop(cmd.PersistentFlags(), readlineCompleter)
			return
		}
		cmd.Println(cmd.UsageString())
	}

	rootCmd.SetArgs(args)
	rootCmd.ParseFlags(args)
	rootCmd.SetOut(os.Stdout)
	if err := setupLogger(rootCmd.PersistentFlags()); err != nil {
		rootCmd.Println(err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		rootCmd.Println(err)
		os.Exit(1)
	}
}

func setupLogger(flags *pflag.FlagSet) error {
	var (
		cfg    log.Config
		logger *zap.Logger
		props  *log.ZapProperties
	)
	cfg.Level, _ = flags.GetString("log-level")
	if err := logutil.SetupLogger(cfg, &logger, &props, false); err != nil {
		return err
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

func loop(persistentFlags *pflag.FlagSet, readlineCompleter readline.AutoCompleter) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[32mbptree»\033[0m ",
		HistoryFile:       "/tmp/bptree-ctl.tmp",
		AutoComplete:      readlineCompleter,
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	getREPLCmd := func() *cobra.Command {
		rootCmd := GetRootCmd()
		persistentFlags.VisitAll(func(flag *pflag.Flag) {
			if flag.Changed {
				rootCmd.PersistentFlags().Set(flag.Name, flag.Value.String())
			}
		})
		rootCmd.SetOut(os.Stdout)
		return rootCmd
	}

	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				break
			} else if err == io.EOF {
				break
			}
			continue
		}
		if line == "exit" {
			os.Exit(0)
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Printf("parse command err: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		rootCmd := getREPLCmd()
		rootCmd.SetArgs(args)
		rootCmd.ParseFlags(args)
		if err := rootCmd.Execute(); err != nil {
			rootCmd.Println(err)
		}
	}
}

func genCompleter(cmd *cobra.Command) []readline.PrefixCompleterInterface {
	pc := []readline.PrefixCompleterInterface{}

	for _, v := range cmd.Commands() {
		if v.HasFlags() {
			flagsPc := []readline.PrefixCompleterInterface{}
			flagUsages := strings.Split(strings.Trim(v.Flags().FlagUsages(), " "), "\n")
			for i := 0; i < len(flagUsages)-1; i++ {
				flagsPc = append(flagsPc, readline.PcItem(strings.Split(strings.Trim(flagUsages[i], " "), " ")[0]))
			}
			flagsPc = append(flagsPc, genCompleter(v)...)
			pc = append(pc, readline.PcItem(strings.Split(v.Use, " ")[0], flagsPc...))
		} else {
			pc = append(pc, readline.PcItem(strings.Split(v.Use, " ")[0], genCompleter(v)...))
		}
	}
	return pc
}
