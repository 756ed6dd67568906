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
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/pflag"
	"github.com/tikv/bplustree/pkg/utils/configutil"
	"github.com/tikv/bplustree/pkg/utils/logutil"
	"github.com/tikv/bplustree/pkg/versioninfo"
	"github.com/tikv/bplustree/tools/bptree-bench/config"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	err := cfg.Parse(os.Args[1:])
	defer logutil.LogPanic()

	switch errors.Cause(err) {
	case nil:
	case pflag.ErrHelp:
		exit(0)
	default:
		log.Fatal("parse cmd flags error", zap.Error(err))
	}

	if cfg.Version {
		versioninfo.Print(os.Stdout)
		exit(0)
	}
	if cfg.ConfigCheck {
		configutil.PrintConfigCheckMsg(os.Stdout, cfg.WarningMsgs)
		exit(0)
	}

	// New zap logger
	err = logutil.SetupLogger(cfg.Log, &cfg.Logger, &cfg.LogProps)
	if err == nil {
		log.ReplaceGlobals(cfg.Logger, cfg.LogProps)
	} else {
		log.Fatal("initialize logger error", zap.Error(err))
	}
	versioninfo.Log("bptree-bench")
	for _, msg := range cfg.WarningMsgs {
		log.Warn(msg)
	}
	log.Info("bench config", zap.Reflect("config", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	var sig os.Signal
	go func() {
		sig = <-sc
		cancel()
	}()

	b, err := newBench(cfg)
	if err != nil {
		log.Fatal("create bench failed", zap.Error(err))
	}
	err = b.run(ctx)
	b.close()
	switch {
	case err == nil:
		exit(0)
	case ctx.Err() != nil:
		log.Info("got signal to exit", zap.String("signal", fmt.Sprint(sig)))
		if sig == syscall.SIGTERM {
			exit(0)
		}
		exit(1)
	default:
		log.Error("bench failed", zap.Error(err))
		exit(1)
	}
}

func exit(code int) {
	log.Sync()
	os.Exit(code)
}
