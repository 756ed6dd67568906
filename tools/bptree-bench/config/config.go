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

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	flag "github.com/spf13/pflag"
	"github.com/tikv/bplustree/pkg/bptree"
	"github.com/tikv/bplustree/pkg/errs"
	"github.com/tikv/bplustree/pkg/utils/configutil"
	"github.com/tikv/bplustree/pkg/utils/logutil"
	"go.uber.org/zap"
)

const (
	defaultFanout      = 32
	defaultKeyCount    = 100000
	defaultKeyLength   = 16
	defaultRounds      = 10
	defaultDeleteRatio = 0.3
	defaultReaders     = 4
	defaultSeed        = 1
	defaultOracle      = OracleMemory

	defaultLogFormat = "text"
)

// KeyAlphabet is the set of bytes generated keys are drawn from.
const KeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Oracle backends the tree is checked against.
const (
	OracleMemory  = "memory"
	OracleLevelDB = "leveldb"
)

// Config is the bptree-bench configuration.
type Config struct {
	flagSet    *flag.FlagSet
	configFile string

	// ConfigCheck reports problems in WarningMsgs instead of failing Parse.
	ConfigCheck bool     `toml:"-" json:"-"`
	Version     bool     `toml:"-" json:"-"`
	WarningMsgs []string `toml:"-" json:"-"`

	Log      log.Config `toml:"log" json:"log"`
	Logger   *zap.Logger
	LogProps *log.ZapProperties

	Fanout      int     `toml:"fanout" json:"fanout"`
	KeyCount    int     `toml:"key-count" json:"key-count"`
	KeyLength   int     `toml:"key-length" json:"key-length"`
	Rounds      int     `toml:"rounds" json:"rounds"`
	DeleteRatio float64 `toml:"delete-ratio" json:"delete-ratio"`
	Readers     int     `toml:"readers" json:"readers"`
	Seed        int64   `toml:"seed" json:"seed"`
	Oracle      string  `toml:"oracle" json:"oracle"`
	DataDir     string  `toml:"data-dir" json:"data-dir"`
}

// NewConfig return a set of settings.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.flagSet = flag.NewFlagSet("bptree-bench", flag.ContinueOnError)
	fs := cfg.flagSet
	fs.StringVar(&cfg.configFile, "config", "", "config file")
	fs.Bool("config-check", false, "check config file validity and exit")
	fs.BoolP("version", "V", false, "print version information and exit")
	fs.Int("fanout", 0, "maximum number of keys per tree node")
	fs.Int("key-count", 0, "number of distinct keys the workload draws from")
	fs.Int("key-length", 0, "length of the generated keys")
	fs.Int("rounds", 0, "number of write rounds")
	fs.Float64("delete-ratio", 0, "fraction of writes that are deletes")
	fs.Int("readers", 0, "number of concurrent readers per round")
	fs.Int64("seed", 0, "random seed")
	fs.String("oracle", "", "reference backend: memory or leveldb")
	fs.String("data-dir", "", "leveldb directory, a temporary one when empty")
	fs.StringP("log-level", "L", "", "log level: debug, info, warn, error, fatal (default 'info')")
	fs.String("log-file", "", "log file path")
	return cfg
}

// Parse parses flag definitions from the argument list.
func (c *Config) Parse(arguments []string) error {
	err := c.flagSet.Parse(arguments)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(c.flagSet.Args()) != 0 {
		return errors.Errorf("'%s' is an invalid flag", c.flagSet.Arg(0))
	}

	configutil.AdjustCommandlineBool(c.flagSet, &c.ConfigCheck, "config-check")
	configutil.AdjustCommandlineBool(c.flagSet, &c.Version, "version")

	// Load config file if specified.
	var meta *toml.MetaData
	if c.configFile != "" {
		meta, err = configutil.ConfigFromFile(c, c.configFile)
		if err != nil {
			return err
		}
	}

	// Command line options take precedence over the config file.
	fs := c.flagSet
	configutil.AdjustCommandlineInt(fs, &c.Fanout, "fanout")
	configutil.AdjustCommandlineInt(fs, &c.KeyCount, "key-count")
	configutil.AdjustCommandlineInt(fs, &c.KeyLength, "key-length")
	configutil.AdjustCommandlineInt(fs, &c.Rounds, "rounds")
	configutil.AdjustCommandlineFloat64(fs, &c.DeleteRatio, "delete-ratio")
	configutil.AdjustCommandlineInt(fs, &c.Readers, "readers")
	configutil.AdjustCommandlineInt64(fs, &c.Seed, "seed")
	configutil.AdjustCommandlineString(fs, &c.Oracle, "oracle")
	configutil.AdjustCommandlineString(fs, &c.DataDir, "data-dir")
	configutil.AdjustCommandlineString(fs, &c.Log.Level, "log-level")
	configutil.AdjustCommandlineString(fs, &c.Log.File.Filename, "log-file")

	return c.Adjust(meta)
}

// Adjust fills in defaults for every setting neither the config file nor the
// command line defined, then validates the result.
func (c *Config) Adjust(meta *toml.MetaData) error {
	m := configutil.NewConfigMetadata(meta)
	if err := m.CheckUndecoded(); err != nil {
		if !c.ConfigCheck {
			return err
		}
		c.WarningMsgs = append(c.WarningMsgs, err.Error())
	}
	configutil.AdjustString(&c.Log.Format, defaultLogFormat)
	if c.Log.Level != "" {
		level := logutil.StringToZapLogLevel(c.Log.Level).String()
		if level != strings.ToLower(c.Log.Level) && !strings.EqualFold(c.Log.Level, "warning") {
			c.WarningMsgs = append(c.WarningMsgs, fmt.Sprintf("unknown log level %q, using %s", c.Log.Level, level))
		}
		c.Log.Level = level
	}

	if !m.IsDefined("fanout") {
		configutil.AdjustInt(&c.Fanout, defaultFanout)
	}
	if !m.IsDefined("key-count") {
		configutil.AdjustInt(&c.KeyCount, defaultKeyCount)
	}
	if !m.IsDefined("key-length") {
		configutil.AdjustInt(&c.KeyLength, defaultKeyLength)
	}
	if !m.IsDefined("rounds") {
		configutil.AdjustInt(&c.Rounds, defaultRounds)
	}
	if !m.IsDefined("delete-ratio") && !c.changed("delete-ratio") {
		configutil.AdjustFloat64(&c.DeleteRatio, defaultDeleteRatio)
	}
	if !m.IsDefined("readers") && !c.changed("readers") {
		configutil.AdjustInt(&c.Readers, defaultReaders)
	}
	if !m.IsDefined("seed") && !c.changed("seed") {
		configutil.AdjustInt64(&c.Seed, defaultSeed)
	}
	configutil.AdjustString(&c.Oracle, defaultOracle)
	if c.DataDir != "" {
		configutil.AdjustPath(&c.DataDir)
	}
	if err := c.Validate(); err != nil {
		if !c.ConfigCheck {
			return err
		}
		c.WarningMsgs = append(c.WarningMsgs, err.Error())
	}
	return nil
}

// Validate checks the adjusted settings.
func (c *Config) Validate() error {
	switch {
	case c.Fanout < bptree.MinFanout:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("fanout %d is below %d", c.Fanout, bptree.MinFanout))
	case c.KeyCount <= 0:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("key-count %d must be positive", c.KeyCount))
	case c.KeyLength <= 0:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("key-length %d must be positive", c.KeyLength))
	case float64(c.KeyLength)*math.Log(float64(len(KeyAlphabet))) < math.Log(2*float64(c.KeyCount)):
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("key-length %d is too short for %d distinct keys", c.KeyLength, c.KeyCount))
	case c.Rounds <= 0:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("rounds %d must be positive", c.Rounds))
	case c.DeleteRatio < 0 || c.DeleteRatio > 1:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("delete-ratio %v is outside [0, 1]", c.DeleteRatio))
	case c.Readers < 0:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("readers %d must not be negative", c.Readers))
	case c.Oracle != OracleMemory && c.Oracle != OracleLevelDB:
		return errs.ErrConfigValidation.FastGenByArgs(fmt.Sprintf("unknown oracle %q", c.Oracle))
	}
	return nil
}

func (c *Config) changed(name string) bool {
	return c.flagSet != nil && c.flagSet.Changed(name)
}
