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

package configutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestPrintConfigCheckMsg(t *testing.T) {
	// Define test cases
	tests := []struct {
		name        string
		warningMsgs []string
		want        string
	}{
		{
			name:        "no warnings",
			warningMsgs: []string{},
			want:        "config check successful\n",
		},
		{
			name:        "with warnings",
			warningMsgs: []string{"warning message 1", "warning message 2"},
			want:        "warning message 1\nwarning message 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintConfigCheckMsg(&buf, tt.warningMsgs)
			require.Equal(t, tt.want, buf.String())
		})
	}
}

type testConfig struct {
	Fanout int     `toml:"fanout"`
	Ratio  float64 `toml:"ratio"`
	Log    struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func TestConfigFromFile(t *testing.T) {
	re := require.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	re.NoError(os.WriteFile(path, []byte("fanout = 7\nunknown = 1\n[log]\nlevel = \"debug\"\n"), 0o600))

	cfg := &testConfig{}
	meta, err := ConfigFromFile(cfg, path)
	re.NoError(err)
	re.Equal(7, cfg.Fanout)
	re.Equal("debug", cfg.Log.Level)

	m := NewConfigMetadata(meta)
	re.True(m.IsDefined("fanout"))
	re.False(m.IsDefined("ratio"))
	re.True(m.Child("log").IsDefined("level"))
	err = m.CheckUndecoded()
	re.Error(err)
	re.Contains(err.Error(), "unknown")

	_, err = ConfigFromFile(cfg, filepath.Join(t.TempDir(), "missing.toml"))
	re.Error(err)
	re.Contains(err.Error(), "missing.toml")
}

func TestNilMetadata(t *testing.T) {
	re := require.New(t)
	m := NewConfigMetadata(nil)
	re.False(m.IsDefined("fanout"))
	re.False(m.Child("log").IsDefined("level"))
	re.NoError(m.CheckUndecoded())

	var meta toml.MetaData
	re.NoError(NewConfigMetadata(&meta).CheckUndecoded())
}

func TestAdjust(t *testing.T) {
	re := require.New(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("fanout", 4, "")
	fs.Int64("seed", 0, "")
	fs.Float64("ratio", 0, "")
	fs.String("dir", "", "")
	fs.Bool("verbose", false, "")
	re.NoError(fs.Parse([]string{"--seed=9", "--dir=data", "--verbose"}))

	fanout, seed, ratio := 6, int64(1), 0.5
	dir, verbose := "", false
	AdjustCommandlineInt(fs, &fanout, "fanout")
	AdjustCommandlineInt64(fs, &seed, "seed")
	AdjustCommandlineFloat64(fs, &ratio, "ratio")
	AdjustCommandlineString(fs, &dir, "dir")
	AdjustCommandlineBool(fs, &verbose, "verbose")
	// Flags left at their default keep the file value.
	re.Equal(6, fanout)
	re.Equal(0.5, ratio)
	re.Equal(int64(9), seed)
	re.Equal("data", dir)
	re.True(verbose)

	n, s, f, i64 := 0, "", 0.0, int64(0)
	AdjustInt(&n, 3)
	AdjustString(&s, "memory")
	AdjustFloat64(&f, 0.25)
	AdjustInt64(&i64, 11)
	re.Equal(3, n)
	re.Equal("memory", s)
	re.Equal(0.25, f)
	re.Equal(int64(11), i64)

	AdjustPath(&dir)
	re.True(filepath.IsAbs(dir))
}
