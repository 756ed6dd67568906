// Copyright 2017 TiKV Project Authors.
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

package logutil

import (
	"testing"

	"github.com/pingcap/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestStringToZapLogLevel(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	re.Equal(zapcore.FatalLevel, StringToZapLogLevel("fatal"))
	re.Equal(zapcore.ErrorLevel, StringToZapLogLevel("ERROR"))
	re.Equal(zapcore.WarnLevel, StringToZapLogLevel("warn"))
	re.Equal(zapcore.WarnLevel, StringToZapLogLevel("warning"))
	re.Equal(zapcore.DebugLevel, StringToZapLogLevel("debug"))
	re.Equal(zapcore.InfoLevel, StringToZapLogLevel("info"))
	re.Equal(zapcore.InfoLevel, StringToZapLogLevel("whatever"))
}

// Not parallel: redaction is process-wide.
func TestRedactLog(t *testing.T) {
	re := require.New(t)
	defer SetRedactLog(false)
	testCases := []struct {
		name            string
		arg             interface{}
		enableRedactLog bool
		expect          interface{}
	}{
		{
			name:            "string arg, enable redact",
			arg:             "foo",
			enableRedactLog: true,
			expect:          "?",
		},
		{
			name:            "string arg",
			arg:             "foo",
			enableRedactLog: false,
			expect:          "foo",
		},
		{
			name:            "strings arg, enable redact",
			arg:             []string{"a", "b"},
			enableRedactLog: true,
			expect:          []string{"?", "?"},
		},
		{
			name:            "strings arg",
			arg:             []string{"a", "b"},
			enableRedactLog: false,
			expect:          []string{"a", "b"},
		},
	}

	for _, testCase := range testCases {
		t.Log(testCase.name)
		SetRedactLog(testCase.enableRedactLog)
		re.Equal(testCase.enableRedactLog, IsRedactLogEnabled())
		switch r := testCase.arg.(type) {
		case []string:
			re.Equal(testCase.expect, RedactStrings(r))
		case string:
			re.Equal(testCase.expect, RedactString(r))
		default:
			panic("unmatched case")
		}
	}
}

func TestRedactStringsKeepsInput(t *testing.T) {
	re := require.New(t)
	SetRedactLog(true)
	defer SetRedactLog(false)
	keys := []string{"k1", "k2"}
	field := ZapRedactStrings("keys", keys)
	re.Equal("keys", field.Key)
	re.Equal([]string{"k1", "k2"}, keys)
	re.Equal(zap.String("key", "?"), ZapRedactString("key", "k1"))
}

func TestSetupLogger(t *testing.T) {
	re := require.New(t)
	defer SetRedactLog(false)
	var (
		lg    *zap.Logger
		props *log.ZapProperties
	)
	cfg := log.Config{Level: "debug", Format: "text"}
	re.NoError(SetupLogger(cfg, &lg, &props, true))
	re.NotNil(lg)
	re.NotNil(props)
	re.True(IsRedactLogEnabled())
	re.True(lg.Core().Enabled(zapcore.DebugLevel))
}
