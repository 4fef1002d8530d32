// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevelKnownNames(t *testing.T) {
	for name, want := range map[string]Level{
		"debug":    LevelDebug,
		"info":     LevelInfo,
		"warning":  LevelWarning,
		"error":    LevelError,
		"critical": LevelCritical,
		"none":     LevelNone,
	} {
		got, err := ParseLevel("ConsoleLevel", name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseLevelCaseInsensitive(t *testing.T) {
	got, err := ParseLevel("FileLevel", "WARNING")
	require.NoError(t, err)
	require.Equal(t, LevelWarning, got)

	got, err = ParseLevel("FileLevel", "Critical")
	require.NoError(t, err)
	require.Equal(t, LevelCritical, got)
}

func TestParseLevelUnknownNameEnumeratesAllowedSet(t *testing.T) {
	_, err := ParseLevel("ConsoleLevel", "verbose")
	require.Error(t, err)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "ConsoleLevel", ce.Field)
	require.Contains(t, err.Error(), "ConsoleLevel")
	require.Contains(t, err.Error(), "debug, info, warning, error, critical, none")
	require.Contains(t, err.Error(), "verbose")
}

func TestLevelTotalOrder(t *testing.T) {
	require.True(t, LevelNone < LevelDebug)
	require.True(t, LevelDebug < LevelInfo)
	require.True(t, LevelInfo < LevelWarning)
	require.True(t, LevelWarning < LevelError)
	require.True(t, LevelError < LevelCritical)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "CRITICAL", LevelCritical.String())
	require.Equal(t, "NONE", LevelNone.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestThresholdAcceptsRule(t *testing.T) {
	// accepts(record) == (record.Level >= threshold), with no exceptions.
	for _, min := range []Level{LevelNone, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical} {
		th := threshold{min: min}
		for _, lvl := range []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical} {
			require.Equal(t, lvl >= min, th.Accepts(Record{Level: lvl}))
		}
	}
}
