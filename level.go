// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - level.go
// Defines the severity order used by every sink threshold and by the Logger's
// acceptance floor, and the construction-time parsing of level names.

package dispatchlog

import "strings"

// Level represents the severity of a log record. Levels are totally ordered:
// LevelNone < LevelDebug < LevelInfo < LevelWarning < LevelError < LevelCritical.
//
// LevelNone is the lowest level. As a sink threshold it accepts every record;
// a record emitted at LevelNone is never delivered anywhere.
type Level int32

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// levelNames maps the accepted configuration strings to their ordinals.
// Lookup is case-insensitive; see ParseLevel.
var levelNames = map[string]Level{
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warning":  LevelWarning,
	"error":    LevelError,
	"critical": LevelCritical,
	"none":     LevelNone,
}

// allowedLevels is the canonical enumeration used in configuration errors.
const allowedLevels = "debug, info, warning, error, critical, none"

// String returns the uppercase name of the level, as written to sinks.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel resolves a level name to its ordinal. Matching is
// case-insensitive. Unknown names yield a *ConfigError naming the offending
// field and enumerating the accepted set.
func ParseLevel(field, name string) (Level, error) {
	if lvl, ok := levelNames[strings.ToLower(name)]; ok {
		return lvl, nil
	}
	return LevelNone, &ConfigError{
		Field:  field,
		Reason: "must be one of: " + allowedLevels + "; got: " + name,
	}
}

// minLevel returns the smaller of two levels.
func minLevel(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}
