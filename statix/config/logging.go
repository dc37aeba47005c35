// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"io"
	"log"
)

// LogLevel controls how verbose a LogGroup is.
type LogLevel int

const (
	// ErrLevel is the minimum level of logging.
	ErrLevel LogLevel = iota + 1
	// WarnLevel logs warnings and errors.
	WarnLevel
	// InfoLevel logs high-level progress: phase start/finish, result sizes.
	InfoLevel
	// DebugLevel additionally logs fixpoint iteration counts and worklist
	// sizes; safe on whole-program-sized inputs.
	DebugLevel
	// TraceLevel logs every worklist pop and fact update; intended for
	// small test programs only.
	TraceLevel
)

// LogGroup is a set of leveled loggers sharing one sink.
type LogGroup struct {
	level LogLevel
	trace *log.Logger
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// NewLogGroup returns a LogGroup configured from config's LogLevel.
func NewLogGroup(cfg *Config) *LogGroup {
	sink, flags := log.Default().Writer(), log.Default().Flags()
	return &LogGroup{
		level: LogLevel(cfg.LogLevel),
		trace: log.New(sink, "[TRACE] ", flags),
		debug: log.New(sink, "[DEBUG] ", flags),
		info:  log.New(sink, "[INFO] ", flags),
		warn:  log.New(sink, "[WARN] ", flags),
		err:   log.New(sink, "[ERROR] ", flags),
	}
}

// SetAllOutput redirects every level's logger to w.
func (l *LogGroup) SetAllOutput(w io.Writer) {
	l.trace.SetOutput(w)
	l.debug.SetOutput(w)
	l.info.SetOutput(w)
	l.warn.SetOutput(w)
	l.err.SetOutput(w)
}

// Tracef logs at TraceLevel.
func (l *LogGroup) Tracef(format string, v ...any) {
	if l.level >= TraceLevel {
		l.trace.Printf(format, v...)
	}
}

// Debugf logs at DebugLevel.
func (l *LogGroup) Debugf(format string, v ...any) {
	if l.level >= DebugLevel {
		l.debug.Printf(format, v...)
	}
}

// Infof logs at InfoLevel.
func (l *LogGroup) Infof(format string, v ...any) {
	if l.level >= InfoLevel {
		l.info.Printf(format, v...)
	}
}

// Warnf logs at WarnLevel.
func (l *LogGroup) Warnf(format string, v ...any) {
	if l.level >= WarnLevel {
		l.warn.Printf(format, v...)
	}
}

// Errorf logs at ErrLevel.
func (l *LogGroup) Errorf(format string, v ...any) {
	if l.level >= ErrLevel {
		l.err.Printf(format, v...)
	}
}
