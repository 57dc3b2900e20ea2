// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elog is a small leveled logger for the engine's diagnostic
// output: space lifecycle events, rejected operations, and step
// diagnostics. It writes structured key=value fields alongside a message,
// rather than free-form text, so log lines stay greppable.
package elog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	Debug = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// Fields is a set of structured key=value pairs attached to a log line.
type Fields map[string]interface{}

// Logger writes leveled, field-annotated messages for a named subsystem.
type Logger struct {
	mu    sync.Mutex
	name  string
	level int
	out   *os.File
	muted bool
}

// New creates a Logger for the given subsystem name, writing to stderr at
// Warn level by default.
func New(name string) *Logger {

	return &Logger{name: name, level: Warn, out: os.Stderr}
}

// SetLevel sets the minimum level emitted by l.
func (l *Logger) SetLevel(level int) {

	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Mute silences all output from l regardless of level.
func (l *Logger) Mute(muted bool) {

	l.mu.Lock()
	defer l.mu.Unlock()
	l.muted = muted
}

func (l *Logger) log(level int, msg string, fields Fields) {

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.muted || level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s: %s", time.Now().UTC().Format(time.RFC3339Nano), levelNames[level], l.name, msg)
	for k, v := range fields {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	fmt.Fprintln(l.out, b.String())
}

func (l *Logger) Debugf(msg string, fields Fields) { l.log(Debug, msg, fields) }
func (l *Logger) Infof(msg string, fields Fields)  { l.log(Info, msg, fields) }
func (l *Logger) Warnf(msg string, fields Fields)  { l.log(Warn, msg, fields) }
func (l *Logger) Errorf(msg string, fields Fields) { l.log(Error, msg, fields) }
