// Copyright 2024 mtekllc. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package obslog is a small leveled logger over the stdlib log.Logger,
// used by the lockfreelist demonstrator (cmd/lfldemo). It deliberately
// stays on the standard library rather than pulling in a structured
// logger: the one repo in this corpus that owns a logging package makes
// the same call, by its own admission, for the same reason — a small
// program doesn't need more.
package obslog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	}
	panic("obslog: unexpected level " + strconv.Itoa(int(l)))
}

// Logger is a minimal leveled logging surface.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

const stdLoggerFlags = log.LstdFlags | log.Lmicroseconds

// New returns a Logger that writes lines at or above level to w.
func New(level Level, w io.Writer) Logger {
	return &logger{std: log.New(w, "", stdLoggerFlags), level: level}
}

type logger struct {
	std   *log.Logger
	level Level
}

func (l *logger) Debug(args ...any)                 { l.log(DebugLevel, fmt.Sprint(args...)) }
func (l *logger) Debugf(format string, args ...any) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Info(args ...any)                  { l.log(InfoLevel, fmt.Sprint(args...)) }
func (l *logger) Infof(format string, args ...any)  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Warn(args ...any)                  { l.log(WarnLevel, fmt.Sprint(args...)) }
func (l *logger) Warnf(format string, args ...any)  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Error(args ...any)                 { l.log(ErrorLevel, fmt.Sprint(args...)) }
func (l *logger) Errorf(format string, args ...any) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }

func (l *logger) Fatalf(format string, args ...any) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (l *logger) log(level Level, msg string) {
	if level < l.level {
		return
	}
	l.std.Output(3, level.String()+": "+msg)
}
