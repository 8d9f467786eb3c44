// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// TranscodeManager - FFmpeg 转码任务管理工具

package logger

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
)

// Logger provides a simple logging interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Options for a logger. Zero value logs at info level to stderr.
type Options struct {
	Level  string
	Output io.Writer
}

type defaultLogger struct {
	log hclog.Logger
}

// New creates a named logger at info level
func New(name string) Logger {
	return NewWithOptions(name, Options{})
}

// NewWithOptions creates a named logger. Unknown levels fall back to info.
func NewWithOptions(name string, opts Options) Logger {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return &defaultLogger{
		log: hclog.New(&hclog.LoggerOptions{
			Name:   name,
			Level:  level,
			Output: opts.Output,
		}),
	}
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return &defaultLogger{log: hclog.NewNullLogger()}
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.log.IsInfo() {
		l.log.Info(fmt.Sprintf(format, args...))
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.log.IsError() {
		l.log.Error(fmt.Sprintf(format, args...))
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.log.IsDebug() {
		l.log.Debug(fmt.Sprintf(format, args...))
	}
}
