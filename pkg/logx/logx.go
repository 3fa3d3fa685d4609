package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	current atomic.Int32
	std     = log.New(os.Stdout, "", log.LstdFlags)
)

func init() {
	current.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged
func SetLevel(l Level) {
	current.Store(int32(l))
}

func enabled(l Level) bool {
	return l >= Level(current.Load())
}

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Printf("[%s] %s", tag, msg)
}

func Debug(msg string) { output(LevelDebug, "DEBUG", msg) }
func Info(msg string)  { output(LevelInfo, "INFO", msg) }
func Warn(msg string)  { output(LevelWarn, "WARN", msg) }
func Error(msg string) { output(LevelError, "ERROR", msg) }

func Debugf(format string, args ...any) { Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Error(fmt.Sprintf(format, args...)) }

// Fatalf logs the message and exits the process
func Fatalf(format string, args ...any) {
	std.Printf("[FATAL] %s", fmt.Sprintf(format, args...))
	os.Exit(1)
}
