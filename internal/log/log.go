package log

import (
	"io"
	"log"
	"os"
)

type LogLevelType int

const (
	LogDebug LogLevelType = iota
	LogInfo
	LogWarning
	LogError
	LogNone
)

var (
	logLevel = LogWarning
	stdLog   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel 设置日志级别，低于该级别的日志不输出。
func SetLogLevel(level LogLevelType) {
	logLevel = level
}

func GetLogLevel() LogLevelType {
	return logLevel
}

// SetOutput 设置日志输出目标，默认 os.Stderr。
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	stdLog.SetOutput(w)
}

// Dump 输出请求/响应转储。转储由调用方自己的开关控制，
// 不参与级别过滤，开关打开即输出。
func Dump(v ...interface{}) {
	stdLog.Println(append([]interface{}{"[D]"}, v...)...)
}

func output(level LogLevelType, prefix string, v ...interface{}) {
	if level < logLevel {
		return
	}
	stdLog.Println(append([]interface{}{prefix}, v...)...)
}

func Debug(v ...interface{}) {
	output(LogDebug, "[D]", v...)
}

func Info(v ...interface{}) {
	output(LogInfo, "[I]", v...)
}

func Warn(v ...interface{}) {
	output(LogWarning, "[W]", v...)
}

func Error(v ...interface{}) {
	output(LogError, "[E]", v...)
}
