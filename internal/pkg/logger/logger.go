package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

type Logger struct {
	level Level
	log   *log.Logger
}

func New(level Level) *Logger {
	return &Logger{
		level: level,
		log:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (l *Logger) print(level Level, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	l.log.Printf("[%s] %s", levelNames[level], fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{}) { l.print(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.print(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.print(WARN, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.print(ERROR, format, v...) }

var defaultLogger = New(INFO)

func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
