package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SimpleLogger implements Logger on top of leveled standard loggers.
// Fields are rendered as key=value pairs after the message.
type SimpleLogger struct {
	component   string
	debug       bool
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
}

// NewSimpleLogger creates a logger for the given component. Debug output
// is written only when debug is true.
func NewSimpleLogger(component string, debug bool) Logger {
	return newSimpleLogger(component, debug, os.Stdout, os.Stderr)
}

func newSimpleLogger(component string, debug bool, out, errOut io.Writer) *SimpleLogger {
	flags := log.Ldate | log.Ltime | log.LUTC
	return &SimpleLogger{
		component:   component,
		debug:       debug,
		infoLogger:  log.New(out, "INFO: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	l.infoLogger.Print(l.format(msg, nil, fields))
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	l.errorLogger.Print(l.format(msg, err, fields))
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	l.warnLogger.Print(l.format(msg, nil, fields))
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	if !l.debug {
		return
	}
	l.debugLogger.Print(l.format(msg, nil, fields))
}

// Fatal logs a fatal error and exits
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.errorLogger.Fatal(l.format(msg, err, fields))
}

func (l *SimpleLogger) format(msg string, err error, fields []interface{}) string {
	var b strings.Builder
	if l.component != "" {
		b.WriteString("[" + l.component + "] ")
	}
	b.WriteString(msg)
	if err != nil {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&b, " %v", fields[i])
		}
	}
	return b.String()
}

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Fatal(msg string, err error, _ ...interface{}) {
	log.Fatalf("%s: %v", msg, err)
}
