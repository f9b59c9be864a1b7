package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Logger writes one JSON object per line to its output.
type Logger struct {
	output io.Writer
	fields map[string]interface{}
}

type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func New() *Logger {
	return &Logger{output: os.Stdout}
}

// NewWithOutput is used by tests to capture log lines.
func NewWithOutput(w io.Writer) *Logger {
	return &Logger{output: w}
}

// WithField returns a logger that attaches key/value to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{output: l.output, fields: fields}
}

func (l *Logger) log(level, msg string, kv ...interface{}) {
	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
	}

	if len(l.fields) > 0 || len(kv) >= 2 {
		fields := make(map[string]interface{}, len(l.fields)+len(kv)/2)
		for k, v := range l.fields {
			fields[k] = v
		}
		for i := 0; i+1 < len(kv); i += 2 {
			if key, ok := kv[i].(string); ok {
				fields[key] = kv[i+1]
			}
		}
		entry.Fields = fields
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: marshal entry: %v\n", err)
		return
	}
	fmt.Fprintln(l.output, string(raw))
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.log("DEBUG", msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.log("INFO", msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.log("WARN", msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.log("ERROR", msg, kv...) }

func (l *Logger) Fatal(msg string, kv ...interface{}) {
	l.log("FATAL", msg, kv...)
	os.Exit(1)
}
