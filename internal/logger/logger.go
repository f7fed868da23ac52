package logger

import (
	"encoding/json"
	"os"
	"time"
)

// Logger writes one JSON object per line to stdout. Every service and
// display in the binary logs through this.
type Logger struct {
	service  string
	hostname string
}

func New(service string) *Logger {
	h, _ := os.Hostname()
	return &Logger{service: service, hostname: h}
}

func (l *Logger) log(level, action string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level,
		"service":   l.service,
		"action":    action,
		"hostname":  l.hostname,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	_ = json.NewEncoder(os.Stdout).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log("INFO", action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log("DEBUG", action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, fields, err)
}
