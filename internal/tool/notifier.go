package tool

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ferdiebergado/snaptools/internal/transform"
)

type Level int

const (
	LevelSuccess Level = iota + 1
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notifier shows a short message to the user, like a toast.
type Notifier interface {
	Notify(level Level, title, message string)
}

// NotifyResult reports a finished run. Errors use the title and description
// of their kind. Field errors are appended to the description.
func NotifyResult(n Notifier, res transform.Result, successTitle string) {
	if res.OK {
		n.Notify(LevelSuccess, successTitle, "")
		return
	}

	msg := res.Kind.Description()
	for _, fieldMsg := range sortedValues(res.Errors) {
		msg += " " + fieldMsg + "."
	}
	n.Notify(LevelError, res.Kind.Title(), msg)
}

// LogNotifier sends notifications to slog. The server uses it, having no
// screen to show them on.
type LogNotifier struct{}

func (LogNotifier) Notify(level Level, title, message string) {
	if level == LevelError {
		slog.Warn(title, "message", message)
		return
	}
	slog.Info(title, "message", message)
}

func sortedValues(m map[string]string) []string {
	vals := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		vals = append(vals, m[k])
	}
	return vals
}
