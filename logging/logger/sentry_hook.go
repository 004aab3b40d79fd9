package logger

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards log entries at or above a level to sentry.
type SentryHook struct {
	hub    *sentry.Hub
	levels []logrus.Level
}

// NewSentryHook creates a hook on the current sentry hub for entries at
// minLevel or more severe.
func NewSentryHook(minLevel logrus.Level) *SentryHook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, lvl := range logrus.AllLevels {
		if lvl <= minLevel {
			levels = append(levels, lvl)
		}
	}
	return &SentryHook{hub: sentry.CurrentHub(), levels: levels}
}

// Levels returns the levels this hook fires for
func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

// Fire sends the entry to sentry as an event
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Timestamp = entry.Time

	extra := make(map[string]any, len(entry.Data))
	for k, v := range entry.Data {
		extra[k] = v
	}
	event.Extra = extra
	if traceID, ok := entry.Data[traceKey].(string); ok {
		event.Tags = map[string]string{traceKey: traceID}
	}

	h.hub.CaptureEvent(event)
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
