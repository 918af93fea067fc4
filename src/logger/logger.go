package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultSlowThreshold = time.Second

// LogrusLogger records OpenAPI calls. Calls slower than SlowThreshold are
// logged at warn level.
type LogrusLogger struct {
	logger        *logrus.Logger
	SlowThreshold time.Duration
}

func NewLogrusLogger() *LogrusLogger {
	return NewLogrusLoggerFrom(logrus.StandardLogger())
}

func NewLogrusLoggerFrom(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{
		logger:        l,
		SlowThreshold: DefaultSlowThreshold,
	}
}

func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (method string, path string, status int), err error) {
	elapsed := time.Since(begin)
	method, path, status := fc()
	entry := l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed,
		"method":  method,
		"path":    path,
		"status":  status,
	})

	if err != nil {
		entry.Error(err)
	} else if elapsed > l.SlowThreshold {
		entry.Warnf("SLOW API CALL >= %v", l.SlowThreshold)
	} else {
		entry.Debug("API CALL")
	}
}
