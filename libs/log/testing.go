package log

import (
	"testing"

	"github.com/rs/zerolog"
)

// NewTestingLogger converts a testing.T into a logging interface to
// make test failures and verbose runs provide better feedback associated
// with test failures.
func NewTestingLogger(t testing.TB) Logger {
	level := LogLevelDebug
	if !testing.Verbose() {
		level = LogLevelError
	}

	return NewTestingLoggerWithLevel(t, level)
}

// NewTestingLoggerWithLevel creates a testing logger instance at a
// specific level that wraps the behavior of testing.T.Log().
func NewTestingLoggerWithLevel(t testing.TB, level string) Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		t.Fatalf("unexpected log level (%s): %v", level, err)
	}

	return &defaultLogger{
		Logger: zerolog.New(newSyncWriter(testingWriter{t})).
			Level(logLevel).
			With().
			Timestamp().
			Logger(),
	}
}

type testingWriter struct {
	t testing.TB
}

func (tw testingWriter) Write(in []byte) (int, error) {
	tw.t.Log(string(in))
	return len(in), nil
}
