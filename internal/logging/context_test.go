package logging_test

import (
	"context"
	"testing"

	"github.com/yaklabco/mdview/internal/logging"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext did not return the attached logger")
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := logging.FromContext(context.Background()); got != logging.Default() {
		t.Error("bare context should yield the default logger")
	}

	//nolint:staticcheck // nil context fallback is part of the contract
	if got := logging.FromContext(nil); got != logging.Default() {
		t.Error("nil context should yield the default logger")
	}
}

func TestWithLoggerNilContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("warn")

	//nolint:staticcheck // nil context fallback is part of the contract
	ctx := logging.WithLogger(nil, logger)

	if got := logging.FromContext(ctx); got != logger {
		t.Error("WithLogger on nil context lost the logger")
	}
}
