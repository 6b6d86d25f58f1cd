package logging

import (
	"context"
	"testing"
)

func TestWithTaskID(t *testing.T) {
	ctx := WithTaskID(context.Background(), "task-123")

	if got := GetTaskID(ctx); got != "task-123" {
		t.Errorf("GetTaskID() = %q, want %q", got, "task-123")
	}
}

func TestGetTaskID_NotPresent(t *testing.T) {
	if got := GetTaskID(context.Background()); got != "" {
		t.Errorf("GetTaskID() = %q, want empty string", got)
	}
}

func TestWithTaskID_Overrides(t *testing.T) {
	ctx := WithTaskID(context.Background(), "first")
	ctx = WithTaskID(ctx, "second")

	if got := GetTaskID(ctx); got != "second" {
		t.Errorf("GetTaskID() = %q, want %q", got, "second")
	}
}
