package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "update-task",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"task_id": "t1"},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "create-task",
		Err:  errors.New("item already has a task"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=update-task")
	assert.Contains(t, out, "task_id=t1")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="item already has a task"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}

func TestLogUseCaseObserver_SlowCallWarns(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, WithSlowCall(10*time.Millisecond))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "bulk-shift",
		Duration: 40 * time.Millisecond,
		Success:  true,
	})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "eventboard_slow_call")

	buf.Reset()
	quiet := NewLogUseCaseObserver(&buf, WithSlowCall(0))
	quiet.ObserveUseCase(context.Background(), UseCaseEvent{Name: "bulk-shift", Duration: time.Second, Success: true})
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestLogUseCaseObserver_SortsFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "update-task",
		Fields: map[string]any{"task_id": "t1", "end": "2024-01-05", "start": "2024-01-03"},
	})

	out := buf.String()
	end := strings.Index(out, "end=")
	start := strings.Index(out, "start=")
	task := strings.Index(out, "task_id=")
	assert.Less(t, end, start)
	assert.Less(t, start, task)
}

func TestUseCaseObserverOrNoop_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "publish-crew"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
