package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allIdle(t *Tracker) bool {
	for _, stage := range t.Snapshot() {
		if stage.Status != StatusIdle {
			return false
		}
	}
	return true
}

func TestNewTrackerStartsIdle(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	stages := tracker.Snapshot()
	require.Len(t, stages, 6)
	assert.Equal(t, "Query Refiner", stages[0].Name)
	assert.Equal(t, "Deployment", stages[5].Name)
	assert.True(t, allIdle(tracker))
}

func TestResetIsIdempotent(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Reset()
	first := tracker.Snapshot()
	tracker.Reset()
	second := tracker.Snapshot()

	assert.Equal(t, first, second)
	assert.True(t, allIdle(tracker))
}

func TestReplayZeroMarksNothing(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Replay(0)
	tracker.Replay(-3)

	time.Sleep(20 * time.Millisecond)
	assert.True(t, allIdle(tracker))
}

func TestReplayFullPipeline(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Replay(6)

	require.Eventually(t, func() bool {
		return tracker.Snapshot()[5].Status == StatusCompleted
	}, time.Second, time.Millisecond)

	for _, stage := range tracker.Snapshot() {
		assert.Equal(t, StatusCompleted, stage.Status, stage.Name)
	}
}

func TestReplayClampsBeyondPipelineLength(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Replay(12)

	require.Eventually(t, func() bool {
		return tracker.Snapshot()[5].Status == StatusCompleted
	}, time.Second, time.Millisecond)
}

func TestReplayPartialLeavesNextStageRunning(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Replay(3)

	require.Eventually(t, func() bool {
		return tracker.Snapshot()[2].Status == StatusCompleted
	}, time.Second, time.Millisecond)

	stages := tracker.Snapshot()
	assert.Equal(t, StatusCompleted, stages[0].Status)
	assert.Equal(t, StatusCompleted, stages[1].Status)
	assert.Equal(t, StatusCompleted, stages[2].Status)
	assert.Equal(t, StatusRunning, stages[3].Status)
	assert.Equal(t, StatusIdle, stages[4].Status)
	assert.Equal(t, StatusIdle, stages[5].Status)
}

func TestResetPreemptsRunningReplay(t *testing.T) {
	tracker := NewTracker(50 * time.Millisecond)

	tracker.Replay(6)
	tracker.Reset()

	// 被抢占的回放不能在重置之后继续污染状态
	time.Sleep(200 * time.Millisecond)
	assert.True(t, allIdle(tracker))
}

func TestReplayPreemptsPreviousReplay(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	tracker.Replay(6)
	tracker.Replay(2)

	require.Eventually(t, func() bool {
		return tracker.Snapshot()[1].Status == StatusCompleted
	}, time.Second, time.Millisecond)
}

func TestReplayFiresChangeNotification(t *testing.T) {
	tracker := NewTracker(time.Millisecond)

	done := make(chan struct{}, 16)
	tracker.SetOnChange(func() {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	tracker.Replay(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replay never notified the host")
	}
}
