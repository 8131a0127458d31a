package workshop

import (
	"strings"
	"testing"
	"time"

	"fleetworks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func pendingTask() *models.WorkshopTask {
	task := &models.WorkshopTask{
		Source: models.SourceManual,
		Status: models.TaskPending,
	}
	task.ID = 42
	return task
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment("replaced the bulb"))
	assert.ErrorIs(t, ValidateComment(""), ErrCommentRequired)
	assert.ErrorIs(t, ValidateComment("   "), ErrCommentRequired)
	assert.ErrorIs(t, ValidateComment(strings.Repeat("x", 301)), ErrCommentTooLong)
	assert.NoError(t, ValidateComment(strings.Repeat("x", 300)))
}

func TestMarkInProgress(t *testing.T) {
	task := pendingTask()

	ev, err := MarkInProgress(task, "picked up by workshop", 7, t0)
	require.NoError(t, err)

	assert.Equal(t, models.TaskLogged, task.Status)
	assert.Equal(t, uint(7), task.LoggedByID)
	require.NotNil(t, task.LoggedAt)
	assert.Equal(t, t0, *task.LoggedAt)

	assert.Equal(t, models.EventLogged, ev.Status)
	assert.Equal(t, "picked up by workshop", ev.Body)
	assert.Equal(t, uint(42), ev.TaskID)
}

func TestMarkInProgress_InvalidFrom(t *testing.T) {
	task := pendingTask()
	task.Status = models.TaskCompleted

	_, err := MarkInProgress(task, "again", 7, t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.TaskCompleted, task.Status, "task untouched on error")
}

func TestHoldAndResume(t *testing.T) {
	task := pendingTask()
	_, err := MarkInProgress(task, "started", 7, t0)
	require.NoError(t, err)

	_, err = Resume(task, "not on hold yet", 7, t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	ev, err := MarkOnHold(task, "waiting for parts", 7, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.TaskOnHold, task.Status)
	assert.Equal(t, models.EventOnHold, ev.Status)

	ev, err = Resume(task, "parts arrived", 7, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.TaskLogged, task.Status)
	assert.Equal(t, models.EventResumed, ev.Status)
}

// Completing from pending synthesizes a logged event strictly before the
// completed event.
func TestMarkComplete_FromPending(t *testing.T) {
	task := pendingTask()

	events, err := MarkComplete(task, "fixed", "started", 7, t0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, models.EventLogged, events[0].Status)
	assert.Equal(t, "started", events[0].Body)
	assert.Equal(t, models.EventCompleted, events[1].Status)
	assert.Equal(t, "fixed", events[1].Body)
	assert.True(t, events[1].CreatedAt.After(events[0].CreatedAt))

	assert.Equal(t, models.TaskCompleted, task.Status)
	assert.True(t, task.Actioned)
	require.NotNil(t, task.ActionedAt)
	assert.Equal(t, events[1].CreatedAt, *task.ActionedAt)
}

func TestMarkComplete_FromOnHold_TagsResumed(t *testing.T) {
	task := pendingTask()
	_, err := MarkInProgress(task, "started", 7, t0)
	require.NoError(t, err)
	_, err = MarkOnHold(task, "parts", 7, t0)
	require.NoError(t, err)

	events, err := MarkComplete(task, "done", "back on it", 7, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventResumed, events[0].Status)
	assert.Equal(t, models.EventCompleted, events[1].Status)
}

func TestMarkComplete_FromLogged_SingleEvent(t *testing.T) {
	task := pendingTask()
	_, err := MarkInProgress(task, "started", 7, t0)
	require.NoError(t, err)

	events, err := MarkComplete(task, "done", "", 7, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventCompleted, events[0].Status)
}

func TestMarkComplete_RequiresIntermediateComment(t *testing.T) {
	task := pendingTask()

	_, err := MarkComplete(task, "done", "", 7, t0)
	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.Equal(t, models.TaskPending, task.Status)
}

func TestMarkComplete_AlreadyCompleted(t *testing.T) {
	task := pendingTask()
	_, err := MarkComplete(task, "done", "started", 7, t0)
	require.NoError(t, err)

	_, err = MarkComplete(task, "done again", "started", 7, t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUndo_CompletedWithLoggedHistory(t *testing.T) {
	task := pendingTask()
	var history []models.TaskEvent

	ev, err := MarkInProgress(task, "started", 7, t0)
	require.NoError(t, err)
	history = append(history, ev)

	events, err := MarkComplete(task, "done", "", 7, t0.Add(time.Hour))
	require.NoError(t, err)
	history = append(history, events...)

	undo, err := Undo(task, history, 9, t0.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.TaskLogged, task.Status)
	assert.False(t, task.Actioned)
	assert.Nil(t, task.ActionedAt)
	assert.Equal(t, models.EventUndo, undo.Status)
	assert.Equal(t, models.TaskCompleted, undo.FromStatus)
	assert.Equal(t, models.TaskLogged, undo.ToStatus)
	// logged metadata survives when undoing back to logged
	assert.Equal(t, "started", task.LoggedComment)
}

func TestUndo_CompletedNeverLogged(t *testing.T) {
	// a completed task with an empty history has never been logged
	task := pendingTask()
	task.Status = models.TaskCompleted
	task.Actioned = true

	undo, err := Undo(task, nil, 9, t0)
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, models.TaskPending, undo.ToStatus)
}

func TestUndo_LoggedClearsMetadata(t *testing.T) {
	task := pendingTask()
	_, err := MarkInProgress(task, "started", 7, t0)
	require.NoError(t, err)

	_, err = Undo(task, nil, 7, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, models.TaskPending, task.Status)
	assert.Nil(t, task.LoggedAt)
	assert.Zero(t, task.LoggedByID)
	assert.Empty(t, task.LoggedComment)
}

func TestUndo_PendingIsInvalid(t *testing.T) {
	task := pendingTask()
	_, err := Undo(task, nil, 7, t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Every operation appends exactly one event, except completion from
// pending/on_hold which appends two; actioned tracks completed exactly.
func TestHistoryGrowthAndActionedInvariant(t *testing.T) {
	task := pendingTask()
	var history []models.TaskEvent

	appendOne := func(ev models.TaskEvent, err error) {
		t.Helper()
		require.NoError(t, err)
		history = append(history, ev)
		assert.Equal(t, task.Actioned, task.Status == models.TaskCompleted)
	}

	appendOne(MarkInProgress(task, "start", 1, t0))
	appendOne(MarkOnHold(task, "hold", 1, t0))
	appendOne(Resume(task, "resume", 1, t0))

	events, err := MarkComplete(task, "done", "", 1, t0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	history = append(history, events...)
	assert.True(t, task.Actioned)

	appendOne(Undo(task, history, 1, t0))

	require.Len(t, history, 5)
	assert.False(t, task.Actioned)
}

func TestDeletable(t *testing.T) {
	manual := pendingTask()
	assert.True(t, Deletable(manual))

	manual.Status = models.TaskCompleted
	assert.False(t, Deletable(manual))

	derived := pendingTask()
	derived.Source = models.SourceInspection
	assert.False(t, Deletable(derived))
}
