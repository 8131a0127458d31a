// Package workshop holds the task status lifecycle:
//
//	pending -> logged -> on_hold -> logged -> completed
//	completed -> logged | pending (undo)
//
// Transitions are pure functions over a task and return the history events
// to append. Callers persist the task and events together in one
// transaction; the history log itself is append-only.
package workshop

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetworks/internal/models"
)

const maxCommentLen = 300

var (
	ErrCommentRequired   = errors.New("a comment is required")
	ErrCommentTooLong    = fmt.Errorf("comment must be at most %d characters", maxCommentLen)
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidateComment enforces the transition comment contract: non-empty
// after trimming, at most 300 characters.
func ValidateComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrCommentRequired
	}
	if len(comment) > maxCommentLen {
		return ErrCommentTooLong
	}
	return nil
}

func transitionError(from models.TaskStatus, op string) error {
	return fmt.Errorf("%w: cannot %s a %s task", ErrInvalidTransition, op, from)
}

// MarkInProgress moves a pending task to logged.
func MarkInProgress(t *models.WorkshopTask, comment string, by uint, now time.Time) (models.TaskEvent, error) {
	if err := ValidateComment(comment); err != nil {
		return models.TaskEvent{}, err
	}
	if t.Status != models.TaskPending {
		return models.TaskEvent{}, transitionError(t.Status, "log")
	}

	setLogged(t, comment, by, now)
	return event(t.ID, models.EventLogged, comment, by, now), nil
}

// MarkOnHold parks a logged task.
func MarkOnHold(t *models.WorkshopTask, comment string, by uint, now time.Time) (models.TaskEvent, error) {
	if err := ValidateComment(comment); err != nil {
		return models.TaskEvent{}, err
	}
	if t.Status != models.TaskLogged {
		return models.TaskEvent{}, transitionError(t.Status, "hold")
	}

	t.Status = models.TaskOnHold
	return event(t.ID, models.EventOnHold, comment, by, now), nil
}

// Resume returns an on-hold task to logged.
func Resume(t *models.WorkshopTask, comment string, by uint, now time.Time) (models.TaskEvent, error) {
	if err := ValidateComment(comment); err != nil {
		return models.TaskEvent{}, err
	}
	if t.Status != models.TaskOnHold {
		return models.TaskEvent{}, transitionError(t.Status, "resume")
	}

	t.Status = models.TaskLogged
	return event(t.ID, models.EventResumed, comment, by, now), nil
}

// MarkComplete finishes a task. From pending or on_hold an intermediate
// logged transition is synthesized first, using intermediateComment and a
// timestamp one second before the completion event so the two always sort
// in a stable order.
func MarkComplete(t *models.WorkshopTask, completionComment, intermediateComment string, by uint, now time.Time) ([]models.TaskEvent, error) {
	if err := ValidateComment(completionComment); err != nil {
		return nil, err
	}

	var events []models.TaskEvent

	switch t.Status {
	case models.TaskLogged:
		// direct completion
	case models.TaskPending, models.TaskOnHold:
		if err := ValidateComment(intermediateComment); err != nil {
			return nil, err
		}
		tag := models.EventLogged
		if t.Status == models.TaskOnHold {
			tag = models.EventResumed
		}
		setLogged(t, intermediateComment, by, now)
		events = append(events, event(t.ID, tag, intermediateComment, by, now))
		now = now.Add(time.Second)
	default:
		return nil, transitionError(t.Status, "complete")
	}

	t.Status = models.TaskCompleted
	t.Actioned = true
	completedAt := now
	t.ActionedAt = &completedAt
	t.ActionedByID = by

	events = append(events, event(t.ID, models.EventCompleted, completionComment, by, now))
	return events, nil
}

// Undo reverses the last transition. A completed task goes back to logged
// if its history shows it was ever logged, otherwise to pending; a logged
// task goes back to pending and loses its logged metadata.
func Undo(t *models.WorkshopTask, history []models.TaskEvent, by uint, now time.Time) (models.TaskEvent, error) {
	switch t.Status {

	case models.TaskCompleted:
		target := models.TaskPending
		if everLogged(history) {
			target = models.TaskLogged
		}
		ev := event(t.ID, models.EventUndo, "", by, now)
		ev.FromStatus = models.TaskCompleted
		ev.ToStatus = target

		t.Status = target
		t.Actioned = false
		t.ActionedAt = nil
		t.ActionedByID = 0
		if target == models.TaskPending {
			clearLogged(t)
		}
		return ev, nil

	case models.TaskLogged:
		ev := event(t.ID, models.EventUndo, "", by, now)
		ev.FromStatus = models.TaskLogged
		ev.ToStatus = models.TaskPending

		t.Status = models.TaskPending
		clearLogged(t)
		return ev, nil

	default:
		return models.TaskEvent{}, transitionError(t.Status, "undo")
	}
}

func everLogged(history []models.TaskEvent) bool {
	for _, ev := range history {
		if ev.Status == models.EventLogged || ev.Status == models.EventResumed {
			return true
		}
	}
	return false
}

func setLogged(t *models.WorkshopTask, comment string, by uint, now time.Time) {
	t.Status = models.TaskLogged
	loggedAt := now
	t.LoggedAt = &loggedAt
	t.LoggedByID = by
	t.LoggedComment = strings.TrimSpace(comment)
}

func clearLogged(t *models.WorkshopTask) {
	t.LoggedAt = nil
	t.LoggedByID = 0
	t.LoggedComment = ""
}

func event(taskID uint, tag, body string, by uint, at time.Time) models.TaskEvent {
	return models.TaskEvent{
		TaskID:    taskID,
		Status:    tag,
		Body:      strings.TrimSpace(body),
		AuthorID:  by,
		CreatedAt: at,
	}
}

// Deletable reports whether a task may be removed: only manually created
// tasks that were never completed. Inspection-derived tasks stay for the
// audit trail.
func Deletable(t *models.WorkshopTask) bool {
	return t.Source == models.SourceManual && t.Status != models.TaskCompleted
}
