package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultReminderLeadMinutes is the reminder lead time applied when the
// caller does not choose one.
const DefaultReminderLeadMinutes = 30

// Task is a single to-do item. Every task belongs to exactly one owner, set
// at creation and immutable afterwards. The category reference is optional
// and may be cleared.
type Task struct {
	ID             uuid.UUID  // The unique identifier for the task.
	OwnerID        uuid.UUID  // The account that owns this task.
	Content        string     // The task text. Never blank after trimming.
	Category       *Category  // Optional shared category; nil means none.
	DueDate        *time.Time // Optional due instant.
	ReminderActive bool       // Whether the reminder should fire at all.
	ReminderLead   int        // Lead time in minutes before the due date.
	Completed      bool       // Whether the task is done.
	CreatedAt      time.Time  // Timestamp of creation; listing order key.
	UpdatedAt      time.Time  // Timestamp of the last modification.
}

// CategoryID returns the id of the assigned category, or uuid.Nil when the
// task has none.
func (t *Task) CategoryID() uuid.UUID {
	if t.Category == nil {
		return uuid.Nil
	}

	return t.Category.ID
}

// ReminderDue reports whether the task's reminder is actionable at the given
// instant: the reminder is active, a due date is set, and the due date is at
// or before now. Pure derived state, never stored.
func (t *Task) ReminderDue(now time.Time) bool {
	return t.ReminderActive && t.DueDate != nil && !t.DueDate.After(now)
}
