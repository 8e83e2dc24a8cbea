// Package task models the progress of one background file operation.
package task

import (
	"fmt"
	"sync/atomic"
)

// Status is the lifecycle state of a Task.
type Status int

const (
	StatusNew Status = iota
	StatusInProgress
	StatusDone
	StatusError
)

// IsTerminal reports whether no further changes are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusError
}

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var lastID atomic.Uint64

// Task is a progress snapshot. It is a plain value: workers own the copy they
// mutate and publish further copies, so snapshots never alias each other.
// Two Tasks with the same ID describe the same operation.
type Task struct {
	id          uint64
	description string
	completed   uint64
	total       uint64
	status      Status
	message     string
}

// New allocates a Task with a process-wide unique, increasing id. The
// description labels the operation for display.
func New(total uint64, description string) Task {
	return Task{id: lastID.Add(1), description: description, total: total}
}

func (t Task) ID() uint64        { return t.id }
func (t Task) Completed() uint64 { return t.completed }
func (t Task) Total() uint64     { return t.total }
func (t Task) Status() Status    { return t.status }

func (t Task) Description() string { return t.description }

// Message is the failure description for StatusError tasks.
func (t Task) Message() string { return t.message }

// IsComplete reports whether every byte has been accounted for. A zero total
// is complete from the start.
func (t Task) IsComplete() bool {
	return t.total == 0 || t.completed >= t.total
}

// Fraction is the completed share in [0, 1].
func (t Task) Fraction() float64 {
	if t.IsComplete() {
		return 1
	}
	return float64(t.completed) / float64(t.total)
}

// Increment records n more completed units and moves the task into progress.
// Completed never exceeds total.
func (t *Task) Increment(n uint64) {
	t.mustBeActive("increment")
	t.status = StatusInProgress
	if n > t.total-t.completed {
		t.completed = t.total
		return
	}
	t.completed += n
}

// Done marks the task finished.
func (t *Task) Done() {
	t.mustBeActive("finish")
	t.completed = t.total
	t.status = StatusDone
}

// Fail marks the task failed with message.
func (t *Task) Fail(message string) {
	t.mustBeActive("fail")
	t.status = StatusError
	t.message = message
}

func (t *Task) mustBeActive(op string) {
	if t.status.IsTerminal() {
		panic(fmt.Sprintf("task %d: cannot %s a task in terminal state %s", t.id, op, t.status))
	}
}

func (t Task) String() string {
	if t.status == StatusError {
		return fmt.Sprintf("task %d %s: %s", t.id, t.status, t.message)
	}
	return fmt.Sprintf("task %d %s %d/%d", t.id, t.status, t.completed, t.total)
}
