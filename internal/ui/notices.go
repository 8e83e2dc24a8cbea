package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/task"
)

const (
	progressBarWidth = 24
	// maxErrors bounds the displayed errors; older ones are dropped first.
	maxErrors = 5
)

// Notices shows user-facing errors and one row per background task.
type Notices struct {
	dispatcher.Base
	errors []string
	tasks  map[uint64]task.Task
	dir    string
	bar    progress.Model
}

func newNotices() *Notices {
	bar := progress.New(
		progress.WithGradient(styles.ProgressStart, styles.ProgressEnd),
		progress.WithoutPercentage(),
		progress.WithWidth(progressBarWidth),
	)
	return &Notices{tasks: map[uint64]task.Task{}, bar: bar}
}

func (n *Notices) HandleCommand(cmd command.Command) command.Result {
	switch c := cmd.(type) {
	case command.AddError:
		n.errors = append(n.errors, c.Message)
		if len(n.errors) > maxErrors {
			n.errors = n.errors[len(n.errors)-maxErrors:]
		}
		return command.Handled()
	case command.ClearErrors:
		n.errors = nil
		return command.Handled()
	case command.Progress:
		// A finished operation supersedes earlier errors.
		if c.Task.Status() == task.StatusDone {
			n.errors = nil
		}
		n.track(c.Task)
		return command.Handled()
	case command.ClearProgress:
		n.dropFinished()
		return command.Handled()
	case command.SetDirectory:
		// So does navigating somewhere else; a refresh of the same
		// directory keeps them.
		if c.Dir.Path != n.dir {
			n.dir = c.Dir.Path
			n.errors = nil
			n.dropFinished()
		}
		return command.Handled()
	}
	return command.NotHandled()
}

func (n *Notices) HandleKey(k tea.Key) command.Result {
	if !matches(k, keys.ClearNotices) {
		return command.NotHandled()
	}
	if len(n.errors) > 0 {
		return command.Derive(command.ClearErrors{})
	}
	return command.Derive(command.ClearProgress{})
}

// track keeps the latest snapshot per task. A finished task is final, and a
// fresh snapshot never replaces one that already made progress.
func (n *Notices) track(t task.Task) {
	prev, ok := n.tasks[t.ID()]
	if ok {
		if prev.Status().IsTerminal() {
			return
		}
		if t.Status() == task.StatusNew && prev.Status() != task.StatusNew {
			return
		}
	}
	n.tasks[t.ID()] = t
}

func (n *Notices) dropFinished() {
	for id, t := range n.tasks {
		if t.Status().IsTerminal() {
			delete(n.tasks, id)
		}
	}
}

// Errors returns the displayed error messages.
func (n *Notices) Errors() []string {
	return append([]string(nil), n.errors...)
}

// Tasks returns the tracked snapshots ordered by id.
func (n *Notices) Tasks() []task.Task {
	out := make([]task.Task, 0, len(n.tasks))
	for _, t := range n.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (n *Notices) height() int {
	return len(n.errors) + len(n.tasks)
}

func (n *Notices) view(width, height int) string {
	lines := make([]styledLine, 0, n.height())
	for _, t := range n.Tasks() {
		lines = append(lines, n.taskLine(t))
	}
	for _, msg := range n.errors {
		lines = append(lines, styledLine{text: "Error: " + msg, style: styles.Error})
	}
	return renderLines(applyWidth(limitHeight(lines, height, width), width))
}

func (n *Notices) taskLine(t task.Task) styledLine {
	label := styles.TaskLabel.Render(t.Description())
	switch t.Status() {
	case task.StatusDone:
		return styledLine{text: label + " " + styles.TaskDone.Render("done"), raw: true}
	case task.StatusError:
		return styledLine{text: label + " " + styles.Error.Render(t.Message()), raw: true}
	}
	amount := fmt.Sprintf("%s / %s", humanize.IBytes(t.Completed()), humanize.IBytes(t.Total()))
	return styledLine{text: n.bar.ViewAs(t.Fraction()) + " " + label + " " + amount, raw: true}
}
