package kanban

import "github.com/thenoetrevino/tablero/internal/models"

// DragPhase is where a drag gesture currently is
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
)

// Move is a column change produced by a drop
type Move struct {
	Task models.Task
	From models.Status
	To   models.Status
}

// Drag tracks one drag gesture at a time. The zero value is idle.
type Drag struct {
	phase  DragPhase
	task   models.Task
	target models.Status
}

// Start picks up task. Starting while another drag is active replaces it.
func (d *Drag) Start(task models.Task) {
	d.phase = DragActive
	d.task = task
	d.target = task.Status
}

// Over records the column the dragged task is hovering. It never mutates
// anything; it is ignored when idle.
func (d *Drag) Over(column models.Status) {
	if d.phase != DragActive {
		return
	}
	d.target = column
}

// Drop releases the task on column and returns to idle. ok is false when
// nothing is being dragged or the task is dropped back on its own column.
func (d *Drag) Drop(column models.Status) (move Move, ok bool) {
	if d.phase != DragActive {
		return Move{}, false
	}
	task := d.task
	d.reset()
	if !column.Valid() || column == task.Status {
		return Move{}, false
	}
	return Move{Task: task, From: task.Status, To: column}, true
}

// End cancels the gesture without a move
func (d *Drag) End() {
	d.reset()
}

// Active reports whether a task is being dragged
func (d *Drag) Active() bool {
	return d.phase == DragActive
}

// Phase returns the current phase
func (d *Drag) Phase() DragPhase {
	return d.phase
}

// Task returns the dragged task, if any
func (d *Drag) Task() (models.Task, bool) {
	return d.task, d.phase == DragActive
}

// Target is the highlighted column while dragging
func (d *Drag) Target() (models.Status, bool) {
	return d.target, d.phase == DragActive
}

func (d *Drag) reset() {
	*d = Drag{}
}
