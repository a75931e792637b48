package kanban

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskUpdater persists a partial task update. The task repository satisfies it.
type TaskUpdater interface {
	Update(ctx context.Context, id int, patch models.TaskPatch) (*models.Task, error)
}

// Board is the local task list a view is rendering
type Board struct {
	Tasks []models.Task
}

func (b *Board) index(id int) int {
	for i, t := range b.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Column returns the ordered content of one column
func (b *Board) Column(status models.Status) []models.Task {
	return TasksByStatus(b.Tasks, status)
}

// MoveCommand is an optimistic column change: Apply updates the board right
// away, Persist writes it through, Undo puts the original record back.
type MoveCommand struct {
	TaskID int
	To     models.Status

	before  models.Task
	after   models.Task
	applied bool
}

// NewMoveCommand builds the command for a completed drop
func NewMoveCommand(m Move) *MoveCommand {
	return &MoveCommand{TaskID: m.Task.ID, To: m.To}
}

// Apply moves the task on the local board. The returned task is the record
// the board now holds. A move onto the task's own column is a no-op.
func (c *MoveCommand) Apply(b *Board) (models.Task, error) {
	i := b.index(c.TaskID)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotOnBoard, c.TaskID)
	}
	c.before = b.Tasks[i]
	c.after = MoveTask(c.before, c.before.Status, c.To, b.Column(c.To))
	b.Tasks[i] = c.after
	c.applied = true
	return c.after, nil
}

// Changed reports whether Apply altered the task
func (c *MoveCommand) Changed() bool {
	return c.applied && (c.before.Status != c.after.Status || c.before.Position != c.after.Position)
}

// Persist writes the applied move to the repository. On failure the board
// is rolled back and the error is wrapped in ErrMoveFailed. There are no
// retries.
func (c *MoveCommand) Persist(ctx context.Context, b *Board, updater TaskUpdater) error {
	if !c.applied {
		return ErrMoveNotApplied
	}
	if !c.Changed() {
		return nil
	}

	status, position := c.after.Status, c.after.Position
	_, err := updater.Update(ctx, c.TaskID, models.TaskPatch{
		Status:   &status,
		Position: &position,
	})
	if err != nil {
		return c.Rollback(b, err)
	}
	return nil
}

// Rollback undoes the move on b after the write failed with err and
// returns err wrapped in ErrMoveFailed. Views that persist through another
// path call it directly.
func (c *MoveCommand) Rollback(b *Board, err error) error {
	c.Undo(b)
	return fmt.Errorf("%w %d: %w", ErrMoveFailed, c.TaskID, err)
}

// Undo restores the record captured by Apply
func (c *MoveCommand) Undo(b *Board) {
	if !c.applied {
		return
	}
	if i := b.index(c.TaskID); i >= 0 {
		b.Tasks[i] = c.before
	}
	c.applied = false
}
