package kanban

import "errors"

var (
	// ErrMoveFailed wraps the repository error of a move that was rolled back
	ErrMoveFailed = errors.New("failed to move task")

	// ErrTaskNotOnBoard is returned when a move references a task the board does not hold
	ErrTaskNotOnBoard = errors.New("task is not on the board")

	// ErrMoveNotApplied is returned when Persist or Undo run before Apply
	ErrMoveNotApplied = errors.New("move has not been applied")
)
