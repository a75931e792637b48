package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/tablero/internal/models"
)

func TestDrag_Lifecycle(t *testing.T) {
	var d Drag
	task := models.Task{ID: 3, Status: models.StatusTodo, Position: 1}

	assert.Equal(t, DragIdle, d.Phase())

	d.Start(task)
	assert.True(t, d.Active())
	target, ok := d.Target()
	assert.True(t, ok)
	assert.Equal(t, models.StatusTodo, target)

	d.Over(models.StatusInProgress)
	d.Over(models.StatusDone)
	target, _ = d.Target()
	assert.Equal(t, models.StatusDone, target)

	move, ok := d.Drop(models.StatusDone)
	assert.True(t, ok)
	assert.Equal(t, Move{Task: task, From: models.StatusTodo, To: models.StatusDone}, move)
	assert.False(t, d.Active())
}

func TestDrag_DropOnSourceIsNoMove(t *testing.T) {
	var d Drag
	d.Start(models.Task{ID: 1, Status: models.StatusDone})

	_, ok := d.Drop(models.StatusDone)

	assert.False(t, ok)
	assert.Equal(t, DragIdle, d.Phase())
}

func TestDrag_EndCancels(t *testing.T) {
	var d Drag
	d.Start(models.Task{ID: 1, Status: models.StatusTodo})
	d.Over(models.StatusDone)

	d.End()

	assert.False(t, d.Active())
	_, ok := d.Drop(models.StatusDone)
	assert.False(t, ok, "drop after cancel must not move")
}

func TestDrag_IdleIgnoresOverAndDrop(t *testing.T) {
	var d Drag

	d.Over(models.StatusDone)
	_, ok := d.Drop(models.StatusDone)

	assert.False(t, ok)
	_, active := d.Task()
	assert.False(t, active)
}

func TestDrag_DropOnUnknownColumn(t *testing.T) {
	var d Drag
	d.Start(models.Task{ID: 1, Status: models.StatusTodo})

	_, ok := d.Drop("archived")

	assert.False(t, ok)
}
