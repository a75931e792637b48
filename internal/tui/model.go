package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/kanban"
	"github.com/thenoetrevino/tablero/internal/models"
)

// BoardService is what the viewer needs from the task service
type BoardService interface {
	GetBoard(ctx context.Context, filter models.TaskFilter) ([]kanban.Column, error)
	MoveTask(ctx context.Context, id int, to models.Status) (*models.Task, error)
}

type (
	boardLoadedMsg struct{ columns []kanban.Column }
	taskMovedMsg   struct{ task *models.Task }
	errMsg         struct{ err error }
	changeMsg      struct{ event events.Event }
)

// moveFailedMsg carries a move the service rejected
type moveFailedMsg struct {
	cmd *kanban.MoveCommand
	err error
}

// Model is the interactive board. Dragging goes through kanban.Drag: pick
// up a card, walk it across columns and drop it. A drop moves the card on
// the local board at once and rolls it back if the service rejects it.
type Model struct {
	ctx     context.Context
	svc     BoardService
	filter  models.TaskFilter
	changes <-chan events.Event
	now     func() time.Time

	keys   KeyMap
	help   help.Model
	styles Styles

	board    kanban.Board
	columns  []kanban.Column
	col      int
	row      int
	followID int
	drag     kanban.Drag
	detail   *models.Task

	width  int
	height int
	status string
	err    error
}

// Option configures a Model
type Option func(*Model)

// WithContext sets the context used for service calls
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithChanges reloads the board whenever an event arrives on ch
func WithChanges(ch <-chan events.Event) Option {
	return func(m *Model) {
		m.changes = ch
	}
}

// WithKeyMappings replaces the default bindings
func WithKeyMappings(km config.KeyMappings) Option {
	return func(m *Model) {
		m.keys = NewKeyMap(km)
	}
}

// WithColorScheme replaces the default styles
func WithColorScheme(cs colors.ColorScheme) Option {
	return func(m *Model) {
		m.styles = NewStyles(cs)
	}
}

// WithClock sets the time used for overdue markers
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a board viewer over the tasks matching filter
func NewModel(svc BoardService, filter models.TaskFilter, opts ...Option) Model {
	m := Model{
		ctx:    context.Background(),
		svc:    svc,
		filter: filter,
		now:    time.Now,
		keys:   NewKeyMap(config.DefaultKeyMappings()),
		help:   help.New(),
		styles: NewStyles(*colors.Default()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the board and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		columns, err := m.svc.GetBoard(m.ctx, m.filter)
		if err != nil {
			return errMsg{err}
		}
		return boardLoadedMsg{columns}
	}
}

// startMove applies mv to the local board and returns the command that
// persists it
func (m *Model) startMove(mv kanban.Move) tea.Cmd {
	cmd := kanban.NewMoveCommand(mv)
	task, err := cmd.Apply(&m.board)
	if err != nil {
		m.err = err
		return nil
	}
	if !cmd.Changed() {
		return nil
	}
	m.err = nil
	m.columns = kanban.Partition(m.board.Tasks)
	m.followID = task.ID
	m.restoreSelection()
	return m.persist(cmd)
}

func (m Model) persist(cmd *kanban.MoveCommand) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.MoveTask(m.ctx, cmd.TaskID, cmd.To)
		if err != nil {
			return moveFailedMsg{cmd: cmd, err: err}
		}
		return taskMovedMsg{task}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{ev}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.columns = msg.columns
		m.board = kanban.Board{Tasks: kanban.Flatten(msg.columns)}
		m.err = nil
		m.restoreSelection()
		return m, nil

	case taskMovedMsg:
		m.followID = msg.task.ID
		m.status = fmt.Sprintf("Moved #%d to %s", msg.task.ID, msg.task.Status.Title())
		return m, m.load()

	case moveFailedMsg:
		m.err = msg.cmd.Rollback(&m.board, msg.err)
		m.columns = kanban.Partition(m.board.Tasks)
		m.followID = msg.cmd.TaskID
		m.restoreSelection()
		m.status = ""
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case changeMsg:
		return m, tea.Batch(m.load(), m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.detail != nil {
		if key.Matches(msg, m.keys.ViewTask, m.keys.CancelDrag) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ShowHelp):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()

	case key.Matches(msg, m.keys.PrevColumn):
		m.selectColumn(m.col - 1)

	case key.Matches(msg, m.keys.NextColumn):
		m.selectColumn(m.col + 1)

	case key.Matches(msg, m.keys.PrevTask):
		m.row = max(0, m.row-1)

	case key.Matches(msg, m.keys.NextTask):
		m.row = min(m.row+1, max(0, m.columnLen()-1))

	case key.Matches(msg, m.keys.PickUp):
		if task, ok := m.selectedTask(); ok {
			m.drag.Start(task)
			m.status = fmt.Sprintf("Dragging #%d", task.ID)
		}

	case key.Matches(msg, m.keys.Drop):
		if len(m.columns) == 0 {
			return m, nil
		}
		move, ok := m.drag.Drop(m.columns[m.col].Status)
		m.status = ""
		if ok {
			cmd := m.startMove(move)
			return m, cmd
		}

	case key.Matches(msg, m.keys.CancelDrag):
		m.drag.End()
		m.status = ""

	case key.Matches(msg, m.keys.MoveTaskLeft):
		cmd := m.shift(-1)
		return m, cmd

	case key.Matches(msg, m.keys.MoveTaskRight):
		cmd := m.shift(1)
		return m, cmd

	case key.Matches(msg, m.keys.ViewTask):
		if task, ok := m.selectedTask(); ok {
			m.detail = &task
		}
	}
	return m, nil
}

// shift moves the selected task one column over without dragging
func (m *Model) shift(delta int) tea.Cmd {
	task, ok := m.selectedTask()
	dest := m.col + delta
	if !ok || dest < 0 || dest >= len(m.columns) {
		return nil
	}
	return m.startMove(kanban.Move{Task: task, From: task.Status, To: m.columns[dest].Status})
}

func (m *Model) selectColumn(idx int) {
	if len(m.columns) == 0 {
		return
	}
	m.col = min(max(idx, 0), len(m.columns)-1)
	m.row = min(m.row, max(0, m.columnLen()-1))
	m.drag.Over(m.columns[m.col].Status)
}

// restoreSelection keeps the cursor in range after a reload and jumps to
// the most recently moved task
func (m *Model) restoreSelection() {
	if m.followID != 0 {
		for ci, col := range m.columns {
			for ti, task := range col.Tasks {
				if task.ID == m.followID {
					m.col, m.row = ci, ti
				}
			}
		}
		m.followID = 0
	}
	if len(m.columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = min(m.col, len(m.columns)-1)
	m.row = min(m.row, max(0, m.columnLen()-1))
}

func (m Model) columnLen() int {
	if m.col >= len(m.columns) {
		return 0
	}
	return len(m.columns[m.col].Tasks)
}

func (m Model) selectedTask() (models.Task, bool) {
	if m.col >= len(m.columns) || m.row >= len(m.columns[m.col].Tasks) {
		return models.Task{}, false
	}
	return m.columns[m.col].Tasks[m.row], true
}

// View renders the board, the detail pane and the help line
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("tablero"))
	if m.drag.Active() {
		target, _ := m.drag.Target()
		b.WriteString(m.styles.Subtle.Render("  dragging over " + target.Title()))
	}
	b.WriteString("\n")

	view := BoardView{
		Width:          m.width,
		SelectedColumn: m.col,
		SelectedTask:   m.row,
		Now:            m.now(),
	}
	if task, ok := m.drag.Task(); ok {
		view.Dragging = &task
		view.DropTarget, _ = m.drag.Target()
	}
	b.WriteString(RenderBoard(m.columns, m.styles, view))
	b.WriteString("\n")

	if m.detail != nil {
		b.WriteString(m.renderDetail(*m.detail))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Normal.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderDetail(task models.Task) string {
	width := max(40, m.width-4)
	header := m.styles.Title.Render(fmt.Sprintf("#%d %s", task.ID, task.Title))
	meta := fmt.Sprintf("%s · %s · due %s · %d%%",
		task.Status.Title(), task.Priority, task.DueDate.Format(time.DateOnly), task.Progress)
	body := RenderDescription(task.Description, width-4, m.styles)
	return m.styles.Selected.Width(width).Render(header + "\n" + meta + "\n\n" + body)
}
