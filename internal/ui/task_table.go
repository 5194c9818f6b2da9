package ui

import (
	"fmt"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/stats"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TaskTable is a tview table component for displaying worksheet tasks
type TaskTable struct {
	*tview.Table

	worksheet *model.Worksheet
	config    *model.Config

	// Callbacks
	OnTaskChanged func(task *model.Task)
	OnTaskAdded   func(task *model.Task)
	OnTaskRemoved func(taskID model.TaskID)
}

// NewTaskTable creates a new TaskTable
func NewTaskTable(worksheet *model.Worksheet, config *model.Config) *TaskTable {
	t := &TaskTable{
		Table:     tview.NewTable(),
		worksheet: worksheet,
		config:    config,
	}

	t.SetBorder(true)
	t.SetTitle(" Tasks ")
	t.SetSelectable(true, false)
	t.SetFixed(1, 0) // Fixed header row

	t.setupColumns()
	t.populate()
	t.setupKeyBindings()

	return t
}

// setupColumns sets up the table columns
func (t *TaskTable) setupColumns() {
	unit := t.config.AreaUnit.Acronym
	headers := []string{"", "Task", "Method", "Rate (" + unit + "/HR)", "Multiplier", "Time/" + unit}

	for i, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1)

		if i >= 3 {
			cell = cell.SetAlign(tview.AlignRight)
		}

		t.SetCell(0, i, cell)
	}
}

// populate fills the table with tasks
func (t *TaskTable) populate() {
	// Clear existing rows (keep header)
	for i := t.GetRowCount() - 1; i > 0; i-- {
		t.RemoveRow(i)
	}

	// Per-task calculated values for the current worksheet state
	_, breakdown := stats.CalculateBreakdown(t.worksheet, t.config.GetProjectArea(), t.config.GetLaborRate())
	estimates := make(map[model.TaskID]stats.TaskEstimate, len(breakdown))
	for _, est := range breakdown {
		estimates[est.TaskID] = est
	}

	for i, task := range t.worksheet.Tasks {
		t.addTaskRow(i+1, task, estimates)
	}
}

// addTaskRow adds a row for a task
func (t *TaskTable) addTaskRow(row int, task *model.Task, estimates map[model.TaskID]stats.TaskEstimate) {
	marker := "[ ]"
	color := tcell.ColorGray
	if task.IsSelected {
		marker = "[x]"
		color = tcell.ColorWhite
	}

	methodName := ""
	methodRate := 0.0
	if method := task.SelectedMethod(); method != nil {
		methodName = method.Name
		methodRate = method.Rate
	}

	multiplier := ""
	timePerArea := ""
	if est, ok := estimates[task.ID]; ok {
		multiplier = fmt.Sprintf("%.3f", est.EffectiveMultiplier)
		timePerArea = fmt.Sprintf("%.5f", est.AdjustedTimePerArea)
	}

	t.SetCell(row, 0, tview.NewTableCell(marker).
		SetTextColor(color).
		SetReference(task.ID))

	t.SetCell(row, 1, tview.NewTableCell(task.Name).
		SetTextColor(color).
		SetExpansion(2).
		SetReference(task.ID))

	t.SetCell(row, 2, tview.NewTableCell(methodName).
		SetTextColor(color).
		SetReference(task.ID))

	t.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.0f", methodRate)).
		SetTextColor(color).
		SetAlign(tview.AlignRight).
		SetReference(task.ID))

	t.SetCell(row, 4, tview.NewTableCell(multiplier).
		SetTextColor(tcell.ColorGreen).
		SetAlign(tview.AlignRight).
		SetReference(task.ID))

	t.SetCell(row, 5, tview.NewTableCell(timePerArea).
		SetTextColor(tcell.ColorGreen).
		SetAlign(tview.AlignRight).
		SetReference(task.ID))
}

// setupKeyBindings sets up keyboard navigation
func (t *TaskTable) setupKeyBindings() {
	t.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			row, col := t.GetSelection()
			if row > 1 {
				t.Select(row-1, col)
			}
			return nil
		case tcell.KeyDown:
			row, col := t.GetSelection()
			if row < t.GetRowCount()-1 {
				t.Select(row+1, col)
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				row, col := t.GetSelection()
				if row < t.GetRowCount()-1 {
					t.Select(row+1, col)
				}
				return nil
			case 'k':
				row, col := t.GetSelection()
				if row > 1 {
					t.Select(row-1, col)
				}
				return nil
			}
		}

		return event
	})
}

// ToggleSelectedTask toggles whether the selected task is included in the estimate
func (t *TaskTable) ToggleSelectedTask() {
	task := t.GetSelectedTask()
	if task == nil {
		return
	}

	t.worksheet.SetTaskSelected(task.ID, !task.IsSelected)
	t.populate()

	if t.OnTaskChanged != nil {
		t.OnTaskChanged(task)
	}
}

// AddTask adds a new task to the table
func (t *TaskTable) AddTask(name string, methodName string, methodRate float64) *model.Task {
	task := t.worksheet.AddTask(name, methodName, methodRate)
	t.populate()

	if t.OnTaskAdded != nil {
		t.OnTaskAdded(task)
	}

	// Select the new task
	t.Select(len(t.worksheet.Tasks), 0)
	return task
}

// RemoveSelectedTask removes the currently selected task
func (t *TaskTable) RemoveSelectedTask() {
	row, _ := t.GetSelection()
	task := t.GetSelectedTask()
	if task == nil {
		return
	}

	t.worksheet.DeleteTask(task.ID)

	if t.OnTaskRemoved != nil {
		t.OnTaskRemoved(task.ID)
	}

	t.populate()

	// Adjust selection
	if row >= t.GetRowCount() {
		t.Select(t.GetRowCount()-1, 0)
	} else {
		t.Select(row, 0)
	}
}

// MoveSelectedTask moves the selected task up or down in the ordering
func (t *TaskTable) MoveSelectedTask(offset int) {
	row, _ := t.GetSelection()
	task := t.GetSelectedTask()
	if task == nil {
		return
	}

	if !t.worksheet.MoveTask(task.ID, offset) {
		return
	}

	t.populate()

	if t.OnTaskChanged != nil {
		t.OnTaskChanged(task)
	}

	// Restore selection
	target := row + offset
	if target < 1 {
		target = 1
	}
	if target > t.GetRowCount()-1 {
		target = t.GetRowCount() - 1
	}
	t.Select(target, 0)
}

// GetSelectedTask returns the currently selected task
func (t *TaskTable) GetSelectedTask() *model.Task {
	row, _ := t.GetSelection()
	if row < 1 || row > len(t.worksheet.Tasks) {
		return nil
	}
	return t.worksheet.Tasks[row-1]
}

// GetTaskCount returns the number of tasks
func (t *TaskTable) GetTaskCount() int {
	return len(t.worksheet.Tasks)
}

// Refresh refreshes the table display
func (t *TaskTable) Refresh() {
	t.populate()
}
