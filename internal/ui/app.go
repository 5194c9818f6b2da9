package ui

import (
	"fmt"
	"strings"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/stats"
	"github.com/ericmwr/SOP-PR-CALC/internal/store"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App represents the main tview application
type App struct {
	app       *tview.Application
	store     store.Store
	config    *model.Config
	worksheet *model.Worksheet
	filePath  string

	// UI Components
	pages      *tview.Pages
	layout     *tview.Flex
	header     *tview.TextView
	taskTable  *TaskTable
	preview    *tview.TextView
	footer     *tview.TextView
	commandBar *tview.InputField

	// Estimation parameters
	projectArea float64
	laborRate   float64

	// State
	hasUnsavedChanges bool
	commandMode       bool
	modalVisible      bool
}

// NewApp creates a new App instance
func NewApp(s store.Store, config *model.Config, worksheet *model.Worksheet, filePath string) *App {
	a := &App{
		app:         tview.NewApplication(),
		store:       s,
		config:      config,
		worksheet:   worksheet,
		filePath:    filePath,
		projectArea: config.GetProjectArea(),
		laborRate:   config.GetLaborRate(),
	}

	a.setupUI()

	return a
}

// setupUI creates and configures all UI components
func (a *App) setupUI() {
	// Header
	a.header = tview.NewTextView()
	a.header.SetDynamicColors(true)
	a.header.SetTextAlign(tview.AlignCenter)
	a.updateHeader()

	// Task table
	a.taskTable = NewTaskTable(a.worksheet, a.config)
	a.taskTable.OnTaskChanged = a.onWorksheetChanged
	a.taskTable.OnTaskAdded = a.onWorksheetChanged
	a.taskTable.OnTaskRemoved = func(taskID model.TaskID) { a.onWorksheetChanged(nil) }

	// Preview
	a.preview = tview.NewTextView()
	a.preview.SetDynamicColors(true)
	a.preview.SetBorder(true)
	a.preview.SetTitle(" Estimate Preview ")
	a.updatePreview()

	// Command bar (hidden by default)
	a.commandBar = tview.NewInputField()
	a.commandBar.SetLabel(":")
	a.commandBar.SetFieldWidth(40)
	a.commandBar.SetDoneFunc(a.handleCommand)

	// Footer
	a.footer = tview.NewTextView()
	a.footer.SetDynamicColors(true)
	a.updateFooter()

	// Main content (two columns)
	mainContent := tview.NewFlex().SetDirection(tview.FlexColumn)
	mainContent.AddItem(a.taskTable, 0, 3, true) // Left: tasks table (3/4 width)
	mainContent.AddItem(a.preview, 0, 1, false)  // Right: estimate preview (1/4 width)

	// Layout
	a.layout = tview.NewFlex().SetDirection(tview.FlexRow)
	a.layout.AddItem(a.header, 3, 0, false)
	a.layout.AddItem(mainContent, 0, 1, true)
	a.layout.AddItem(a.footer, 1, 0, false)

	// Pages for modal dialogs
	a.pages = tview.NewPages()
	a.pages.AddPage("main", a.layout, true, true)
}

// updateFooter updates the footer text
func (a *App) updateFooter() {
	a.footer.SetText("[yellow]:w[white] Save  [yellow]:q[white] Quit  [yellow]a[white] Add  [yellow]e[white] Edit  [yellow]d[white] Delete  [yellow]m[white] Method  [yellow]f[white] Factors  [yellow]p[white] Params  [yellow]space[white] Include  [yellow]?[white] Help")
}

// Run starts the application
func (a *App) Run() error {
	// Set up input capture on the pages (not layout)
	a.pages.SetInputCapture(a.handleInput)

	// Prevent Ctrl+C from quitting the app
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			// Ignore Ctrl+C, user must use :q or :q! to quit
			return nil
		}
		return event
	})

	a.app.SetRoot(a.pages, true)
	a.app.SetFocus(a.taskTable)
	return a.app.Run()
}

// handleInput handles global key input
func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	// If modal is visible, pass all keys to modal
	if a.modalVisible {
		return event
	}

	// If in command mode, pass all keys to command bar
	if a.commandMode {
		return event
	}

	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case ':':
			// Start command mode
			a.startCommandMode()
			return nil
		case '?':
			a.showHelp()
			return nil
		case 'a':
			a.addNewTask()
			return nil
		case 'e', 'i':
			a.editSelectedTask()
			return nil
		case 'd':
			a.taskTable.RemoveSelectedTask()
			return nil
		case 'm':
			a.pickMethod()
			return nil
		case 'f':
			a.editFactorSettings()
			return nil
		case 'p':
			a.editParameters()
			return nil
		case ' ':
			a.taskTable.ToggleSelectedTask()
			return nil
		case 'J':
			a.taskTable.MoveSelectedTask(1)
			return nil
		case 'K':
			a.taskTable.MoveSelectedTask(-1)
			return nil
		}
	}

	// Pass through to task table for navigation
	return event
}

// startCommandMode enters command mode
func (a *App) startCommandMode() {
	a.commandMode = true
	a.commandBar.SetText("")

	// Replace footer with command bar
	a.layout.RemoveItem(a.footer)
	a.layout.AddItem(a.commandBar, 1, 0, true)
	a.app.SetFocus(a.commandBar)
}

// exitCommandMode exits command mode
func (a *App) exitCommandMode() {
	a.commandMode = false
	a.commandBar.SetText("")

	// Restore footer
	a.layout.RemoveItem(a.commandBar)
	a.layout.AddItem(a.footer, 1, 0, false)
	a.app.SetFocus(a.taskTable)
}

// handleCommand processes the command entered in command mode
func (a *App) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		a.exitCommandMode()
		return
	}

	command := strings.TrimSpace(a.commandBar.GetText())

	switch command {
	case "w":
		a.save()
		a.exitCommandMode()
	case "q":
		if a.hasUnsavedChanges {
			// Show error in command bar, don't exit
			a.commandBar.SetText("[red]Error: Unsaved changes. Use :q! to force quit.[white]")
			a.commandBar.SetLabel(":")
		} else {
			a.app.Stop()
		}
	case "q!":
		a.app.Stop()
	case "wq", "x":
		if err := a.store.SaveWorksheet(a.filePath, a.worksheet); err == nil {
			a.app.Stop()
		} else {
			a.commandBar.SetText(fmt.Sprintf("[red]Error: Failed to save: %v[white]", err))
			a.commandBar.SetLabel(":")
		}
	default:
		a.exitCommandMode()
	}
}

// updateHeader updates the header text
func (a *App) updateHeader() {
	title := a.worksheet.SOPName
	if title == "" {
		title = "Untitled SOP"
	}

	saved := ""
	if a.hasUnsavedChanges {
		saved = " [red](unsaved changes)[white]"
	}

	a.header.SetTitle(fmt.Sprintf(" Sopcalc - %s%s ", title, saved))
	a.header.SetBorder(true)
}

// updatePreview updates the estimate preview
func (a *App) updatePreview() {
	var sb strings.Builder

	result, breakdown := stats.CalculateBreakdown(a.worksheet, a.projectArea, a.laborRate)
	unit := a.config.AreaUnit.Acronym

	sb.WriteString(fmt.Sprintf("[yellow]Tasks:[white] %d (%d selected)\n", len(a.worksheet.Tasks), len(breakdown)))
	sb.WriteString(fmt.Sprintf("[yellow]Factors:[white] %d\n\n", len(a.worksheet.GlobalFactors)))

	sb.WriteString("[yellow]Parameters:[white]\n")
	sb.WriteString(fmt.Sprintf("  Area:  %.0f %s\n", a.projectArea, unit))
	sb.WriteString(fmt.Sprintf("  Labor: %s%.2f/hr\n\n", a.config.Currency, a.laborRate))

	sb.WriteString("[yellow]Estimate:[white]\n")
	sb.WriteString(fmt.Sprintf("  Blended rate: %.1f %s/HR\n", result.BlendedRate, unit))
	sb.WriteString(fmt.Sprintf("  Hours:        %.2f\n", result.EstimatedHours))
	sb.WriteString(fmt.Sprintf("  Cost:         %s%.2f", a.config.Currency, result.EstimatedCost))

	a.preview.SetText(sb.String())
}

// onWorksheetChanged is called when the worksheet is modified through the table
func (a *App) onWorksheetChanged(task *model.Task) {
	a.hasUnsavedChanges = true
	a.updateHeader()
	a.updatePreview()
}

// save saves the worksheet to file
func (a *App) save() {
	if err := a.store.SaveWorksheet(a.filePath, a.worksheet); err != nil {
		// Show error in command bar
		a.commandBar.SetText(fmt.Sprintf("[red]Error: Failed to save: %v[white]", err))
		return
	}
	a.hasUnsavedChanges = false
	a.updateHeader()
}

// closeModal removes the current modal and returns focus to the task table
func (a *App) closeModal() {
	a.modalVisible = false
	a.pages.RemovePage("modal")
	a.app.SetFocus(a.taskTable)
}

// showModal centers a primitive and displays it as a modal page
func (a *App) showModal(p tview.Primitive, width int, height int) {
	flex := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)

	a.modalVisible = true
	a.pages.AddPage("modal", flex, true, true)
	a.app.SetFocus(p)
}

// editSelectedTask opens a modal to edit the selected task
func (a *App) editSelectedTask() {
	task := a.taskTable.GetSelectedTask()
	if task == nil {
		return
	}

	// Store current selection
	row, col := a.taskTable.GetSelection()

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" Edit Task: %s ", task.Name))
	form.SetTitleAlign(tview.AlignCenter)

	name := task.Name
	description := task.Description
	skill := task.SkillLevel
	materials := task.MaterialsRequired
	affecting := task.FactorsAffecting

	form.AddInputField("Name:", name, 40, nil, func(text string) {
		name = text
	})
	form.AddTextArea("Description:", description, 60, 3, 0, func(text string) {
		description = text
	})
	form.AddInputField("Skill level:", skill, 40, nil, func(text string) {
		skill = text
	})
	form.AddInputField("Materials:", materials, 40, nil, func(text string) {
		materials = text
	})
	form.AddInputField("Factors affecting:", affecting, 40, nil, func(text string) {
		affecting = text
	})

	closeModal := func() {
		a.closeModal()
		a.taskTable.Select(row, col)
	}

	saveAndClose := func() {
		task.Name = name
		task.Description = description
		task.SkillLevel = skill
		task.MaterialsRequired = materials
		task.FactorsAffecting = affecting

		a.taskTable.Refresh()
		a.hasUnsavedChanges = true
		a.updateHeader()
		a.updatePreview()
		closeModal()
	}

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			closeModal()
			return nil
		}
		return event
	})

	form.AddButton("Save (Enter)", saveAndClose)
	form.AddButton("Cancel (Esc)", closeModal)
	form.SetCancelFunc(closeModal)

	a.showModal(form, 80, 19)
}

// addNewTask opens a dialog to add a new task
func (a *App) addNewTask() {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" Add New Task ")
	form.SetTitleAlign(tview.AlignCenter)

	var name string
	var description string
	methodName := a.config.GetDefaultMethodName()

	form.AddInputField("Name:", "", 40, nil, func(text string) {
		name = text
	})
	form.AddTextArea("Description:", "", 60, 3, 0, func(text string) {
		description = text
	})
	form.AddInputField("Method:", methodName, 40, nil, func(text string) {
		methodName = text
	})

	rateField := tview.NewInputField().
		SetLabel("Rate:").
		SetText(fmt.Sprintf("%.0f", a.config.GetDefaultMethodRate())).
		SetFieldWidth(10)
	form.AddFormItem(rateField)

	addAndClose := func() {
		methodRate := parseFloat(rateField.GetText())
		if methodRate <= 0 {
			methodRate = a.config.GetDefaultMethodRate()
		}

		task := a.taskTable.AddTask(name, methodName, methodRate)
		task.Description = description

		a.hasUnsavedChanges = true
		a.updateHeader()
		a.updatePreview()
		a.closeModal()
	}

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.closeModal()
			return nil
		}
		return event
	})

	form.AddButton("Add (Enter)", addAndClose)
	form.AddButton("Cancel (Esc)", a.closeModal)
	form.SetCancelFunc(a.closeModal)

	a.showModal(form, 80, 17)
}

// pickMethod opens a dialog to select the application method of the selected task
func (a *App) pickMethod() {
	task := a.taskTable.GetSelectedTask()
	if task == nil || len(task.Methods) == 0 {
		return
	}

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" Method: %s ", task.Name))
	form.SetTitleAlign(tview.AlignCenter)

	var options []string
	selectedIndex := 0
	for i, method := range task.Methods {
		options = append(options, fmt.Sprintf("%s (%.0f/HR)", method.Name, method.Rate))
		if method.IsSelected {
			selectedIndex = i
		}
	}

	chosen := selectedIndex
	form.AddDropDown("Method:", options, selectedIndex, func(option string, index int) {
		chosen = index
	})

	saveAndClose := func() {
		if err := a.worksheet.SelectMethod(task.ID, chosen); err == nil {
			a.taskTable.Refresh()
			a.hasUnsavedChanges = true
			a.updateHeader()
			a.updatePreview()
		}
		a.closeModal()
	}

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.closeModal()
			return nil
		}
		return event
	})

	form.AddButton("Select (Enter)", saveAndClose)
	form.AddButton("Cancel (Esc)", a.closeModal)
	form.SetCancelFunc(a.closeModal)

	a.showModal(form, 60, 9)
}

// editFactorSettings opens a dialog to tune the factor settings of the selected task
func (a *App) editFactorSettings() {
	task := a.taskTable.GetSelectedTask()
	if task == nil || len(a.worksheet.GlobalFactors) == 0 {
		return
	}

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" Factors: %s ", task.Name))
	form.SetTitleAlign(tview.AlignCenter)

	applied := make(map[model.FactorID]bool, len(a.worksheet.GlobalFactors))
	valueFields := make(map[model.FactorID]*tview.InputField, len(a.worksheet.GlobalFactors))

	for _, factor := range a.worksheet.GlobalFactors {
		setting := a.worksheet.Setting(task.ID, factor.ID)
		if setting == nil {
			continue
		}

		factorID := factor.ID
		applied[factorID] = setting.Applied

		form.AddCheckbox(factor.Name, setting.Applied, func(checked bool) {
			applied[factorID] = checked
		})

		field := tview.NewInputField().
			SetLabel(fmt.Sprintf("  value [%.2f-%.2f]:", setting.Min, setting.Max)).
			SetText(fmt.Sprintf("%.2f", setting.CurrentValue)).
			SetFieldWidth(8)
		form.AddFormItem(field)
		valueFields[factorID] = field
	}

	saveAndClose := func() {
		for _, factor := range a.worksheet.GlobalFactors {
			a.worksheet.SetFactorApplied(task.ID, factor.ID, applied[factor.ID])
			if field, ok := valueFields[factor.ID]; ok {
				a.worksheet.SetFactorValue(task.ID, factor.ID, parseFloat(field.GetText()))
			}
		}

		a.taskTable.Refresh()
		a.hasUnsavedChanges = true
		a.updateHeader()
		a.updatePreview()
		a.closeModal()
	}

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.closeModal()
			return nil
		}
		return event
	})

	form.AddButton("Save (Enter)", saveAndClose)
	form.AddButton("Cancel (Esc)", a.closeModal)
	form.SetCancelFunc(a.closeModal)

	height := len(a.worksheet.GlobalFactors)*4 + 5
	if height > 30 {
		height = 30
	}
	a.showModal(form, 60, height)
}

// editParameters opens a dialog to change the project area and labor rate
func (a *App) editParameters() {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" Estimate Parameters ")
	form.SetTitleAlign(tview.AlignCenter)

	areaField := tview.NewInputField().
		SetLabel(fmt.Sprintf("Project area (%s):", a.config.AreaUnit.Acronym)).
		SetText(fmt.Sprintf("%.0f", a.projectArea)).
		SetFieldWidth(12)
	laborField := tview.NewInputField().
		SetLabel("Labor rate (/hr):").
		SetText(fmt.Sprintf("%.2f", a.laborRate)).
		SetFieldWidth(12)

	form.AddFormItem(areaField)
	form.AddFormItem(laborField)

	saveAndClose := func() {
		area := parseFloat(areaField.GetText())
		laborRate := parseFloat(laborField.GetText())
		if area >= 0 {
			a.projectArea = area
		}
		if laborRate >= 0 {
			a.laborRate = laborRate
		}

		a.updatePreview()
		a.closeModal()
	}

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.closeModal()
			return nil
		}
		return event
	})

	form.AddButton("Apply (Enter)", saveAndClose)
	form.AddButton("Cancel (Esc)", a.closeModal)
	form.SetCancelFunc(a.closeModal)

	a.showModal(form, 50, 9)
}

// showHelp displays help information
func (a *App) showHelp() {
	helpView := tview.NewTextView()
	helpView.SetDynamicColors(true)
	helpView.SetBorder(true)
	helpView.SetTitle(" Keyboard Shortcuts ")
	helpView.SetTitleAlign(tview.AlignCenter)
	helpView.SetTextAlign(tview.AlignLeft)

	helpText := `[yellow]Commands:[white]
  :w         Save worksheet
  :q         Quit application
  :q!        Force quit (discard changes)
  :wq or :x  Save and quit

[yellow]Task Operations:[white]
  a          Add new task
  e or i     Edit selected task
  d          Delete selected task
  m          Select application method
  f          Edit factor settings
  space      Toggle include in estimate

[yellow]Navigation:[white]
  J          Move task down
  K          Move task up
  j/k        Navigate (vim-style)

[yellow]Other:[white]
  p          Edit estimate parameters
  ?          Show this help

[gray]Press Escape or Enter to close[white]`

	helpView.SetText(helpText)

	helpView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyEnter {
			a.closeModal()
			return nil
		}
		return event
	})

	a.showModal(helpView, 50, 24)
}

func parseFloat(s string) float64 {
	var f float64
	fmt.Sscanf(s, "%f", &f)
	return f
}
