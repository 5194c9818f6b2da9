package mcp

import (
	"context"
	"fmt"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server represents the MCP server for worksheet operations
type Server struct {
	server *mcp.Server
	store  *ChrootedStore
	config *model.Config
}

// ServerOptions contains options for the MCP server
type ServerOptions struct {
	RootDir string
	Config  *model.Config
}

// NewServer creates a new MCP server for worksheet operations
func NewServer(opts *ServerOptions) (*Server, error) {
	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	store, err := NewChrootedStore(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create chrooted store: %w", err)
	}

	// Use provided config or default
	config := opts.Config
	if config == nil {
		config = model.DefaultConfig()
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sopcalc",
		Version: "1.0.0",
	}, nil)

	s := &Server{
		server: server,
		store:  store,
		config: config,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// Run starts the MCP server on stdio transport
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Close closes the server and releases resources
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) registerTools() {
	// Worksheet tools
	s.registerListWorksheetsTool()
	s.registerCreateWorksheetTool()
	s.registerGetWorksheetTool()
	s.registerDeleteWorksheetTool()
	s.registerEstimateTool()

	// Task tools
	s.registerListTasksTool()
	s.registerAddTaskTool()
	s.registerRemoveTaskTool()
	s.registerSelectMethodTool()

	// Factor tools
	s.registerAddFactorTool()
	s.registerRemoveFactorTool()
	s.registerSetTaskFactorTool()

	// Config tools
	s.registerGetConfigTool()
}

// list_worksheets tool
type listWorksheetsArgs struct {
	Dir string `json:"dir,omitempty" jsonschema:"the directory to list worksheets from, defaults to current directory"`
}

func (s *Server) registerListWorksheetsTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_worksheets",
		Description: "List all worksheet files in a directory",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listWorksheetsArgs) (*mcp.CallToolResult, any, error) {
		dir := args.Dir
		if dir == "" {
			dir = "."
		}

		files, err := s.store.ListWorksheets(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list worksheets: %w", err)
		}

		if len(files) == 0 {
			return textResult("No worksheet files found."), nil, nil
		}

		result := "Worksheet files:\n"
		for _, f := range files {
			result += fmt.Sprintf("- %s\n", f)
		}

		return textResult(result), nil, nil
	})
}

// create_worksheet tool
type createWorksheetArgs struct {
	Path        string `json:"path" jsonschema:"required,the file path for the worksheet"`
	Name        string `json:"name" jsonschema:"required,the SOP name for the worksheet"`
	Description string `json:"description,omitempty" jsonschema:"optional SOP description"`
}

func (s *Server) registerCreateWorksheetTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_worksheet",
		Description: "Create a new worksheet file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createWorksheetArgs) (*mcp.CallToolResult, any, error) {
		worksheet := model.NewWorksheet(args.Name)
		worksheet.SOPDescription = args.Description

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to create worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Created worksheet '%s' at %s", args.Name, args.Path)), nil, nil
	})
}

// get_worksheet tool
type getWorksheetArgs struct {
	Path string `json:"path" jsonschema:"required,the file path to the worksheet"`
}

func (s *Server) registerGetWorksheetTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_worksheet",
		Description: "Get details of a worksheet file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getWorksheetArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		result := fmt.Sprintf("SOP: %s\n", worksheet.SOPName)
		if worksheet.SOPDescription != "" {
			result += fmt.Sprintf("Description: %s\n", worksheet.SOPDescription)
		}
		result += fmt.Sprintf("Tasks: %d\n", len(worksheet.Tasks))
		result += fmt.Sprintf("Global factors: %d\n", len(worksheet.GlobalFactors))

		return textResult(result), nil, nil
	})
}

// delete_worksheet tool
type deleteWorksheetArgs struct {
	Path string `json:"path" jsonschema:"required,the file path to the worksheet to delete"`
}

func (s *Server) registerDeleteWorksheetTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_worksheet",
		Description: "Delete a worksheet file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args deleteWorksheetArgs) (*mcp.CallToolResult, any, error) {
		if err := s.store.DeleteWorksheet(args.Path); err != nil {
			return nil, nil, fmt.Errorf("failed to delete worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Deleted worksheet at %s", args.Path)), nil, nil
	})
}

// estimate tool
type estimateArgs struct {
	Path      string  `json:"path" jsonschema:"required,the file path to the worksheet"`
	Area      float64 `json:"area,omitempty" jsonschema:"optional project area, defaults to the configured project area"`
	LaborRate float64 `json:"laborRate,omitempty" jsonschema:"optional labor rate per hour, defaults to the configured labor rate"`
}

func (s *Server) registerEstimateTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "estimate",
		Description: "Calculate blended production rate, labor hours and cost for a worksheet",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args estimateArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		area := args.Area
		if area <= 0 {
			area = s.config.GetProjectArea()
		}
		laborRate := args.LaborRate
		if laborRate <= 0 {
			laborRate = s.config.GetLaborRate()
		}

		calc, breakdown := stats.CalculateBreakdown(worksheet, area, laborRate)
		unit := s.config.AreaUnit.Acronym

		result := fmt.Sprintf("SOP: %s\n", worksheet.SOPName)
		result += fmt.Sprintf("Project area: %.0f %s, labor rate: %s%.2f/hr\n\n", area, unit, s.config.Currency, laborRate)

		if len(breakdown) > 0 {
			result += "Selected tasks:\n"
			for _, est := range breakdown {
				result += fmt.Sprintf("  %s (%s): rate %.0f %s/HR, multiplier %.3f\n",
					est.TaskName, est.MethodName, est.BaseRate, unit, est.EffectiveMultiplier)
			}
			result += "\n"
		}

		result += fmt.Sprintf("Blended rate: %.1f %s/HR\n", calc.BlendedRate, unit)
		result += fmt.Sprintf("Estimated hours: %.2f\n", calc.EstimatedHours)
		result += fmt.Sprintf("Estimated cost: %s%.2f\n", s.config.Currency, calc.EstimatedCost)

		return textResult(result), nil, nil
	})
}

// list_tasks tool
type listTasksArgs struct {
	Path string `json:"path" jsonschema:"required,the file path to the worksheet"`
}

func (s *Server) registerListTasksTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List all tasks in a worksheet with their application methods",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listTasksArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		if len(worksheet.Tasks) == 0 {
			return textResult("No tasks found in this worksheet."), nil, nil
		}

		result := "Tasks:\n"
		for _, task := range worksheet.Tasks {
			marker := " "
			if task.IsSelected {
				marker = "x"
			}
			result += fmt.Sprintf("  [%s] [%s] %s\n", marker, task.ID, task.Name)
			for i, method := range task.Methods {
				sel := " "
				if method.IsSelected {
					sel = "*"
				}
				result += fmt.Sprintf("      %s %d: %s (%.0f/HR)\n", sel, i, method.Name, method.Rate)
			}
		}

		return textResult(result), nil, nil
	})
}

// add_task tool
type addTaskArgs struct {
	Path       string  `json:"path" jsonschema:"required,the file path to the worksheet"`
	Name       string  `json:"name" jsonschema:"required,the task name"`
	MethodName string  `json:"methodName,omitempty" jsonschema:"optional name of the default application method"`
	MethodRate float64 `json:"methodRate,omitempty" jsonschema:"optional base production rate of the default method"`
}

func (s *Server) registerAddTaskTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task to a worksheet with one default application method",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args addTaskArgs) (*mcp.CallToolResult, any, error) {
		worksheet, _, err := s.store.LoadOrCreateWorksheet(args.Path, args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		methodName := args.MethodName
		if methodName == "" {
			methodName = s.config.GetDefaultMethodName()
		}
		methodRate := args.MethodRate
		if methodRate <= 0 {
			methodRate = s.config.GetDefaultMethodRate()
		}

		task := worksheet.AddTask(args.Name, methodName, methodRate)

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Task '%s' added with ID %s", args.Name, task.ID)), nil, nil
	})
}

// remove_task tool
type removeTaskArgs struct {
	Path   string `json:"path" jsonschema:"required,the file path to the worksheet"`
	TaskID string `json:"taskId" jsonschema:"required,the task ID to remove"`
}

func (s *Server) registerRemoveTaskTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_task",
		Description: "Remove a task from a worksheet",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args removeTaskArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		taskID := model.TaskID(args.TaskID)
		if worksheet.FindTask(taskID) == nil {
			return nil, nil, fmt.Errorf("task with ID '%s' not found", args.TaskID)
		}

		worksheet.DeleteTask(taskID)

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Task %s removed", args.TaskID)), nil, nil
	})
}

// select_method tool
type selectMethodArgs struct {
	Path   string `json:"path" jsonschema:"required,the file path to the worksheet"`
	TaskID string `json:"taskId" jsonschema:"required,the task ID"`
	Index  int    `json:"index" jsonschema:"required,the method index to select"`
}

func (s *Server) registerSelectMethodTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_method",
		Description: "Select the application method of a task used for calculation",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args selectMethodArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.SelectMethod(model.TaskID(args.TaskID), args.Index); err != nil {
			return nil, nil, fmt.Errorf("failed to select method: %w", err)
		}

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Method %d selected for task %s", args.Index, args.TaskID)), nil, nil
	})
}

// add_factor tool
type addFactorArgs struct {
	Path        string `json:"path" jsonschema:"required,the file path to the worksheet"`
	Name        string `json:"name" jsonschema:"required,the factor name"`
	Range       string `json:"range" jsonschema:"required,the multiplier range, e.g. 0.8-0.9"`
	Description string `json:"description,omitempty" jsonschema:"optional factor description"`
}

func (s *Server) registerAddFactorTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_factor",
		Description: "Add a global productivity factor to a worksheet",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args addFactorArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		factor := worksheet.AddFactor(args.Name, args.Range, args.Description)

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Factor '%s' added with ID %s (avg %.2f)", args.Name, factor.ID, factor.AvgMultiplier)), nil, nil
	})
}

// remove_factor tool
type removeFactorArgs struct {
	Path     string `json:"path" jsonschema:"required,the file path to the worksheet"`
	FactorID string `json:"factorId" jsonschema:"required,the factor ID to remove"`
}

func (s *Server) registerRemoveFactorTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_factor",
		Description: "Remove a global factor and its settings from every task",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args removeFactorArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		factorID := model.FactorID(args.FactorID)
		if worksheet.FindFactor(factorID) == nil {
			return nil, nil, fmt.Errorf("factor with ID '%s' not found", args.FactorID)
		}

		worksheet.DeleteFactor(factorID)

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		return textResult(fmt.Sprintf("Factor %s removed", args.FactorID)), nil, nil
	})
}

// set_task_factor tool
type setTaskFactorArgs struct {
	Path     string   `json:"path" jsonschema:"required,the file path to the worksheet"`
	TaskID   string   `json:"taskId" jsonschema:"required,the task ID"`
	FactorID string   `json:"factorId" jsonschema:"required,the factor ID"`
	Applied  *bool    `json:"applied,omitempty" jsonschema:"optional flag to apply or clear the factor for the task"`
	Value    *float64 `json:"value,omitempty" jsonschema:"optional task-specific multiplier, clamped into the setting bounds"`
}

func (s *Server) registerSetTaskFactorTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_task_factor",
		Description: "Tune a task-specific factor setting: apply or clear the factor, or set its multiplier",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args setTaskFactorArgs) (*mcp.CallToolResult, any, error) {
		worksheet, err := s.store.LoadWorksheet(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load worksheet: %w", err)
		}

		taskID := model.TaskID(args.TaskID)
		factorID := model.FactorID(args.FactorID)

		if args.Applied != nil {
			if err := worksheet.SetFactorApplied(taskID, factorID, *args.Applied); err != nil {
				return nil, nil, fmt.Errorf("failed to update setting: %w", err)
			}
		}
		if args.Value != nil {
			if err := worksheet.SetFactorValue(taskID, factorID, *args.Value); err != nil {
				return nil, nil, fmt.Errorf("failed to update setting: %w", err)
			}
		}

		if err := s.store.SaveWorksheet(args.Path, worksheet); err != nil {
			return nil, nil, fmt.Errorf("failed to save worksheet: %w", err)
		}

		setting := worksheet.Setting(taskID, factorID)
		if setting == nil {
			return nil, nil, fmt.Errorf("setting for task '%s' and factor '%s' not found", args.TaskID, args.FactorID)
		}

		return textResult(fmt.Sprintf("Factor %s on task %s: applied=%v, value=%.2f",
			args.FactorID, args.TaskID, setting.Applied, setting.CurrentValue)), nil, nil
	})
}

// get_config tool
type getConfigArgs struct{}

func (s *Server) registerGetConfigTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_config",
		Description: "Get the current sopcalc configuration",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getConfigArgs) (*mcp.CallToolResult, any, error) {
		result := "Configuration:\n"
		result += fmt.Sprintf("  Area Unit: %s (%s)\n", s.config.AreaUnit.Label, s.config.AreaUnit.Acronym)
		result += fmt.Sprintf("  Currency: %s\n", s.config.Currency)
		result += fmt.Sprintf("  Default Method: %s (%.0f %s/HR)\n", s.config.GetDefaultMethodName(), s.config.GetDefaultMethodRate(), s.config.AreaUnit.Acronym)
		result += fmt.Sprintf("  Default Project Area: %.0f %s\n", s.config.GetProjectArea(), s.config.AreaUnit.Acronym)
		result += fmt.Sprintf("  Default Labor Rate: %s%.2f/hr\n", s.config.Currency, s.config.GetLaborRate())

		return textResult(result), nil, nil
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
