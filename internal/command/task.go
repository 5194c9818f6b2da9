package command

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/spf13/cobra"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Task management commands",
	Long:  `Manage tasks within a worksheet file.`,
}

// taskAddCmd represents the task add command
var taskAddCmd = &cobra.Command{
	Use:   "add <file> <name>",
	Short: "Add a new task",
	Long:  `Add a new task with one default application method.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		name := args[1]

		s := getStore()

		worksheet, created, err := s.LoadOrCreateWorksheet(file, file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}
		if created {
			fmt.Printf("Created new worksheet file: %s\n", file)
		}

		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		methodName, _ := cmd.Flags().GetString("method")
		methodRate, _ := cmd.Flags().GetFloat64("rate")
		if methodName == "" {
			methodName = config.GetDefaultMethodName()
		}
		if methodRate <= 0 {
			methodRate = config.GetDefaultMethodRate()
		}

		task := worksheet.AddTask(name, methodName, methodRate)

		if skill, _ := cmd.Flags().GetString("skill"); skill != "" {
			task.SkillLevel = skill
		}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			task.Description = description
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Task '%s' added with ID %s\n", name, task.ID)
		return nil
	},
}

// taskUpdateCmd represents the task update command
var taskUpdateCmd = &cobra.Command{
	Use:   "update <file> <task-id>",
	Short: "Update a task",
	Long:  `Update the descriptive fields of an existing task.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		task := worksheet.FindTask(taskID)
		if task == nil {
			return fmt.Errorf("task with ID '%s' not found", taskID)
		}

		if cmd.Flags().Changed("name") {
			task.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("skill") {
			task.SkillLevel, _ = cmd.Flags().GetString("skill")
		}
		if cmd.Flags().Changed("materials") {
			task.MaterialsRequired, _ = cmd.Flags().GetString("materials")
		}
		if cmd.Flags().Changed("affecting") {
			task.FactorsAffecting, _ = cmd.Flags().GetString("affecting")
		}
		if cmd.Flags().Changed("description") {
			task.Description, _ = cmd.Flags().GetString("description")
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Task %s updated\n", taskID)
		return nil
	},
}

// taskRemoveCmd represents the task remove command
var taskRemoveCmd = &cobra.Command{
	Use:   "remove <file> <task-id>",
	Short: "Remove a task",
	Long:  `Remove a task and its factor settings from a worksheet.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if worksheet.FindTask(taskID) == nil {
			return fmt.Errorf("task with ID '%s' not found", taskID)
		}

		worksheet.DeleteTask(taskID)

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Task %s removed\n", taskID)
		return nil
	},
}

// taskListCmd represents the task list command
var taskListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List tasks",
	Long:  `List all tasks in a worksheet with their methods.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		format, _ := cmd.Flags().GetString("format")

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if len(worksheet.Tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		switch format {
		case "json":
			data, err := json.MarshalIndent(worksheet.Tasks, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal tasks to JSON: %w", err)
			}
			fmt.Println(string(data))
		default:
			fmt.Println("Tasks:")
			for _, task := range worksheet.Tasks {
				marker := " "
				if task.IsSelected {
					marker = "x"
				}
				fmt.Printf("  [%s] [%s] %s\n", marker, task.ID, task.Name)
				for i, method := range task.Methods {
					sel := " "
					if method.IsSelected {
						sel = "*"
					}
					fmt.Printf("      %s %d: %s (%.0f/HR)\n", sel, i, method.Name, method.Rate)
				}
			}
		}

		return nil
	},
}

// taskIncludeCmd represents the task include command
var taskIncludeCmd = &cobra.Command{
	Use:   "include <file> <task-id>",
	Short: "Include a task in the estimate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskSelected(args[0], model.TaskID(args[1]), true)
	},
}

// taskExcludeCmd represents the task exclude command
var taskExcludeCmd = &cobra.Command{
	Use:   "exclude <file> <task-id>",
	Short: "Exclude a task from the estimate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskSelected(args[0], model.TaskID(args[1]), false)
	},
}

func setTaskSelected(file string, taskID model.TaskID, selected bool) error {
	s := getStore()

	worksheet, err := s.LoadWorksheet(file)
	if err != nil {
		return fmt.Errorf("failed to load worksheet: %w", err)
	}

	if !worksheet.SetTaskSelected(taskID, selected) {
		return fmt.Errorf("task with ID '%s' not found", taskID)
	}

	if err := s.SaveWorksheet(file, worksheet); err != nil {
		return fmt.Errorf("failed to save worksheet: %w", err)
	}

	state := "included in"
	if !selected {
		state = "excluded from"
	}
	fmt.Printf("Task %s %s the estimate\n", taskID, state)
	return nil
}

// taskMoveCmd represents the task move command
var taskMoveCmd = &cobra.Command{
	Use:   "move <file> <task-id> <offset>",
	Short: "Move a task",
	Long:  `Move a task up or down in the ordering. Use negative offset to move up, positive to move down.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		offset, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid offset: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if !worksheet.MoveTask(taskID, offset) {
			return fmt.Errorf("failed to move task %s by %d positions", taskID, offset)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Task %s moved by %d positions\n", taskID, offset)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskIncludeCmd)
	taskCmd.AddCommand(taskExcludeCmd)
	taskCmd.AddCommand(taskMoveCmd)

	// task add flags
	taskAddCmd.Flags().StringP("method", "m", "", "Name of the default application method")
	taskAddCmd.Flags().Float64P("rate", "r", 0, "Base production rate of the default method")
	taskAddCmd.Flags().String("skill", "", "Skill level")
	taskAddCmd.Flags().StringP("description", "d", "", "Task description")

	// task update flags
	taskUpdateCmd.Flags().StringP("name", "n", "", "New task name")
	taskUpdateCmd.Flags().String("skill", "", "New skill level")
	taskUpdateCmd.Flags().String("materials", "", "New materials required")
	taskUpdateCmd.Flags().String("affecting", "", "New factors affecting")
	taskUpdateCmd.Flags().StringP("description", "d", "", "New task description")

	// task list flags
	taskListCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
