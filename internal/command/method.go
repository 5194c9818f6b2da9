package command

import (
	"fmt"
	"strconv"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/spf13/cobra"
)

// methodCmd represents the method command
var methodCmd = &cobra.Command{
	Use:   "method",
	Short: "Application method management commands",
	Long:  `Manage the application methods of a task. Exactly one method per task is selected for calculation.`,
}

// methodAddCmd represents the method add command
var methodAddCmd = &cobra.Command{
	Use:   "add <file> <task-id> <name>",
	Short: "Add an application method to a task",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		name := args[2]

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		methodRate, _ := cmd.Flags().GetFloat64("rate")
		if methodRate <= 0 {
			methodRate = config.GetDefaultMethodRate()
		}

		if err := worksheet.AddMethod(taskID, name, methodRate); err != nil {
			return fmt.Errorf("failed to add method: %w", err)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Method '%s' added to task %s\n", name, taskID)
		return nil
	},
}

// methodRemoveCmd represents the method remove command
var methodRemoveCmd = &cobra.Command{
	Use:   "remove <file> <task-id> <index>",
	Short: "Remove an application method from a task",
	Long:  `Remove an application method by index. The last remaining method of a task cannot be removed.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid method index: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.DeleteMethod(taskID, index); err != nil {
			return fmt.Errorf("failed to remove method: %w", err)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Method %d removed from task %s\n", index, taskID)
		return nil
	},
}

// methodSelectCmd represents the method select command
var methodSelectCmd = &cobra.Command{
	Use:   "select <file> <task-id> <index>",
	Short: "Select the active application method of a task",
	Long:  `Select the method used for calculation. Selecting one method deselects all its siblings.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid method index: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.SelectMethod(taskID, index); err != nil {
			return fmt.Errorf("failed to select method: %w", err)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Method %d selected for task %s\n", index, taskID)
		return nil
	},
}

// methodRateCmd represents the method rate command
var methodRateCmd = &cobra.Command{
	Use:   "rate <file> <task-id> <index> <rate>",
	Short: "Set the base production rate of a method",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid method index: %w", err)
		}
		methodRate, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid rate: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		task := worksheet.FindTask(taskID)
		if task == nil {
			return fmt.Errorf("task with ID '%s' not found", taskID)
		}
		if index < 0 || index >= len(task.Methods) {
			return fmt.Errorf("method index %d out of range", index)
		}
		task.Methods[index].Rate = methodRate

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Method %d of task %s set to %.0f/HR\n", index, taskID, methodRate)
		return nil
	},
}

func init() {
	taskCmd.AddCommand(methodCmd)
	methodCmd.AddCommand(methodAddCmd)
	methodCmd.AddCommand(methodRemoveCmd)
	methodCmd.AddCommand(methodSelectCmd)
	methodCmd.AddCommand(methodRateCmd)

	// method add flags
	methodAddCmd.Flags().Float64P("rate", "r", 0, "Base production rate (default: from config)")
}
