package command

import (
	"fmt"
	"strconv"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/spf13/cobra"
)

// factorCmd represents the factor command
var factorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Global factor management commands",
	Long:  `Manage global productivity factors and their per-task settings.`,
}

// factorAddCmd represents the factor add command
var factorAddCmd = &cobra.Command{
	Use:   "add <file> <name> <range>",
	Short: "Add a global factor",
	Long:  `Add a global productivity factor with a multiplier range like "0.8-0.9".`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		name := args[1]
		multiplierRange := args[2]
		description, _ := cmd.Flags().GetString("description")

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		factor := worksheet.AddFactor(name, multiplierRange, description)

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Factor '%s' added with ID %s (avg %.2f)\n", name, factor.ID, factor.AvgMultiplier)
		return nil
	},
}

// factorUpdateCmd represents the factor update command
var factorUpdateCmd = &cobra.Command{
	Use:   "update <file> <factor-id>",
	Short: "Update a global factor",
	Long: `Update a global factor's name, range or description. Changing the range
re-derives the average multiplier but leaves existing per-task values alone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		factorID := model.FactorID(args[1])

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if worksheet.FindFactor(factorID) == nil {
			return fmt.Errorf("factor with ID '%s' not found", factorID)
		}

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			worksheet.RenameFactor(factorID, name)
		}
		if cmd.Flags().Changed("range") {
			multiplierRange, _ := cmd.Flags().GetString("range")
			worksheet.UpdateFactorRange(factorID, multiplierRange)
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			worksheet.UpdateFactorDescription(factorID, description)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Factor %s updated\n", factorID)
		return nil
	},
}

// factorRemoveCmd represents the factor remove command
var factorRemoveCmd = &cobra.Command{
	Use:   "remove <file> <factor-id>",
	Short: "Remove a global factor",
	Long:  `Remove a global factor and its settings from every task.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		factorID := model.FactorID(args[1])

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if worksheet.FindFactor(factorID) == nil {
			return fmt.Errorf("factor with ID '%s' not found", factorID)
		}

		worksheet.DeleteFactor(factorID)

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		fmt.Printf("Factor %s removed\n", factorID)
		return nil
	},
}

// factorListCmd represents the factor list command
var factorListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List global factors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if len(worksheet.GlobalFactors) == 0 {
			fmt.Println("No global factors found.")
			return nil
		}

		fmt.Println("Global factors:")
		for _, factor := range worksheet.GlobalFactors {
			fmt.Printf("  [%s] %s (%s, avg %.2f)\n", factor.ID, factor.Name, factor.MultiplierRange, factor.AvgMultiplier)
			if factor.Description != "" {
				fmt.Printf("      %s\n", factor.Description)
			}
		}

		return nil
	},
}

// factorApplyCmd represents the factor apply command
var factorApplyCmd = &cobra.Command{
	Use:   "apply <file> <task-id> <factor-id>",
	Short: "Apply a factor to a task",
	Long:  `Opt a task into a global factor, optionally setting the task-specific multiplier.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		factorID := model.FactorID(args[2])
		off, _ := cmd.Flags().GetBool("off")

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.SetFactorApplied(taskID, factorID, !off); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}

		if cmd.Flags().Changed("value") {
			value, _ := cmd.Flags().GetFloat64("value")
			if err := worksheet.SetFactorValue(taskID, factorID, value); err != nil {
				return fmt.Errorf("failed to update setting: %w", err)
			}
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		setting := worksheet.Setting(taskID, factorID)
		if off {
			fmt.Printf("Factor %s no longer applies to task %s\n", factorID, taskID)
		} else {
			fmt.Printf("Factor %s applies to task %s at %.2f\n", factorID, taskID, setting.CurrentValue)
		}
		return nil
	},
}

// factorSetCmd represents the factor set command
var factorSetCmd = &cobra.Command{
	Use:   "set <file> <task-id> <factor-id> <value>",
	Short: "Set the task-specific multiplier for a factor",
	Long:  `Set the task-specific multiplier. The value is clamped into the setting's bounds.`,
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		factorID := model.FactorID(args[2])
		value, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid multiplier value: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.SetFactorValue(taskID, factorID, value); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		setting := worksheet.Setting(taskID, factorID)
		fmt.Printf("Factor %s on task %s set to %.2f\n", factorID, taskID, setting.CurrentValue)
		return nil
	},
}

// factorRangeCmd represents the factor range command
var factorRangeCmd = &cobra.Command{
	Use:   "range <file> <task-id> <factor-id> <min> <max>",
	Short: "Set the task-specific bounds for a factor",
	Long:  `Set the task-specific multiplier bounds. The current value is re-clamped into the new bounds.`,
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		taskID := model.TaskID(args[1])
		factorID := model.FactorID(args[2])
		min, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid min: %w", err)
		}
		max, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid max: %w", err)
		}

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		if err := worksheet.SetFactorBounds(taskID, factorID, min, max); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}

		if err := s.SaveWorksheet(file, worksheet); err != nil {
			return fmt.Errorf("failed to save worksheet: %w", err)
		}

		setting := worksheet.Setting(taskID, factorID)
		fmt.Printf("Factor %s on task %s bounded to [%.2f, %.2f], value %.2f\n",
			factorID, taskID, setting.Min, setting.Max, setting.CurrentValue)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(factorCmd)
	factorCmd.AddCommand(factorAddCmd)
	factorCmd.AddCommand(factorUpdateCmd)
	factorCmd.AddCommand(factorRemoveCmd)
	factorCmd.AddCommand(factorListCmd)
	factorCmd.AddCommand(factorApplyCmd)
	factorCmd.AddCommand(factorSetCmd)
	factorCmd.AddCommand(factorRangeCmd)

	// factor add flags
	factorAddCmd.Flags().StringP("description", "d", "", "Factor description")

	// factor update flags
	factorUpdateCmd.Flags().StringP("name", "n", "", "New factor name")
	factorUpdateCmd.Flags().StringP("range", "r", "", "New multiplier range")
	factorUpdateCmd.Flags().StringP("description", "d", "", "New factor description")

	// factor apply flags
	factorApplyCmd.Flags().Bool("off", false, "Clear the factor instead of applying it")
	factorApplyCmd.Flags().Float64("value", 0, "Task-specific multiplier to set")
}
