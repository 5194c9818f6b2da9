package command

import (
	"fmt"

	"github.com/ericmwr/SOP-PR-CALC/internal/ui"
	"github.com/spf13/cobra"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a worksheet interactively",
	Long:  `Open an interactive terminal UI to edit a worksheet file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]

		s := getStore()

		// Load or create worksheet
		worksheet, created, err := s.LoadOrCreateWorksheet(file, file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}
		if created {
			fmt.Printf("Created new worksheet file: %s\n", file)
		}

		// Load config
		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Create and run UI
		app := ui.NewApp(s, config, worksheet, file)
		if err := app.Run(); err != nil {
			return fmt.Errorf("failed to run UI: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
