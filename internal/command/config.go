package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Manage the sopcalc configuration file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getStore()

		// Check if config already exists
		configPath := configFile
		if configPath == "" {
			configPath = store.DefaultConfigFile
		}
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("configuration file already exists at %s, use --force to overwrite", configPath)
			}
		}

		config := model.DefaultConfig()

		if err := s.SaveConfig(config); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Printf("Configuration file created at %s\n", configPath)
		return nil
	},
}

// configViewCmd represents the config view command
var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View current configuration",
	Long:  `Display the current configuration settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getStore()

		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")

		switch format {
		case "json":
			data, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
		case "yaml":
			data, err := yaml.Marshal(config)
			if err != nil {
				return fmt.Errorf("failed to marshal config to YAML: %w", err)
			}
			fmt.Print(string(data))
		default:
			fmt.Printf("Area Unit: %s (%s)\n", config.AreaUnit.Label, config.AreaUnit.Acronym)
			fmt.Printf("Currency: %s\n", config.Currency)
			fmt.Printf("Default Method: %s (%.0f %s/HR)\n", config.GetDefaultMethodName(), config.GetDefaultMethodRate(), config.AreaUnit.Acronym)
			fmt.Printf("Default Project Area: %.0f %s\n", config.GetProjectArea(), config.AreaUnit.Acronym)
			fmt.Printf("Default Labor Rate: %s%.2f/hr\n", config.Currency, config.GetLaborRate())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configViewCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "Force overwrite existing configuration")
	configViewCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
}
