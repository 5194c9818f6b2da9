package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/ericmwr/SOP-PR-CALC/internal/format"
	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/stats"
	"github.com/spf13/cobra"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new worksheet",
	Long:  `Create a new worksheet file with the given SOP name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		output, _ := cmd.Flags().GetString("output")
		description, _ := cmd.Flags().GetString("description")
		sample, _ := cmd.Flags().GetBool("sample")

		if output == "" {
			safeName := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
			output = safeName + ".sop.json"
		}

		s := getStore()

		if _, err := os.Stat(output); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("file '%s' already exists, use --force to overwrite", output)
			}
		}

		var worksheet *model.Worksheet
		if sample {
			worksheet = model.SampleWorksheet()
			worksheet.SOPName = name
		} else {
			worksheet = model.NewWorksheet(name)
		}
		if description != "" {
			worksheet.SOPDescription = description
		}

		if err := s.SaveWorksheet(output, worksheet); err != nil {
			return fmt.Errorf("failed to create worksheet: %w", err)
		}

		fmt.Printf("Created worksheet '%s' at %s\n", name, output)
		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List worksheet files",
	Long:  `List all worksheet files in a directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		s := getStore()

		files, err := s.ListWorksheets(dir)
		if err != nil {
			return fmt.Errorf("failed to list worksheets: %w", err)
		}

		if len(files) == 0 {
			fmt.Println("No worksheet files found.")
			return nil
		}

		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "View a worksheet with calculated values",
	Long:  `View a worksheet with calculated values in various formats (json, yaml).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		formatType, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		area, laborRate := estimateInputs(cmd, config)

		var result string
		switch formatType {
		case "yaml", "yml":
			formatter := format.NewYAMLFormatter(config)
			result, err = formatter.Format(worksheet, area, laborRate)
		default:
			formatter := format.NewJSONFormatter(config)
			result, err = formatter.Format(worksheet, area, laborRate)
		}
		if err != nil {
			return fmt.Errorf("failed to format worksheet: %w", err)
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(result), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Printf("Output written to %s\n", output)
		} else {
			fmt.Print(result)
		}

		return nil
	},
}

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <file>",
	Short: "Calculate the estimate for a worksheet",
	Long:  `Calculate blended production rate, labor hours and cost for a project area.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		config, err := s.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		area, laborRate := estimateInputs(cmd, config)
		result, breakdown := stats.CalculateBreakdown(worksheet, area, laborRate)

		unit := config.AreaUnit.Acronym

		fmt.Printf("SOP: %s\n", worksheet.SOPName)
		fmt.Printf("Project area: %.0f %s, labor rate: %s%.2f/hr\n\n", area, unit, config.Currency, laborRate)

		if len(breakdown) > 0 {
			fmt.Println("Selected tasks:")
			for _, est := range breakdown {
				fmt.Printf("  %s (%s)\n", est.TaskName, est.MethodName)
				fmt.Printf("      rate: %.0f %s/HR, multiplier: %.3f, time/%s: %.5f hr\n",
					est.BaseRate, unit, est.EffectiveMultiplier, unit, est.AdjustedTimePerArea)
			}
			fmt.Println()
		}

		fmt.Printf("Blended rate:    %.1f %s/HR\n", result.BlendedRate, unit)
		fmt.Printf("Estimated hours: %.2f\n", result.EstimatedHours)
		fmt.Printf("Estimated cost:  %s%.2f\n", config.Currency, result.EstimatedCost)

		return nil
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a worksheet as CSV tables",
	Long: `Export a worksheet as five flattened CSV tables: SOP details, global
factors, tasks, task methods and task-factor settings. The CSV export is
one-way; use the worksheet JSON file itself for round-trip exchange.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		dir, _ := cmd.Flags().GetString("out-dir")

		s := getStore()

		worksheet, err := s.LoadWorksheet(file)
		if err != nil {
			return fmt.Errorf("failed to load worksheet: %w", err)
		}

		paths, err := format.WriteCSVFiles(worksheet, dir)
		if err != nil {
			return fmt.Errorf("failed to export CSV files: %w", err)
		}

		for _, p := range paths {
			fmt.Printf("Wrote %s\n", p)
		}
		return nil
	},
}

// estimateInputs resolves project area and labor rate from flags, falling
// back to the configured defaults
func estimateInputs(cmd *cobra.Command, config *model.Config) (float64, float64) {
	area := config.GetProjectArea()
	laborRate := config.GetLaborRate()

	if cmd.Flags().Changed("area") {
		area, _ = cmd.Flags().GetFloat64("area")
	}
	if cmd.Flags().Changed("labor-rate") {
		laborRate, _ = cmd.Flags().GetFloat64("labor-rate")
	}
	if area < 0 {
		area = 0
	}
	if laborRate < 0 {
		laborRate = 0
	}
	return area, laborRate
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(exportCmd)

	// new command flags
	newCmd.Flags().StringP("output", "o", "", "Output file path (default: <name>.sop.json)")
	newCmd.Flags().StringP("description", "d", "", "SOP description")
	newCmd.Flags().Bool("sample", false, "Seed the worksheet with the sample bead-board painting SOP")
	newCmd.Flags().BoolP("force", "f", false, "Force overwrite existing file")

	// view command flags
	viewCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
	viewCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	viewCmd.Flags().Float64P("area", "a", 0, "Project area (default: from config)")
	viewCmd.Flags().Float64P("labor-rate", "l", 0, "Labor rate per hour (default: from config)")

	// estimate command flags
	estimateCmd.Flags().Float64P("area", "a", 0, "Project area (default: from config)")
	estimateCmd.Flags().Float64P("labor-rate", "l", 0, "Labor rate per hour (default: from config)")

	// export command flags
	exportCmd.Flags().StringP("out-dir", "o", ".", "Directory to write CSV files into")
}
