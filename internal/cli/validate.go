package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dora-roi/internal/esa"
	"dora-roi/internal/export"
	"dora-roi/internal/validate"
)

// ValidateCommand creates the validate command
func ValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <package-dir>",
		Short: "Validate a serialized Register of Information package",
		Long: `Validate a package directory on disk: file set, parameters, filing
indicators, structure, cell contents and cross-template references.

The exit status is non-zero when any rejection-class finding is raised.

Example:
  ./roi validate ./out/529900T8BM49AURSDO55_DE_DORA_RoI_2025-03-31_20250414T093015`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, dir string) error {
	res, err := export.ReadDir(dir)
	if err != nil {
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}
	result := validate.NewEngine(esa.NewRegistry(), rules).ValidateFiles(res)
	printIssues(cmd, result)
	cmd.Printf("%d errors, %d warnings\n", result.Summary.TotalErrors, result.Summary.TotalWarnings)
	if !result.Valid {
		return fmt.Errorf("package rejected")
	}
	return nil
}
