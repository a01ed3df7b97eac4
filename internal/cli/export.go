package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dora-roi/internal/config"
	"dora-roi/internal/esa"
	"dora-roi/internal/export"
	"dora-roi/internal/registry"
	"dora-roi/internal/taxonomy"
	"dora-roi/internal/validate"
)

// ExportCommand creates the export command
func ExportCommand() *cobra.Command {
	var (
		orgID     string
		refPeriod string
		outDir    string
		asZip     bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build and serialize the Register of Information package",
		Long: `Build the full xBRL-CSV Register of Information package from the
register records and write it to disk.

The package is validated before it is written. Rejection-class findings
abort the export unless --force is given; warnings are printed and the
package is written anyway.

Examples:
  # Export to a directory
  ./roi export --org <org-id> --ref-period 2025-03-31 --out ./out

  # Export as a zip archive from the JSON fixtures
  ROI_STORE_TYPE=mock ./roi export --org org-demo-1 --ref-period 2025-03-31 --out ./out --zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, orgID, refPeriod, outDir, asZip, force)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization identifier")
	cmd.Flags().StringVar(&refPeriod, "ref-period", "", "Reporting reference date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	cmd.Flags().BoolVar(&asZip, "zip", false, "Write a zip archive instead of a directory tree")
	cmd.Flags().BoolVar(&force, "force", false, "Write the package even when validation finds rejection-class errors")
	cmd.MarkFlagRequired("ref-period")

	return cmd
}

func runExport(cmd *cobra.Command, orgID, refPeriod, outDir string, asZip, force bool) error {
	ref, err := time.Parse("2006-01-02", refPeriod)
	if err != nil {
		return fmt.Errorf("invalid --ref-period %q: expected YYYY-MM-DD", refPeriod)
	}

	src, err := registry.NewSource(config.GetStoreConfig())
	if err != nil {
		return err
	}
	defer src.Close()

	enums := esa.NewRegistry()
	builder := registry.NewBuilder(src, enums)
	pkg, err := builder.BuildPackage(cmd.Context(), orgID, registry.BuildOptions{RefPeriod: ref})
	if err != nil {
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}
	res := validate.NewEngine(enums, rules).ValidatePackage(pkg)
	printIssues(cmd, res)
	if !res.Valid && !force {
		return fmt.Errorf("package has %d rejection-class errors, not written (use --force to override)", res.Summary.TotalErrors)
	}

	serialized, err := export.Serialize(pkg, time.Now())
	if err != nil {
		return err
	}

	var path string
	if asZip {
		path, err = export.WriteZip(outDir, serialized)
	} else {
		path, err = export.WriteDir(outDir, serialized)
	}
	if err != nil {
		return err
	}

	cmd.Printf("wrote %s (%d template rows)\n", path, pkg.TotalRows())
	return nil
}

// loadRules returns the severity catalogue, with the EBA workbook
// overrides applied when one is configured.
func loadRules() (*taxonomy.Catalogue, error) {
	rules := taxonomy.NewCatalogue()
	if path := config.RulesWorkbookPath(); path != "" {
		if err := rules.LoadWorkbook(path, ""); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func printIssues(cmd *cobra.Command, res *validate.Result) {
	for _, is := range res.Errors {
		cmd.Printf("error %s [%s row %d %s]: %s\n", is.Code, is.Template, is.Row, is.Column, is.Message)
	}
	for _, is := range res.Warnings {
		cmd.Printf("warning %s [%s row %d %s]: %s\n", is.Code, is.Template, is.Row, is.Column, is.Message)
	}
}
