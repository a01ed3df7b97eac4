package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"dora-roi/internal/config"
	"dora-roi/internal/registry"
	"dora-roi/internal/scoring"
)

// ConcentrationCommand creates the concentration command
func ConcentrationCommand() *cobra.Command {
	var (
		orgID       string
		scoringFile string
	)

	cmd := &cobra.Command{
		Use:   "concentration",
		Short: "Compute the vendor expense concentration of the register",
		Long: `Compute the Herfindahl-Hirschman index over the annual expense shares
of the ICT third-party service providers and report the risk band.

Example:
  ROI_STORE_TYPE=mock ./roi concentration --org org-demo-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcentration(cmd, orgID, scoringFile)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization identifier")
	cmd.Flags().StringVar(&scoringFile, "scoring", "", "YAML file overriding the scoring coefficients")

	return cmd
}

func runConcentration(cmd *cobra.Command, orgID, scoringFile string) error {
	cfg, err := config.LoadScoring(scoringFile)
	if err != nil {
		return err
	}

	src, err := registry.NewSource(config.GetStoreConfig())
	if err != nil {
		return err
	}
	defer src.Close()

	vendors, err := src.Vendors(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	shares := expenseShares(vendors)
	hhi := scoring.HHI(shares)
	cmd.Printf("providers: %d\n", len(vendors))
	cmd.Printf("HHI:       %.0f\n", hhi)
	cmd.Printf("risk:      %s\n", cfg.HHIRisk(hhi))
	return nil
}

// expenseShares converts vendor annual expenses into percentage shares
// of the total, largest first.
func expenseShares(vendors []registry.Vendor) []float64 {
	total := 0.0
	for _, v := range vendors {
		total += v.AnnualExpense
	}
	if total == 0 {
		return nil
	}
	shares := make([]float64, 0, len(vendors))
	for _, v := range vendors {
		shares = append(shares, v.AnnualExpense/total*100)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(shares)))
	return shares
}
