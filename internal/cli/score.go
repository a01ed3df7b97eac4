package cli

import (
	"github.com/spf13/cobra"

	"dora-roi/internal/config"
	"dora-roi/internal/scoring"
)

// ScoreCommand creates the score command
func ScoreCommand() *cobra.Command {
	var (
		excType     string
		impact      string
		remediated  bool
		scoringFile string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a control test exception",
		Long: `Score a single control test exception: the residual-evidence credit
for the exception type and impact, plus the bonus when remediation has
been verified.

Examples:
  ./roi score --type design_deficiency --impact high
  ./roi score --type population_deviation --impact low --remediated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadScoring(scoringFile)
			if err != nil {
				return err
			}
			score := cfg.ExceptionScore(excType, impact, remediated)
			maturity := scoring.MaturityLevel(score * 100)
			cmd.Printf("score:    %.2f\n", score)
			cmd.Printf("maturity: level %d\n", maturity)
			return nil
		},
	}

	cmd.Flags().StringVar(&excType, "type", "", "Exception type (design_deficiency, operating_failure, population_deviation, documentation_gap)")
	cmd.Flags().StringVar(&impact, "impact", "", "Impact level (high, medium, low)")
	cmd.Flags().BoolVar(&remediated, "remediated", false, "Remediation has been verified")
	cmd.Flags().StringVar(&scoringFile, "scoring", "", "YAML file overriding the scoring coefficients")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("impact")

	return cmd
}
