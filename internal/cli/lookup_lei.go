package cli

import (
	"github.com/spf13/cobra"

	"dora-roi/internal/gleif"
)

// LookupLEICommand creates the lookup-lei command
func LookupLEICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup-lei <lei>",
		Short: "Look up an LEI record in the GLEIF index",
		Long: `Check an LEI against the global GLEIF index and print the registered
legal name, country and registration status.

Example:
  ./roi lookup-lei 529900T8BM49AURSDO55`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := gleif.NewClient().Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("LEI:     %s\n", rec.LEI)
			cmd.Printf("Name:    %s\n", rec.LegalName)
			cmd.Printf("Country: %s\n", rec.Country)
			cmd.Printf("Status:  %s\n", rec.RegistrationStatus)
			return nil
		},
	}
	return cmd
}
