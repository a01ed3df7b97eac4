package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dora-roi/internal/compare"
	"dora-roi/internal/export"
)

// CompareCommand creates the compare command
func CompareCommand() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "compare <previous-dir> <next-dir>",
		Short: "Compare two serialized packages file by file",
		Long: `Compare the package already filed with the one about to be filed and
report added, removed and changed files.

Example:
  ./roi compare ./filed/..._20250414T093015 ./out/..._20250601T101500 --diff`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], showDiff)
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print the line diff of changed files")

	return cmd
}

func runCompare(cmd *cobra.Command, prevDir, nextDir string, showDiff bool) error {
	prev, err := export.ReadDir(prevDir)
	if err != nil {
		return err
	}
	next, err := export.ReadDir(nextDir)
	if err != nil {
		return err
	}

	sum := compare.Packages(prev, next)
	if sum.Identical() {
		cmd.Println("packages are identical")
		return nil
	}

	for _, fd := range sum.Files {
		if fd.Status == compare.Unchanged {
			continue
		}
		cmd.Printf("%-9s %s\n", fd.Status, fd.Name)
		if showDiff && fd.Diff != "" {
			cmd.Println(fd.Diff)
		}
	}
	return fmt.Errorf("%d added, %d removed, %d changed", sum.Added, sum.Removed, sum.Changed)
}
