package cli

import (
	"fmt"

	"github.com/law-makers/curate/internal/engine/dynamic"
	"github.com/law-makers/curate/internal/selftest"
	"github.com/law-makers/curate/internal/ui"
	"github.com/spf13/cobra"
)

// checkCmd runs the built-in engine checks
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the built-in selection and replay checks",
	Long: `Runs the selection grammar, selection engine, apply, and fetch-ordering checks
against in-memory pages. No network access and no state files are used.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipApp: "true"},
	RunE:        runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	results := selftest.RunAll(cmd.Context())

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", ui.Error("FAIL"), r.Name, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", ui.Success("PASS"), r.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	fmt.Fprintf(out, "%s\n", ui.Bold(fmt.Sprintf("All %d checks passed.", len(results))))

	chromePath := dynamic.FindChrome()
	if cfg := getConfig(cmd); cfg != nil && cfg.ChromePath != "" {
		chromePath = cfg.ChromePath
	}
	fmt.Fprintf(out, "%s\n", ui.Dim("Browser: "+dynamic.ChromeVersion(chromePath)))
	return nil
}
