// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/law-makers/curate/internal/app"
	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/curate"
	"github.com/law-makers/curate/internal/output"
	"github.com/law-makers/curate/internal/store"
	"github.com/law-makers/curate/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// skipApp marks commands that run without fetchers or a browser.
const skipApp = "skip-app"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "curate [resume]",
	Short: "Curate a site's link tree level by level and collect its text",
	Long: `Curate fetches a root page, lists its links, and lets you exclude or preserve
them level by level, descending only into the links you keep. Every selection is
saved, so a later "curate resume" replays them. When the run ends, the text of
every fetched page is written to one file.

At the prompt:
  16 1-5 200- -10   exclude links by number or range
  p3 p10-12         preserve links (kept aside, used if nothing else remains)
  next              descend into the remaining links
  apply             apply the saved selections for this level (once per run)
  list              show the whole current list again
  done              stop and write the output`,
	Example: `  # Start a fresh run (asks for the root URL the first time)
  curate

  # Replay saved selections from removal_selections.txt
  curate resume

  # Replay only when asked with "apply"
  curate resume --no-auto-replay

  # Render every page in Chrome and write markdown
  curate --mode browser --format markdown`,
	Version:       "0.1.0",
	Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs:     []string{"resume"},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCurate,
}

// activeApp is the application opened for the running command; Execute
// closes it whether or not the command succeeded.
var activeApp *app.Application

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if activeApp != nil {
		_ = activeApp.Close(context.Background())
		activeApp = nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: "+err.Error()))
		return 1
	}
	return 0
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		if cmd.Annotations[skipApp] == "true" {
			app.SetupLogger(cfg)
			setConfig(cmd, cfg)
			return nil
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		activeApp = a
		setApp(cmd, a)
		return nil
	}
}

func runCurate(cmd *cobra.Command, args []string) error {
	a := getApp(cmd)
	cfg := a.Config
	ctx := cmd.Context()
	console := ui.NewConsole(cmd.InOrStdin(), cmd.ErrOrStderr()).WithContext(ctx)

	seed, err := store.LoadOrPromptRootURL(cfg.RootURLPath(), console)
	if err != nil {
		return err
	}
	if seed.Loaded {
		console.Notice("Loaded root URL from %s: %s", cfg.RootURLPath(), seed.URL)
	} else {
		console.Notice("Root URL saved to %s", cfg.RootURLPath())
	}

	selections := store.NewSelectionLog(cfg.SelectionPath())

	var replay *curate.Replay
	if len(args) == 1 {
		saved, err := selections.Load()
		if err != nil {
			return err
		}
		console.Notice("Resuming with saved selections...")
		if !cfg.AutoReplay {
			console.Notice(`Type "apply" at a level to apply its saved selections.`)
		}
		replay = curate.NewReplay(saved, cfg.AutoReplay)
	}

	orchestrator := curate.New(curate.Options{
		Fetcher:  a.Pool,
		Console:  console,
		Log:      selections,
		Replay:   replay,
		MaxLinks: cfg.MaxLinks,
	})

	runErr := orchestrator.Start(ctx, seed.URL)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if err := output.Write(cfg.OutputPath(), a.Cache.Pages(), cfg.OutputFormat); err != nil {
		return err
	}
	console.Notice("Concatenated content saved to %s", cfg.OutputPath())

	if runErr != nil {
		return runErr
	}

	log.Info().
		Fields(a.Cache.Stats()).
		Int("preserved", orchestrator.Run().PreservedCount()).
		Msg("Run complete")
	console.Done("Tree building complete.")
	return nil
}
