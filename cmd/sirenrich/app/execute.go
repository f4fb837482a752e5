package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/agentstation/sirenrich/internal/cmd/output"
	"github.com/agentstation/sirenrich/pkg/enrich"
	"github.com/agentstation/sirenrich/pkg/errors"
	"github.com/agentstation/sirenrich/pkg/reconciler"
	"github.com/agentstation/sirenrich/pkg/registry"
)

// Execute runs the sirenrich CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command. The tool does one
// thing, so the enrichment run hangs off the root itself.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sirenrich",
		Short:   "Enrich a company spreadsheet from the French business registry",
		Version: a.version,
		Long: `Sirenrich reads an xlsx workbook with a Company column (and an
optional Address column), looks each company up in the French business
registry, and writes an enriched workbook alongside a CSV export.

Each row gains the SIREN, legal name, registered address, headcount
label, creation year, and officer details of the best candidate. Rows
whose supplied address disagrees with the registry are highlighted.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&a.config.Input, "input", "i", DefaultInput, "input xlsx workbook")
	flags.StringVarP(&a.config.Output, "output", "o", DefaultOutput, "output xlsx workbook")
	flags.StringVarP(&a.config.Token, "token", "t", a.config.Token, "registry API token (defaults to $"+tokenEnvVar+")")
	flags.StringVar(&a.config.RulesFile, "rules", "", "YAML file overriding the matching policy")
	flags.IntVar(&a.config.Concurrency, "concurrency", 1, "rows enriched in flight at once")
	flags.Float64Var(&a.config.RateLimit, "rate-limit", 7, "registry requests per second")
	flags.BoolVar(&a.config.PreferAddressMatch, "prefer-address-match", false, "prefer the candidate whose address matches the input")

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVarP(&a.config.Debug, "debug", "d", false, "debug output (shortcut for --log-level=debug)")
	persistent.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (same as --debug)")
	persistent.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	persistent.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	persistent.StringVar(&a.config.Format, "format", "", "summary format: table, json, yaml")
	persistent.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -d/-q)")

	rootCmd.SetVersionTemplate("sirenrich {{.Version}}\n")
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

// newVersionCommand creates the version subcommand.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("sirenrich %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}

// setupCommand is called before the command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	debug := mustGetBool(cmd, "debug") || mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(debug, quiet, noColor, format, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.NewConfigError("format", err.Error(), nil)
	}

	return nil
}

// run wires the pipeline from the loaded configuration and executes it.
func (a *App) run(ctx context.Context) error {
	rules := enrich.DefaultRules()
	if a.config.RulesFile != "" {
		loaded, err := enrich.LoadRules(a.config.RulesFile)
		if err != nil {
			return errors.NewConfigError("rules", "cannot load rules file", err)
		}
		rules = loaded
	}

	client := registry.New(a.config.Token,
		registry.WithRateLimit(rate.Limit(a.config.RateLimit)),
	)

	selector := enrich.FirstCandidate
	if a.config.PreferAddressMatch {
		selector = enrich.PreferAddressMatch(rules)
	}

	enricher := enrich.New(client,
		enrich.WithRules(rules),
		enrich.WithSelector(selector),
		enrich.WithLogger(a.logger),
	)

	batch := reconciler.New(enricher,
		reconciler.WithLogger(a.logger),
		reconciler.WithConcurrency(a.config.Concurrency),
	)

	summary, err := batch.Run(ctx, a.config.Input, a.config.Output)
	if err != nil {
		return err
	}

	return output.FormatSummary(summary, output.DetectFormat(a.config.Format))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
