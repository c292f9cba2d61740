// package main is the entry point for the review-gate action binary
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/fofsinx/otter-review-gate/internal/config"
	"github.com/fofsinx/otter-review-gate/internal/gate"
	"github.com/fofsinx/otter-review-gate/internal/github"
	"github.com/fofsinx/otter-review-gate/internal/runner"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "review-gate",
		Short: "Decides whether the automated code review should run for a pull request",
		Long: `review-gate evaluates pull request metadata against a skip-directive
vocabulary and the PR state. On a skip decision it posts an idempotent
notification comment and publishes the decision via action outputs, so
the workflow can stop before installing the review engine.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGate(cmd)
		},
	}

	rootCmd.AddCommand(newDirectivesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func runGate(cmd *cobra.Command) error {
	if os.Getenv("GITHUB_ACTIONS") != "true" {
		log.Println("Warning: Not running in GitHub Actions environment")
		log.Println("This gate is designed to run as a GitHub Action step")
	}

	cfg := config.ParseFromEnv()
	if cfg.Debug {
		log.Println("Debug mode enabled")
		log.Printf("Configuration: PR=%d, Repo=%s, State=%s", cfg.PRNumber, cfg.Repository, cfg.PRState)
	}

	report := runner.Run(cmd.Context(), cfg, github.NewClient)

	runner.WriteOutputs(report)
	if err := runner.LogMetrics(runner.NewMetricsEvent(cfg.PRNumber, report)); err != nil {
		log.Printf("Warning: %v", err)
	}

	if cfg.Debug {
		if data, err := json.MarshalIndent(report, "", "  "); err != nil {
			log.Printf("Warning: failed to marshal report as JSON: %v", err)
		} else {
			fmt.Printf("\nResults:\n%s\n", string(data))
		}
	}

	if report.Decision.Skip {
		log.Printf("⊘ Review skipped (%s), notification: %s", report.Decision.Reason, notifySummary(report))
	} else {
		log.Printf("✓ No skip condition, review engine runs next")
	}

	// Exit 0 on every decided path: a missed notification must not fail
	// the CI job, and a non-skip simply hands off to the next stage.
	return nil
}

func notifySummary(report *runner.Report) string {
	if report.Notify == nil {
		return "not attempted"
	}
	return string(report.Notify.Status)
}

func newDirectivesCmd() *cobra.Command {
	var product string

	directivesCmd := &cobra.Command{
		Use:   "directives",
		Short: "Print the active skip-directive vocabulary",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.ParseFromEnv()
			if product == "" {
				product = cfg.ProductName
			}

			repoCfg, err := config.LoadRepoConfig(cfg.ConfigPath)
			if err != nil {
				log.Printf("::warning::Ignoring repo config: %v", err)
			}
			if product == "" && repoCfg != nil {
				product = repoCfg.ProductName
			}
			var extra []string
			if repoCfg != nil {
				extra = repoCfg.ExtraDirectives
			}

			for _, d := range gate.New(product, extra).Directives() {
				fmt.Println(d)
			}
			return nil
		},
	}

	directivesCmd.Flags().StringVar(&product, "product", "", "Product short name (default from INPUT_PRODUCT-NAME)")
	return directivesCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the review-gate version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("review-gate %s\n", version)
		},
	}
}
