package runner

import (
	"context"
	"log"
	"time"

	"github.com/fofsinx/otter-review-gate/internal/config"
	"github.com/fofsinx/otter-review-gate/internal/gate"
	"github.com/fofsinx/otter-review-gate/internal/github"
	"github.com/fofsinx/otter-review-gate/internal/notify"
)

// ClientFactory builds a GitHub client for the notify path. Injected so
// tests can substitute a mock thread.
type ClientFactory func(token, owner, repo string, prNumber int, ghHost string) (github.Client, error)

// Report is the outcome of one gate run
type Report struct {
	// Decision is the skip evaluation result
	Decision gate.Decision `json:"decision"`

	// Notify is set when the skip path attempted a notification
	Notify *notify.Result `json:"notify,omitempty"`

	// DurationSeconds is the total run time
	DurationSeconds float64 `json:"duration_seconds"`
}

// Run evaluates the skip gate and, on a skip decision, posts the
// notification. It never fails the CI job: every error on the notify
// path is reduced to a logged warning and a failed notify result, and
// the caller exits zero so the pipeline's next stage can read the
// decision from the action outputs.
func Run(ctx context.Context, cfg *config.Config, newClient ClientFactory) *Report {
	start := time.Now()

	repoCfg, err := config.LoadRepoConfig(cfg.ConfigPath)
	if err != nil {
		// A broken repo config must not block the gate; fall back to the
		// built-in vocabulary.
		log.Printf("::warning::Ignoring repo config: %v", err)
	}
	product, extra := cfg.Merge(repoCfg)

	g := gate.New(product, extra)
	decision := g.Evaluate(cfg.PRTitle, cfg.PRDescription, cfg.PRState)

	report := &Report{Decision: decision}

	if decision.Skip {
		log.Printf("::notice::Skipping review for PR #%d (reason: %s, matched: %v)",
			cfg.PRNumber, decision.Reason, decision.Matched)
		result := runNotify(ctx, cfg, newClient)
		report.Notify = &result
	} else if cfg.Debug {
		log.Printf("No skip condition for PR #%d, handing off to the review engine", cfg.PRNumber)
	}

	report.DurationSeconds = time.Since(start).Seconds()
	return report
}

// runNotify performs the idempotent notification, degrading every
// failure to a failed result instead of an error.
func runNotify(ctx context.Context, cfg *config.Config, newClient ClientFactory) notify.Result {
	if err := cfg.ValidateNotify(); err != nil {
		log.Printf("::warning::Cannot post skip notification: %v", err)
		return notify.Result{Status: notify.StatusFailed, Err: err}
	}

	client, err := newClient(cfg.GitHubToken, cfg.Owner(), cfg.Repo(), cfg.PRNumber, cfg.GHHost)
	if err != nil {
		log.Printf("::warning::Cannot create GitHub client: %v", err)
		return notify.Result{Status: notify.StatusFailed, Err: err}
	}

	if cfg.Debug {
		remaining, err := client.CheckRateLimit(ctx)
		if err != nil {
			log.Printf("Warning: failed to check rate limit: %v", err)
		} else {
			log.Printf("GitHub API rate limit remaining: %d", remaining)
		}
	}

	result := notify.New(client, cfg.Debug).Notify(ctx, cfg.PRAuthor)
	if result.Status == notify.StatusFailed {
		log.Printf("::warning::Skip notification failed: %v", result.Err)
	}
	return result
}
