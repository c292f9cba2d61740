package runner

import (
	"encoding/json"
	"fmt"
	"time"
)

// MetricsEvent represents structured metrics data for observability
type MetricsEvent struct {
	// EventType is always "review_gate_evaluated"
	EventType string `json:"event_type"`

	// Timestamp is the event timestamp in ISO 8601 UTC format
	Timestamp string `json:"timestamp"`

	// PRNumber is the pull request number
	PRNumber int `json:"pr_number"`

	// Skip is the gate decision
	Skip bool `json:"skip"`

	// Reason records which condition triggered the skip
	Reason string `json:"reason"`

	// Matched lists the directives or terminal state that fired
	Matched []string `json:"matched,omitempty"`

	// NotifyResult is the notification outcome, "not_attempted" when
	// the gate did not skip
	NotifyResult string `json:"notify_result"`

	// RetryAttempts is the number of retries performed against the API
	RetryAttempts int `json:"retry_attempts"`

	// DurationSeconds is the total run time
	DurationSeconds float64 `json:"duration_seconds"`
}

// NewMetricsEvent creates a MetricsEvent from a gate run report
func NewMetricsEvent(prNumber int, report *Report) *MetricsEvent {
	event := &MetricsEvent{
		EventType:       "review_gate_evaluated",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		PRNumber:        prNumber,
		Skip:            report.Decision.Skip,
		Reason:          string(report.Decision.Reason),
		Matched:         report.Decision.Matched,
		NotifyResult:    notifyStatus(report),
		DurationSeconds: report.DurationSeconds,
	}
	if report.Notify != nil {
		event.RetryAttempts = report.Notify.RetryAttempts
	}
	return event
}

// LogMetrics outputs structured JSON metrics to stdout for external monitoring systems
// Format: ::notice::METRICS:{json}
func LogMetrics(event *MetricsEvent) error {
	jsonBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	fmt.Printf("::notice::METRICS:%s\n", string(jsonBytes))
	return nil
}
