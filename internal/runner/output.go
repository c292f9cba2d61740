package runner

import (
	"fmt"
	"log"
	"os"
)

// WriteOutputs publishes the gate decision for the next pipeline stage.
// When GITHUB_OUTPUT is set (current Actions runners) the values are
// appended there; otherwise the legacy ::set-output command is printed.
func WriteOutputs(report *Report) {
	outputs := [][2]string{
		{"skip", fmt.Sprintf("%t", report.Decision.Skip)},
		{"reason", string(report.Decision.Reason)},
		{"notify_result", notifyStatus(report)},
	}

	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		err := appendOutputs(path, outputs)
		if err == nil {
			return
		}
		log.Printf("::warning::Failed to write GITHUB_OUTPUT, falling back to set-output: %v", err)
	}

	for _, kv := range outputs {
		fmt.Printf("::set-output name=%s::%s\n", kv[0], kv[1])
	}
}

func appendOutputs(path string, outputs [][2]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, kv := range outputs {
		if _, err := fmt.Fprintf(f, "%s=%s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func notifyStatus(report *Report) string {
	if report.Notify == nil {
		return "not_attempted"
	}
	return string(report.Notify.Status)
}
