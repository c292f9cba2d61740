package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration parsed from action inputs and environment
type Config struct {
	// GitHub API token for authentication
	GitHubToken string

	// Repository in format "owner/repo"
	Repository string

	// Pull request number
	PRNumber int

	// Pull request title (empty when not supplied)
	PRTitle string

	// Pull request description (empty when not supplied)
	PRDescription string

	// Pull request state: open, merged or closed
	PRState string

	// Pull request author handle, used in the notification text
	PRAuthor string

	// Product short name used to build the skip vocabulary (e.g. "otter")
	ProductName string

	// GitHub Enterprise Server hostname, empty for GitHub.com
	GHHost string

	// Path to the optional repository config file
	ConfigPath string

	// Enable debug logging
	Debug bool
}

// ParseFromEnv parses configuration from environment variables.
// Missing PR metadata is never fatal: absent variables map to empty
// strings and a malformed PR number degrades to zero with a warning,
// so the gate itself can always run.
func ParseFromEnv() *Config {
	cfg := &Config{
		GitHubToken:   os.Getenv("INPUT_GITHUB-TOKEN"),
		Repository:    os.Getenv("GITHUB_REPOSITORY"),
		PRTitle:       os.Getenv("PR_TITLE"),
		PRDescription: os.Getenv("PR_DESCRIPTION"),
		PRState:       os.Getenv("PR_STATE"),
		PRAuthor:      os.Getenv("PR_AUTHOR"),
		ProductName:   os.Getenv("INPUT_PRODUCT-NAME"),
		GHHost:        os.Getenv("INPUT_GH-HOST"),
		ConfigPath:    os.Getenv("INPUT_CONFIG-PATH"),
	}

	if prNumStr := os.Getenv("PR_NUMBER"); prNumStr != "" {
		prNum, err := strconv.Atoi(prNumStr)
		if err != nil {
			log.Printf("::warning::Invalid PR_NUMBER %q, treating as unset: %v", prNumStr, err)
		} else {
			cfg.PRNumber = prNum
		}
	}

	debugStr := os.Getenv("INPUT_DEBUG")
	cfg.Debug = strings.ToLower(debugStr) == "true"

	return cfg
}

// ValidateNotify checks the fields required to talk to the comment API.
// Only the notify path needs these; the gate evaluates without them.
func (c *Config) ValidateNotify() error {
	if c.GitHubToken == "" {
		return errors.New("GitHub token is required (INPUT_GITHUB-TOKEN)\n" +
			"  → Action: Set 'github-token' input in your workflow file\n" +
			"  → Example: github-token: ${{ secrets.GITHUB_TOKEN }}")
	}
	if c.PRNumber <= 0 {
		return errors.New("PR number must be positive (PR_NUMBER)\n" +
			"  → Action: Set PR_NUMBER in your workflow file\n" +
			"  → Example: PR_NUMBER: ${{ github.event.pull_request.number }}")
	}
	if c.Repository == "" {
		return errors.New("repository is required (GITHUB_REPOSITORY)\n" +
			"  → Action: This is automatically set by GitHub Actions\n" +
			"  → Ensure the action is running in a GitHub Actions workflow")
	}
	if !strings.Contains(c.Repository, "/") {
		return fmt.Errorf("repository must be in format owner/repo, got: %s\n"+
			"  → Action: Check GITHUB_REPOSITORY environment variable\n"+
			"  → Expected format: owner/repository-name", c.Repository)
	}
	if strings.Contains(c.GHHost, "://") {
		return fmt.Errorf("gh-host must not include protocol, got: %s\n"+
			"  → Action: Use a bare hostname like github.company.com", c.GHHost)
	}
	return nil
}

// Owner returns the repository owner from Repository field
func (c *Config) Owner() string {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 {
		return ""
	}
	return parts[0]
}

// Repo returns the repository name from Repository field
func (c *Config) Repo() string {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
