package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client defines the interface for GitHub API operations
type Client interface {
	// ListIssueComments fetches all PR-thread comments for the PR
	ListIssueComments(ctx context.Context) ([]*IssueComment, error)

	// CreateIssueComment posts a PR-thread comment
	CreateIssueComment(ctx context.Context, body string) (*PostCommentResponse, error)

	// CheckRateLimit returns remaining API calls
	CheckRateLimit(ctx context.Context) (int, error)
}

// ClientImpl is the concrete implementation using go-github
type ClientImpl struct {
	client   *github.Client
	owner    string
	repo     string
	prNumber int
}

// NewClient creates a new GitHub API client
func NewClient(token, owner, repo string, prNumber int, ghHost string) (Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}
	if owner == "" {
		return nil, errors.New("owner is required")
	}
	if repo == "" {
		return nil, errors.New("repo is required")
	}
	if prNumber <= 0 {
		return nil, errors.New("PR number must be positive")
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	// Create GitHub client (enterprise or default)
	var ghClient *github.Client
	var err error

	if ghHost != "" {
		// GitHub Enterprise Server
		baseURL := "https://" + ghHost
		uploadURL := "https://" + ghHost

		ghClient, err = github.NewClient(tc).WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub Enterprise client for %s: %w", ghHost, err)
		}
	} else {
		// GitHub.com (default)
		ghClient = github.NewClient(tc)
	}

	return &ClientImpl{
		client:   ghClient,
		owner:    owner,
		repo:     repo,
		prNumber: prNumber,
	}, nil
}

// ListIssueComments fetches all PR-thread comments for the PR.
// PR-level comments live on the issues endpoint, not the review API.
func (c *ClientImpl) ListIssueComments(ctx context.Context) ([]*IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allComments []*IssueComment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, c.prNumber, opts)
		if err != nil {
			return nil, err
		}

		for _, comment := range comments {
			allComments = append(allComments, &IssueComment{
				ID:     comment.GetID(),
				Body:   comment.GetBody(),
				Author: comment.GetUser().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// CreateIssueComment posts a PR-thread comment
func (c *ClientImpl) CreateIssueComment(ctx context.Context, body string) (*PostCommentResponse, error) {
	comment := &github.IssueComment{
		Body: github.String(body),
	}

	created, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, c.prNumber, comment)
	if err != nil {
		return nil, err
	}

	return &PostCommentResponse{
		ID:        created.GetID(),
		HTMLURL:   created.GetHTMLURL(),
		CreatedAt: created.GetCreatedAt().Time,
	}, nil
}

// CheckRateLimit returns remaining API calls
func (c *ClientImpl) CheckRateLimit(ctx context.Context) (int, error) {
	rate, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, err
	}

	return rate.Core.Remaining, nil
}
