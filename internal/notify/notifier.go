package notify

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"text/template"

	"github.com/fofsinx/otter-review-gate/internal/github"
)

//go:embed templates/skip_notice.md
var skipNoticeTemplate string

// maxRetries bounds rate-limit retries per API call
const maxRetries = 3

// BuildBody renders the notification body for an author. The body is
// keyed only by the author handle so repeated skip events on the same
// PR produce byte-identical bodies, which is what makes the duplicate
// check in Notify reliable.
func BuildBody(author string) (string, error) {
	tmpl, err := template.New("skip_notice").Parse(skipNoticeTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Author string }{Author: author}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Notifier idempotently posts skip notifications on a PR thread
type Notifier struct {
	client github.Client
	debug  bool
}

// New creates a Notifier backed by the given client
func New(client github.Client, debug bool) *Notifier {
	return &Notifier{client: client, debug: debug}
}

// Notify posts the skip notification for the PR author unless an
// identical comment already exists on the thread. The list-then-create
// sequence is best-effort: two CI runs racing on the same event can
// still double-post, since the comment API has no conditional write.
func (n *Notifier) Notify(ctx context.Context, author string) Result {
	body, err := BuildBody(author)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}

	var existing []*github.IssueComment
	listRetries, err := github.RetryWithBackoff(func() error {
		var listErr error
		existing, listErr = n.client.ListIssueComments(ctx)
		return listErr
	}, maxRetries)
	if err != nil {
		return Result{
			Status:        StatusFailed,
			Err:           &TransportError{Op: "list", Err: err},
			RetryAttempts: listRetries,
		}
	}

	matches := 0
	for _, comment := range existing {
		if comment.Body == body {
			matches++
		}
	}
	if matches > 0 {
		if matches > 1 {
			// More than one identical notification means an earlier race
			// already double-posted; never add a third.
			log.Printf("::warning::Found %d identical skip notifications on the thread", matches)
		}
		if n.debug {
			log.Printf("Skip notification already present, nothing to post")
		}
		return Result{Status: StatusAlreadyPresent, RetryAttempts: listRetries}
	}

	var created *github.PostCommentResponse
	createRetries, err := github.RetryWithBackoff(func() error {
		var createErr error
		created, createErr = n.client.CreateIssueComment(ctx, body)
		return createErr
	}, maxRetries)
	totalRetries := listRetries + createRetries
	if err != nil {
		return Result{
			Status:        StatusFailed,
			Err:           &TransportError{Op: "create", Err: err},
			RetryAttempts: totalRetries,
		}
	}

	if n.debug {
		log.Printf("Posted skip notification: %s", created.HTMLURL)
	}
	return Result{
		Status:        StatusPosted,
		CommentID:     created.ID,
		CommentURL:    created.HTMLURL,
		RetryAttempts: totalRetries,
	}
}
