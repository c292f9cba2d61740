package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fofsinx/otter-review-gate/internal/github"
)

// MockClient is a mock implementation of the GitHub Client interface
type MockClient struct {
	ListIssueCommentsFunc  func(ctx context.Context) ([]*github.IssueComment, error)
	CreateIssueCommentFunc func(ctx context.Context, body string) (*github.PostCommentResponse, error)
	CheckRateLimitFunc     func(ctx context.Context) (int, error)
}

func (m *MockClient) ListIssueComments(ctx context.Context) ([]*github.IssueComment, error) {
	if m.ListIssueCommentsFunc != nil {
		return m.ListIssueCommentsFunc(ctx)
	}
	return []*github.IssueComment{}, nil
}

func (m *MockClient) CreateIssueComment(ctx context.Context, body string) (*github.PostCommentResponse, error) {
	if m.CreateIssueCommentFunc != nil {
		return m.CreateIssueCommentFunc(ctx, body)
	}
	return &github.PostCommentResponse{ID: 1, HTMLURL: "https://github.com/test"}, nil
}

func (m *MockClient) CheckRateLimit(ctx context.Context) (int, error) {
	if m.CheckRateLimitFunc != nil {
		return m.CheckRateLimitFunc(ctx)
	}
	return 5000, nil
}

// threadClient simulates a PR comment thread that accumulates posted comments
type threadClient struct {
	comments []*github.IssueComment
	creates  int
}

func (tc *threadClient) ListIssueComments(_ context.Context) ([]*github.IssueComment, error) {
	out := make([]*github.IssueComment, len(tc.comments))
	copy(out, tc.comments)
	return out, nil
}

func (tc *threadClient) CreateIssueComment(_ context.Context, body string) (*github.PostCommentResponse, error) {
	tc.creates++
	comment := &github.IssueComment{
		ID:     int64(100 + tc.creates),
		Body:   body,
		Author: "github-actions[bot]",
	}
	tc.comments = append(tc.comments, comment)
	return &github.PostCommentResponse{ID: comment.ID, HTMLURL: "https://github.com/test/comment"}, nil
}

func (tc *threadClient) CheckRateLimit(_ context.Context) (int, error) {
	return 5000, nil
}

func TestBuildBody_Deterministic(t *testing.T) {
	first, err := BuildBody("alice")
	if err != nil {
		t.Fatalf("BuildBody() unexpected error: %v", err)
	}
	second, err := BuildBody("alice")
	if err != nil {
		t.Fatalf("BuildBody() unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("BuildBody() not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
	if !strings.HasPrefix(first, "Hey @alice!") {
		t.Errorf("BuildBody() = %q, want prefix %q", first, "Hey @alice!")
	}
}

func TestBuildBody_DiffersPerAuthor(t *testing.T) {
	alice, _ := BuildBody("alice")
	bob, _ := BuildBody("bob")
	if alice == bob {
		t.Error("BuildBody() produced identical bodies for different authors")
	}
}

func TestNotify_PostsWhenThreadEmpty(t *testing.T) {
	thread := &threadClient{}
	n := New(thread, false)

	result := n.Notify(context.Background(), "alice")

	if result.Status != StatusPosted {
		t.Fatalf("Notify() status = %q, want %q (err: %v)", result.Status, StatusPosted, result.Err)
	}
	if thread.creates != 1 {
		t.Errorf("Notify() created %d comments, want 1", thread.creates)
	}
}

func TestNotify_IdempotentSecondCall(t *testing.T) {
	thread := &threadClient{}
	n := New(thread, false)
	ctx := context.Background()

	first := n.Notify(ctx, "alice")
	if first.Status != StatusPosted {
		t.Fatalf("first Notify() status = %q, want %q", first.Status, StatusPosted)
	}

	second := n.Notify(ctx, "alice")
	if second.Status != StatusAlreadyPresent {
		t.Fatalf("second Notify() status = %q, want %q", second.Status, StatusAlreadyPresent)
	}
	if thread.creates != 1 {
		t.Errorf("two Notify() calls created %d comments, want exactly 1", thread.creates)
	}
}

func TestNotify_IgnoresOtherComments(t *testing.T) {
	thread := &threadClient{
		comments: []*github.IssueComment{
			{ID: 1, Body: "LGTM", Author: "bob"},
			{ID: 2, Body: "Hey @alice! unrelated comment", Author: "carol"},
		},
	}
	n := New(thread, false)

	result := n.Notify(context.Background(), "alice")

	if result.Status != StatusPosted {
		t.Fatalf("Notify() status = %q, want %q", result.Status, StatusPosted)
	}
	if thread.creates != 1 {
		t.Errorf("Notify() created %d comments, want 1", thread.creates)
	}
}

func TestNotify_AmbiguousDuplicatesTreatedAsPresent(t *testing.T) {
	body, err := BuildBody("alice")
	if err != nil {
		t.Fatalf("BuildBody() unexpected error: %v", err)
	}

	// Two identical notifications from an earlier race: never post a third
	thread := &threadClient{
		comments: []*github.IssueComment{
			{ID: 1, Body: body, Author: "github-actions[bot]"},
			{ID: 2, Body: body, Author: "github-actions[bot]"},
		},
	}
	n := New(thread, false)

	result := n.Notify(context.Background(), "alice")

	if result.Status != StatusAlreadyPresent {
		t.Fatalf("Notify() status = %q, want %q", result.Status, StatusAlreadyPresent)
	}
	if thread.creates != 0 {
		t.Errorf("Notify() created %d comments, want 0", thread.creates)
	}
}

func TestNotify_ListFailure(t *testing.T) {
	mockClient := &MockClient{
		ListIssueCommentsFunc: func(_ context.Context) ([]*github.IssueComment, error) {
			return nil, errors.New("401 Unauthorized")
		},
	}
	n := New(mockClient, false)

	result := n.Notify(context.Background(), "alice")

	if result.Status != StatusFailed {
		t.Fatalf("Notify() status = %q, want %q", result.Status, StatusFailed)
	}

	var transportErr *TransportError
	if !errors.As(result.Err, &transportErr) {
		t.Fatalf("Notify() err = %v, want *TransportError", result.Err)
	}
	if transportErr.Op != "list" {
		t.Errorf("TransportError.Op = %q, want %q", transportErr.Op, "list")
	}
}

func TestNotify_CreateFailure(t *testing.T) {
	mockClient := &MockClient{
		CreateIssueCommentFunc: func(_ context.Context, _ string) (*github.PostCommentResponse, error) {
			return nil, errors.New("403 Forbidden")
		},
	}
	n := New(mockClient, false)

	result := n.Notify(context.Background(), "alice")

	if result.Status != StatusFailed {
		t.Fatalf("Notify() status = %q, want %q", result.Status, StatusFailed)
	}

	var transportErr *TransportError
	if !errors.As(result.Err, &transportErr) {
		t.Fatalf("Notify() err = %v, want *TransportError", result.Err)
	}
	if transportErr.Op != "create" {
		t.Errorf("TransportError.Op = %q, want %q", transportErr.Op, "create")
	}
}
