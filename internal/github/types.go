package github

import "time"

// IssueComment represents a PR-thread comment fetched from GitHub
type IssueComment struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

// PostCommentResponse represents the response from posting a comment
type PostCommentResponse struct {
	ID        int64     `json:"id"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
}
