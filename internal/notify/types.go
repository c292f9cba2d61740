package notify

// Status is the outcome of an idempotent notification attempt
type Status string

const (
	// StatusPosted means a new notification comment was created
	StatusPosted Status = "posted"

	// StatusAlreadyPresent means an identical notification already exists
	// on the PR thread, so no write was performed
	StatusAlreadyPresent Status = "already_present"

	// StatusFailed means listing or creating the comment failed; the
	// skip decision is still honored by the caller
	StatusFailed Status = "failed"
)

// Result represents the outcome of posting a skip notification
type Result struct {
	// Status: posted, already_present or failed
	Status Status `json:"status"`

	// CommentID is set when a comment was created
	CommentID int64 `json:"comment_id,omitempty"`

	// CommentURL is set when a comment was created
	CommentURL string `json:"comment_url,omitempty"`

	// Err holds the failure when Status is failed
	Err error `json:"-"`

	// RetryAttempts is the number of rate-limit retries performed
	RetryAttempts int `json:"retry_attempts,omitempty"`
}
