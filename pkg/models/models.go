package models

import "time"

// DocumentStatus is the server-side lifecycle state of an uploaded PDF.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// User is the authenticated account as returned by /users/me.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

// DisplayName returns a human-friendly name, falling back to the email.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TokenResponse is the credential exchange result from /auth/jwt/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Document is a server-tracked PDF upload, embedding its summary once
// processing completes. The client never mutates it; each view re-fetches.
type Document struct {
	ID               int            `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	PageCount        *int           `json:"page_count"`
	Status           DocumentStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Summary          *Summary       `json:"summary"`
}

// DocumentListItem is the lighter shape returned by the listing endpoint.
type DocumentListItem struct {
	ID               int            `json:"id"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	PageCount        *int           `json:"page_count"`
	Status           DocumentStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	HasSummary       bool           `json:"has_summary"`
}

// Summary is the generated artifact attached to a completed document.
type Summary struct {
	ID             int        `json:"id"`
	Content        string     `json:"content"`
	WordCount      *int       `json:"word_count"`
	ProcessingTime *float64   `json:"processing_time"`
	EmailSent      bool       `json:"email_sent"`
	EmailSentAt    *time.Time `json:"email_sent_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UploadResult is the acknowledgement returned by /pdf/upload.
type UploadResult struct {
	DocumentID int    `json:"document_id"`
	TaskID     string `json:"task_id"`
	Message    string `json:"message"`
}
