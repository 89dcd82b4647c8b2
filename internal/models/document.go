package models

import "time"

// Статусы документа в процессе согласования.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusInReview = "in review"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

type Document struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	CheckInID  *int      `json:"check_in_id,omitempty"`
	Name       string    `json:"name"`
	Filepath   string    `json:"-"`
	Status     string    `json:"status"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type UpdateDocumentRequest struct {
	Status    *string `json:"status,omitempty"`
	CheckInID *int    `json:"check_in_id,omitempty"`
}

// ValidDocumentStatus проверяет, что статус из известного словаря.
func ValidDocumentStatus(status string) bool {
	switch status {
	case DocumentStatusPending, DocumentStatusInReview, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}
