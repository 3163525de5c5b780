package application

import (
	"time"

	"internhub/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Application struct {
	ID           common.UUID `json:"id"`
	InternshipID common.UUID `json:"internship_id"`
	UserID       common.UUID `json:"user_id"`
	Status       Status      `json:"status"`
	CoverLetter  string      `json:"cover_letter,omitempty"`
	AppliedAt    time.Time   `json:"applied_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Summary is an application joined with the posting it targets and, for the
// admin listing, the applicant.
type Summary struct {
	Application
	InternshipTitle   string `json:"internship_title"`
	InternshipCompany string `json:"internship_company"`
	ApplicantName     string `json:"applicant_name,omitempty"`
	ApplicantEmail    string `json:"applicant_email,omitempty"`
}
