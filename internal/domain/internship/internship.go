package internship

import (
	"time"

	"internhub/internal/common"
)

type Internship struct {
	ID           common.UUID `json:"id"`
	Title        string      `json:"title"`
	Company      string      `json:"company"`
	Location     string      `json:"location"`
	Domain       string      `json:"domain"`
	Position     string      `json:"position"`
	Salary       int         `json:"salary"`
	Type         string      `json:"type"`
	Duration     string      `json:"duration"`
	Description  string      `json:"description"`
	Requirements []string    `json:"requirements"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
