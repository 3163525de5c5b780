package user

import (
	"time"

	"internhub/internal/common"
)

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Attachment is a binary blob stored inline with its metadata. Data is never
// serialized into API responses; the dedicated download endpoints stream it.
type Attachment struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"-"`
}

func (a Attachment) Present() bool {
	return len(a.Data) > 0
}

type User struct {
	ID               common.UUID `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	PasswordHash     string      `json:"-"`
	Phone            string      `json:"phone"`
	IsVerified       bool        `json:"is_verified"`
	Education        []Education `json:"education"`
	Skills           []string    `json:"skills"`
	Keywords         []string    `json:"keywords"`
	Resume           Attachment  `json:"resume"`
	ProfilePicture   Attachment  `json:"profile_picture"`
	ApplicationCount int         `json:"application_count"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
