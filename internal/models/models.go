package models

import (
	"time"
)

// Уровни видимости поста
const (
	VisibilityPublic   = "public"
	VisibilityUsers    = "users"
	VisibilityDrafts   = "drafts"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)

// ValidVisibility reports whether v is one of the known tiers.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityUsers, VisibilityDrafts, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

type User struct {
	UserID       string `json:"userId" db:"user_id"`
	Email        string `json:"email" db:"email"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Post struct {
	PostID      string    `json:"id" db:"post_id"`
	Author      string    `json:"author" db:"author"`
	Title       string    `json:"title" db:"title"`
	Visibility  string    `json:"permissions" db:"visibility"`
	PublishDate time.Time `json:"publishDate" db:"publish_date"`
	UpdatedDate time.Time `json:"updatedDate" db:"updated_date"`
	Content     string    `json:"content" db:"content"`
}

type Attachment struct {
	AttachmentID string    `json:"attachmentId" db:"attachment_id"`
	PostID       string    `json:"postId" db:"post_id"`
	ObjectName   string    `json:"-" db:"object_name"`
	URL          string    `json:"url" db:"attachment_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UniquenessReport - результат независимой проверки занятости email и username
type UniquenessReport struct {
	EmailTaken    bool `json:"emailTaken"`
	UsernameTaken bool `json:"usernameTaken"`
}
