package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Register types for user accounts.
const (
	RegisterTypeNormal = "normal"
	RegisterTypeGoogle = "google"
)

// User represents a registered account. Password holds the bcrypt hash in
// storage and is omitted from sanitized copies.
type User struct {
	ID           string    `json:"id" validate:"-"`
	Username     string    `json:"username" validate:"required,min=1,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	Password     string    `json:"password,omitempty" validate:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	RegisterType string    `json:"registerType" validate:"omitempty,oneof=normal google"`
	SocialID     string    `json:"socialId,omitempty" validate:"-"`
	Posts        []string  `json:"posts"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Author is the expanded author reference embedded in post and comment
// responses.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Post represents a blog post. Comments holds the ids of its comments in
// creation order; Author is populated for responses only.
type Post struct {
	ID        string    `json:"id" validate:"-"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	AuthorID  string    `json:"authorId" validate:"required"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty" validate:"-"`
}

// Comment represents a comment on a blog post. Author is populated for
// responses only.
type Comment struct {
	ID        string    `json:"id" validate:"-"`
	Content   string    `json:"content" validate:"required"`
	PostID    string    `json:"postId" validate:"required"`
	AuthorID  string    `json:"authorId" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty" validate:"-"`
}
