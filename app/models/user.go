package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor used for stored passwords.
const PasswordCost = 10

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets up any necessary fields before creation. A plaintext
// password, if present, is replaced with its bcrypt hash here; federated
// accounts carry no password at all.
func (u *User) BeforeCreate() error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	if u.RegisterType == "" {
		u.RegisterType = RegisterTypeNormal
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Password != "" {
		return u.HashPassword(u.Password)
	}
	return nil
}

// HashPassword replaces the stored password with the bcrypt hash of plaintext.
func (u *User) HashPassword(plaintext string) error {
	if plaintext == "" {
		return errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword compares plaintext against the stored hash in constant time.
func (u *User) CheckPassword(plaintext string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// Sanitize returns a copy safe for responses: the password hash is dropped.
func (u *User) Sanitize() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Password = ""
	return &clone
}

// AuthorRef returns the expanded author reference for this user.
func (u *User) AuthorRef() *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Username: u.Username}
}

// AddPostRef appends a post id to the user's post list.
func (u *User) AddPostRef(postID string) {
	u.Posts = append(u.Posts, postID)
}

// RemovePostRef removes a post id from the user's post list.
func (u *User) RemovePostRef(postID string) error {
	for i, id := range u.Posts {
		if id == postID {
			u.Posts = append(u.Posts[:i], u.Posts[i+1:]...)
			return nil
		}
	}
	return errors.New("post reference not found")
}
