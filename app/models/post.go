package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Touch updates the modification timestamp.
func (p *Post) Touch() {
	p.UpdatedAt = time.Now()
}

// AddCommentRef appends a comment id to the post's comment list.
func (p *Post) AddCommentRef(commentID string) {
	p.Comments = append(p.Comments, commentID)
}

// RemoveCommentRef removes a comment id from the post's comment list.
func (p *Post) RemoveCommentRef(commentID string) error {
	for i, id := range p.Comments {
		if id == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return errors.New("comment reference not found")
}
