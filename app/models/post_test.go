package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    Post
		wantErr bool
	}{
		{
			name:    "valid post",
			post:    Post{Title: "Hello", Content: "First post", AuthorID: "u1"},
			wantErr: false,
		},
		{
			name:    "missing title",
			post:    Post{Content: "First post", AuthorID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing content",
			post:    Post{Title: "Hello", AuthorID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing author",
			post:    Post{Title: "Hello", Content: "First post"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	t.Run("sets timestamps", func(t *testing.T) {
		post := &Post{Title: "Hello", Content: "First post", AuthorID: "u1"}
		post.BeforeCreate()
		assert.False(t, post.CreatedAt.IsZero())
		assert.False(t, post.UpdatedAt.IsZero())
	})

	t.Run("preserves an existing creation time", func(t *testing.T) {
		created := time.Now().Add(-time.Hour)
		post := &Post{Title: "Hello", Content: "First post", AuthorID: "u1", CreatedAt: created}
		post.BeforeCreate()
		assert.Equal(t, created, post.CreatedAt)
		assert.True(t, post.UpdatedAt.After(created))
	})
}

func TestPostCommentRefs(t *testing.T) {
	post := &Post{Title: "Hello", Content: "First post", AuthorID: "u1"}

	post.AddCommentRef("c1")
	post.AddCommentRef("c2")
	assert.Equal(t, []string{"c1", "c2"}, post.Comments)

	assert.NoError(t, post.RemoveCommentRef("c1"))
	assert.Equal(t, []string{"c2"}, post.Comments)

	assert.Error(t, post.RemoveCommentRef("missing"))
}

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment Comment
		wantErr bool
	}{
		{
			name:    "valid comment",
			comment: Comment{Content: "Nice post", PostID: "p1", AuthorID: "u1"},
			wantErr: false,
		},
		{
			name:    "missing content",
			comment: Comment{PostID: "p1", AuthorID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing post",
			comment: Comment{Content: "Nice post", AuthorID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing author",
			comment: Comment{Content: "Nice post", PostID: "p1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
