package repositories

import (
	"fmt"
	"testing"
	"time"

	"sonervous/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo *BadgerUserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Username: "author", Email: email, Password: "secret123"}
	require.NoError(t, repo.Create(user))
	return user
}

func TestPostRepositoryCreate(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewBadgerUserRepository(db)
	postRepo := NewBadgerPostRepository(db)

	author := createTestUser(t, userRepo, "author@example.com")

	t.Run("creates and links the author", func(t *testing.T) {
		post := &models.Post{Title: "Hello", Content: "First post", AuthorID: author.ID}
		require.NoError(t, postRepo.Create(post))
		assert.NotEmpty(t, post.ID)
		assert.False(t, post.CreatedAt.IsZero())

		// The author's post list gains exactly one reference.
		stored, err := userRepo.GetByID(author.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{post.ID}, stored.Posts)
	})

	t.Run("unknown author", func(t *testing.T) {
		post := &models.Post{Title: "Hello", Content: "Orphan", AuthorID: "missing"}
		assert.ErrorIs(t, postRepo.Create(post), ErrNotFound)
	})

	t.Run("expanded author is not persisted", func(t *testing.T) {
		post := &models.Post{
			Title:    "Expanded",
			Content:  "Author field set",
			AuthorID: author.ID,
			Author:   author.AuthorRef(),
		}
		require.NoError(t, postRepo.Create(post))

		stored, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Author)
		assert.Equal(t, author.ID, stored.AuthorID)
	})
}

func TestPostRepositoryList(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewBadgerUserRepository(db)
	postRepo := NewBadgerPostRepository(db)

	author := createTestUser(t, userRepo, "author@example.com")

	for i := 1; i <= 12; i++ {
		title := fmt.Sprintf("Post %d", i)
		if i%2 == 0 {
			title = fmt.Sprintf("Special %d", i)
		}
		post := &models.Post{Title: title, Content: fmt.Sprintf("Content %d", i), AuthorID: author.ID}
		require.NoError(t, postRepo.Create(post))
		time.Sleep(time.Millisecond)
	}

	t.Run("page two of five", func(t *testing.T) {
		posts, total, err := postRepo.List("", 5, 5)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, posts, 5)
	})

	t.Run("beyond the last page", func(t *testing.T) {
		posts, total, err := postRepo.List("", 20, 5)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Empty(t, posts)
	})

	t.Run("newest first", func(t *testing.T) {
		posts, _, err := postRepo.List("", 0, 12)
		require.NoError(t, err)
		require.Len(t, posts, 12)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
		}
	})

	t.Run("keyword matches title case-insensitively", func(t *testing.T) {
		posts, total, err := postRepo.List("sPeCiAl", 0, 20)
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		for _, post := range posts {
			assert.Contains(t, post.Title, "Special")
		}
	})

	t.Run("keyword matches content", func(t *testing.T) {
		_, total, err := postRepo.List("content 7", 0, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("keyword with no matches", func(t *testing.T) {
		posts, total, err := postRepo.List("nothing-here", 0, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, posts)
	})
}

func TestPostRepositoryUpdate(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewBadgerUserRepository(db)
	postRepo := NewBadgerPostRepository(db)

	author := createTestUser(t, userRepo, "author@example.com")
	post := &models.Post{Title: "Hello", Content: "First post", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(post))

	t.Run("updates title and content", func(t *testing.T) {
		post.Title = "Hello again"
		post.Content = "Edited"
		require.NoError(t, postRepo.Update(post))

		stored, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello again", stored.Title)
		assert.Equal(t, "Edited", stored.Content)
	})

	t.Run("unknown post", func(t *testing.T) {
		ghost := &models.Post{ID: "missing", Title: "x", Content: "y", AuthorID: author.ID}
		assert.ErrorIs(t, postRepo.Update(ghost), ErrNotFound)
	})
}

func TestPostRepositoryDelete(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewBadgerUserRepository(db)
	postRepo := NewBadgerPostRepository(db)

	author := createTestUser(t, userRepo, "author@example.com")
	post := &models.Post{Title: "Hello", Content: "First post", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(post))

	t.Run("deletes and unlinks the author", func(t *testing.T) {
		require.NoError(t, postRepo.Delete(post.ID, author.ID))

		_, err := postRepo.GetByID(post.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		stored, err := userRepo.GetByID(author.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Posts)
	})

	t.Run("unknown post", func(t *testing.T) {
		assert.ErrorIs(t, postRepo.Delete("missing", author.ID), ErrNotFound)
	})
}
