package repositories

import "sonervous/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// FindOrCreateBySocialID resolves a federated login in a single atomic
	// step. It returns the resolved user and whether a new account was
	// created.
	FindOrCreateBySocialID(candidate *models.User) (*models.User, bool, error)
	Update(user *models.User) error
}

// PostRepository defines the interface for post data access. Create and
// Delete also maintain the author's post list in the same transaction.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	// List returns one page of posts sorted newest-first, filtered by an
	// optional case-insensitive keyword against title or content, along
	// with the total match count.
	List(keyword string, skip, limit int) ([]*models.Post, int, error)
	Update(post *models.Post) error
	Delete(id, authorID string) error
}

// CommentRepository defines the interface for comment data access. Create and
// DeleteByPost also maintain the parent post's comment list in the same
// transaction. Update and delete filter on the (comment, post) pair.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string, skip, limit int) ([]*models.Comment, int, error)
	UpdateByPost(id, postID, content string) (*models.Comment, error)
	DeleteByPost(id, postID string) error
}
