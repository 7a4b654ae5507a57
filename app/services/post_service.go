package services

import (
	"errors"

	"sonervous/app/apperror"
	"sonervous/app/models"
	"sonervous/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost creates a new post authored by the given principal. The author
// is forced to the principal; the author's post list gains the new id in the
// same store transaction.
func (s *PostService) CreatePost(author *models.User, title, content string) (*models.Post, error) {
	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	}
	if err := post.Validate(); err != nil {
		return nil, apperror.NewValidationError(err.Error(), err)
	}

	if err := s.postRepo.Create(post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("author not found", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	post.Author = author.AuthorRef()
	return post, nil
}

// GetPost retrieves a post by ID with its author expanded
func (s *PostService) GetPost(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	s.expandPostAuthors([]*models.Post{post})
	return post, nil
}

// ListPosts retrieves one page of posts sorted newest-first, optionally
// filtered by keyword, with authors expanded. The second return value is the
// total match count.
func (s *PostService) ListPosts(keyword string, page, pageSize int) ([]*models.Post, int, error) {
	skip := (page - 1) * pageSize
	posts, total, err := s.postRepo.List(keyword, skip, pageSize)
	if err != nil {
		return nil, 0, apperror.NewInternalError("Server Error", err)
	}

	s.expandPostAuthors(posts)
	return posts, total, nil
}

// UpdatePost updates a post's title and content; nothing else is mutable.
func (s *PostService) UpdatePost(id, title, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	post.Title = title
	post.Content = content
	if err := post.Validate(); err != nil {
		return nil, apperror.NewValidationError(err.Error(), err)
	}

	if err := s.postRepo.Update(post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	s.expandPostAuthors([]*models.Post{post})
	return post, nil
}

// DeletePost deletes a post and pulls its id from the author's post list.
// Comments on the post are left in place.
func (s *PostService) DeletePost(id, authorID string) error {
	if err := s.postRepo.Delete(id, authorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFoundError("Post not found", err)
		}
		return apperror.NewInternalError("Server Error", err)
	}
	return nil
}

// expandPostAuthors resolves author references to {id, username} for
// responses. Authors that no longer exist stay unexpanded.
func (s *PostService) expandPostAuthors(posts []*models.Post) {
	cache := make(map[string]*models.Author)
	for _, post := range posts {
		ref, seen := cache[post.AuthorID]
		if !seen {
			if user, err := s.userRepo.GetByID(post.AuthorID); err == nil {
				ref = user.AuthorRef()
			}
			cache[post.AuthorID] = ref
		}
		post.Author = ref
	}
}
