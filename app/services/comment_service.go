package services

import (
	"errors"

	"sonervous/app/apperror"
	"sonervous/app/models"
	"sonervous/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, userRepo: userRepo}
}

// CreateComment creates a new comment authored by the given principal. The
// parent post's comment list gains the new id in the same store transaction.
func (s *CommentService) CreateComment(author *models.User, postID, content string) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: author.ID,
	}
	if err := comment.Validate(); err != nil {
		return nil, apperror.NewValidationError(err.Error(), err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	comment.Author = author.AuthorRef()
	return comment, nil
}

// ListComments retrieves one page of a post's comments sorted newest-first,
// with authors expanded. A post with no comments (or an unknown post id)
// yields an empty page.
func (s *CommentService) ListComments(postID string, page, pageSize int) ([]*models.Comment, int, error) {
	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByPost(postID, skip, pageSize)
	if err != nil {
		return nil, 0, apperror.NewInternalError("Server Error", err)
	}

	s.expandCommentAuthors(comments)
	return comments, total, nil
}

// UpdateComment updates a comment's content, matching on the (comment, post)
// pair. Unlike posts, comment mutation carries no ownership check.
func (s *CommentService) UpdateComment(id, postID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, apperror.NewValidationError("content is required", nil)
	}

	comment, err := s.commentRepo.UpdateByPost(id, postID, content)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Comment not found or does not belong to this post", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}

	s.expandCommentAuthors([]*models.Comment{comment})
	return comment, nil
}

// DeleteComment deletes a comment, matching on the (comment, post) pair, and
// pulls its id from the parent post's comment list.
func (s *CommentService) DeleteComment(id, postID string) error {
	if err := s.commentRepo.DeleteByPost(id, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFoundError("Comment not found or does not belong to this post", err)
		}
		return apperror.NewInternalError("Server Error", err)
	}
	return nil
}

// expandCommentAuthors resolves author references to {id, username}.
func (s *CommentService) expandCommentAuthors(comments []*models.Comment) {
	cache := make(map[string]*models.Author)
	for _, comment := range comments {
		ref, seen := cache[comment.AuthorID]
		if !seen {
			if user, err := s.userRepo.GetByID(comment.AuthorID); err == nil {
				ref = user.AuthorRef()
			}
			cache[comment.AuthorID] = ref
		}
		comment.Author = ref
	}
}
