package controllers

import (
	"net/http"
	"strconv"

	"sonervous/app/apperror"
	"sonervous/app/middleware"
	"sonervous/app/models"
	"sonervous/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments, nested under a post.
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles GET /posts/{postId}/comments. Page defaults to 1 and
// pageSize to 10, unlike the posts listing.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	query := r.URL.Query()

	page := 1
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 10
	if ps, err := strconv.Atoi(query.Get("pageSize")); err == nil && ps > 0 {
		pageSize = ps
	}

	comments, total, err := cc.commentService.ListComments(postID, page, pageSize)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	sendJSON(w, http.StatusOK, pagedResponse{
		Data:     comments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Create handles POST /posts/{postId}/comments. The author is forced to the
// authenticated principal.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	postID := mux.Vars(r)["postId"]
	if _, err := uuid.Parse(postID); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid Post ID format", err))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	comment, err := cc.commentService.CreateComment(user, postID, req.Content)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, comment)
}

// Update handles PUT /posts/{postId}/comments/{commentId}. The filter is the
// (comment, post) pair; there is no ownership check on comments.
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, commentID := vars["postId"], vars["commentId"]
	if _, err := uuid.Parse(commentID); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid Comment ID format", err))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	comment, err := cc.commentService.UpdateComment(commentID, postID, req.Content)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /posts/{postId}/comments/{commentId}. The comment's
// id is pulled from the parent post's comment list.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, commentID := vars["postId"], vars["commentId"]
	if _, err := uuid.Parse(commentID); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid Comment ID format", err))
		return
	}

	if err := cc.commentService.DeleteComment(commentID, postID); err != nil {
		apperror.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
