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

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles GET /posts with keyword search and pagination. Unlike
// comments, page and pageSize carry no defaults here; both are required.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	keyword := query.Get("keyword")

	page, pageErr := strconv.Atoi(query.Get("page"))
	pageSize, sizeErr := strconv.Atoi(query.Get("pageSize"))
	if pageErr != nil || sizeErr != nil || page < 1 || pageSize < 1 {
		apperror.WriteError(w, apperror.NewValidationError("page and pageSize are required", nil))
		return
	}

	posts, total, err := pc.postService.ListPosts(keyword, page, pageSize)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	sendJSON(w, http.StatusOK, pagedResponse{
		Data:     posts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Show handles GET /posts/{postId}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["postId"]
	if _, err := uuid.Parse(id); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid Post ID format", err))
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Create handles POST /posts. The author is forced to the authenticated
// principal.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	post, err := pc.postService.CreatePost(user, req.Title, req.Content)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Update handles PUT /posts/{postId}. Only title and content are mutable.
// Ownership has already been checked by the route middleware.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["postId"]

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	post, err := pc.postService.UpdatePost(id, req.Title, req.Content)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{postId}. The post's id is pulled from the
// author's post list; its comments are left in place.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id := mux.Vars(r)["postId"]

	if err := pc.postService.DeletePost(id, user.ID); err != nil {
		apperror.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
