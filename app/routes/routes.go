package routes

import (
	"encoding/json"
	"net/http"

	"sonervous/app/controllers"
	"sonervous/app/middleware"
	"sonervous/app/repositories"
	"sonervous/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Log         *logrus.Logger
	AuthService *services.AuthService
	PostRepo    repositories.PostRepository
	Auth        *controllers.AuthController
	Posts       *controllers.PostController
	Comments    *controllers.CommentController
}

// Setup assembles the router: global middleware, the auth routes, the posts
// resource and its nested comments resource.
func Setup(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Global middleware: request logging, the catch-all 500 stage and
	// cookie-token authentication attaching the principal.
	router.Use(middleware.Logger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))
	router.Use(middleware.Authenticate(deps.AuthService))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
	})

	requireUser := middleware.RequireUser
	requireOwner := middleware.RequirePostOwner(deps.PostRepo)

	// Auth endpoints.
	auth := router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", deps.Auth.Signup).Methods("POST")
	auth.HandleFunc("/login", deps.Auth.Login).Methods("POST")
	auth.HandleFunc("/logout", deps.Auth.Logout).Methods("POST")
	auth.HandleFunc("/send-email", deps.Auth.SendEmail).Methods("POST")
	auth.HandleFunc("/login/google", deps.Auth.GoogleLogin).Methods("GET")
	auth.HandleFunc("/login/google/callback", deps.Auth.GoogleCallback).Methods("GET")

	router.HandleFunc("/users/current_user", deps.Auth.CurrentUser).Methods("GET")

	// Posts endpoints. Mutations require a principal; update and delete
	// additionally require ownership.
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", deps.Posts.Index).Methods("GET")
	posts.Handle("", requireUser(http.HandlerFunc(deps.Posts.Create))).Methods("POST")
	posts.HandleFunc("/{postId}", deps.Posts.Show).Methods("GET")
	posts.Handle("/{postId}", requireUser(requireOwner(http.HandlerFunc(deps.Posts.Update)))).Methods("PUT")
	posts.Handle("/{postId}", requireUser(requireOwner(http.HandlerFunc(deps.Posts.Delete)))).Methods("DELETE")

	// Comments endpoints, nested under a post. Creation requires a
	// principal; update and delete match on the (comment, post) pair only.
	posts.HandleFunc("/{postId}/comments", deps.Comments.Index).Methods("GET")
	posts.Handle("/{postId}/comments", requireUser(http.HandlerFunc(deps.Comments.Create))).Methods("POST")
	posts.HandleFunc("/{postId}/comments/{commentId}", deps.Comments.Update).Methods("PUT")
	posts.HandleFunc("/{postId}/comments/{commentId}", deps.Comments.Delete).Methods("DELETE")

	return router
}
