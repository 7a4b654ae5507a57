package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sonervous/app/apperror"
	"sonervous/app/repositories"
	"sonervous/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// googleCallbackPath is exempt from token authentication; the callback
// arrives before any session exists.
const googleCallbackPath = "/auth/login/google/callback"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logger logs information about each request
func Logger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

// Recoverer recovers from panics and responds with a generic 500. This is the
// catch-all stage for otherwise-unhandled failures.
func Recoverer(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("panic", rec).Error("recovered from panic")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "Internal Server Error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves the token cookie into a principal attached to the
// request context. Requests without the cookie pass through anonymous; a
// cookie that fails verification is rejected with 401. The Google OAuth
// callback is exempt.
func Authenticate(auth *services.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == googleCallbackPath {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(services.TokenCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.AuthenticateToken(cookie.Value)
			if err != nil {
				apperror.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser halts the chain with 401 when no principal is attached.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			apperror.WriteError(w, apperror.NewAuthError("Not Authorized", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePostOwner loads the target post and halts with 403 unless the
// principal is its author. The fetch here is separate from the handler's own
// fetch; the happy path reads the post twice.
func RequirePostOwner(posts repositories.PostRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				apperror.WriteError(w, apperror.NewAuthError("Not Authorized", nil))
				return
			}

			id := mux.Vars(r)["postId"]
			if _, err := uuid.Parse(id); err != nil {
				apperror.WriteError(w, apperror.NewValidationError("Invalid Post ID format", err))
				return
			}

			post, err := posts.GetByID(id)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					apperror.WriteError(w, apperror.NewNotFoundError("Post not found", err))
					return
				}
				apperror.WriteError(w, apperror.NewInternalError("Server Error during authorization check", err))
				return
			}

			if post.AuthorID != user.ID {
				apperror.WriteError(w, apperror.NewForbiddenError("Not Authorized to perform this action", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
