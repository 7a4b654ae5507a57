package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"sonervous/app/apperror"
	"sonervous/app/middleware"
	"sonervous/app/services"

	"golang.org/x/oauth2"
)

// googleUserInfoURL serves the profile claims for an exchanged access token.
const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

const (
	tokenCookieMaxAge = 60 * 60 * 24 // 1 day, the sole expiry control
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 60 * 10
)

// AuthController handles signup, login, logout, the Google OAuth handshake,
// the current-user endpoint and the mail relay.
type AuthController struct {
	authService *services.AuthService
	mailer      services.Mailer
	oauth       *oauth2.Config
	frontendURL string

	// exchangeProfile turns an authorization code into the provider's
	// identity assertion. Replaceable for testing.
	exchangeProfile func(ctx context.Context, code string) (*services.GoogleProfile, error)
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, mailer services.Mailer, oauth *oauth2.Config, frontendURL string) *AuthController {
	ac := &AuthController{
		authService: authService,
		mailer:      mailer,
		oauth:       oauth,
		frontendURL: frontendURL,
	}
	ac.exchangeProfile = ac.exchangeGoogleProfile
	return ac
}

// SetProfileExchange replaces the code-for-profile exchange for testing.
func (ac *AuthController) SetProfileExchange(fn func(ctx context.Context, code string) (*services.GoogleProfile, error)) {
	ac.exchangeProfile = fn
}

// Signup handles POST /auth/signup
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	user, err := ac.authService.Signup(req.Username, req.Email, req.Password)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login. On success a signed token is delivered via
// an HTTP-only cookie and the sanitized user is returned.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	user, err := ac.authService.AuthenticatePassword(req.Email, req.Password)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	token, err := ac.authService.IssueToken(user.ID)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	ac.setTokenCookie(w, token)

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "login success!",
		"user":    user,
	})
}

// Logout handles POST /auth/logout. It clears the cookie unconditionally and
// always succeeds.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     services.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	sendJSON(w, http.StatusOK, map[string]string{"message": "logout success!"})
}

// CurrentUser handles GET /users/current_user
func (ac *AuthController) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		apperror.WriteError(w, apperror.NewAuthError("No authenticated user.", nil))
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// GoogleLogin handles GET /auth/login/google: redirect to the provider's
// consent page with a state nonce bound to a short-lived cookie.
func (ac *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		apperror.WriteError(w, apperror.NewInternalError("Server Error", err))
		return
	}
	state := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   stateCookieMaxAge,
	})
	http.Redirect(w, r, ac.oauth.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback handles GET /auth/login/google/callback: verify state,
// exchange the code for the identity assertion, upsert the account, issue the
// token cookie and redirect to the frontend. The redirect (rather than a JSON
// body) is what the browser-driven flow expects.
func (ac *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		apperror.WriteError(w, apperror.NewAuthError("invalid oauth state", nil))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		apperror.WriteError(w, apperror.NewAuthError("missing authorization code", nil))
		return
	}

	profile, err := ac.exchangeProfile(r.Context(), code)
	if err != nil {
		apperror.WriteError(w, apperror.NewAuthError("google authentication failed", err))
		return
	}

	user, err := ac.authService.AuthenticateGoogle(*profile)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	token, err := ac.authService.IssueToken(user.ID)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	ac.setTokenCookie(w, token)

	http.Redirect(w, r, ac.frontendURL+"/posts", http.StatusFound)
}

// SendEmail handles POST /auth/send-email, a fire-and-forget relay to the
// outbound mailer.
func (ac *AuthController) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperror.WriteError(w, apperror.NewValidationError("Invalid JSON: "+err.Error(), err))
		return
	}

	if err := ac.mailer.Send(req.To, req.Subject, req.Text); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		return
	}
	sendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ac *AuthController) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     services.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   tokenCookieMaxAge,
	})
}

// exchangeGoogleProfile performs the real code exchange and userinfo fetch.
func (ac *AuthController) exchangeGoogleProfile(ctx context.Context, code string) (*services.GoogleProfile, error) {
	token, err := ac.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	resp, err := ac.oauth.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var profile services.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
