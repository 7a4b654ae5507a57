package services

import (
	"errors"

	"sonervous/app/apperror"
	"sonervous/app/models"
	"sonervous/app/repositories"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCookieName is the cookie carrying the signed session token.
const TokenCookieName = "token"

// GoogleProfile is the identity assertion supplied by the federated provider.
type GoogleProfile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthService implements the credential verification strategies and token
// issuance.
type AuthService struct {
	users  repositories.UserRepository
	secret []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret)}
}

// Signup registers a normal account. The plaintext password is hashed by the
// model's before-create hook; duplicate emails surface as the store's unique
// constraint.
func (s *AuthService) Signup(username, email, password string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		Email:        email,
		Password:     password,
		RegisterType: models.RegisterTypeNormal,
	}
	if err := user.Validate(); err != nil {
		return nil, apperror.NewValidationError(err.Error(), err)
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperror.NewValidationError("email already registered", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}
	return user.Sanitize(), nil
}

// AuthenticatePassword implements the password strategy: lookup by email,
// constant-time hash comparison, sanitized user on success.
func (s *AuthService) AuthenticatePassword(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}
	if !user.CheckPassword(password) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}
	return user.Sanitize(), nil
}

// AuthenticateToken implements the token strategy: verify the signature,
// decode the subject and resolve it to a user.
func (s *AuthService) AuthenticateToken(tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, apperror.NewAuthError("no token", nil)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.NewAuthError("invalid token", err)
	}

	user, err := s.users.GetByID(claims.Subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewAuthError("unknown subject", nil)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}
	return user.Sanitize(), nil
}

// AuthenticateGoogle implements the federated strategy: find the account for
// the subject id or create one just in time, atomically.
func (s *AuthService) AuthenticateGoogle(profile GoogleProfile) (*models.User, error) {
	candidate := &models.User{
		Username:     profile.Name,
		Email:        profile.Email,
		SocialID:     profile.Sub,
		RegisterType: models.RegisterTypeGoogle,
	}

	user, _, err := s.users.FindOrCreateBySocialID(candidate)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("email already registered to another account", err)
		}
		return nil, apperror.NewInternalError("Server Error", err)
	}
	return user.Sanitize(), nil
}

// IssueToken signs a token whose payload is only the user id. No expiry claim
// is set; the cookie max-age is the sole retention bound.
func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{Subject: userID}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternalError("Server Error", err)
	}
	return signed, nil
}
