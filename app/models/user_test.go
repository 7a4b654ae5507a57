package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "valid user",
			user: User{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "secret123",
			},
			wantErr: false,
		},
		{
			name: "missing username",
			user: User{
				Email:    "alice@example.com",
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			user: User{
				Username: "alice",
				Email:    "not-an-email",
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "federated user without password",
			user: User{
				Username:     "Bob Google",
				Email:        "bob@example.com",
				RegisterType: RegisterTypeGoogle,
				SocialID:     "google-sub-1",
			},
			wantErr: false,
		},
		{
			name: "bad register type",
			user: User{
				Username:     "alice",
				Email:        "alice@example.com",
				RegisterType: "github",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserBeforeCreate(t *testing.T) {
	t.Run("hashes a plaintext password", func(t *testing.T) {
		user := &User{Username: "alice", Email: "Alice@Example.com", Password: "secret123"}
		err := user.BeforeCreate()
		assert.NoError(t, err)
		assert.NotEqual(t, "secret123", user.Password)
		assert.True(t, user.CheckPassword("secret123"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("leaves federated accounts without password", func(t *testing.T) {
		user := &User{Username: "bob", Email: "bob@example.com", RegisterType: RegisterTypeGoogle}
		err := user.BeforeCreate()
		assert.NoError(t, err)
		assert.Empty(t, user.Password)
		assert.False(t, user.CheckPassword(""))
	})

	t.Run("defaults register type and normalizes email", func(t *testing.T) {
		user := &User{Username: "alice", Email: " Alice@Example.com ", Password: "secret123"}
		assert.NoError(t, user.BeforeCreate())
		assert.Equal(t, RegisterTypeNormal, user.RegisterType)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})
}

func TestUserSanitize(t *testing.T) {
	user := &User{ID: "u1", Username: "alice", Email: "alice@example.com", Password: "$2a$10$hash"}
	clean := user.Sanitize()

	assert.Empty(t, clean.Password)
	assert.Equal(t, user.ID, clean.ID)
	assert.Equal(t, user.Username, clean.Username)
	// The original keeps its hash.
	assert.Equal(t, "$2a$10$hash", user.Password)
}

func TestUserPostRefs(t *testing.T) {
	user := &User{Username: "alice", Email: "alice@example.com"}

	user.AddPostRef("p1")
	user.AddPostRef("p2")
	assert.Equal(t, []string{"p1", "p2"}, user.Posts)

	assert.NoError(t, user.RemovePostRef("p1"))
	assert.Equal(t, []string{"p2"}, user.Posts)

	assert.Error(t, user.RemovePostRef("missing"))
}
