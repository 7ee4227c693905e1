package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{
			name: "valid user",
			user: &User{
				ID:           1,
				Email:        "alice@example.com",
				Username:     "alice",
				PasswordHash: "$2a$10$hash",
				CreatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "invalid email",
			user: &User{
				ID:           1,
				Email:        "not-an-email",
				Username:     "alice",
				PasswordHash: "$2a$10$hash",
				CreatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "username with spaces",
			user: &User{
				ID:           1,
				Email:        "alice@example.com",
				Username:     "alice smith",
				PasswordHash: "$2a$10$hash",
				CreatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing password hash",
			user: &User{
				ID:        1,
				Email:     "alice@example.com",
				Username:  "alice",
				CreatedAt: time.Now(),
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

func TestUserBeforeCreateNormalizes(t *testing.T) {
	user := &User{
		Email:    "  Alice@Example.COM ",
		Username: "AliceB",
	}

	user.BeforeCreate()

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "aliceb", user.Username)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("hunter22"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.True(t, user.CheckPassword("hunter22"))
	assert.False(t, user.CheckPassword("hunter23"))
}

func TestUserURL(t *testing.T) {
	user := &User{ID: 7}
	assert.Equal(t, "/users/profile/7", user.URL())
}
