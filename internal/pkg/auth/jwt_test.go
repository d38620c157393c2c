package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/middleway/middleway/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "middleway-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	user := &models.User{ID: 42, Email: "user@example.com", Role: models.RoleModerator}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "middleway-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)
	user := &models.User{ID: 1, Email: "user@example.com", Role: models.RoleRegular}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := newTestService(time.Hour)
	user := &models.User{ID: 1, Email: "user@example.com", Role: models.RoleRegular}

	token, err := issuer.GenerateToken(user)
	assert.NoError(t, err)

	verifier := NewJWTService(JWTConfig{SecretKey: "other-secret", TokenExp: time.Hour})
	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		expected    string
		expectError bool
	}{
		{name: "valid bearer", header: "Bearer abc123", expected: "abc123"},
		{name: "empty header", header: "", expectError: true},
		{name: "missing scheme", header: "abc123", expectError: true},
		{name: "wrong scheme", header: "Basic abc123", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearerToken(tt.header)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, token)
			}
		})
	}
}
