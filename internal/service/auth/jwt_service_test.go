package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

func testConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}
}

func newTestService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(testConfig(), now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := newTestService(t, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	issuer := newTestService(t, func() time.Time { return issued })
	token, err := issuer.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	refresh, err := issuer.sign(context.Background(), userID, "refresh", issued.Add(time.Hour))
	require.NoError(t, err)

	otherKey, err := newHMACJWTService(config.AuthConfig{
		JWTSecret:            strings.Repeat("x", 40),
		TokenLifetimeMinutes: 60,
	}, func() time.Time { return issued })
	require.NoError(t, err)
	forged, err := otherKey.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid":  userID.String(),
		"type": "access",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: token, now: issued.Add(30 * time.Minute)},
		{name: "within clock skew after expiry", token: token, now: issued.Add(61 * time.Minute)},
		{name: "expired", token: token, now: issued.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "issued in the future", token: token, now: issued.Add(-10 * time.Minute), wantErr: ErrTokenNotYetValid},
		{name: "empty", token: "", now: issued, wantErr: ErrMissingToken},
		{name: "malformed", token: "not-a-jwt", now: issued, wantErr: ErrInvalidToken},
		{name: "wrong signature", token: forged, now: issued, wantErr: ErrInvalidToken},
		{name: "unsigned", token: noneToken, now: issued, wantErr: ErrInvalidToken},
		{name: "wrong type", token: refresh, now: issued, wantErr: ErrWrongTokenType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, func() time.Time { return tt.now })

			claims, err := svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
