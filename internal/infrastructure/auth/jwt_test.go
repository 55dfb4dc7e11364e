package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/infrastructure/config"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:   testSecret,
		Issuer:   "https://auth.example.com",
		Audience: "authenticated",
		Leeway:   5 * time.Second,
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	tenantID, userID := uuid.New(), uuid.New()

	token, err := svc.Issue(IssueInput{TenantID: tenantID, UserID: userID, Email: "ops@example.com"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	gotTenant, err := claims.TenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestJWTService_Validate_Errors(t *testing.T) {
	svc := newTestJWTService()
	tenantID, userID := uuid.New(), uuid.New()

	sign := func(claims *Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	base := func() *Claims {
		now := time.Now()
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "https://auth.example.com",
				Audience:  jwt.ClaimStrings{"authenticated"},
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			TenantID: tenantID.String(),
		}
	}

	tests := []struct {
		name  string
		token func() string
		want  error
	}{
		{"garbage", func() string { return "not-a-token" }, ErrInvalidToken},
		{"wrong secret", func() string {
			return sign(base(), jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"))
		}, ErrInvalidToken},
		{"wrong algorithm", func() string {
			return sign(base(), jwt.SigningMethodHS512, []byte(testSecret))
		}, ErrInvalidToken},
		{"expired", func() string {
			c := base()
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrExpiredToken},
		{"not yet valid", func() string {
			c := base()
			c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Minute))
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrTokenNotYetValid},
		{"missing expiry", func() string {
			c := base()
			c.ExpiresAt = nil
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrInvalidToken},
		{"wrong issuer", func() string {
			c := base()
			c.Issuer = "https://evil.example.com"
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrInvalidToken},
		{"wrong audience", func() string {
			c := base()
			c.Audience = jwt.ClaimStrings{"anon"}
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrInvalidToken},
		{"missing tenant", func() string {
			c := base()
			c.TenantID = ""
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrMissingTenantID},
		{"missing user", func() string {
			c := base()
			c.Subject = "service-account"
			return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
		}, ErrMissingUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJWTService_Leeway(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.Issue(IssueInput{TenantID: uuid.New(), UserID: uuid.New(), TTL: time.Minute})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Minute + 3*time.Second) }
	_, err = svc.Validate(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Minute + 10*time.Second) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClaims_UserIDPrefersExplicitClaim(t *testing.T) {
	explicit := uuid.New()
	c := &Claims{UserID: explicit.String()}
	c.Subject = uuid.NewString()

	got, err := c.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
}

func TestJWTService_NoSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{})
	_, err := svc.Issue(IssueInput{TenantID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = svc.Validate("x")
	assert.ErrorIs(t, err, ErrNoSecret)
}
