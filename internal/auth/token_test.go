package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

const testSecret = "unit-test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []domain.Role{domain.RoleUser},
		Active:   true,
	}
}

func TestIssueAndValidate(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	user := testUser()

	token, exp, err := ts.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	assert.True(t, ts.IsValid(token, user))

	subject, err := ts.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestIssueClaims(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	user := testUser()
	user.Roles = []domain.Role{domain.RoleUser, domain.RoleAdmin}

	token, _, err := ts.Issue(user)
	require.NoError(t, err)

	claims, err := ts.decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "USER,ADMIN", claims.Roles)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIsValidAfterTTLElapsed(t *testing.T) {
	ts := NewTokenService(testSecret, 3600*time.Second)
	user := testUser()

	token, _, err := ts.Issue(user)
	require.NoError(t, err)
	require.True(t, ts.IsValid(token, user))

	// advance the clock one second past the TTL
	ts.now = func() time.Time { return time.Now().Add(3601 * time.Second) }
	assert.False(t, ts.IsValid(token, user))
}

func TestIsValidSubjectMismatch(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	token, _, err := ts.Issue(testUser())
	require.NoError(t, err)

	other := testUser()
	other.Username = "bob"
	assert.False(t, ts.IsValid(token, other))
}

func TestExtractSubjectMalformed(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := ts.ExtractSubject(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestExtractSubjectForeignKey(t *testing.T) {
	issuer := NewTokenService("foreign-secret", time.Hour)
	verifier := NewTokenService(testSecret, time.Hour)

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	// a token signed under a different key must never be trusted
	_, err = verifier.ExtractSubject(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, verifier.IsValid(token, testUser()))
}

func TestExtractSubjectRejectsUnexpectedMethod(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	// HS256 signed with the right secret still fails the method check
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.ExtractSubject(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestExpiredTokenStillDecodes(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	user := testUser()

	token, _, err := ts.Issue(user)
	require.NoError(t, err)

	ts.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	// expiry is a validation concern, not a decode concern
	subject, err := ts.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
	assert.False(t, ts.IsValid(token, user))
}
