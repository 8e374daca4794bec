package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// ErrMalformedToken signals a token whose structure or signature could not be
// verified. The request gate treats it as fatal.
var ErrMalformedToken = errors.New("token malformed")

// TokenService issues and parses signed JWTs.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a new service.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID int64  `json:"id"`
	Roles  string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the user.
func (ts *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ts.ttl)

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	claims := &Claims{
		UserID: user.ID,
		Roles:  strings.Join(roles, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ExtractSubject returns the subject claim. It fails with ErrMalformedToken
// when the token cannot be decoded or its signature does not verify.
func (ts *TokenService) ExtractSubject(tokenStr string) (string, error) {
	claims, err := ts.decode(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether the token belongs to the user and has not expired.
func (ts *TokenService) IsValid(tokenStr string, user *domain.User) bool {
	claims, err := ts.decode(tokenStr)
	if err != nil {
		return false
	}
	if claims.Subject != user.Username {
		return false
	}
	return claims.ExpiresAt != nil && ts.now().Before(claims.ExpiresAt.Time)
}

// decode verifies the signature and returns the claims. Expiry is checked
// separately in IsValid so an expired-but-genuine token still decodes; a bad
// signature always fails here, before any claim is trusted.
func (ts *TokenService) decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, errors.New("unexpected signing method")
		}
		return ts.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrMalformedToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
