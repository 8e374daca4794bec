package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/repository"
)

// ErrPrincipalNotFound signals that a token subject does not resolve to any
// stored principal. The request gate treats it as fatal.
var ErrPrincipalNotFound = errors.New("principal not found")

// IdentityResolver resolves a token subject to a principal. Implementations
// must be safe to call once per authenticating request; caching is the
// implementation's own concern.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (*domain.User, error)
}

// RepositoryResolver resolves principals from the user store, optionally
// fronted by a redis read-through cache.
type RepositoryResolver struct {
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewRepositoryResolver builds a resolver. A nil cache or zero TTL disables
// caching entirely.
func NewRepositoryResolver(users repository.UserRepository, cache *redis.Client, cacheTTL time.Duration) *RepositoryResolver {
	return &RepositoryResolver{users: users, cache: cache, cacheTTL: cacheTTL}
}

// Resolve looks up the principal for a subject name.
func (r *RepositoryResolver) Resolve(ctx context.Context, subject string) (*domain.User, error) {
	if user, ok := r.cachedPrincipal(ctx, subject); ok {
		return user, nil
	}

	user, err := r.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPrincipalNotFound, subject)
		}
		return nil, err
	}

	r.storePrincipal(ctx, subject, user)
	return user, nil
}

func (r *RepositoryResolver) cachedPrincipal(ctx context.Context, subject string) (*domain.User, bool) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := r.cache.Get(ctx, principalCacheKey(subject)).Bytes()
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (r *RepositoryResolver) storePrincipal(ctx context.Context, subject string, user *domain.User) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	// best effort; a cache write failure never fails resolution
	_ = r.cache.Set(ctx, principalCacheKey(subject), raw, r.cacheTTL).Err()
}

func principalCacheKey(subject string) string {
	return "principal:" + subject
}
