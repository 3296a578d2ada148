package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-account-service/internal/adapter/cache"
	domain "user-account-service/internal/domain/user"
	"user-account-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation; accounts
// are cached under their email, the natural key every lookup uses.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByEmail retrieves an account using the cache-aside pattern.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, email)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("email", email), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.String("email", email))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%s", email)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Another request may have populated the cache while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, email)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.String("email", email))
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}

		// Absence is not cached; a miss stays cheap and creation is rare
		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("email", email), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, nil
	}
	return result.(*domain.User), nil
}

// Save persists the record and invalidates the cached copy.
func (r *CachedUserRepository) Save(ctx context.Context, u *domain.User) error {
	if err := r.dbRepo.Save(ctx, u); err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, u.Email); err != nil {
			r.log.Warn("failed to invalidate cache after save", zap.String("email", u.Email), zap.Error(err))
		}
	}

	return nil
}

// Delete removes the record and invalidates the cached copy.
func (r *CachedUserRepository) Delete(ctx context.Context, email string) (int64, error) {
	rows, err := r.dbRepo.Delete(ctx, email)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, email); err != nil {
			r.log.Warn("failed to invalidate cache after delete", zap.String("email", email), zap.Error(err))
		}
	}

	return rows, nil
}

// List delegates to the DB repository. The listing is a projection that never
// includes passwords or image paths, so it is not served from the cache.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}
