package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careernest/internal/models"

	redis_v9 "github.com/redis/go-redis/v9"
)

// ErrShadowNotFound is returned when a shadow registration has expired or
// was already consumed.
var ErrShadowNotFound = errors.New("shadow registration not found or expired")

const shadowKeyPrefix = "careernest:shadow:"

// ShadowRepository keeps pre-verification seeker registrations in Redis
// under the token ID, with the store's native TTL as the expiry mechanism.
type ShadowRepository struct {
	client *redis_v9.Client
}

func NewShadowRepository(client *redis_v9.Client) *ShadowRepository {
	return &ShadowRepository{client: client}
}

func (r *ShadowRepository) Save(ctx context.Context, tokenID string, shadow *models.ShadowSeeker, ttl time.Duration) error {
	val, err := json.Marshal(shadow)
	if err != nil {
		return fmt.Errorf("error saving shadow registration: %w", err)
	}
	if err := r.client.Set(ctx, shadowKeyPrefix+tokenID, val, ttl).Err(); err != nil {
		return fmt.Errorf("error saving shadow registration: %w", err)
	}
	return nil
}

func (r *ShadowRepository) Get(ctx context.Context, tokenID string) (*models.ShadowSeeker, error) {
	raw, err := r.client.Get(ctx, shadowKeyPrefix+tokenID).Bytes()
	if err != nil {
		if errors.Is(err, redis_v9.Nil) {
			return nil, ErrShadowNotFound
		}
		return nil, fmt.Errorf("error reading shadow registration: %w", err)
	}
	var shadow models.ShadowSeeker
	if err := json.Unmarshal(raw, &shadow); err != nil {
		return nil, fmt.Errorf("error decoding shadow registration: %w", err)
	}
	return &shadow, nil
}

func (r *ShadowRepository) Delete(ctx context.Context, tokenID string) error {
	return r.client.Del(ctx, shadowKeyPrefix+tokenID).Err()
}

// ExistsByEmail scans pending registrations for a duplicate email so a
// second registration attempt inside the token window is rejected.
func (r *ShadowRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, shadowKeyPrefix+"*", 100).Result()
		if err != nil {
			return false, fmt.Errorf("error scanning shadow registrations: %w", err)
		}
		for _, key := range keys {
			raw, err := r.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}
			var shadow models.ShadowSeeker
			if err := json.Unmarshal(raw, &shadow); err != nil {
				continue
			}
			if shadow.Email == email {
				return true, nil
			}
		}
		cursor = next
		if cursor == 0 {
			return false, nil
		}
	}
}
