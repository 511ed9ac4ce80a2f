package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/bakeshop/pkg/cart"
	"github.com/example/bakeshop/pkg/config"
	"github.com/example/bakeshop/pkg/models"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

// NewRedisRepositoryWithClient wraps an existing client. Tests use this
// with miniredis.
func NewRedisRepositoryWithClient(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Product read cache, invalidated on every admin write.

const productCacheTTL = 30 * time.Minute

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *RedisRepository) CacheProduct(ctx context.Context, p *models.Product) error {
	return r.SetJSON(ctx, productKey(p.ID), p, productCacheTTL)
}

func (r *RedisRepository) GetProductCache(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.GetJSON(ctx, productKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisRepository) InvalidateProduct(ctx context.Context, id string) error {
	return r.Del(ctx, productKey(id))
}

// RedisCartStore keeps each session's cart in a hash (field per product)
// and its liked products in a set.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(r *RedisRepository) *RedisCartStore {
	return &RedisCartStore{client: r.client}
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

func likedKey(session string) string {
	return fmt.Sprintf("liked:%s", session)
}

func (s *RedisCartStore) Get(ctx context.Context, session, productID string) (*cart.Entry, error) {
	data, err := s.client.HGet(ctx, cartKey(session), productID).Result()
	if err == redis.Nil {
		return nil, cart.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart entry: %w", err)
	}
	var entry cart.Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cart entry: %w", err)
	}
	return &entry, nil
}

func (s *RedisCartStore) Put(ctx context.Context, session string, entry cart.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, cartKey(session), entry.Product.ID, data).Err()
}

func (s *RedisCartStore) Remove(ctx context.Context, session, productID string) error {
	return s.client.HDel(ctx, cartKey(session), productID).Err()
}

func (s *RedisCartStore) All(ctx context.Context, session string) ([]cart.Entry, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(session)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	entries := make([]cart.Entry, 0, len(raw))
	for _, data := range raw {
		var entry cart.Entry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode cart entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *RedisCartStore) Clear(ctx context.Context, session string) error {
	return s.client.Del(ctx, cartKey(session)).Err()
}

func (s *RedisCartStore) ToggleLike(ctx context.Context, session, productID string) (bool, error) {
	key := likedKey(session)
	liked, err := s.client.SIsMember(ctx, key, productID).Result()
	if err != nil {
		return false, err
	}
	if liked {
		return false, s.client.SRem(ctx, key, productID).Err()
	}
	return true, s.client.SAdd(ctx, key, productID).Err()
}

func (s *RedisCartStore) IsLiked(ctx context.Context, session, productID string) (bool, error) {
	return s.client.SIsMember(ctx, likedKey(session), productID).Result()
}

func (s *RedisCartStore) Likes(ctx context.Context, session string) ([]string, error) {
	return s.client.SMembers(ctx, likedKey(session)).Result()
}
