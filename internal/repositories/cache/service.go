package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aurum/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet caching
func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	key := s.GenerateKey("wallet", "id", wallet.ID)
	return s.Set(ctx, key, wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, walletID uint) (*models.Wallet, bool, error) {
	key := s.GenerateKey("wallet", "id", walletID)
	var wallet models.Wallet
	found, err := s.Get(ctx, key, &wallet)
	if err != nil || !found {
		return nil, false, err
	}
	return &wallet, true, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, walletID uint) error {
	return s.Delete(ctx, s.GenerateKey("wallet", "id", walletID))
}

// Transaction caching. Transactions are immutable once linked, so cached
// entries never need invalidation, only expiry.
func (s *CacheService) CacheTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return errors.New("cannot cache nil transaction")
	}
	key := s.GenerateKey("transaction", "id", tx.ID)
	return s.Set(ctx, key, tx)
}

func (s *CacheService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, bool, error) {
	key := s.GenerateKey("transaction", "id", id)
	var tx models.Transaction
	found, err := s.Get(ctx, key, &tx)
	if err != nil || !found {
		return nil, false, err
	}
	return &tx, true, nil
}

// ReserveIdempotencyKey atomically claims an idempotency key. It returns
// false when the key was already claimed by an earlier request.
func (s *CacheService) ReserveIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.GenerateKey("idempotency", "key", key), 1, ttl).Result()
}

func (s *CacheService) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	return s.Delete(ctx, s.GenerateKey("idempotency", "key", key))
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
