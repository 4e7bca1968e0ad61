// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/joshmo01/FX-MS/engine"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// CacheDecision stores a routing decision, encrypted, under its request key.
func CacheDecision(ctx context.Context, cacheKey string, decision *engine.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	encryptedDecision, err := encrypt(decisionJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt decision: %w", err)
	}

	key := fmt.Sprintf("decision:%s", cacheKey)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedDecision), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache decision: %w", err)
	}

	logger.Debug("Decision cached successfully", zap.String("cacheKey", cacheKey))
	return nil
}

// GetCachedDecision returns a previously cached decision, or nil on a miss.
func GetCachedDecision(ctx context.Context, cacheKey string) (*engine.Decision, error) {
	key := fmt.Sprintf("decision:%s", cacheKey)
	encryptedDecisionStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Decision not found in cache", zap.String("cacheKey", cacheKey))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get decision from cache: %w", err)
	}

	encryptedDecision, err := base64.StdEncoding.DecodeString(encryptedDecisionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode decision: %w", err)
	}

	decisionJSON, err := decrypt(encryptedDecision)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt decision: %w", err)
	}

	var decision engine.Decision
	err = json.Unmarshal(decisionJSON, &decision)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	logger.Debug("Decision retrieved from cache", zap.String("cacheKey", cacheKey))
	return &decision, nil
}

// CacheQuote stores a margin quote under its request key.
func CacheQuote(ctx context.Context, cacheKey string, breakdown *model.MarginBreakdown) error {
	quoteJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	key := fmt.Sprintf("quote:%s", cacheKey)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, quoteJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}

	logger.Debug("Quote cached successfully", zap.String("cacheKey", cacheKey))
	return nil
}

// GetCachedQuote returns a previously cached margin quote, or nil on a miss.
func GetCachedQuote(ctx context.Context, cacheKey string) (*model.MarginBreakdown, error) {
	key := fmt.Sprintf("quote:%s", cacheKey)
	quoteJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Quote not found in cache", zap.String("cacheKey", cacheKey))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get quote from cache: %w", err)
	}

	var breakdown model.MarginBreakdown
	err = json.Unmarshal([]byte(quoteJSON), &breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}

	logger.Debug("Quote retrieved from cache", zap.String("cacheKey", cacheKey))
	return &breakdown, nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
