package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type IRedis interface {
	SetSession(ctx context.Context, id string, payload []byte, expiration time.Duration) error
	GetSession(ctx context.Context, id string) ([]byte, error)
	DeleteSession(ctx context.Context, id string) error
	AcquireAnalysisLock(ctx context.Context, id string, expiration time.Duration) (bool, error)
	ReleaseAnalysisLock(ctx context.Context, id string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func sessionKey(id string) string {
	return "posture:session:" + id
}

func lockKey(id string) string {
	return "posture:analysis_lock:" + id
}

func (r *redisClient) SetSession(ctx context.Context, id string, payload []byte, expiration time.Duration) error {
	err := r.client.Set(ctx, sessionKey(id), payload, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error storing session %s: %v", id, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSession(ctx context.Context, id string) ([]byte, error) {
	val, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error loading session %s: %v", id, err))
		return nil, err
	}
	return val, nil
}

func (r *redisClient) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", id, err))
		return err
	}
	return nil
}

// AcquireAnalysisLock guards the one-in-flight-call-per-session rule. The
// expiration is a safety net in case the holder dies mid-call.
func (r *redisClient) AcquireAnalysisLock(ctx context.Context, id string, expiration time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey(id), "1", expiration).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error acquiring analysis lock for session %s: %v", id, err))
		return false, err
	}
	return ok, nil
}

func (r *redisClient) ReleaseAnalysisLock(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, lockKey(id)).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error releasing analysis lock for session %s: %v", id, err))
		return err
	}
	return nil
}
