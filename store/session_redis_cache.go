package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

const sessionTTL = 60 * time.Minute

type SessionRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewSessionRedisCache(client *redis.Client, tracer trace.Tracer) domain.SessionCache {
	return &SessionRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (cache *SessionRedisCache) PostSession(ctx context.Context, sessionID string, session *domain.Session) error {
	ctx, span := cache.tracer.Start(ctx, "SessionCache.PostSession")
	defer span.End()

	value, err := json.Marshal(session)
	if err != nil {
		return err
	}

	result := cache.client.Set(sessionID, value, sessionTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting session snapshot")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}
	return nil
}

func (cache *SessionRedisCache) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	ctx, span := cache.tracer.Start(ctx, "SessionCache.GetSession")
	defer span.End()

	value, err := cache.client.Get(sessionID).Result()
	if err != nil {
		span.SetStatus(codes.Error, "Error getting session snapshot")
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (cache *SessionRedisCache) DelSession(ctx context.Context, sessionID string) error {
	ctx, span := cache.tracer.Start(ctx, "SessionCache.DelSession")
	defer span.End()

	result := cache.client.Del(sessionID)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting session snapshot")
		log.Println(result.Err())
		return result.Err()
	}
	return nil
}
