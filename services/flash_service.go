package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlashService stores one-shot messages for the form adapter's
// redirect-then-flash protocol. Messages live in a redis list keyed by the
// browser session id and are consumed on read.
type FlashService struct {
	redis *redis.Client
}

func NewFlashService(redisClient *redis.Client) *FlashService {
	return &FlashService{redis: redisClient}
}

type FlashMessage struct {
	Level   string `json:"level"` // success, warning, error
	Message string `json:"message"`
}

const flashTTL = 10 * time.Minute

func flashKey(sessionID string) string {
	return "flash:" + sessionID
}

func (s *FlashService) Push(ctx context.Context, sessionID, level, message string) error {
	payload, err := json.Marshal(FlashMessage{Level: level, Message: message})
	if err != nil {
		return err
	}

	key := flashKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store flash message: %w", err)
	}
	return nil
}

// Pop drains and returns all pending messages for the session.
func (s *FlashService) Pop(ctx context.Context, sessionID string) ([]FlashMessage, error) {
	key := flashKey(sessionID)

	pipe := s.redis.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw, err := rangeCmd.Result()
	if err != nil {
		return nil, err
	}

	messages := make([]FlashMessage, 0, len(raw))
	for _, item := range raw {
		var msg FlashMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
