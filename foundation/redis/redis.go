package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Redis struct {
	Client         *redis.Client
	Logger         *zap.SugaredLogger
	EmotionChannel string
}

func New(host, password, emotionChannel string, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
	})

	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{
		Client:         client,
		Logger:         logger,
		EmotionChannel: emotionChannel,
	}, nil
}

// Produce publishes one stabilized emotion event to the emotion channel.
func (r *Redis) Produce(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	err = r.Client.Publish(context.Background(), r.EmotionChannel, jsonData).Err()
	if err != nil {
		return err
	}

	r.Logger.Debugw("redis: Produce", "channel", r.EmotionChannel, "data", data)

	return nil
}
