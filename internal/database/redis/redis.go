package redis

import (
	"context"
	"log"

	"careernest/internal/config"

	"github.com/redis/go-redis/v9"
)

var Redis_Client *redis.Client

func init() {
	cfg := config.ServiceConfig
	Redis_Client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
	if err := Redis_Client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connect to Redis: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}
