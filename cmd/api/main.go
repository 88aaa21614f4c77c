package main

import (
	"context"
	"log"
	"time"

	"agree-disagree/config"
	"agree-disagree/internal/events"
	"agree-disagree/internal/redis"
	"agree-disagree/internal/server"
	"agree-disagree/internal/storage"
	"agree-disagree/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.EventsEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redis.Ping(ctx, client)
		cancel()
		if err != nil {
			l.Warnf("Redis unavailable, events will not be delivered: %s", err)
		}
		publisher = redis.NewPublisher(client, cfg.EventsPrefix)
	}

	srv := server.New(cfg, l)

	for _, name := range cfg.ClientNames {
		store, err := storage.New(name, srv.Router(), publisher, l)
		if err != nil {
			l.Errorf("Failed to create storage for %q: %s", name, err)
			return
		}
		defer store.Close()
	}

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited: %s", err)
	}
}
