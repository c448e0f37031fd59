package main

import (
	"context"
	"log"

	"grab-atreat/config"
	httpapi "grab-atreat/internal/api/http"
	"grab-atreat/internal/feed"
	"grab-atreat/internal/service"
	"grab-atreat/internal/storage"
)

func main() {
	cfg := config.Load()

	var archive service.OrderArchive
	if cfg.ArchiveReady {
		db := config.MustInitPostgres()
		defer db.Close()

		pg := storage.NewPostgresArchive(db)
		if err := pg.EnsureSchema(); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		archive = pg
	} else {
		log.Println("[grab-atreat] DB_HOST not set, order archive disabled")
	}

	redisClient := config.MustInitRedis()
	defer redisClient.Close()
	cache := storage.NewRedisSessionCache(redisClient, cfg.SessionTTL)

	writer := config.NewKafkaWriter(cfg.OrdersTopic)
	defer writer.Close()
	publisher := storage.NewKafkaOrderPublisher(writer)

	sessions := service.NewSessionService(cache)
	sessions.Seed()

	catalog := service.NewCatalogService()
	catalog.Seed()

	orders := service.NewOrderService(storage.NewMemoryOrderStore(), sessions, archive, publisher)

	reader := config.NewKafkaReader(cfg.OrdersTopic, "grab-atreat-feed")
	defer reader.Close()
	orderFeed := feed.New(reader)
	go orderFeed.Run(context.Background())

	handler := httpapi.NewHandler(orders, sessions, catalog)
	httpapi.StartServer(cfg.HTTPAddr, httpapi.NewRouter(handler))
}
