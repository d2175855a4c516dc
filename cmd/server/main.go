package main

import (
	"log"

	"github.com/go-redis/redis/v8"

	"glamour-inventory/config"
	"glamour-inventory/internal/database"
	"glamour-inventory/internal/inventory"
	"glamour-inventory/internal/server"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	if err := database.MigrateInventoryDB(db); err != nil {
		log.Fatalf("Failed to migrate inventory database: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = config.NewRedisClient(cfg.Redis)
		defer rdb.Close()
	}

	store := inventory.NewStore(db, rdb)
	r := server.NewRouter(store, cfg.RateLimit.Rate)

	log.Printf(" 💄 inventory service listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
