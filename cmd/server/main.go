package main

import (
	"fmt"
	"log"

	"fleetworks/internal/config"
	"fleetworks/internal/database"
	"fleetworks/internal/handlers"
	"fleetworks/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)
	handlers.Init(cfg)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
