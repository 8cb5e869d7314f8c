package main

import (
	"log"

	_ "questboard/docs"
	"questboard/internal/config"
	"questboard/internal/logger"
	"questboard/internal/server"
)

// @title           Questboard API
// @version         1.0
// @description     Team dashboard for tracking tasks, crafting materials, and quest progress in a Minecraft modpack community.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	defer logg.Sync()

	s, err := server.Init(cfg, logg)
	if err != nil {
		logg.Fatal("server initialization failed", "error", err)
	}

	s.Run()
}
