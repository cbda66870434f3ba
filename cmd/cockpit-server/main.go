package main

import (
	"log"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/config"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/db"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/gather"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/generate"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/logger"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/recommend"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
	"github.com/msanchezgrice/vibecockpit-sub001/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	st := store.New(database)
	defer st.Close()

	generator := generate.New(
		st,
		gather.New(cfg.GitHubToken),
		recommend.New(cfg.AnthropicAPIKey, cfg.AnthropicModel),
	)

	dispatcher := generate.NewDispatcher(generator, 16)
	defer dispatcher.Close()

	srv := server.New(st, generator, dispatcher)

	log.Printf("Vibe Cockpit server starting on %s", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
