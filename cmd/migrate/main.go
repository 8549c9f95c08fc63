package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/migrations"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] up|down|status\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := flag.Arg(0)
	switch command {
	case "up":
		err = migrations.Up(db)
	case "down":
		err = migrations.Down(db)
	case "status":
		err = migrations.Status(db)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}
	logger.Info("Migration finished", "command", command)
}
