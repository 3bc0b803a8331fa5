package main

import (
	"flag"
	"log"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/migration"
	"github.com/kalendo/kalendo/internal/storage/pg"
)

func main() {
	var configFolder string
	var command string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&command, "command", "up", "migration command (up/down/version)")
	flag.Parse()

	cfg := config.MustLoad(configFolder)

	db, err := pg.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		if err := migration.Up(db); err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
	case "down":
		if err := migration.Down(db); err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
	case "version":
		version, err := migration.Version(db)
		if err != nil {
			log.Fatalf("failed to read version: %v", err)
		}
		log.Printf("schema version: %d", version)
	default:
		log.Fatalf("unknown command: %s", command)
	}
}
