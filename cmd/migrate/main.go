package main

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"auth-api/internal/db"
)

// migrateConfig solo necesita la URL; no exige el resto de la config del API.
type migrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	var cfg migrateConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := run(cmd, cfg.DatabaseURL, logger); err != nil {
		logger.Fatal("migrate", zap.String("command", cmd), zap.Error(err))
	}
}

func run(cmd, databaseURL string, logger *zap.Logger) error {
	switch cmd {
	case "up", "down", "version":
	default:
		return fmt.Errorf("unknown command %q (use up, down or version)", cmd)
	}

	migrator, err := db.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	}
	if err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
