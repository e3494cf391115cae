package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"transcription-api/internal/api/server"
	"transcription-api/internal/api/v1/services"
	"transcription-api/internal/app/event"
	"transcription-api/internal/app/repository"
	"transcription-api/internal/app/repository/pg"
	"transcription-api/internal/app/repository/sqlite"
	"transcription-api/internal/config"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the transcription HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	dao, err := openDAO(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer dao.Close()

	publisher := event.NewKafkaPublisher(cfg.Events, logger)
	defer publisher.Close()

	var archive services.AudioArchiveService
	if cfg.Storage.Enabled {
		minioArchive, err := services.NewMinioAudioArchive(cfg.Storage)
		if err != nil {
			return fmt.Errorf("initialize audio archive: %w", err)
		}
		archive = minioArchive
		logger.Info("audio archive enabled", "bucket", cfg.Storage.Bucket)
	}

	transcriptionService := services.NewTranscriptionService(dao, publisher, archive, logger)

	srv := server.NewServer(server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		Environment:  cfg.Server.Environment,
	}, transcriptionService, logger)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// openDAO builds the repository for the configured backend. The Postgres DSN
// already reflects the managed-vs-local transport choice made by the config
// layer at startup.
func openDAO(dbCfg config.DatabaseConfig, logger *slog.Logger) (repository.TranscriptionDAO, error) {
	switch dbCfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(dbCfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to sqlite database", "path", dbCfg.SQLitePath)
		return sqlite.NewSQLiteDB(db), nil
	default:
		db, err := pg.Open(dbCfg.DSN())
		if err != nil {
			return nil, err
		}
		logger.Info("connected to postgres database",
			"managed", dbCfg.Managed,
			"dbname", dbCfg.Name,
		)
		return pg.NewPostgresDB(db), nil
	}
}
