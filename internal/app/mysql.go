package app

import (
	"context"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/storage/mysql"
)

func mustConnectMySQL(cfg config.MySQLConfig) *mysql.TaskRepository {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	repo, err := mysql.Open(ctx, cfg.DSN)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mysql")
		panic(err)
	}
	globalLogger.Info().Msg("connected to mysql")

	err = repo.Migrate(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate mysql")
		panic(err)
	}
	return repo
}
