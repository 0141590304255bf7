package app

import (
	"context"
	"fmt"
	"time"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/seed"
	"github.com/adanyl0v/go-task-tracker/internal/services"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
	"github.com/adanyl0v/go-task-tracker/internal/storage/memory"
)

const seedTimeout = 10 * time.Second

var (
	globalTaskRepository storage.TaskRepository
	globalTaskService    services.TaskService
)

func MustOpenStorage() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		globalTaskRepository = memory.NewTaskRepository()
	case config.StoragePostgres:
		globalTaskRepository = mustConnectPostgres(cfg.Postgres)
	case config.StorageMySQL:
		globalTaskRepository = mustConnectMySQL(cfg.MySQL)
	default:
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver))
	}
	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("opened storage")

	globalTaskService = services.NewTaskService(globalLogger, globalTaskRepository, time.Now)
}

// MustSeedTasks fills an empty store with the configured seed tasks.
func MustSeedTasks() {
	path := config.Global().Storage.SeedFile
	tasks, err := seed.Load(path)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to load seed tasks")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	_, err = globalTaskService.SeedTasks(ctx, tasks)
	if err != nil {
		panic(err)
	}
}

func CloseStorage() {
	err := globalTaskRepository.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
		return
	}
	globalLogger.Info().Msg("closed storage")
}
