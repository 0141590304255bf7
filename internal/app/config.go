package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-task-tracker/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("read env")

	config.SetGlobal(cfg)
}

const (
	devHost = "127.0.0.1"
	devPort = "5000"
)

// ApplyDevelopmentOverrides turns the global config into the local
// development setup: loopback listener on port 5000 and local env.
func ApplyDevelopmentOverrides() {
	cfg := config.Global()
	cfg.Env = config.EnvLocal
	cfg.HTTP.Host = devHost
	cfg.HTTP.Port = devPort

	globalLogger.Info().
		Str("host", devHost).
		Str("port", devPort).
		Msg("applied development overrides")
}
