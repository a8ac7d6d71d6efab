package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poobet/roulette/internal/console"
	"github.com/poobet/roulette/internal/guard"
	"github.com/poobet/roulette/internal/infra"
	"github.com/poobet/roulette/internal/provider"
	"github.com/poobet/roulette/internal/service"
	"github.com/poobet/roulette/internal/wheel"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("poobet failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err = infra.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	slog.SetDefault(logger)

	// Wheel and casino
	casino := service.NewCasino(wheel.New(randomSource(cfg, logger)), cfg.LedgerOptions(), logger)

	identity, err := cfg.PlayerIdentity()
	if err != nil {
		return fmt.Errorf("player identity: %w", err)
	}
	player, err := casino.Register(identity)
	if err != nil {
		return fmt.Errorf("register player: %w", err)
	}

	return console.New(os.Stdin, os.Stdout, player).Run(ctx)
}

// randomSource picks the wheel's randomness: scripted draws when configured,
// RANDOM.ORG when an API key is set, crypto/rand otherwise.
func randomSource(cfg *infra.Config, logger *slog.Logger) wheel.Source {
	switch {
	case len(cfg.FixedDraws) > 0:
		idx := make([]int, len(cfg.FixedDraws))
		for i, n := range cfg.FixedDraws {
			idx[i] = wheel.IndexOf(n)
		}
		logger.Warn("wheel replays fixed draws", "draws", cfg.FixedDraws)
		return provider.NewFixedSource(idx...)
	case cfg.RandomOrgAPIKey != "":
		breaker := guard.NewCircuitBreaker("random.org", cfg.RandomOrgFailThreshold, cfg.RandomOrgResetTimeout)
		logger.Info("wheel draws from random.org")
		return provider.NewRandomOrgClient(cfg.RandomOrgAPIKey, logger).WithBreaker(breaker)
	default:
		return provider.CSPRNG{}
	}
}
