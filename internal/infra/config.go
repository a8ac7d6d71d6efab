package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/poobet/roulette/internal/domain"
	"github.com/poobet/roulette/internal/ledger"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Ledger
	Currency       string          `env:"POOBET_CURRENCY" envDefault:"BRL"`
	ChipPrice      decimal.Decimal `env:"POOBET_CHIP_PRICE" envDefault:"50"`
	CreditValidity time.Duration   `env:"POOBET_CREDIT_VALIDITY" envDefault:"2160h"`

	// Logging
	LogLevel  string `env:"POOBET_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"POOBET_LOG_FORMAT" envDefault:"json"`

	// Wheel. FixedDraws replays wheel numbers instead of drawing at random.
	RandomOrgAPIKey        string        `env:"RANDOM_ORG_API_KEY"`
	RandomOrgFailThreshold int           `env:"RANDOM_ORG_FAIL_THRESHOLD" envDefault:"3"`
	RandomOrgResetTimeout  time.Duration `env:"RANDOM_ORG_RESET_TIMEOUT" envDefault:"1m"`
	FixedDraws             []int         `env:"POOBET_FIXED_DRAWS" envSeparator:","`

	// Demo player
	PlayerFirstName   string `env:"POOBET_PLAYER_FIRST_NAME" envDefault:"Fulano"`
	PlayerLastName    string `env:"POOBET_PLAYER_LAST_NAME" envDefault:"de Tal"`
	PlayerNickname    string `env:"POOBET_PLAYER_NICKNAME" envDefault:"Fulano"`
	PlayerTaxID       string `env:"POOBET_PLAYER_TAX_ID" envDefault:"111.111.111-11"`
	PlayerNationality string `env:"POOBET_PLAYER_NATIONALITY" envDefault:"Brasileiro"`
	PlayerBirthDate   string `env:"POOBET_PLAYER_BIRTH_DATE" envDefault:"2000-01-01"`
}

// LoadConfig loads the given .env files (default ".env") when present, then
// parses environment variables into a Config struct.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFrom parses config from an explicit environment map, ignoring the
// process environment.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configuration the simulator cannot run with.
func (c *Config) Validate() error {
	if err := domain.ValidateCurrency(c.Currency); err != nil {
		return fmt.Errorf("POOBET_CURRENCY: %w", err)
	}
	if !c.ChipPrice.IsPositive() {
		return fmt.Errorf("POOBET_CHIP_PRICE must be positive, got %s", c.ChipPrice)
	}
	if c.CreditValidity <= 0 {
		return fmt.Errorf("POOBET_CREDIT_VALIDITY must be positive, got %s", c.CreditValidity)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("POOBET_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("POOBET_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.RandomOrgFailThreshold < 1 {
		return fmt.Errorf("RANDOM_ORG_FAIL_THRESHOLD must be at least 1, got %d", c.RandomOrgFailThreshold)
	}
	for _, n := range c.FixedDraws {
		if n < 0 || n > 36 {
			return fmt.Errorf("POOBET_FIXED_DRAWS: %d is not a wheel number", n)
		}
	}
	return nil
}

// LedgerOptions returns the account options for every registered player.
func (c *Config) LedgerOptions() ledger.Options {
	opts := ledger.DefaultOptions()
	opts.Currency = c.Currency
	opts.ChipPrice = c.ChipPrice
	opts.CreditValidity = c.CreditValidity
	return opts
}

// PlayerIdentity builds the demo player's identity.
func (c *Config) PlayerIdentity() (domain.Identity, error) {
	birth, err := time.Parse(time.DateOnly, c.PlayerBirthDate)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("POOBET_PLAYER_BIRTH_DATE: %w", err)
	}
	return domain.Identity{
		FirstName:   c.PlayerFirstName,
		LastName:    c.PlayerLastName,
		Nickname:    c.PlayerNickname,
		TaxID:       c.PlayerTaxID,
		Nationality: c.PlayerNationality,
		BirthDate:   birth,
	}, nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
