// Package service glues the betting core to player accounts: it owns the
// player registry, the id sequences and the round lifecycle, and it is the
// only layer that logs.
package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/poobet/roulette/internal/betting"
	"github.com/poobet/roulette/internal/domain"
	"github.com/poobet/roulette/internal/ledger"
	"github.com/poobet/roulette/internal/sequence"
)

// Casino registers players and hands each one a session.
type Casino struct {
	mu        sync.Mutex
	drawer    betting.Drawer
	opts      ledger.Options
	playerIDs sequence.Generator
	roundIDs  sequence.Generator
	wagerIDs  sequence.Generator
	players   map[int64]*Player
	logger    *slog.Logger
}

// NewCasino creates a Casino whose rounds draw from drawer and whose accounts
// are built with opts.
func NewCasino(drawer betting.Drawer, opts ledger.Options, logger *slog.Logger) *Casino {
	return &Casino{
		drawer:    drawer,
		opts:      opts,
		playerIDs: sequence.NewCounter(),
		roundIDs:  sequence.NewCounter(),
		wagerIDs:  sequence.NewCounter(),
		players:   make(map[int64]*Player),
		logger:    logger,
	}
}

// Register validates the identity and opens an empty account for it.
func (c *Casino) Register(identity domain.Identity) (*Player, error) {
	if err := domain.ValidateIdentity(identity); err != nil {
		c.logger.Warn("registration rejected", "error", err)
		return nil, fmt.Errorf("register player: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.playerIDs.Next()
	p := &Player{
		id:       id,
		identity: identity,
		account:  ledger.NewAccount(id, c.opts),
		drawer:   c.drawer,
		roundIDs: c.roundIDs,
		wagerIDs: c.wagerIDs,
		history:  make(map[int64]*betting.Round),
		logger:   c.logger.With("player_id", id),
	}
	c.players[id] = p

	c.logger.Info("player registered", "player_id", id, "nickname", identity.Nickname)
	return p, nil
}

// Player looks up a registered player.
func (c *Casino) Player(id int64) (*Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.players[id]
	if !ok {
		return nil, domain.ErrNotFound("player", fmt.Sprintf("%d", id))
	}
	return p, nil
}
