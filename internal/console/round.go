package console

import (
	"context"
	"errors"
	"io"

	"github.com/poobet/roulette/internal/domain"
)

// playRound opens a round, collects wagers until the player stops or runs
// out of chips, then spins. If the input ends mid-round the round is still
// sealed so staked chips are settled.
func (c *Console) playRound(ctx context.Context) error {
	id, err := c.player.OpenRound()
	if err != nil {
		c.notice(err)
		return nil
	}
	c.printf("Round %d is open. You have %d chips.\n", id, c.player.Chips())

	collectErr := c.collectWagers()
	if collectErr != nil && !errors.Is(collectErr, io.EOF) {
		return collectErr
	}

	if err := c.spin(ctx, collectErr == nil); err != nil {
		return err
	}
	return collectErr
}

func (c *Console) collectWagers() error {
	for placed := 0; placed < len(domain.Colors); {
		color, err := c.readColor()
		if err != nil {
			return err
		}
		if r, open := c.player.CurrentRound(); open {
			if _, taken := r.Wager(color); taken {
				c.notice(domain.ErrDuplicateColor(color))
				continue
			}
		}

		ok, err := c.placeStake(color)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		placed++

		if placed == len(domain.Colors) || !c.player.HasChips(1) {
			return nil
		}
		more, err := c.readYesNo("Add another wager? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

func (c *Console) readColor() (domain.Color, error) {
	for {
		line, err := c.readLine("Color (red/black/green): ")
		if err != nil {
			return "", err
		}
		color, err := domain.ParseColor(line)
		if err == nil {
			return color, nil
		}
		c.notice(err)
	}
}

// placeStake prompts for a stake on color until one is accepted. It reports
// false when the colour is already taken so the caller can ask again.
func (c *Console) placeStake(color domain.Color) (bool, error) {
	for {
		c.printf("You have %d chips.\n", c.player.Chips())
		stake, err := c.readInt("Stake: ")
		if err != nil {
			return false, err
		}

		w, err := c.player.PlaceWager(color, stake)
		switch {
		case err == nil:
			c.printf("Wager #%d: %d chips on %s.\n", w.ID, w.Stake, w.Color)
			return true, nil
		case domain.IsCode(err, domain.CodeDuplicateColor):
			c.notice(err)
			return false, nil
		case domain.IsCode(err, domain.CodeInvalidStake), domain.IsCode(err, domain.CodeInsufficientChips):
			c.notice(err)
		default:
			c.notice(err)
			return false, nil
		}
	}
}

// spin seals the open round. When interactive is true a failed draw can be
// retried; otherwise it is retried once before giving up.
func (c *Console) spin(ctx context.Context, interactive bool) error {
	for attempt := 0; ; attempt++ {
		out, err := c.player.SealRound(ctx)
		if err == nil {
			c.announce(out)
			return nil
		}
		c.notice(err)

		if !interactive {
			if attempt > 0 {
				return err
			}
			continue
		}
		if _, err := c.readLine("Press Enter to spin again: "); err != nil {
			interactive = false
		}
	}
}
