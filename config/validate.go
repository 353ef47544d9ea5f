package config

import (
	"fmt"
	"time"
)

// ValidateConfig checks that all configuration values are coherent and
// returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.MaxSupply == 0 {
		return fmt.Errorf("%w: zero max supply", ErrInvalidSupply)
	}
	if cfg.AuctionSupply > cfg.MaxSupply {
		return fmt.Errorf("%w: auction supply %d above max supply %d",
			ErrInvalidSupply, cfg.AuctionSupply, cfg.MaxSupply)
	}
	if cfg.InitialReserve > cfg.MaxSupply-cfg.AuctionSupply {
		return fmt.Errorf("%w: initial reserve %d overlaps auction supply %d",
			ErrInvalidSupply, cfg.InitialReserve, cfg.AuctionSupply)
	}
	if cfg.WalletLimit == 0 {
		return fmt.Errorf("%w: zero wallet limit", ErrInvalidSupply)
	}
	if cfg.ReservePrice > cfg.StartPrice {
		return fmt.Errorf("%w: reserve price %d above start price %d",
			ErrInvalidSchedule, cfg.ReservePrice, cfg.StartPrice)
	}
	if cfg.Decrement == 0 && cfg.StartPrice != cfg.ReservePrice {
		return fmt.Errorf("%w: zero decrement can never reach the reserve", ErrInvalidSchedule)
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidSchedule)
	}
	if cfg.MapSize == 0 {
		return fmt.Errorf("%w: zero map size", ErrInvalidClaim)
	}
	if cfg.HoldTimer%(24*time.Hour) != 0 {
		return fmt.Errorf("%w: hold timer %s is not a whole number of days", ErrInvalidClaim, cfg.HoldTimer)
	}
	if cfg.FractionLimit == 0 {
		return fmt.Errorf("%w: zero fraction limit", ErrInvalidClaim)
	}
	return nil
}
