// Package config holds the engine parameters: supply caps, the auction price
// schedule, claim settings, and the data directory, with a plain key = value
// file format.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable engine parameter. Prices are in base value
// units (1e9 units = 1.0).
type Config struct {
	DataDir string

	// Sale.
	MaxSupply      uint32
	AuctionSupply  uint32
	WalletLimit    uint32
	InitialReserve uint32

	// Auction price schedule.
	StartPrice   uint64
	Decrement    uint64
	ReservePrice uint64
	Step         time.Duration

	// Claim distribution.
	MapSize       uint32
	HoldTimer     time.Duration
	FractionPrice uint64
	FractionLimit uint32
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:        filepath.Join(home, ".dropcore"),
		MaxSupply:      4555,
		AuctionSupply:  3555,
		WalletLimit:    20,
		InitialReserve: 100,
		StartPrice:     1_000_000_000, // 1.0
		Decrement:      100_000_000,   // 0.1
		ReservePrice:   100_000_000,   // 0.1
		Step:           5 * time.Minute,
		MapSize:        10_000,
		HoldTimer:      0,
		FractionPrice:  50_000_000, // 0.05
		FractionLimit:  2,
	}
}

// LoadConfig reads a key = value config file. Missing keys keep their
// defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: read file: %w", err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, i+1, err)
		}
	}
	return cfg, nil
}

// set applies one parsed key/value pair.
func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "maxsupply":
		return parseUint32(value, &c.MaxSupply)
	case "auctionsupply":
		return parseUint32(value, &c.AuctionSupply)
	case "walletlimit":
		return parseUint32(value, &c.WalletLimit)
	case "initialreserve":
		return parseUint32(value, &c.InitialReserve)
	case "startprice":
		return parseUint64(value, &c.StartPrice)
	case "decrement":
		return parseUint64(value, &c.Decrement)
	case "reserveprice":
		return parseUint64(value, &c.ReservePrice)
	case "step":
		return parseDuration(value, &c.Step)
	case "mapsize":
		return parseUint32(value, &c.MapSize)
	case "holdtimer":
		return parseDuration(value, &c.HoldTimer)
	case "fractionprice":
		return parseUint64(value, &c.FractionPrice)
	case "fractionlimit":
		return parseUint32(value, &c.FractionLimit)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// SaveConfig writes the config as sorted key = value lines.
// The parent directory is created if it does not exist.
func SaveConfig(path string, cfg Config) error {
	entries := map[string]string{
		"datadir":        cfg.DataDir,
		"maxsupply":      strconv.FormatUint(uint64(cfg.MaxSupply), 10),
		"auctionsupply":  strconv.FormatUint(uint64(cfg.AuctionSupply), 10),
		"walletlimit":    strconv.FormatUint(uint64(cfg.WalletLimit), 10),
		"initialreserve": strconv.FormatUint(uint64(cfg.InitialReserve), 10),
		"startprice":     strconv.FormatUint(cfg.StartPrice, 10),
		"decrement":      strconv.FormatUint(cfg.Decrement, 10),
		"reserveprice":   strconv.FormatUint(cfg.ReservePrice, 10),
		"step":           cfg.Step.String(),
		"mapsize":        strconv.FormatUint(uint64(cfg.MapSize), 10),
		"holdtimer":      cfg.HoldTimer.String(),
		"fractionprice":  strconv.FormatUint(cfg.FractionPrice, 10),
		"fractionlimit":  strconv.FormatUint(uint64(cfg.FractionLimit), 10),
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, entries[k])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}

func parseUint32(s string, dst *uint32) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*dst = uint32(v)
	return nil
}

func parseUint64(s string, dst *uint64) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("negative duration %s", d)
	}
	*dst = d
	return nil
}
