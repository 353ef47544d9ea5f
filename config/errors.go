package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidSupply indicates incoherent supply parameters.
	ErrInvalidSupply = errors.New("config: invalid supply parameters")

	// ErrInvalidSchedule indicates incoherent auction schedule parameters.
	ErrInvalidSchedule = errors.New("config: invalid auction schedule")

	// ErrInvalidClaim indicates incoherent claim parameters.
	ErrInvalidClaim = errors.New("config: invalid claim parameters")
)
