package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/trillbridge/rbridge/internal/config"
)

// errNotFound mirrors the §6 control-plane RPC error of the same name:
// an operation named an invalid or unknown nickname.
var errNotFound = errors.New("not found")

// parseNickArg parses a base-10 or 0x-prefixed nickname argument.
func parseNickArg(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid nickname %q: %w", s, err)
	}
	return uint16(n), nil
}

// withConfig loads the config at configPath, runs fn against it, and
// writes it back out if fn succeeds.
func withConfig(fn func(cfg *config.Config) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return config.Save(configPath, cfg)
}
