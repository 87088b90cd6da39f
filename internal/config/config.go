// Package config loads the control-plane's durable, operator-facing
// configuration: bridge identity, the initial neighbour set, and per-port
// guest/VNI settings. It mirrors the teacher's CentralCfg/LocalCfg split —
// a YAML document read with goccy/go-yaml — scaled down to what a single
// RBridge needs to boot with before the control-plane daemon takes over.
package config

import (
	"fmt"
	"net"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/trillbridge/rbridge/internal/state"
)

// NeighborCfg describes one remote RBridge to install into the
// NeighborTable at startup.
type NeighborCfg struct {
	Nickname    uint16   `yaml:"nickname"`
	AdjSNPA     string   `yaml:"adj_snpa"`
	Adjacencies []uint16 `yaml:"adjacencies,omitempty"`
	DTRoots     []uint16 `yaml:"dt_roots,omitempty"`
}

// PortCfg carries the per-port policy the bridge_port collaborator
// (§6) is expected to answer from: whether a port is guest-facing, and
// its VNI membership when VNT is in use.
type PortCfg struct {
	Name  string  `yaml:"name"`
	Guest bool    `yaml:"guest,omitempty"`
	VNI   *uint32 `yaml:"vni,omitempty"`
}

// BridgeCfg is one bridge's RBridge configuration.
type BridgeCfg struct {
	Name            string        `yaml:"name"`
	Enabled         bool          `yaml:"enabled,omitempty"`
	LocalNickname   uint16        `yaml:"local_nickname"`
	TreeRoot        uint16        `yaml:"tree_root,omitempty"`
	VNTEnabled      bool          `yaml:"vnt_enabled,omitempty"`
	DefaultHopCount uint8         `yaml:"default_hop_count"`
	LogPath         string        `yaml:"log_path,omitempty"`
	Neighbors       []NeighborCfg `yaml:"neighbors,omitempty"`
	Ports           []PortCfg     `yaml:"ports,omitempty"`
}

// Config is the top-level document, one bridge per rbridge.yaml.
type Config struct {
	Bridge BridgeCfg `yaml:"bridge"`
}

// Load reads and parses path as a Config.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, for `rbridgectl` subcommands that
// mutate the on-disk configuration (install/evict neighbour, set nicks).
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// parseMAC parses a colon-separated MAC address string into the fixed
// 6-byte form the core uses on the wire.
func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	hw, err := net.ParseMAC(s)
	if err != nil {
		return mac, fmt.Errorf("config: invalid MAC %q: %w", s, err)
	}
	if len(hw) != 6 {
		return mac, fmt.Errorf("config: MAC %q is not 6 bytes", s)
	}
	copy(mac[:], hw)
	return mac, nil
}

// NeighborInfo converts this entry's wire-facing fields into a
// state.NeighborInfo ready for RbrState.InstallNeighbor.
func (n NeighborCfg) NeighborInfo() (state.Nickname, state.NeighborInfo, error) {
	adjSNPA, err := parseMAC(n.AdjSNPA)
	if err != nil {
		return 0, state.NeighborInfo{}, err
	}
	info := state.NeighborInfo{AdjSNPA: adjSNPA}
	for _, a := range n.Adjacencies {
		info.Adjacencies = append(info.Adjacencies, state.Nickname(a))
	}
	for _, r := range n.DTRoots {
		info.DTRoots = append(info.DTRoots, state.Nickname(r))
	}
	return state.Nickname(n.Nickname), info, nil
}

// UpsertNeighbor installs or replaces the neighbour entry for n.Nickname in
// place, preserving the slice's existing order for every other entry.
func (b *BridgeCfg) UpsertNeighbor(n NeighborCfg) {
	for i := range b.Neighbors {
		if b.Neighbors[i].Nickname == n.Nickname {
			b.Neighbors[i] = n
			return
		}
	}
	b.Neighbors = append(b.Neighbors, n)
}

// RemoveNeighbor deletes the neighbour entry for nickname, if present. It
// reports whether an entry was removed.
func (b *BridgeCfg) RemoveNeighbor(nickname uint16) bool {
	for i := range b.Neighbors {
		if b.Neighbors[i].Nickname == nickname {
			b.Neighbors = append(b.Neighbors[:i], b.Neighbors[i+1:]...)
			return true
		}
	}
	return false
}

// Apply installs this BridgeCfg's local nickname, tree root, and initial
// neighbour set into rs, in the order the control-plane daemon would: local
// identity first, then topology.
func (b BridgeCfg) Apply(rs *state.RbrState) error {
	rs.SetLocalNick(state.Nickname(b.LocalNickname))
	if state.Valid(state.Nickname(b.TreeRoot)) {
		if err := rs.SetTreeRoot(state.Nickname(b.TreeRoot)); err != nil {
			return fmt.Errorf("config: set tree root: %w", err)
		}
	}
	for _, n := range b.Neighbors {
		nick, info, err := n.NeighborInfo()
		if err != nil {
			return err
		}
		if err := rs.InstallNeighbor(nick, info); err != nil {
			return fmt.Errorf("config: install neighbor %d: %w", nick, err)
		}
	}
	return nil
}
