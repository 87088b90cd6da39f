package config

import (
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trillbridge/rbridge/internal/state"
)

func sampleConfig() Config {
	return Config{Bridge: BridgeCfg{
		Name:            "br0",
		LocalNickname:   1,
		TreeRoot:        1,
		VNTEnabled:      true,
		DefaultHopCount: 32,
		Neighbors: []NeighborCfg{
			{Nickname: 2, AdjSNPA: "00:00:00:00:00:a2", Adjacencies: []uint16{2, 4}, DTRoots: []uint16{1}},
		},
		Ports: []PortCfg{
			{Name: "eth1", Guest: true},
		},
	}}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := sampleConfig()

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var got Config
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.EqualValues(t, cfg, got)
}

func TestLoadSave(t *testing.T) {
	cfg := sampleConfig()
	path := filepath.Join(t.TempDir(), "rbridge.yaml")

	require.NoError(t, Save(path, &cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, cfg, *got)
}

func TestNeighborCfgInvalidMAC(t *testing.T) {
	n := NeighborCfg{Nickname: 2, AdjSNPA: "not-a-mac"}
	_, _, err := n.NeighborInfo()
	assert.Error(t, err)
}

func TestBridgeCfgApply(t *testing.T) {
	cfg := sampleConfig()
	rs := state.Enable(nil, false, nil)

	require.NoError(t, cfg.Bridge.Apply(rs))

	assert.Equal(t, state.Nickname(1), rs.LocalNick())
	assert.Equal(t, state.Nickname(1), rs.TreeRoot())

	h := rs.Neighbors.Lookup(state.Nickname(2))
	require.NotNil(t, h)
	defer h.Release()
	assert.Equal(t, []state.Nickname{2, 4}, h.Node().Info.Adjacencies)
}
