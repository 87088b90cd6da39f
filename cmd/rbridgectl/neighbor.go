package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trillbridge/rbridge/internal/config"
	"github.com/trillbridge/rbridge/internal/state"
)

var (
	neighborAdjSNPA     string
	neighborAdjacencies []uint
	neighborDTRoots     []uint
)

func toNicknames(vals []uint) []uint16 {
	out := make([]uint16, len(vals))
	for i, v := range vals {
		out[i] = uint16(v)
	}
	return out
}

var installNeighborCmd = &cobra.Command{
	Use:     "install-neighbor <nickname>",
	Short:   "Install or replace the NeighborInfo for a nickname",
	Args:    cobra.ExactArgs(1),
	GroupID: "topology",
	RunE: func(cmd *cobra.Command, args []string) error {
		nick, err := parseNickArg(args[0])
		if err != nil {
			return err
		}
		if !state.Valid(state.Nickname(nick)) {
			return fmt.Errorf("%w: nickname %d", errNotFound, nick)
		}
		n := config.NeighborCfg{
			Nickname:    nick,
			AdjSNPA:     neighborAdjSNPA,
			Adjacencies: toNicknames(neighborAdjacencies),
			DTRoots:     toNicknames(neighborDTRoots),
		}
		if _, _, err := n.NeighborInfo(); err != nil {
			return err
		}
		return withConfig(func(cfg *config.Config) error {
			cfg.Bridge.UpsertNeighbor(n)
			fmt.Printf("installed neighbor %d (adj_snpa=%s)\n", nick, neighborAdjSNPA)
			return nil
		})
	},
}

var evictNeighborCmd = &cobra.Command{
	Use:     "evict-neighbor <nickname>",
	Short:   "Evict the NeighborInfo for a nickname",
	Args:    cobra.ExactArgs(1),
	GroupID: "topology",
	RunE: func(cmd *cobra.Command, args []string) error {
		nick, err := parseNickArg(args[0])
		if err != nil {
			return err
		}
		return withConfig(func(cfg *config.Config) error {
			if !cfg.Bridge.RemoveNeighbor(nick) {
				return fmt.Errorf("%w: nickname %d", errNotFound, nick)
			}
			fmt.Printf("evicted neighbor %d\n", nick)
			return nil
		})
	},
}

func init() {
	installNeighborCmd.Flags().StringVar(&neighborAdjSNPA, "adj-snpa", "", "adjacent RBridge's outer-Ethernet MAC")
	installNeighborCmd.Flags().UintSliceVar(&neighborAdjacencies, "adjacencies", nil, "nicknames reachable through this node as a tree root")
	installNeighborCmd.Flags().UintSliceVar(&neighborDTRoots, "dt-roots", nil, "distribution-tree roots this node advertises using")
	_ = installNeighborCmd.MarkFlagRequired("adj-snpa")

	rootCmd.AddCommand(installNeighborCmd, evictNeighborCmd)
}
